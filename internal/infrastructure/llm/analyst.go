package llm

import (
	"context"
	"fmt"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

// Analyst builds the case-wide report. Case reports are business-critical,
// so it runs with the longer candidate list and, unlike the per-document
// stages, hard-fails when no candidate yields a parseable report.
type Analyst struct {
	invoker *Invoker
	models  []string
}

func NewAnalyst(invoker *Invoker, models []string) *Analyst {
	return &Analyst{invoker: invoker, models: models}
}

func (a *Analyst) GenerateReport(ctx context.Context, kase *domain.Case, contexts []domain.DocumentContext) (*domain.CaseSummary, error) {
	raw, err := a.invoker.Generate(ctx, a.models, domain.ModelRequest{
		Prompt: buildCaseReportPrompt(kase, contexts),
	})
	if err != nil {
		return nil, fmt.Errorf("generate case report: %w", err)
	}

	var report domain.CaseSummary
	if err := DecodeObject(raw, &report); err != nil {
		return nil, fmt.Errorf("generate case report: %w", err)
	}
	return &report, nil
}
