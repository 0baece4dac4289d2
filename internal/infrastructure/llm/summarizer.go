package llm

import (
	"context"
	"fmt"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

const (
	summaryHeadChars = 8000
	summaryTailChars = 2000
)

// Summarizer produces the per-document structured summary, its shape driven
// by the classified type's template. Failures propagate; the orchestrator
// downgrades them to an error-marker summary.
type Summarizer struct {
	invoker *Invoker
	models  []string
}

func NewSummarizer(invoker *Invoker, models []string) *Summarizer {
	return &Summarizer{invoker: invoker, models: models}
}

func (s *Summarizer) Summarize(ctx context.Context, docType domain.DocumentType, text string) (domain.DocumentSummary, error) {
	tpl := templateFor(docType)
	snippet := headTail(text, summaryHeadChars, summaryTailChars)

	raw, err := s.invoker.Generate(ctx, s.models, domain.ModelRequest{
		Prompt: buildSummaryPrompt(docType, tpl, snippet),
	})
	if err != nil {
		return nil, fmt.Errorf("summarize document: %w", err)
	}

	var summary domain.DocumentSummary
	if err := DecodeObject(raw, &summary); err != nil {
		return nil, fmt.Errorf("summarize document: %w", err)
	}
	return summary, nil
}
