package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
	"github.com/lexhub/legal-case-assistant/internal/core/ports"
)

// CaseSummaryUseCase builds the case-wide report from every processed
// document. Unlike per-document stages there is no degraded result here:
// if the analyst fails, the caller gets the error.
type CaseSummaryUseCase struct {
	cases        ports.CaseRepository
	docs         ports.DocumentRepository
	storage      ports.ObjectStorage
	analyst      ports.CaseAnalyst
	timeline     ports.TimelineRepository
	contextChars int
	logger       *slog.Logger
}

func NewCaseSummaryUseCase(
	cases ports.CaseRepository,
	docs ports.DocumentRepository,
	storage ports.ObjectStorage,
	analyst ports.CaseAnalyst,
	timeline ports.TimelineRepository,
	contextChars int,
	logger *slog.Logger,
) *CaseSummaryUseCase {
	if contextChars <= 0 {
		contextChars = 5000
	}
	return &CaseSummaryUseCase{
		cases:        cases,
		docs:         docs,
		storage:      storage,
		analyst:      analyst,
		timeline:     timeline,
		contextChars: contextChars,
		logger:       logger,
	}
}

func (uc *CaseSummaryUseCase) Generate(ctx context.Context, caseID string) (*domain.CaseSummary, error) {
	kase, err := uc.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("fetch case: %w", err)
	}

	docs, err := uc.docs.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list case documents: %w", err)
	}

	contexts := uc.buildContexts(ctx, docs)

	summary, err := uc.analyst.GenerateReport(ctx, kase, contexts)
	if err != nil {
		return nil, fmt.Errorf("generate case report: %w", err)
	}

	if err := uc.cases.SaveSummary(ctx, caseID, *summary, summary.SuggestedThesis); err != nil {
		return nil, fmt.Errorf("save case summary: %w", err)
	}

	event := &domain.TimelineEvent{
		ID:          uuid.NewString(),
		CaseID:      caseID,
		Title:       "Resumo do caso gerado",
		Description: fmt.Sprintf("Relatório gerado a partir de %d documento(s)", len(contexts)),
		Type:        domain.EventCaseSummarized,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.timeline.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("append timeline event: %w", err)
	}

	return summary, nil
}

// buildContexts assembles one context block per document, whatever its
// pipeline state at this instant: a document mid-processing contributes its
// already persisted extracted text, and one that yields nothing still
// appears with an N/A body so the report can name it among the missing.
func (uc *CaseSummaryUseCase) buildContexts(ctx context.Context, docs []domain.Document) []domain.DocumentContext {
	contexts := make([]domain.DocumentContext, 0, len(docs))
	for _, doc := range docs {
		docType := domain.TypeOutro
		if doc.Classification != nil {
			docType = doc.Classification.Type
		}
		contexts = append(contexts, domain.DocumentContext{
			DocumentID: doc.ID,
			Name:       doc.Name,
			Type:       docType,
			Content:    uc.documentContent(ctx, doc),
		})
	}
	return contexts
}

func (uc *CaseSummaryUseCase) documentContent(ctx context.Context, doc domain.Document) string {
	if doc.ExtractedTextPath != "" {
		text, err := uc.readExtractedText(ctx, doc.ExtractedTextPath)
		if err == nil && text != "" {
			return text
		}
		if err != nil {
			uc.logger.Warn("extracted text unavailable, falling back to summary",
				"document_id", doc.ID, "error", err)
		}
	}

	if len(doc.IndividualSummary) > 0 && !doc.IndividualSummary.IsError() {
		raw, err := json.Marshal(doc.IndividualSummary)
		if err == nil {
			return string(raw)
		}
	}

	if doc.Summary != "" {
		return doc.Summary
	}
	return "N/A"
}

func (uc *CaseSummaryUseCase) readExtractedText(ctx context.Context, key string) (string, error) {
	reader, err := uc.storage.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	raw, err := io.ReadAll(io.LimitReader(reader, int64(uc.contextChars)))
	if err != nil {
		return "", err
	}

	// The byte cut can land inside a multi-byte rune; drop the partial tail.
	for len(raw) > 0 {
		r, size := utf8.DecodeLastRune(raw)
		if r == utf8.RuneError && size == 1 {
			raw = raw[:len(raw)-1]
			continue
		}
		break
	}
	return string(raw), nil
}
