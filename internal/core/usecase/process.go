package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
	"github.com/lexhub/legal-case-assistant/internal/core/ports"
)

// ProcessDocumentUseCase runs the intake pipeline for one uploaded document:
// extract, classify, summarize. Extraction failures are fatal for the
// document; classification and summarization degrade to placeholder results
// so a flaky model never strands a document in error.
type ProcessDocumentUseCase struct {
	docs       ports.DocumentRepository
	storage    ports.ObjectStorage
	extractor  ports.TextExtractor
	classifier ports.DocumentClassifier
	summarizer ports.DocumentSummarizer
	timeline   ports.TimelineRepository
	logger     *slog.Logger
}

func NewProcessDocumentUseCase(
	docs ports.DocumentRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	classifier ports.DocumentClassifier,
	summarizer ports.DocumentSummarizer,
	timeline ports.TimelineRepository,
	logger *slog.Logger,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		docs:       docs,
		storage:    storage,
		extractor:  extractor,
		classifier: classifier,
		summarizer: summarizer,
		timeline:   timeline,
		logger:     logger,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	doc, err := uc.docs.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}

	// Queue redeliveries of an already processed document are no-ops.
	if doc.Status != domain.StatusPending {
		uc.logger.Info("skipping non-pending document",
			"document_id", doc.ID, "status", doc.Status)
		return nil
	}

	text, err := uc.extractText(ctx, doc)
	if err != nil {
		if failErr := uc.markFailed(ctx, doc.ID, err); failErr != nil {
			return fmt.Errorf("%w; mark error status: %v", err, failErr)
		}
		return err
	}

	classification := uc.classify(ctx, doc, text)
	if err := uc.docs.SaveClassification(ctx, doc.ID, classification); err != nil {
		return uc.failPersist(ctx, doc.ID, fmt.Errorf("save classification: %w", err))
	}

	summary := uc.summarize(ctx, doc, classification.Type, text)
	if err := uc.docs.SaveSummary(ctx, doc.ID, summary); err != nil {
		// error is a terminal state reachable only before a document is
		// classified; past that point the write failure is surfaced without
		// rewriting the status.
		return fmt.Errorf("save summary: %w", err)
	}

	if err := uc.recordTimeline(ctx, doc, classification); err != nil {
		return err
	}

	uc.logger.Info("document processed",
		"document_id", doc.ID,
		"case_id", doc.CaseID,
		"type", classification.Type,
		"confidence", classification.Confidence)
	return nil
}

func (uc *ProcessDocumentUseCase) extractText(ctx context.Context, doc *domain.Document) (string, error) {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	textKey := fmt.Sprintf("%s/%s.txt", doc.CaseID, doc.ID)
	if err := uc.storage.Save(ctx, textKey, strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("save extracted text: %w", err)
	}
	if err := uc.docs.SaveExtractedText(ctx, doc.ID, textKey); err != nil {
		return "", fmt.Errorf("record extracted text: %w", err)
	}
	doc.ExtractedTextPath = textKey
	return text, nil
}

func (uc *ProcessDocumentUseCase) classify(ctx context.Context, doc *domain.Document, text string) domain.Classification {
	classification, err := uc.classifier.Classify(ctx, text)
	if err != nil {
		uc.logger.Warn("classification degraded to fallback",
			"document_id", doc.ID, "error", err)
		return domain.FallbackClassification()
	}
	return classification
}

func (uc *ProcessDocumentUseCase) summarize(ctx context.Context, doc *domain.Document, docType domain.DocumentType, text string) domain.DocumentSummary {
	summary, err := uc.summarizer.Summarize(ctx, docType, text)
	if err != nil {
		uc.logger.Warn("summarization degraded to error marker",
			"document_id", doc.ID, "error", err)
		return domain.ErrorSummary("summarization failed", err.Error())
	}
	return summary
}

func (uc *ProcessDocumentUseCase) recordTimeline(ctx context.Context, doc *domain.Document, cls domain.Classification) error {
	event := &domain.TimelineEvent{
		ID:          uuid.NewString(),
		CaseID:      doc.CaseID,
		Title:       doc.Name,
		Description: fmt.Sprintf("Documento processado como %s (confiança %d%%)", cls.Type, cls.Confidence),
		Type:        domain.EventDocumentProcessed,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.timeline.Append(ctx, event); err != nil {
		return fmt.Errorf("append timeline event: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) failPersist(ctx context.Context, documentID string, err error) error {
	if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
		return fmt.Errorf("%w; mark error status: %v", err, failErr)
	}
	return err
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	return uc.docs.UpdateStatus(ctx, documentID, domain.StatusError, processErr.Error())
}
