package ports

import (
	"context"
	"io"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

// DocumentRepository persists document state. The stage-save methods also
// advance the status so each pipeline stage lands in a single write.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByCase(ctx context.Context, caseID string) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveExtractedText(ctx context.Context, id, textPath string) error
	SaveClassification(ctx context.Context, id string, cls domain.Classification) error
	SaveSummary(ctx context.Context, id string, summary domain.DocumentSummary) error
}

// CaseRepository persists cases and their generated reports. SaveSummary
// seeds the thesis only when the stored one is still empty.
type CaseRepository interface {
	Create(ctx context.Context, kase *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	SaveSummary(ctx context.Context, id string, summary domain.CaseSummary, suggestedThesis string) error
}

// TimelineRepository appends to a case's activity feed.
type TimelineRepository interface {
	Append(ctx context.Context, event *domain.TimelineEvent) error
	ListByCase(ctx context.Context, caseID string) ([]domain.TimelineEvent, error)
}

// ObjectStorage stores raw uploads and extracted text.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue carries uploaded-document events from api to worker.
type MessageQueue interface {
	PublishDocumentUploaded(ctx context.Context, documentID string) error
	SubscribeDocumentUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// DocumentClassifier assigns one taxonomy label to extracted text.
type DocumentClassifier interface {
	Classify(ctx context.Context, text string) (domain.Classification, error)
}

// DocumentSummarizer produces the type-driven structured summary.
type DocumentSummarizer interface {
	Summarize(ctx context.Context, docType domain.DocumentType, text string) (domain.DocumentSummary, error)
}

// CaseAnalyst produces the case-wide report from per-document contexts.
type CaseAnalyst interface {
	GenerateReport(ctx context.Context, kase *domain.Case, contexts []domain.DocumentContext) (*domain.CaseSummary, error)
}

// ModelClient is the LLM provider boundary. Implementations classify
// failures into the domain error kinds before returning them.
type ModelClient interface {
	Generate(ctx context.Context, modelID string, req domain.ModelRequest) (string, error)
}
