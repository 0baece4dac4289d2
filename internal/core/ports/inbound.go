package ports

import (
	"context"
	"io"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

// DocumentUploader is the inbound contract for the upload entrypoint: it
// returns the created document with status=pending while the pipeline
// continues in the background.
type DocumentUploader interface {
	Upload(ctx context.Context, caseID, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor runs the full intake pipeline for one uploaded document.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// CaseSummarizer generates the case-wide report on demand.
type CaseSummarizer interface {
	Generate(ctx context.Context, caseID string) (*domain.CaseSummary, error)
}

// DocumentReader is the inbound read model callers poll for pipeline status.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// CaseManager covers case lifecycle and the activity feed.
type CaseManager interface {
	CreateCase(ctx context.Context, title, number, description, thesis string) (*domain.Case, error)
	GetCase(ctx context.Context, id string) (*domain.Case, []domain.Document, error)
	Timeline(ctx context.Context, caseID string) ([]domain.TimelineEvent, error)
}
