package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, case_id, name, mime_type, storage_path, extracted_text_path, classification, individual_summary, summary, status, error_message, created_at, updated_at`

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	clsJSON, err := marshalNullable(doc.Classification)
	if err != nil {
		return fmt.Errorf("marshal classification: %w", err)
	}
	sumJSON, err := marshalNullable(doc.IndividualSummary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO documents (`+documentColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`,
		doc.ID, doc.CaseID, doc.Name, doc.MimeType, doc.StoragePath, doc.ExtractedTextPath,
		clsJSON, sumJSON, doc.Summary, string(doc.Status), doc.Error, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+documentColumns+`
FROM documents
WHERE id = $1
`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepository) ListByCase(ctx context.Context, caseID string) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+documentColumns+`
FROM documents
WHERE case_id = $1
ORDER BY created_at ASC
`, caseID)
	if err != nil {
		return nil, fmt.Errorf("query case documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case documents: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return requireDocument(res, id)
}

func (r *DocumentRepository) SaveExtractedText(ctx context.Context, id, textPath string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET extracted_text_path = $2, status = $3, error_message = '', updated_at = $4
WHERE id = $1
`, id, textPath, string(domain.StatusProcessing), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save extracted text: %w", err)
	}
	return requireDocument(res, id)
}

func (r *DocumentRepository) SaveClassification(ctx context.Context, id string, cls domain.Classification) error {
	clsJSON, err := json.Marshal(cls)
	if err != nil {
		return fmt.Errorf("marshal classification: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET classification = $2, status = $3, updated_at = $4
WHERE id = $1
`, id, clsJSON, string(domain.StatusClassified), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save classification: %w", err)
	}
	return requireDocument(res, id)
}

func (r *DocumentRepository) SaveSummary(ctx context.Context, id string, summary domain.DocumentSummary) error {
	sumJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET individual_summary = $2, status = $3, updated_at = $4
WHERE id = $1
`, id, sumJSON, string(domain.StatusSummarized), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return requireDocument(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var status string
	var clsRaw, sumRaw []byte

	err := row.Scan(
		&doc.ID, &doc.CaseID, &doc.Name, &doc.MimeType, &doc.StoragePath, &doc.ExtractedTextPath,
		&clsRaw, &sumRaw, &doc.Summary, &status, &doc.Error, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(clsRaw) > 0 {
		var cls domain.Classification
		if err := json.Unmarshal(clsRaw, &cls); err != nil {
			return nil, fmt.Errorf("unmarshal classification: %w", err)
		}
		doc.Classification = &cls
	}
	if len(sumRaw) > 0 {
		if err := json.Unmarshal(sumRaw, &doc.IndividualSummary); err != nil {
			return nil, fmt.Errorf("unmarshal summary: %w", err)
		}
	}
	doc.Status = domain.DocumentStatus(status)
	return &doc, nil
}

func marshalNullable(v any) (any, error) {
	switch val := v.(type) {
	case *domain.Classification:
		if val == nil {
			return nil, nil
		}
	case domain.DocumentSummary:
		if val == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func requireDocument(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "update document", fmt.Errorf("id %s", id))
	}
	return nil
}
