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

type CaseRepository struct {
	db *sql.DB
}

func NewCaseRepository(db *sql.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

func (r *CaseRepository) Create(ctx context.Context, kase *domain.Case) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO cases (id, title, case_number, description, thesis, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, kase.ID, kase.Title, kase.Number, kase.Description, kase.Thesis, kase.CreatedAt, kase.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

func (r *CaseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, case_number, description, thesis, summary, created_at, updated_at
FROM cases
WHERE id = $1
`, id)

	var kase domain.Case
	var sumRaw []byte
	err := row.Scan(
		&kase.ID, &kase.Title, &kase.Number, &kase.Description, &kase.Thesis,
		&sumRaw, &kase.CreatedAt, &kase.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrCaseNotFound, "get case", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan case: %w", err)
	}

	if len(sumRaw) > 0 {
		var summary domain.CaseSummary
		if err := json.Unmarshal(sumRaw, &summary); err != nil {
			return nil, fmt.Errorf("unmarshal case summary: %w", err)
		}
		kase.Summary = &summary
	}
	return &kase, nil
}

// SaveSummary replaces the stored report and seeds the thesis from the
// suggested one only while the case still has none.
func (r *CaseRepository) SaveSummary(ctx context.Context, id string, summary domain.CaseSummary, suggestedThesis string) error {
	sumJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal case summary: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE cases
SET summary = $2,
	thesis = CASE WHEN thesis = '' AND $3 <> '' THEN $3 ELSE thesis END,
	updated_at = $4
WHERE id = $1
`, id, sumJSON, suggestedThesis, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save case summary: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrCaseNotFound, "save case summary", fmt.Errorf("id %s", id))
	}
	return nil
}
