package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

type TimelineRepository struct {
	db *sql.DB
}

func NewTimelineRepository(db *sql.DB) *TimelineRepository {
	return &TimelineRepository{db: db}
}

func (r *TimelineRepository) Append(ctx context.Context, event *domain.TimelineEvent) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO timeline_events (id, case_id, title, description, event_type, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, event.ID, event.CaseID, event.Title, event.Description, string(event.Type), event.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert timeline event: %w", err)
	}
	return nil
}

func (r *TimelineRepository) ListByCase(ctx context.Context, caseID string) ([]domain.TimelineEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, case_id, title, description, event_type, created_at
FROM timeline_events
WHERE case_id = $1
ORDER BY created_at DESC
`, caseID)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	defer rows.Close()

	var events []domain.TimelineEvent
	for rows.Next() {
		var event domain.TimelineEvent
		var eventType string
		if err := rows.Scan(&event.ID, &event.CaseID, &event.Title, &event.Description, &eventType, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan timeline event: %w", err)
		}
		event.Type = domain.TimelineEventType(eventType)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timeline: %w", err)
	}
	return events, nil
}
