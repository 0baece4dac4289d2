package domain

import "time"

type TimelineEventType string

const (
	EventDocumentProcessed TimelineEventType = "document_processed"
	EventCaseSummarized    TimelineEventType = "case_summarized"
)

// TimelineEvent is an append-only log entry on a case's activity feed.
type TimelineEvent struct {
	ID          string            `json:"id"`
	CaseID      string            `json:"case_id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Type        TimelineEventType `json:"type"`
	CreatedAt   time.Time         `json:"created_at"`
}
