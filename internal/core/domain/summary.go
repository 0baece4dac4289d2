package domain

// DocumentSummary is the structured summary of one document. Its field set
// depends on the classified type (see the summarizer template table), so it
// stays a free-shape object instead of a fixed struct.
type DocumentSummary map[string]any

const (
	summaryErrorKey   = "error"
	summaryDetailsKey = "details"
)

// ErrorSummary builds the soft-fail marker stored when summarization fails
// for good. A document carrying it still counts as summarized.
func ErrorSummary(reason, details string) DocumentSummary {
	return DocumentSummary{
		summaryErrorKey:   reason,
		summaryDetailsKey: details,
	}
}

func (s DocumentSummary) IsError() bool {
	if s == nil {
		return false
	}
	_, ok := s[summaryErrorKey]
	return ok
}
