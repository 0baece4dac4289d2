package domain

import "time"

type Case struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Number      string       `json:"number,omitempty"`
	Description string       `json:"description,omitempty"`
	Thesis      string       `json:"thesis,omitempty"`
	Summary     *CaseSummary `json:"case_summary,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CaseSummary is the case-wide report produced from every processed
// document. It is overwritten, not versioned, on regeneration.
type CaseSummary struct {
	Overview         string              `json:"overview"`
	Parties          []CaseParty         `json:"parties"`
	Sections         []CaseSection       `json:"sections"`
	Timeline         []CaseTimelineEntry `json:"timeline"`
	Strategy         CaseStrategy        `json:"strategy"`
	CriticalPoints   []string            `json:"critical_points"`
	Risks            []string            `json:"risks"`
	SuggestedThesis  string              `json:"suggested_thesis"`
	MissingDocuments []string            `json:"missing_documents"`
	NextSteps        []string            `json:"next_steps"`
}

type CaseParty struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// CaseSection is one narrative block of the report, citing the document it
// came from and quoting a verbatim excerpt.
type CaseSection struct {
	Title          string `json:"title"`
	Narrative      string `json:"narrative"`
	SourceDocument string `json:"source_document"`
	Excerpt        string `json:"excerpt"`
}

type CaseTimelineEntry struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

type CaseStrategy struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}
