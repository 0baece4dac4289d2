package domain

import "time"

type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusClassified DocumentStatus = "classified"
	StatusSummarized DocumentStatus = "summarized"
	StatusError      DocumentStatus = "error"
)

// Terminal reports whether the pipeline has finished with this document,
// successfully or not.
func (s DocumentStatus) Terminal() bool {
	return s == StatusSummarized || s == StatusError
}

// DocumentType is one label from the closed classification taxonomy.
// TypeOutro is the catch-all for anything the model cannot place.
type DocumentType string

const (
	TypePeticaoInicial  DocumentType = "peticao_inicial"
	TypeContestacao     DocumentType = "contestacao"
	TypeReplica         DocumentType = "replica"
	TypeSentenca        DocumentType = "sentenca"
	TypeRecurso         DocumentType = "recurso"
	TypeDespacho        DocumentType = "despacho"
	TypeContrato        DocumentType = "contrato"
	TypeProcuracao      DocumentType = "procuracao"
	TypeProvaDocumental DocumentType = "prova_documental"
	TypeOutro           DocumentType = "outro"
)

// DocumentTypes returns the full taxonomy in a stable order, TypeOutro last.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		TypePeticaoInicial,
		TypeContestacao,
		TypeReplica,
		TypeSentenca,
		TypeRecurso,
		TypeDespacho,
		TypeContrato,
		TypeProcuracao,
		TypeProvaDocumental,
		TypeOutro,
	}
}

func (t DocumentType) Known() bool {
	for _, known := range DocumentTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Classification is the result of the classification stage. Confidence is a
// 0-100 percentage as reported by the model, 0 on soft failure.
type Classification struct {
	Type       DocumentType `json:"type"`
	Confidence int          `json:"confidence"`
}

// FallbackClassification is the soft-fail value: the pipeline advances with
// it whenever the classification stage cannot produce a usable label.
func FallbackClassification() Classification {
	return Classification{Type: TypeOutro, Confidence: 0}
}

type Document struct {
	ID                string          `json:"id"`
	CaseID            string          `json:"case_id"`
	Name              string          `json:"name"`
	MimeType          string          `json:"mime_type"`
	StoragePath       string          `json:"storage_path"`
	ExtractedTextPath string          `json:"extracted_text_path,omitempty"`
	Classification    *Classification `json:"classification,omitempty"`
	IndividualSummary DocumentSummary `json:"individual_summary,omitempty"`
	Summary           string          `json:"summary,omitempty"` // legacy free-text summary
	Status            DocumentStatus  `json:"status"`
	Error             string          `json:"error,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// DocumentContext is one document's contribution to the case-wide report
// prompt: whatever textual evidence is available for it at that instant.
type DocumentContext struct {
	DocumentID string
	Name       string
	Type       DocumentType
	Content    string
}
