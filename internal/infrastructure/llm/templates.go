package llm

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

//go:embed templates.yaml
var templatesYAML []byte

// SummaryTemplate names the fields the summary of one document type must
// carry and what each field should hold.
type SummaryTemplate struct {
	Fields []TemplateField `yaml:"fields"`
}

type TemplateField struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

var (
	templatesOnce sync.Once
	templates     map[domain.DocumentType]SummaryTemplate
	templatesErr  error
)

func loadTemplates() (map[domain.DocumentType]SummaryTemplate, error) {
	templatesOnce.Do(func() {
		parsed := make(map[domain.DocumentType]SummaryTemplate)
		if err := yaml.Unmarshal(templatesYAML, &parsed); err != nil {
			templatesErr = fmt.Errorf("parse summary templates: %w", err)
			return
		}
		templates = parsed
	})
	return templates, templatesErr
}

// templateFor returns the type's template, or the generic one-field summary
// when the taxonomy has no dedicated shape for it.
func templateFor(docType domain.DocumentType) SummaryTemplate {
	loaded, err := loadTemplates()
	if err == nil {
		if tpl, ok := loaded[docType]; ok && len(tpl.Fields) > 0 {
			return tpl
		}
	}
	return SummaryTemplate{
		Fields: []TemplateField{
			{Name: "resumo", Description: "concise summary of the document's content and purpose"},
		},
	}
}
