package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

const (
	defaultClassifyHeadChars = 5000
	defaultClassifyTailChars = 2000
)

// Classifier assigns one taxonomy label to a document's extracted text.
// Failures propagate; the orchestrator downgrades them to the outro label.
type Classifier struct {
	invoker   *Invoker
	models    []string
	headChars int
	tailChars int
}

func NewClassifier(invoker *Invoker, models []string, headChars, tailChars int) *Classifier {
	if headChars <= 0 {
		headChars = defaultClassifyHeadChars
	}
	if tailChars <= 0 {
		tailChars = defaultClassifyTailChars
	}
	return &Classifier{
		invoker:   invoker,
		models:    models,
		headChars: headChars,
		tailChars: tailChars,
	}
}

func (c *Classifier) Classify(ctx context.Context, text string) (domain.Classification, error) {
	snippet := headTail(text, c.headChars, c.tailChars)
	raw, err := c.invoker.Generate(ctx, c.models, domain.ModelRequest{
		Prompt: buildClassificationPrompt(snippet),
	})
	if err != nil {
		return domain.Classification{}, fmt.Errorf("classify document: %w", err)
	}

	var result struct {
		Type       string  `json:"type"`
		Confidence float64 `json:"confidence"`
	}
	if err := DecodeObject(raw, &result); err != nil {
		return domain.Classification{}, fmt.Errorf("classify document: %w", err)
	}

	docType := domain.DocumentType(strings.ToLower(strings.TrimSpace(result.Type)))
	if !docType.Known() {
		return domain.Classification{}, domain.WrapError(
			domain.ErrInvalidInput,
			"classify document",
			fmt.Errorf("label %q outside taxonomy", result.Type),
		)
	}

	return domain.Classification{
		Type:       docType,
		Confidence: clampConfidence(result.Confidence),
	}, nil
}

func clampConfidence(value float64) int {
	switch {
	case value < 0:
		return 0
	case value > 100:
		return 100
	default:
		return int(value)
	}
}
