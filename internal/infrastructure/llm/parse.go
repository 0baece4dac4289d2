package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeObject parses a model response that should be one JSON object.
// Models wrap answers in markdown fences or surround them with prose often
// enough that a direct unmarshal is only the first attempt; the second one
// parses the outermost brace-delimited span.
func DecodeObject(raw string, out any) error {
	cleaned := StripCodeFences(raw)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	span := braceSpan(cleaned)
	if span == "" {
		return fmt.Errorf("model response contains no JSON object")
	}
	if err := json.Unmarshal([]byte(span), out); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}
	return nil
}

// StripCodeFences removes a surrounding markdown code fence, with or
// without a language tag.
func StripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = strings.TrimSpace(text)
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func braceSpan(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
