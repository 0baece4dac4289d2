package extractor

import (
	"fmt"
	"unicode/utf8"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

func decodePlainText(name string, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract text",
			fmt.Errorf("document %s is not valid UTF-8", name))
	}
	return string(raw), nil
}
