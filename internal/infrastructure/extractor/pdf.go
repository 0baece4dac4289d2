package extractor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

func decodePDF(name string, raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract text",
			fmt.Errorf("parse pdf %s: %w", name, err))
	}

	body, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text from %s: %w", name, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", fmt.Errorf("read pdf text from %s: %w", name, err)
	}
	return buf.String(), nil
}
