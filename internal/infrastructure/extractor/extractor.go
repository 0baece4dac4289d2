// Package extractor converts uploaded case documents into plain text for the
// downstream pipeline stages. The format decoder is chosen by file extension,
// with the declared MIME type as a tie breaker for extensionless uploads.
package extractor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
	"github.com/lexhub/legal-case-assistant/internal/core/ports"
)

type decoder func(name string, raw []byte) (string, error)

type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	decode, err := decoderFor(doc.Name, doc.MimeType)
	if err != nil {
		return "", err
	}

	reader, err := e.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}

	text, err := decode(doc.Name, raw)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.WrapError(domain.ErrEmptyContent, "extract text",
			fmt.Errorf("document %s produced no text", doc.Name))
	}
	return text, nil
}

func decoderFor(name, mimeType string) (decoder, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return decodePlainText, nil
	case ".pdf":
		return decodePDF, nil
	case ".xlsx":
		return decodeSpreadsheet, nil
	}

	switch mimeType {
	case "text/plain", "text/markdown":
		return decodePlainText, nil
	case "application/pdf":
		return decodePDF, nil
	}

	return nil, domain.WrapError(domain.ErrUnsupportedFormat, "extract text",
		fmt.Errorf("no decoder for %s (%s)", name, mimeType))
}
