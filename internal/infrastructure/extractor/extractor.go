package extractor

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

// SupportedExtensions lists the formats the extractor dispatches on.
// "doc" is routed through the DOCX parser; legacy binary .doc files will
// usually degrade to empty text rather than fail the request.
var SupportedExtensions = []string{"pdf", "docx", "doc", "txt"}

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract converts document bytes into plain text based on the filename's
// extension. Parser-internal failures (corrupt archive, malformed PDF) are
// swallowed and surface as empty text; only an unrecognized extension
// returns an error.
func (e *Extractor) Extract(_ context.Context, data []byte, filename string) (string, error) {
	switch normalizeExtension(filename) {
	case "pdf":
		return extractPDF(data), nil
	case "docx", "doc":
		return extractDOCX(data), nil
	case "txt":
		return extractPlainText(data), nil
	default:
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract text", errors.New(filename))
	}
}

// IsSupported reports whether the filename carries a supported extension.
func IsSupported(filename string) bool {
	ext := normalizeExtension(filename)
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

func normalizeExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
