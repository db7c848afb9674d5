package extractor

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates the text of every page in page order, joined by a
// single space. Pages without text contribute nothing. The pdf package can
// panic on malformed structures, so the whole walk runs under recover and
// degrades to empty text.
func extractPDF(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	parts := make([]string, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		parts = append(parts, pageText)
	}
	return strings.Join(parts, " ")
}
