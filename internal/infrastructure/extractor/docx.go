package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// extractDOCX reads word/document.xml from the OOXML archive and joins the
// text of every paragraph, in document order, with a single space. Corrupt
// archives and malformed XML degrade to empty text.
func extractDOCX(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	body, err := readZipFile(zr, "word/document.xml")
	if err != nil {
		return ""
	}

	return docxParagraphText(body)
}

func docxParagraphText(body []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(body))

	var paragraphs []string
	var current strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if p := strings.TrimSpace(current.String()); p != "" {
					paragraphs = append(paragraphs, p)
				}
				current.Reset()
			}
		}
	}
	if p := strings.TrimSpace(current.String()); p != "" {
		paragraphs = append(paragraphs, p)
	}

	return strings.Join(paragraphs, " ")
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, io.ErrUnexpectedEOF
}
