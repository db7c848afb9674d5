package extractor

import "strings"

// extractPlainText decodes bytes as UTF-8, replacing invalid sequences with
// the replacement rune. A lossy decode never fails on malformed input.
func extractPlainText(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
