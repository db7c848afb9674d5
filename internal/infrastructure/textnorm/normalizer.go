package textnorm

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\S+@\S+`)
	urlPattern   = regexp.MustCompile(`http\S+|www\S+`)
)

// Normalizer cleans extracted resume text into the lexical stream the
// vectorizer was fitted on. A nil stopword set disables stopword removal;
// normalization itself never fails.
type Normalizer struct {
	stopwords map[string]struct{}
}

func New(stopwords map[string]struct{}) *Normalizer {
	return &Normalizer{stopwords: stopwords}
}

// LoadStopwordFile reads one stopword per line, lowercased. Callers treat a
// load failure as a quality degradation, not a startup error.
func LoadStopwordFile(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stopword file: %w", err)
	}
	defer f.Close()

	stopwords := make(map[string]struct{}, 200)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		stopwords[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stopword file: %w", err)
	}
	return stopwords, nil
}

// Normalize lowercases the text, strips email- and URL-shaped substrings,
// drops everything that is not an ASCII letter or whitespace, collapses
// whitespace, and removes stopwords. Digits and punctuation are removed on
// purpose: the classifier operates on lexical domain vocabulary only.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = emailPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	text = keepASCIILetters(text)

	words := strings.Fields(text)
	if len(n.stopwords) == 0 {
		return strings.Join(words, " ")
	}

	kept := words[:0]
	for _, word := range words {
		if _, skip := n.stopwords[word]; skip {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

func keepASCIILetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
