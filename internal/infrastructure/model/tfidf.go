package model

import (
	"errors"
	"math"
	"strings"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

// TFIDFTransformer applies a vectorizer fitted at training time. The
// vocabulary and IDF weights are frozen; tokens outside the vocabulary are
// ignored. Instances are immutable after construction and safe for
// concurrent use.
type TFIDFTransformer struct {
	vocabulary map[string]int
	idf        []float64
}

func NewTFIDFTransformer(vocabulary map[string]int, idf []float64) (*TFIDFTransformer, error) {
	if len(vocabulary) == 0 {
		return nil, errors.New("empty vocabulary")
	}
	if len(idf) != len(vocabulary) {
		return nil, errors.New("idf length does not match vocabulary size")
	}
	for term, index := range vocabulary {
		if index < 0 || index >= len(idf) {
			return nil, errors.New("vocabulary index out of range for term " + term)
		}
	}
	return &TFIDFTransformer{vocabulary: vocabulary, idf: idf}, nil
}

// Dimension returns the fixed feature-vector length.
func (t *TFIDFTransformer) Dimension() int {
	return len(t.idf)
}

// Transform maps normalized text onto the frozen vocabulary: term counts,
// tf x idf weighting, then L2 normalization.
func (t *TFIDFTransformer) Transform(text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrNoValidText, "vectorize", errors.New("empty input text"))
	}

	vector := make([]float64, len(t.idf))
	for _, token := range strings.Fields(text) {
		index, ok := t.vocabulary[token]
		if !ok {
			continue
		}
		vector[index]++
	}

	var sumSquares float64
	for index, count := range vector {
		if count == 0 {
			continue
		}
		weighted := count * t.idf[index]
		vector[index] = weighted
		sumSquares += weighted * weighted
	}

	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for index := range vector {
			if vector[index] != 0 {
				vector[index] /= norm
			}
		}
	}

	return vector, nil
}
