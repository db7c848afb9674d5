package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

// Artifacts are pre-trained model components exported to JSON at training
// time. They are loaded exactly once at startup, treated as immutable, and
// shared by all concurrent classification calls.

type vectorizerArtifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

type classifierArtifact struct {
	Classes      []string    `json:"classes"`
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
	Probability  bool        `json:"probability"`
}

// Set bundles the fitted vectorizer and classifier. Both refer to the same
// training vocabulary, so they are only meaningful together.
type Set struct {
	Transformer *TFIDFTransformer
	Classifier  *LinearClassifier
}

// LoadSet loads both artifacts and validates that their dimensions agree.
// Any failure is reported as an artifact-load error; callers switch the
// service to the keyword fallback path instead of crashing startup.
func LoadSet(vectorizerPath, classifierPath string) (*Set, error) {
	transformer, err := loadTransformer(vectorizerPath)
	if err != nil {
		return nil, domain.WrapError(domain.ErrArtifactLoad, "load vectorizer artifact", err)
	}

	classifier, err := loadClassifier(classifierPath)
	if err != nil {
		return nil, domain.WrapError(domain.ErrArtifactLoad, "load classifier artifact", err)
	}

	if transformer.Dimension() != classifier.Dimension() {
		return nil, domain.WrapError(
			domain.ErrArtifactLoad,
			"validate artifacts",
			fmt.Errorf("vectorizer dimension %d does not match classifier dimension %d",
				transformer.Dimension(), classifier.Dimension()),
		)
	}

	return &Set{Transformer: transformer, Classifier: classifier}, nil
}

func loadTransformer(path string) (*TFIDFTransformer, error) {
	var artifact vectorizerArtifact
	if err := readJSONFile(path, &artifact); err != nil {
		return nil, err
	}
	return NewTFIDFTransformer(artifact.Vocabulary, artifact.IDF)
}

func loadClassifier(path string) (*LinearClassifier, error) {
	var artifact classifierArtifact
	if err := readJSONFile(path, &artifact); err != nil {
		return nil, err
	}
	return NewLinearClassifier(artifact.Classes, artifact.Coefficients, artifact.Intercepts, artifact.Probability)
}

func readJSONFile(path string, dst any) error {
	if path == "" {
		return errors.New("artifact path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode artifact: %w", err)
	}
	return nil
}
