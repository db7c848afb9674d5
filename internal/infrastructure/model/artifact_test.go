package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

func writeArtifact(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write artifact fixture: %v", err)
	}
	return path
}

const validVectorizer = `{
	"vocabulary": {"python": 0, "sql": 1},
	"idf": [1.2, 2.4]
}`

const validClassifier = `{
	"classes": ["Software Engineering", "Data Science"],
	"coefficients": [[1.0, -0.5], [-0.5, 1.0]],
	"intercepts": [0.1, -0.1],
	"probability": true
}`

func TestLoadSet(t *testing.T) {
	dir := t.TempDir()
	vecPath := writeArtifact(t, dir, "vec.json", validVectorizer)
	clsPath := writeArtifact(t, dir, "cls.json", validClassifier)

	set, err := LoadSet(vecPath, clsPath)
	if err != nil {
		t.Fatalf("LoadSet() error = %v", err)
	}
	if set.Transformer.Dimension() != 2 || set.Classifier.Dimension() != 2 {
		t.Fatalf("unexpected dimensions: %d / %d", set.Transformer.Dimension(), set.Classifier.Dimension())
	}
}

func TestLoadSetMissingFile(t *testing.T) {
	dir := t.TempDir()
	clsPath := writeArtifact(t, dir, "cls.json", validClassifier)

	_, err := LoadSet(filepath.Join(dir, "absent.json"), clsPath)
	if !domain.IsKind(err, domain.ErrArtifactLoad) {
		t.Fatalf("expected ErrArtifactLoad, got %v", err)
	}
}

func TestLoadSetCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	vecPath := writeArtifact(t, dir, "vec.json", validVectorizer)
	clsPath := writeArtifact(t, dir, "cls.json", "{not json")

	_, err := LoadSet(vecPath, clsPath)
	if !domain.IsKind(err, domain.ErrArtifactLoad) {
		t.Fatalf("expected ErrArtifactLoad, got %v", err)
	}
}

func TestLoadSetDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	vecPath := writeArtifact(t, dir, "vec.json", `{"vocabulary": {"python": 0}, "idf": [1.0]}`)
	clsPath := writeArtifact(t, dir, "cls.json", validClassifier)

	_, err := LoadSet(vecPath, clsPath)
	if !domain.IsKind(err, domain.ErrArtifactLoad) {
		t.Fatalf("expected ErrArtifactLoad, got %v", err)
	}
}
