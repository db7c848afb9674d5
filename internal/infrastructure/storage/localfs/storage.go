package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage stages uploaded resume bytes on local disk between submission and
// worker pickup. Keys are flat file names; callers sanitize them first.
type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/staging"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

func (s *Storage) Save(_ context.Context, key string, data io.Reader) error {
	path := filepath.Join(s.basePath, key)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create staged file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("write staged file: %w", err)
	}
	return nil
}

func (s *Storage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	path := filepath.Join(s.basePath, key)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open staged file: %w", err)
	}
	return f, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	path := filepath.Join(s.basePath, key)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove staged file: %w", err)
	}
	return nil
}
