package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrEmptyExtractedText = errors.New("could not extract text from file")
	ErrNoValidText        = errors.New("no valid text found after processing")
	ErrPredictionFailed   = errors.New("prediction failed")
	ErrArtifactLoad       = errors.New("model artifact load failed")
	ErrJobNotFound        = errors.New("analysis job not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrTemporary          = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
