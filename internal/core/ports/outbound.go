package ports

import (
	"context"
	"io"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

// TextExtractor converts raw document bytes into plain text, dispatching on
// the filename's extension. Parser-internal failures degrade to empty text;
// only an unrecognized extension is an error.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

// TextNormalizer cleans extracted text into the token stream the vectorizer
// was fitted on.
type TextNormalizer interface {
	Normalize(text string) string
}

// FeatureTransformer maps normalized text onto the frozen training
// vocabulary. Out-of-vocabulary tokens are ignored, never an error.
type FeatureTransformer interface {
	Transform(text string) ([]float64, error)
}

// LabelPredictor scores a feature vector and returns the top label.
type LabelPredictor interface {
	Predict(vector []float64) (domain.Prediction, error)
}

// FallbackClassifier is the filename-keyword heuristic used when model
// artifacts are unavailable. It never fails.
type FallbackClassifier interface {
	Classify(filename string) domain.Analysis
}

// JobRepository persists and reads asynchronous job state.
type JobRepository interface {
	Create(ctx context.Context, job *domain.AnalysisJob) error
	GetByID(ctx context.Context, id string) (*domain.AnalysisJob, error)
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus, errMessage string) error
	SaveResult(ctx context.Context, id string, result domain.Analysis) error
}

// StagingStorage holds uploaded bytes for the lifetime of an asynchronous
// job. Content is deleted once processing finishes.
type StagingStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// JobQueue publishes/consumes analysis job events.
type JobQueue interface {
	PublishJobQueued(ctx context.Context, jobID string) error
	SubscribeJobQueued(ctx context.Context, handler func(context.Context, string) error) error
}
