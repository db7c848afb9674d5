package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
	"github.com/resumehq/resume-analyzer/internal/core/ports"
)

// SubmitAnalysisUseCase stages an uploaded resume, records the job, and
// hands it to the worker queue. The staged bytes are transient: the worker
// deletes them once the job finishes.
type SubmitAnalysisUseCase struct {
	repo    ports.JobRepository
	staging ports.StagingStorage
	queue   ports.JobQueue
}

func NewSubmitAnalysisUseCase(
	repo ports.JobRepository,
	staging ports.StagingStorage,
	queue ports.JobQueue,
) *SubmitAnalysisUseCase {
	return &SubmitAnalysisUseCase{
		repo:    repo,
		staging: staging,
		queue:   queue,
	}
}

func (uc *SubmitAnalysisUseCase) Submit(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.AnalysisJob, error) {
	id := uuid.NewString()
	stagingKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.staging.Save(ctx, stagingKey, body); err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	job := &domain.AnalysisJob{
		ID:         id,
		Filename:   filename,
		MimeType:   mimeType,
		StagingKey: stagingKey,
		Status:     domain.StatusQueued,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job record: %w", err)
	}

	if err := uc.queue.PublishJobQueued(ctx, job.ID); err != nil {
		return nil, fmt.Errorf("publish job event: %w", err)
	}

	return job, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "resume.bin"
	}
	return base
}
