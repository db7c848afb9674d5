package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
	"github.com/resumehq/resume-analyzer/internal/core/ports"
)

// ProcessJobUseCase runs one queued analysis job: load the staged bytes,
// classify them with the same pipeline the synchronous endpoint uses, store
// the result, and drop the staged content.
type ProcessJobUseCase struct {
	repo     ports.JobRepository
	staging  ports.StagingStorage
	analyzer ports.ResumeAnalyzer
}

func NewProcessJobUseCase(
	repo ports.JobRepository,
	staging ports.StagingStorage,
	analyzer ports.ResumeAnalyzer,
) *ProcessJobUseCase {
	return &ProcessJobUseCase{
		repo:     repo,
		staging:  staging,
		analyzer: analyzer,
	}
}

func (uc *ProcessJobUseCase) ProcessByID(ctx context.Context, jobID string) error {
	if err := uc.repo.UpdateStatus(ctx, jobID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	analysis, stagingKey, err := uc.runPipeline(ctx, jobID)
	if stagingKey != "" {
		uc.dropStagedContent(ctx, jobID, stagingKey)
	}
	if err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, jobID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveResult(ctx, jobID, analysis); err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, jobID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save result: %w", err)
	}

	if err := uc.repo.UpdateStatus(ctx, jobID, domain.StatusDone, ""); err != nil {
		return fmt.Errorf("set status=done: %w", err)
	}
	return nil
}

func (uc *ProcessJobUseCase) runPipeline(ctx context.Context, jobID string) (domain.Analysis, string, error) {
	job, err := uc.repo.GetByID(ctx, jobID)
	if err != nil {
		return domain.Analysis{}, "", fmt.Errorf("fetch job by id: %w", err)
	}

	data, err := uc.readStagedContent(ctx, job.StagingKey)
	if err != nil {
		return domain.Analysis{}, job.StagingKey, err
	}

	analysis, err := uc.analyzer.Analyze(ctx, data, job.Filename)
	if err != nil {
		return domain.Analysis{}, job.StagingKey, fmt.Errorf("analyze resume: %w", err)
	}
	return analysis, job.StagingKey, nil
}

func (uc *ProcessJobUseCase) readStagedContent(ctx context.Context, key string) ([]byte, error) {
	reader, err := uc.staging.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open staged upload: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read staged upload: %w", err)
	}
	return data, nil
}

// dropStagedContent is best-effort: a leftover staging file must not fail
// the job, it only leaks disk until the next cleanup.
func (uc *ProcessJobUseCase) dropStagedContent(ctx context.Context, jobID, key string) {
	if err := uc.staging.Delete(ctx, key); err != nil {
		slog.Warn("delete staged upload", "job_id", jobID, "key", key, "error", err)
	}
}
