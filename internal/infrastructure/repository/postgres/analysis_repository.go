package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

type AnalysisJobRepository struct {
	db *sql.DB
}

func NewAnalysisJobRepository(db *sql.DB) *AnalysisJobRepository {
	return &AnalysisJobRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *AnalysisJobRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS analysis_jobs (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	staging_key TEXT NOT NULL,
	status TEXT NOT NULL,
	result JSONB,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analysis_jobs_status ON analysis_jobs(status);
CREATE INDEX IF NOT EXISTS idx_analysis_jobs_created_at ON analysis_jobs(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *AnalysisJobRepository) Create(ctx context.Context, job *domain.AnalysisJob) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO analysis_jobs (id, filename, mime_type, staging_key, status, result, error_message, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,NULL,$6,$7,$8)
`, job.ID, job.Filename, job.MimeType, job.StagingKey, string(job.Status), job.Error, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis job: %w", err)
	}
	return nil
}

func (r *AnalysisJobRepository) GetByID(ctx context.Context, id string) (*domain.AnalysisJob, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, staging_key, status, result, error_message, created_at, updated_at
FROM analysis_jobs
WHERE id = $1
`, id)

	var job domain.AnalysisJob
	var resultRaw []byte
	var status string

	err := row.Scan(
		&job.ID, &job.Filename, &job.MimeType, &job.StagingKey,
		&status, &resultRaw, &job.Error, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrJobNotFound, "get analysis job", err)
		}
		return nil, fmt.Errorf("scan analysis job: %w", err)
	}

	if len(resultRaw) > 0 {
		var result domain.Analysis
		if err := json.Unmarshal(resultRaw, &result); err != nil {
			return nil, fmt.Errorf("unmarshal analysis result: %w", err)
		}
		job.Result = &result
	}
	job.Status = domain.JobStatus(status)
	return &job, nil
}

func (r *AnalysisJobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE analysis_jobs
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job status rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrJobNotFound, "update job status", sql.ErrNoRows)
	}
	return nil
}

func (r *AnalysisJobRepository) SaveResult(ctx context.Context, id string, analysis domain.Analysis) error {
	resultJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
UPDATE analysis_jobs
SET result = $2, updated_at = $3
WHERE id = $1
`, id, resultJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save analysis result: %w", err)
	}
	return nil
}
