package ports

import (
	"context"
	"io"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

// ResumeAnalyzer is the inbound contract for synchronous resume analysis.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, data []byte, filename string) (domain.Analysis, error)
	Report(ctx context.Context, data []byte, filename string) (domain.Report, error)
}

// ResumeImprover produces improvement suggestions for an uploaded resume.
type ResumeImprover interface {
	Improve(ctx context.Context, data []byte, filename, domainLabel string) (domain.ImprovementResult, error)
}

// UniquenessChecker flags overused boilerplate phrases in a resume.
type UniquenessChecker interface {
	Check(ctx context.Context, data []byte, filename string) (domain.PlagiarismResult, error)
}

// CompanyFinder looks up the hiring directory by domain label.
type CompanyFinder interface {
	CompaniesFor(domainLabel string, skills []string, limit int) []domain.Company
}

// JobSubmitter is the inbound contract for asynchronous analysis jobs.
type JobSubmitter interface {
	Submit(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.AnalysisJob, error)
}

// JobReader is the inbound read model for job state.
type JobReader interface {
	GetByID(ctx context.Context, id string) (*domain.AnalysisJob, error)
}

// JobProcessor is the inbound contract for asynchronous job processing.
type JobProcessor interface {
	ProcessByID(ctx context.Context, jobID string) error
}
