package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resumehq/resume-analyzer/internal/config"
	"github.com/resumehq/resume-analyzer/internal/core/ports"
	"github.com/resumehq/resume-analyzer/internal/core/usecase"
	"github.com/resumehq/resume-analyzer/internal/infrastructure/companies"
	"github.com/resumehq/resume-analyzer/internal/infrastructure/extractor"
	"github.com/resumehq/resume-analyzer/internal/infrastructure/model"
	"github.com/resumehq/resume-analyzer/internal/infrastructure/queue/nats"
	"github.com/resumehq/resume-analyzer/internal/infrastructure/repository/postgres"
	"github.com/resumehq/resume-analyzer/internal/infrastructure/resilience"
	"github.com/resumehq/resume-analyzer/internal/infrastructure/storage/localfs"
	"github.com/resumehq/resume-analyzer/internal/infrastructure/textnorm"
)

type App struct {
	Config config.Config

	Queue *nats.Queue
	Repo  ports.JobRepository

	Analyzer  *usecase.AnalyzeResumeUseCase
	Improver  ports.ResumeImprover
	Checker   ports.UniquenessChecker
	Companies ports.CompanyFinder
	SubmitUC  ports.JobSubmitter
	ProcessUC ports.JobProcessor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewAnalysisJobRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	staging, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init staging storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	directory, err := companies.Load(cfg.CompaniesPath)
	if err != nil {
		return nil, fmt.Errorf("load company directory: %w", err)
	}

	analyzer := buildAnalyzer(cfg)
	docExtractor := extractor.New()

	submitUC := usecase.NewSubmitAnalysisUseCase(repo, staging, queue)
	processUC := usecase.NewProcessJobUseCase(repo, staging, analyzer)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		Analyzer:  analyzer,
		Improver:  usecase.NewImproveResumeUseCase(docExtractor),
		Checker:   usecase.NewCheckUniquenessUseCase(docExtractor),
		Companies: directory,
		SubmitUC:  submitUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

// buildAnalyzer assembles the classification pipeline. Missing or corrupt
// model artifacts degrade the service to the filename-keyword fallback
// instead of failing startup.
func buildAnalyzer(cfg config.Config) *usecase.AnalyzeResumeUseCase {
	fallback := model.NewKeywordFallback()
	docExtractor := extractor.New()

	set, err := model.LoadSet(cfg.VectorizerPath, cfg.ClassifierPath)
	if err != nil {
		slog.Warn("model artifacts unavailable, using filename fallback", "error", err)
		return usecase.NewAnalyzeResumeUseCase(docExtractor, textnorm.New(nil), nil, nil, fallback)
	}

	stopwords, err := textnorm.LoadStopwordFile(cfg.StopwordsPath)
	if err != nil {
		slog.Warn("stopword list unavailable, normalizing without it", "path", cfg.StopwordsPath, "error", err)
		stopwords = nil
	}

	return usecase.NewAnalyzeResumeUseCase(
		docExtractor,
		textnorm.New(stopwords),
		set.Transformer,
		set.Classifier,
		fallback,
	)
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
