package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/resumehq/resume-analyzer/internal/bootstrap"
	"github.com/resumehq/resume-analyzer/internal/config"
	"github.com/resumehq/resume-analyzer/internal/observability/logging"
	"github.com/resumehq/resume-analyzer/internal/observability/metrics"
)

const serviceName = "resume-worker"

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap error", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		slog.Info("worker metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker metrics server error", "error", err)
		}
	}()

	slog.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeJobQueued(ctx, func(handlerCtx context.Context, jobID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		if job, err := app.Repo.GetByID(processCtx, jobID); err == nil {
			workerMetrics.ObserveQueueLag(serviceName, time.Since(job.CreatedAt))
		}

		workerMetrics.StartJob()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, jobID)
		workerMetrics.FinishJob(serviceName, time.Since(start), processErr)
		return processErr
	})
	if err != nil {
		slog.Error("worker subscribe error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}
