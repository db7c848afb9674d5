package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/netutil"

	httpadapter "github.com/resumehq/resume-analyzer/internal/adapters/http"
	"github.com/resumehq/resume-analyzer/internal/bootstrap"
	"github.com/resumehq/resume-analyzer/internal/config"
	"github.com/resumehq/resume-analyzer/internal/observability/logging"
	"github.com/resumehq/resume-analyzer/internal/observability/metrics"
)

const serviceName = "resume-api"

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

	serverMetrics := metrics.NewHTTPServerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: serverMetrics.Handler(),
	}
	go func() {
		slog.Info("metrics listening", "port", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
		}
	}()

	router := httpadapter.NewRouter(
		cfg,
		serviceName,
		serverMetrics,
		app.Analyzer,
		app.Improver,
		app.Checker,
		app.Companies,
		app.SubmitUC,
		app.Repo,
		app.Analyzer.ModelBacked(),
	)
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      serverMetrics.Middleware(serviceName, router.Handler()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("api listen error", "error", err)
		os.Exit(1)
	}
	if cfg.APIMaxConns > 0 {
		listener = netutil.LimitListener(listener, cfg.APIMaxConns)
	}

	go func() {
		slog.Info("api listening", "port", cfg.APIPort, "model_backed", app.Analyzer.ModelBacked())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("api server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics shutdown error", "error", err)
	}
}
