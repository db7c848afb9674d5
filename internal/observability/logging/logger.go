package logging

import (
	"log/slog"
	"os"
	"strings"
)

// NewJSONLogger builds the process-wide structured logger. Every record
// carries the service name so api and worker logs can share a sink.
func NewJSONLogger(service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler).With("service", service)
}

// ParseLevel maps a config string onto a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
