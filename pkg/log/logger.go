// Package log provides structured JSON logging for flowextensions
// services and tools
package log

import (
	"log/slog"
	"os"
)

// New creates a logger with service metadata at Info level
func New(service, env, version string) *slog.Logger {
	return NewWithLevel(service, env, version, slog.LevelInfo)
}

// NewWithLevel creates a logger with service metadata at the given level
func NewWithLevel(
	service, env, version string, level slog.Level,
) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler).With(
		slog.String("service", service),
		slog.String("env", env),
		slog.String("version", version),
	)
}
