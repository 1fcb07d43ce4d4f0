package config

import (
	"io"
	"log/slog"
)

// NewLogger returns a JSON logger at level and makes it the default.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
