package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the diagnostic logger. Stdout belongs to the operator
// dialogue, so callers pass stderr here.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		AddSource: cfg.IsDevelopment() && cfg.LogLevel <= slog.LevelDebug,
		Level:     cfg.LogLevel,
	}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
