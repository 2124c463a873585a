package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide slog logger. Production gets JSON at
// info level so the audit events stay machine-readable; everything else gets
// text at debug level with source locations.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: env == "development",
	}

	var handler slog.Handler
	if env == "production" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
