package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON logger on stdout at the given level.
// Attributes keyed like secrets are masked; see IsSecretKey.
func New(level slog.Leveler, extractors ...ContextExtractor) *slog.Logger {
	return newTo(os.Stdout, level, extractors...)
}

func newTo(w io.Writer, level slog.Leveler, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewContextHandler(slog.NewJSONHandler(w, handlerOptions(level)), extractors...))
}

// FromConfig builds a logger from Config.
// Sentry fan-out is enabled only when a DSN is configured.
func FromConfig(cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Sentry.DSN == "" {
		return New(level, extractors...), nil
	}
	return NewWithSentry(cfg.Sentry, level, extractors...), nil
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
