// Package logger provides structured logging with context extraction and Sentry integration.
//
// It extends log/slog with two capabilities: per-call attribute injection from
// context, and optional Sentry error reporting. The same code path is used in
// development and production; without a DSN the logger writes to stdout only.
//
// # Basic Usage
//
//	log := logger.New(slog.LevelInfo, requestIDExtractor)
//	log.InfoContext(ctx, "authorization started", slog.String("org_id", orgID))
//
// # Configuration
//
// Config carries env tags for caarlos0/env:
//
//	LOG_LEVEL           debug | info | warn | error (default info)
//	SENTRY_DSN          enables Sentry fan-out when set
//	SENTRY_ENVIRONMENT  default production
//	SENTRY_MIN_LEVEL    lowest level kept as a Sentry log (default WARN)
//
//	log, err := logger.FromConfig(cfg.Log, extractors...)
//	defer logger.Flush(2 * time.Second)
//
// # Context Extractors
//
// A ContextExtractor returns an attribute for the current context, or false to
// skip it. Extractors run on every log call so request-scoped values stay fresh.
//
// # Redaction
//
// Attributes whose key names a secret (access_token, refresh_token, code,
// state, client_secret and a few more, matched case-insensitively) are
// written as [REDACTED] to every sink. See IsSecretKey.
//
// # Handlers
//
// NewContextHandler wraps any slog.Handler:
//
//	h := logger.NewContextHandler(slog.NewJSONHandler(w, nil), extractors...)
//	log := slog.New(h)
//
// With Sentry enabled each record fans out to stdout and Sentry; errors
// become Sentry issues, records at or above SENTRY_MIN_LEVEL are kept as logs.
package logger
