// Package logger provides structured logging on top of log/slog with
// context-based attribute injection and optional Sentry forwarding.
//
// Context extractors pull request-scoped values (e.g. request IDs) into
// every log entry:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//
// For production error tracking, NewWithSentry fans records out to stdout
// and Sentry; with an empty DSN it silently stays stdout-only, so the same
// wiring works in development:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//	    DSN:         os.Getenv("SENTRY_DSN"),
//	    Environment: "production",
//	}, middlewares.RequestIDExtractor())
package logger
