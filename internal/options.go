package internal

import (
	"log/slog"

	"github.com/dmitrymomot/relay/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithPipeline mounts a compiled pipeline as the app's request handler.
func WithPipeline(p *Pipeline) Option {
	return func(a *App) {
		a.pipeline = p
	}
}

// WithResolver sets the service resolver handed to every request context.
// Services resolved through it must be individually safe for concurrent
// use across requests.
func WithResolver(r ServiceResolver) Option {
	return func(a *App) {
		a.resolver = r
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
//
// Example:
//
//	relay.New(
//	    relay.WithLogger("gateway", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): always returns OK if the process is running.
// Readiness (/health/ready): runs all configured checks.
//
// Example:
//
//	relay.WithHealthChecks(
//	    relay.WithReadinessCheck("upstream", pingUpstream),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}
