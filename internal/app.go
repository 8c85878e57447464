package internal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/relay/pkg/health"
	"github.com/dmitrymomot/relay/pkg/logger"
)

// App hosts a compiled Pipeline over HTTP. It builds a Context per inbound
// request, invokes the pipeline, and writes the resulting response.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router       chi.Router
	pipeline     *Pipeline
	resolver     ServiceResolver
	logger       *slog.Logger
	healthConfig *healthConfig
}

// New creates a new application with the given options.
//
// Example:
//
//	app := relay.New(
//	    relay.WithPipeline(pipeline),
//	    relay.WithResolver(registry),
//	    relay.WithLogger("gateway", middlewares.RequestIDExtractor()),
//	)
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", relay.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes registers health endpoints and mounts the pipeline.
func (a *App) setupRoutes() {
	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath,
			health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	if a.pipeline != nil {
		a.router.Handle("/*", a.pipelineHandler())
	}
}

// pipelineHandler adapts the compiled pipeline to http.Handler.
// Each request gets its own Context; the pipeline itself is shared
// read-only across all concurrent requests.
func (a *App) pipelineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := FromRequest(r,
			WithContextResolver(a.resolver),
			WithContextLogger(a.logger),
		)

		if err := a.pipeline.Invoke(c); err != nil {
			// Fault escaped without a recovery boundary in scope.
			a.logger.ErrorContext(c, "uncaught pipeline fault",
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		flush(w, c)
	}
}

// flush writes the context's response state to the wire.
func flush(w http.ResponseWriter, c Context) {
	if ct := c.ContentType(); ct != "" {
		w.Header().Set("Content-Type", ct)
	}

	status := c.Status()
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(c.Body())
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during the readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
