package relay

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/relay/internal"
	"github.com/dmitrymomot/relay/pkg/health"
	"github.com/dmitrymomot/relay/pkg/logger"
)

// Type aliases - public API
type (
	// App hosts a compiled Pipeline over HTTP with graceful shutdown.
	App = internal.App

	// Builder accumulates stages and branches and compiles them into a Pipeline.
	Builder = internal.Builder

	// Pipeline is the compiled, immutable, reusable chain.
	Pipeline = internal.Pipeline

	// Context carries one request's mutable state through the pipeline.
	Context = internal.Context

	// HandlerFunc is the signature for a pipeline stage body.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to form one stage of a pipeline.
	Middleware = internal.Middleware

	// Predicate decides whether a branch activates for the current request.
	Predicate = internal.Predicate

	// ServiceResolver resolves named request-scoped dependencies for stages.
	ServiceResolver = internal.ServiceResolver

	// Registry is a name-to-factory ServiceResolver.
	Registry = internal.Registry

	// Greeter produces a request-scoped greeting string.
	Greeter = internal.Greeter

	// StageError represents a fault raised by a single pipeline stage.
	StageError = internal.StageError

	// CompositeError aggregates faults from fanned-out suborchestration.
	CompositeError = internal.CompositeError

	// Task is a unit of concurrent work executed by Fanout.
	Task = internal.Task

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ContextOption configures a Context at construction time.
	ContextOption = internal.ContextOption

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// ErrServiceNotFound is returned when a resolver has no registration
// for the requested service name.
var ErrServiceNotFound = internal.ErrServiceNotFound

// Constructors

// NewBuilder creates an empty pipeline builder.
//
// Example:
//
//	p := relay.NewBuilder().
//	    Use(middlewares.Recovery()).
//	    MapWhen(relay.PathEquals("/hi"), func(b *relay.Builder) {
//	        b.Handle(sayHi)
//	    }).
//	    Build()
func NewBuilder() *Builder {
	return internal.NewBuilder()
}

// NewRegistry creates an empty service registry.
func NewRegistry() *Registry {
	return internal.NewRegistry()
}

// New creates a new application with the given options.
//
// Example:
//
//	app := relay.New(
//	    relay.WithPipeline(p),
//	    relay.WithResolver(registry),
//	)
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewContext creates a Context for the given path.
// Hosts that serve real traffic should prefer FromRequest.
func NewContext(path string, opts ...ContextOption) Context {
	return internal.NewContext(path, opts...)
}

// FromRequest creates a Context for an inbound HTTP request.
func FromRequest(r *http.Request, opts ...ContextOption) Context {
	return internal.FromRequest(r, opts...)
}

// NewStageError creates a StageError with the given message.
func NewStageError(message string) *StageError {
	return internal.NewStageError(message)
}

// WrapStageError creates a StageError with a message and a nested cause.
func WrapStageError(message string, cause error) *StageError {
	return internal.WrapStageError(message, cause)
}

// Fanout runs tasks concurrently and waits for all of them. A single
// failure is returned as-is; multiple failures are aggregated into a
// CompositeError in task submission order. limit caps concurrent tasks;
// zero or negative means no cap.
func Fanout(ctx context.Context, limit int, tasks ...Task) error {
	return internal.Fanout(ctx, limit, tasks...)
}

// Predicates

// PathEquals matches requests whose path is exactly the given value.
func PathEquals(path string) Predicate {
	return internal.PathEquals(path)
}

// PathPrefix matches requests whose path starts with the given prefix on
// a whole segment boundary.
func PathPrefix(prefix string) Predicate {
	return internal.PathPrefix(prefix)
}

// QueryFlag matches requests that carry the named query parameter.
func QueryFlag(name string) Predicate {
	return internal.QueryFlag(name)
}

// Fault inspection helpers

// IsStageError returns true if the error is or wraps a StageError.
func IsStageError(err error) bool {
	return internal.IsStageError(err)
}

// AsStageError extracts the StageError from an error if present.
func AsStageError(err error) (*StageError, bool) {
	return internal.AsStageError(err)
}

// IsCompositeError returns true if the error is or wraps a CompositeError.
func IsCompositeError(err error) bool {
	return internal.IsCompositeError(err)
}

// AsCompositeError extracts the CompositeError from an error if present.
func AsCompositeError(err error) (*CompositeError, bool) {
	return internal.AsCompositeError(err)
}

// ResolveAs resolves a named service from the context and asserts its type.
//
// Example:
//
//	greeter, err := relay.ResolveAs[relay.Greeter](c, "greeting")
func ResolveAs[T any](c Context, name string) (T, error) {
	return internal.ResolveAs[T](c, name)
}

// App options

// WithPipeline mounts a compiled pipeline as the app's request handler.
func WithPipeline(p *Pipeline) Option {
	return internal.WithPipeline(p)
}

// WithResolver sets the service resolver handed to every request context.
func WithResolver(r ServiceResolver) Option {
	return internal.WithResolver(r)
}

// WithLogger creates a logger with a component name and optional extractors.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithHealthChecks enables health check endpoints with optional configuration.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the application logger for the server runtime.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function to run during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Context options

// WithQuery sets the query parameters for a Context built with NewContext.
func WithQuery(values url.Values) ContextOption {
	return internal.WithQuery(values)
}

// WithContextResolver attaches a service resolver to the context.
func WithContextResolver(r ServiceResolver) ContextOption {
	return internal.WithContextResolver(r)
}

// WithContextLogger sets the request logger.
func WithContextLogger(l *slog.Logger) ContextOption {
	return internal.WithContextLogger(l)
}
