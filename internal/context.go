package internal

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/relay/pkg/logger"
)

// Context carries one request's mutable state through the pipeline.
// It also implements context.Context by delegating to the parent context.
//
// A Context is exclusively owned by its request: stages run strictly
// sequentially, so no locking is needed, and a Context must never be
// shared between requests.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	// Returns nil for contexts not built from an HTTP request.
	Request() *http.Request

	// Path returns the request path as seen by the current (sub-)pipeline.
	// Path-prefix branches present their sub-pipeline with the matched
	// prefix segment removed.
	Path() string

	// SetPath replaces the path view for downstream stages.
	SetPath(path string)

	// Query returns the query parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Query(name string) string

	// QueryExists returns true if the named query parameter is present,
	// even with an empty value.
	QueryExists(name string) bool

	// Status returns the response status code.
	// Returns http.StatusOK when no explicit status was set but the body
	// has been written, and 0 when the response is still untouched.
	Status() int

	// SetStatus sets the response status code.
	SetStatus(code int)

	// ContentType returns the response content type, if set.
	ContentType() string

	// SetContentType sets the response content type.
	SetContentType(ct string)

	// Write appends to the response body buffer.
	Write(p []byte) (int, error)

	// WriteString appends a string to the response body buffer.
	WriteString(s string) (int, error)

	// String sets the status code and plain text content type, then
	// appends s to the response body.
	String(code int, s string) error

	// Body returns the response body accumulated so far.
	Body() []byte

	// ResetBody discards any partial response body.
	ResetBody()

	// Written returns true if any stage has touched the response.
	Written() bool

	// Resolve resolves a named request-scoped service.
	// Returns ErrServiceNotFound if no resolver is attached or the name
	// is unknown.
	Resolve(name string) (any, error)

	// Set stores a request-scoped value retrievable via Get or Value.
	Set(key, value any)

	// Get retrieves a value stored with Set. Returns nil if absent.
	Get(key any) any

	// Logger returns the request logger for advanced usage.
	Logger() *slog.Logger

	// LogDebug logs a debug message with optional attributes.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with optional attributes.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with optional attributes.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with optional attributes.
	LogError(msg string, attrs ...any)
}

// ContextOption configures a Context at construction time.
type ContextOption func(*requestContext)

// WithQuery sets the query parameters for the context.
func WithQuery(values url.Values) ContextOption {
	return func(c *requestContext) {
		c.query = values
	}
}

// WithContextResolver attaches a service resolver to the context.
func WithContextResolver(r ServiceResolver) ContextOption {
	return func(c *requestContext) {
		c.resolver = r
	}
}

// WithContextLogger sets the request logger.
func WithContextLogger(l *slog.Logger) ContextOption {
	return func(c *requestContext) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithParent sets the parent context.Context.
// Defaults to context.Background().
func WithParent(ctx context.Context) ContextOption {
	return func(c *requestContext) {
		if ctx != nil {
			c.parent = ctx
		}
	}
}

// NewContext creates a Context for the given path.
// Hosts that serve real traffic should prefer FromRequest.
func NewContext(path string, opts ...ContextOption) Context {
	c := &requestContext{
		parent: context.Background(),
		path:   path,
		query:  url.Values{},
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromRequest creates a Context for an inbound HTTP request.
// Path, query, and parent context are taken from the request.
func FromRequest(r *http.Request, opts ...ContextOption) Context {
	c := &requestContext{
		parent: r.Context(),
		req:    r,
		path:   r.URL.Path,
		query:  r.URL.Query(),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// requestContext is the Context implementation.
// All fields are request-scoped; the struct is never shared across requests.
type requestContext struct {
	parent      context.Context
	req         *http.Request
	resolver    ServiceResolver
	logger      *slog.Logger
	values      map[any]any
	query       url.Values
	path        string
	contentType string
	body        bytes.Buffer
	status      int
	written     bool
}

func (c *requestContext) Request() *http.Request { return c.req }

func (c *requestContext) Path() string { return c.path }

func (c *requestContext) SetPath(path string) { c.path = path }

func (c *requestContext) Query(name string) string { return c.query.Get(name) }

func (c *requestContext) QueryExists(name string) bool { return c.query.Has(name) }

func (c *requestContext) Status() int {
	if c.status == 0 && c.written {
		return http.StatusOK
	}
	return c.status
}

func (c *requestContext) SetStatus(code int) {
	c.status = code
	c.written = true
}

func (c *requestContext) ContentType() string { return c.contentType }

func (c *requestContext) SetContentType(ct string) {
	c.contentType = ct
	c.written = true
}

func (c *requestContext) Write(p []byte) (int, error) {
	c.written = true
	return c.body.Write(p)
}

func (c *requestContext) WriteString(s string) (int, error) {
	c.written = true
	return c.body.WriteString(s)
}

func (c *requestContext) String(code int, s string) error {
	c.SetStatus(code)
	c.SetContentType("text/plain; charset=utf-8")
	_, err := c.WriteString(s)
	return err
}

func (c *requestContext) Body() []byte { return c.body.Bytes() }

func (c *requestContext) ResetBody() { c.body.Reset() }

func (c *requestContext) Written() bool { return c.written }

func (c *requestContext) Resolve(name string) (any, error) {
	if c.resolver == nil {
		return nil, ErrServiceNotFound
	}
	return c.resolver.Resolve(name)
}

func (c *requestContext) Set(key, value any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

func (c *requestContext) Get(key any) any {
	if c.values == nil {
		return nil
	}
	return c.values[key]
}

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c, msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c, msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c, msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c, msg, attrs...)
}

// context.Context implementation, delegating to the parent context.
// Value also consults values stored with Set, so request-scoped values
// are visible to logger context extractors.

func (c *requestContext) Deadline() (time.Time, bool) { return c.parent.Deadline() }

func (c *requestContext) Done() <-chan struct{} { return c.parent.Done() }

func (c *requestContext) Err() error { return c.parent.Err() }

func (c *requestContext) Value(key any) any {
	if c.values != nil {
		if v, ok := c.values[key]; ok {
			return v
		}
	}
	return c.parent.Value(key)
}

var _ Context = (*requestContext)(nil)
