package middlewares

import (
	"net/http"
	"runtime"

	"github.com/dmitrymomot/relay/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// DefaultPrefixService is the resolver service name the Recovery boundary
// asks for its fault message prefix.
const DefaultPrefixService = "greeting"

// RecoveryConfig configures the recovery boundary.
type RecoveryConfig struct {
	PrefixService     string // Resolver service providing the message prefix (default: "greeting")
	StackSize         int    // Max stack trace size for panics (default: 4096)
	DisablePrintStack bool   // Disable stack trace in logs
}

// RecoveryOption configures RecoveryConfig.
type RecoveryOption func(*RecoveryConfig)

// WithRecoveryPrefixService sets the resolver service name for the prefix.
func WithRecoveryPrefixService(name string) RecoveryOption {
	return func(cfg *RecoveryConfig) {
		cfg.PrefixService = name
	}
}

// WithRecoveryStackSize sets the maximum stack trace size.
func WithRecoveryStackSize(size int) RecoveryOption {
	return func(cfg *RecoveryConfig) {
		cfg.StackSize = size
	}
}

// WithRecoveryDisablePrintStack disables including stack traces in logs.
func WithRecoveryDisablePrintStack() RecoveryOption {
	return func(cfg *RecoveryConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recovery returns a stage that establishes a fault-recovery boundary over
// everything reachable through its continuation, including sub-pipelines
// entered via branches. Register it first so it is outermost.
//
// Any fault — an error returned by a downstream stage or a panic — is
// converted into a plain text 500 response and never re-raised: the prefix
// string is resolved from the context's ServiceResolver, a composite fault
// is unwrapped to its primary cause, and any partial body is replaced.
func Recovery(opts ...RecoveryOption) internal.Middleware {
	cfg := &RecoveryConfig{
		PrefixService: DefaultPrefixService,
		StackSize:     DefaultStackSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack []byte
					if !cfg.DisablePrintStack {
						stack = make([]byte, cfg.StackSize)
						n := runtime.Stack(stack, false)
						stack = stack[:n]
					}

					if cfg.DisablePrintStack {
						c.LogError("panic recovered", "panic", r)
					} else {
						c.LogError("panic recovered", "panic", r, "stack", string(stack))
					}

					respond(c, cfg, &PanicError{Value: r, Stack: stack})
					err = nil
				}
			}()

			if ferr := next(c); ferr != nil {
				c.LogError("fault recovered", "path", c.Path(), "error", ferr)
				respond(c, cfg, ferr)
			}
			return nil
		}
	}
}

// respond converts a fault into the final error response.
func respond(c internal.Context, cfg *RecoveryConfig, ferr error) {
	if ce, ok := internal.AsCompositeError(ferr); ok {
		if primary := ce.First(); primary != nil {
			ferr = primary
		}
	}

	msg := resolvePrefix(c, cfg.PrefixService) + ferr.Error()
	if se, ok := internal.AsStageError(ferr); ok && se.Err != nil {
		msg += ": " + se.Err.Error()
	}

	c.ResetBody()
	c.SetContentType("text/plain; charset=utf-8")
	c.SetStatus(http.StatusInternalServerError)
	_, _ = c.WriteString(msg)
}

// resolvePrefix resolves the configured prefix service.
// Accepts a Greeter or a plain string; anything else, including a missing
// registration, yields an empty prefix.
func resolvePrefix(c internal.Context, name string) string {
	v, err := c.Resolve(name)
	if err != nil {
		return ""
	}
	switch p := v.(type) {
	case internal.Greeter:
		return p.Greet()
	case string:
		return p
	default:
		return ""
	}
}
