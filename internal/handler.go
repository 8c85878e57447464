package internal

// HandlerFunc is the signature for a pipeline stage body.
// It receives a Context and returns an error.
// Returning a non-nil error raises a fault that travels outward through
// the chain until a recovery boundary intercepts it.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to form one stage of a pipeline.
// The wrapped function is the stage's continuation: calling it hands the
// request to the rest of the chain, skipping it short-circuits the request
// without error.
//
// Example:
//
//	func Marker(s string) relay.Middleware {
//	    return func(next relay.HandlerFunc) relay.HandlerFunc {
//	        return func(c relay.Context) error {
//	            if _, err := c.WriteString(s); err != nil {
//	                return err
//	            }
//	            return next(c)
//	        }
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// Predicate decides whether a branch activates for the current request.
// Predicates must be pure: they read the Context and never mutate it.
type Predicate func(c Context) bool
