package middlewares

import (
	"time"

	"github.com/dmitrymomot/relay/internal"
)

// Logging returns a stage that logs one line per request after the rest
// of the chain returns: path, response status, duration, and the fault if
// the chain raised one. Faults are passed through untouched so an outer
// Recovery boundary still sees them.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.LogError("request failed",
					"path", c.Path(),
					"duration", time.Since(start),
					"error", err,
				)
				return err
			}
			c.LogInfo("request completed",
				"path", c.Path(),
				"status", c.Status(),
				"duration", time.Since(start),
			)
			return nil
		}
	}
}
