// Package relay provides a composable request-processing pipeline: an
// ordered chain of stages that cooperatively process a per-request
// context, with short-circuiting, conditional branching, and a
// centralized fault-recovery boundary.
//
// # Quick Start
//
// Build a pipeline once at startup, then host it:
//
//	p := relay.NewBuilder().
//	    Use(middlewares.Recovery()).
//	    Use(middlewares.RequestID()).
//	    MapWhen(relay.PathEquals("/hi"), func(b *relay.Builder) {
//	        b.Handle(func(c relay.Context) error {
//	            return c.String(200, "hi")
//	        })
//	    }).
//	    Fallback(func(c relay.Context) error {
//	        _, err := c.WriteString("fell through")
//	        return err
//	    }).
//	    Build()
//
//	app := relay.New(
//	    relay.WithPipeline(p),
//	    relay.WithResolver(relay.NewRegistry()),
//	)
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Stages
//
// A stage is a Middleware: it receives the next stage as an explicit
// continuation and decides whether to call it. Not calling it
// short-circuits the request without error; returning a non-nil error
// raises a fault:
//
//	func Auth(next relay.HandlerFunc) relay.HandlerFunc {
//	    return func(c relay.Context) error {
//	        if c.Query("token") == "" {
//	            return c.String(401, "unauthorized") // short-circuit
//	        }
//	        return next(c)
//	    }
//	}
//
// # Branches
//
// Branches are stages whose position in the registration order matters
// like any other stage. MapWhen and Map are terminal: on a predicate
// match, the sub-pipeline's outcome is the request's outcome. UseWhen
// rejoins: the sub-pipeline runs, then the main chain continues.
//
// # Faults
//
// Errors propagate outward through the same call structure used to invoke
// continuations, crossing branch boundaries, until a
// middlewares.Recovery boundary converts them into a plain text 500
// response. Faults with no boundary in scope surface from
// Pipeline.Invoke and are answered by the App with a bare 500.
package relay
