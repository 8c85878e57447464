package internal

// Builder accumulates an ordered list of stages and branches and compiles
// them into an immutable Pipeline. Registration order is execution order:
// the first registered stage is the outermost on the way in and the last
// to regain control on the way out.
//
// Example:
//
//	p := relay.NewBuilder().
//	    Use(middlewares.Recovery()).
//	    MapWhen(relay.PathEquals("/hi"), func(b *relay.Builder) {
//	        b.Handle(sayHi)
//	    }).
//	    Fallback(writeSentinel).
//	    Build()
type Builder struct {
	stages   []Middleware
	fallback HandlerFunc
}

// NewBuilder creates an empty pipeline builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Use appends a stage to the pipeline.
func (b *Builder) Use(mw Middleware) *Builder {
	b.stages = append(b.stages, mw)
	return b
}

// Handle appends a terminal stage that never invokes its continuation.
// Stages registered after it only run for requests a preceding branch or
// short-circuit diverted away from it.
func (b *Builder) Handle(h HandlerFunc) *Builder {
	return b.Use(func(HandlerFunc) HandlerFunc {
		return h
	})
}

// UseWhen appends a rejoining branch. When pred matches, the sub-pipeline
// runs to completion and then the main chain continues with the next
// stage. When pred doesn't match, the branch is transparent.
//
// The sub-pipeline is built independently at registration time; it shares
// no state with sibling branches.
func (b *Builder) UseWhen(pred Predicate, configure func(*Builder)) *Builder {
	sub := buildSub(configure)
	return b.Use(func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			if !pred(c) {
				return next(c)
			}
			if err := sub.Invoke(c); err != nil {
				return err
			}
			return next(c)
		}
	})
}

// MapWhen appends a terminal branch. When pred matches, control transfers
// entirely into the sub-pipeline and its outcome is the outcome of the
// request; stages after the branch never run. When pred doesn't match,
// the branch is transparent.
func (b *Builder) MapWhen(pred Predicate, configure func(*Builder)) *Builder {
	sub := buildSub(configure)
	return b.Use(func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			if pred(c) {
				return sub.Invoke(c)
			}
			return next(c)
		}
	})
}

// Map appends a terminal branch that matches on a whole path segment
// prefix. The sub-pipeline sees the path with the matched prefix removed,
// so nested Map branches match on the remaining suffix.
func (b *Builder) Map(prefix string, configure func(*Builder)) *Builder {
	sub := buildSub(configure)
	return b.Use(func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			rest, ok := trimPathPrefix(c.Path(), prefix)
			if !ok {
				return next(c)
			}
			c.SetPath(rest)
			return sub.Invoke(c)
		}
	})
}

// Fallback sets the final stage reached when no earlier stage
// short-circuited and no terminal branch intercepted the request.
// Defaults to a no-op.
func (b *Builder) Fallback(h HandlerFunc) *Builder {
	b.fallback = h
	return b
}

// Build compiles the registered stages into a Pipeline by wrapping
// continuations right-to-left. Build is deterministic and idempotent:
// building the same registration sequence twice yields pipelines with
// identical observable behavior.
func (b *Builder) Build() *Pipeline {
	entry := b.fallback
	if entry == nil {
		entry = func(Context) error { return nil }
	}
	for i := len(b.stages) - 1; i >= 0; i-- {
		entry = b.stages[i](entry)
	}
	return &Pipeline{entry: entry}
}

// buildSub configures and builds an independent sub-pipeline.
func buildSub(configure func(*Builder)) *Pipeline {
	sub := NewBuilder()
	configure(sub)
	return sub.Build()
}
