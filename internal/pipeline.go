package internal

// Pipeline is a compiled chain of stages. It is immutable after Build and
// safe to share across concurrent requests: per-request state lives only
// on the Context passed to Invoke.
type Pipeline struct {
	entry HandlerFunc
}

// Invoke executes the pipeline for one request, mutating the context's
// response state in place. A non-nil error is a fault that no recovery
// boundary inside the pipeline intercepted; the host decides what happens
// to it.
func (p *Pipeline) Invoke(c Context) error {
	return p.entry(c)
}
