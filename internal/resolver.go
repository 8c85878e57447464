package internal

import (
	"errors"
	"fmt"
)

// ErrServiceNotFound is returned when a resolver has no registration
// for the requested service name.
var ErrServiceNotFound = errors.New("service not found")

// ServiceResolver resolves named request-scoped dependencies for stages.
// The resolver handle travels on the Context; singleton services reached
// through it must be safe for concurrent use across requests.
type ServiceResolver interface {
	Resolve(name string) (any, error)
}

// Greeter produces a request-scoped greeting string.
// The recovery boundary resolves one to prefix its fault messages.
type Greeter interface {
	Greet() string
}

// Registry is a name-to-factory ServiceResolver.
// Factories run on every Resolve call, so instances stay request-scoped
// unless a factory deliberately returns a shared singleton.
// Registration happens at startup; Resolve is safe for concurrent use
// once registration is complete.
type Registry struct {
	factories map[string]func() any
}

// NewRegistry creates an empty service registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]func() any)}
}

// Register binds a factory to a service name, replacing any previous binding.
func (r *Registry) Register(name string, factory func() any) *Registry {
	r.factories[name] = factory
	return r
}

// RegisterValue binds a fixed value to a service name.
// The value is shared across requests and must be concurrency-safe.
func (r *Registry) RegisterValue(name string, value any) *Registry {
	return r.Register(name, func() any { return value })
}

// Resolve returns a fresh instance for the named service.
func (r *Registry) Resolve(name string) (any, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}
	return factory(), nil
}

// ResolveAs resolves a named service from the context and asserts its type.
//
// Example:
//
//	greeter, err := relay.ResolveAs[relay.Greeter](c, "greeting")
func ResolveAs[T any](c Context, name string) (T, error) {
	var zero T
	v, err := c.Resolve(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("service %s: unexpected type %T", name, v)
	}
	return typed, nil
}
