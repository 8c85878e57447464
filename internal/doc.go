// Package internal provides the core types and implementation for relay.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/relay" instead, which re-exports the public API.
//
// # Core Types
//
//   - Builder: accumulates stages and branches and compiles them into a Pipeline
//   - Pipeline: the compiled, immutable, reusable chain; invoked once per request
//   - Context: per-request mutable state threaded through the chain
//   - HandlerFunc: signature for a stage body, returning an error on fault
//   - Middleware: a stage factory receiving the explicit continuation
//   - Predicate: branch activation condition, evaluated per request
//   - ServiceResolver / Registry: named request-scoped dependency resolution
//   - App: HTTP host that mounts a Pipeline and manages graceful shutdown
//
// # Composition model
//
// Build wraps continuations right-to-left, so the first registered stage is
// the outermost. A stage that never calls its continuation short-circuits
// the request without error. Branches are ordinary stages: a terminal
// branch transfers control into its sub-pipeline for good, a rejoining
// branch delegates and then continues the main chain. Faults (non-nil
// errors) travel outward through the same call structure until a recovery
// boundary converts them into a response.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any
// function that expects a standard library context. Values stored with Set
// are visible through Value, which lets logger context extractors pick up
// request-scoped attributes.
package internal
