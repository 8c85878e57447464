// Package middlewares provides stock pipeline stages for relay pipelines.
//
// # Recovery
//
// Recovery establishes the fault-recovery boundary. Register it first so
// every downstream stage — including branch sub-pipelines — is inside it:
//
//	p := relay.NewBuilder().
//	    Use(middlewares.Recovery()).
//	    Use(handleThings).
//	    Build()
//
// Faults (error returns and panics) become plain text 500 responses whose
// message is prefixed with a string resolved from the request's
// ServiceResolver. Without a Recovery in scope, faults propagate out of
// Pipeline.Invoke to the host.
//
// # RequestID
//
// RequestID assigns a unique ID to each request for tracing. Combine with
// RequestIDExtractor() so every log entry carries request_id:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	p := relay.NewBuilder().
//	    Use(middlewares.RequestID()).
//	    Build()
//
// # Logging
//
// Logging emits one structured line per request with path, status, and
// duration. Place it inside Recovery so recovered faults are still
// answered, but log lines reflect the chain's real outcome.
package middlewares
