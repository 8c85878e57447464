// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] is an always-OK endpoint for process liveness.
// [ReadinessHandler] runs a set of named [Checks] in parallel and reports
// readiness, as plain text by default or JSON on request
// (Accept: application/json or ?format=json).
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "upstream": pingUpstream,
//	}, health.WithTimeout(3*time.Second)))
package health
