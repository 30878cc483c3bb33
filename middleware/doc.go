// Package middleware provides composable middleware for workflow
// transitions.
//
// A [Middleware] wraps a single progress call: load, advance and persist.
// It receives the business as loaded from the store; when the wrapped
// handler returns nil the business has been advanced and persisted in
// place, so middleware can compare the status before and after next.
//
//	// logging → recover → handler
//	chain := middleware.Chain(middleware.Logging(logger), middleware.Recover(logger))
//
// # Built-in Middleware
//
//   - [Logging]: logs fein, stage change, duration, and outcome
//   - [Recover]: catches panics and converts them to errors
//   - [Timeout]: bounds the transition with a deadline
//   - [Tracing]: wraps the transition in an OpenTelemetry span
//   - [Metrics]: records per-transition duration and outcome counters
//
// Middleware MUST call next to continue the chain unless intentionally
// short-circuiting.
package middleware
