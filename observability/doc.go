// Package observability provides OpenTelemetry-based lifecycle metrics for
// Prospect. The MetricsExtension implements extension hooks to record
// system-wide counters for business creation, stage changes, rejected
// requests and closed deals.
//
// For per-transition tracing and latency, see the middleware package:
// middleware.Tracing() and middleware.Metrics().
package observability
