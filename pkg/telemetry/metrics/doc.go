// Package metrics exposes Prometheus metrics for the validation engine.
//
// A Collector owns a prometheus.Registry and two metric groups:
// ValidationMetrics for validation runs and violations, and
// SchemaMetrics for schema loading and reloading. The Collector's
// Handler serves the standard /metrics endpoint.
package metrics
