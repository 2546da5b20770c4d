// Package telemetry provides observability for the validation engine.
//
// Subpackages:
//
//   - metrics: Prometheus metrics for validation runs and schema loading
//   - logging: structured logging built on log/slog
//   - health:  liveness and readiness endpoints for the watch daemon
package telemetry
