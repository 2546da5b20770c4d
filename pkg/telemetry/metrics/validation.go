package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"veridian-hq/minerva/pkg/config"
	"veridian-hq/minerva/pkg/engine"
)

// ValidationMetrics tracks metrics related to validation runs.
//
// Metrics:
//   - minerva_validation_runs_total: Total validation runs by record type and outcome
//   - minerva_validation_run_duration_seconds: Validation run duration
//   - minerva_validation_violations_total: Violations by record type, field, and rule
//   - minerva_validation_expected_error_queries_total: Expected-error queries by outcome
type ValidationMetrics struct {
	// Total validation runs
	runsTotal *prometheus.CounterVec

	// Validation run duration histogram
	runDuration *prometheus.HistogramVec

	// Violations reported by validation runs
	violationsTotal *prometheus.CounterVec

	// Expected-error queries
	expectedErrorQueries *prometheus.CounterVec
}

// NewValidationMetrics creates and registers validation metrics with the
// provided registry.
func NewValidationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of validation runs",
			},
			[]string{"record_type", "outcome"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of a validation run in seconds",
				// Runs are in-memory checks and should stay well under 16ms.
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
			[]string{"record_type"},
		),

		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "violations_total",
				Help:      "Total number of validation violations",
			},
			[]string{"record_type", "field", "rule"},
		),

		expectedErrorQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "expected_error_queries_total",
				Help:      "Total number of expected-error queries",
			},
			[]string{"record_type", "outcome"},
		),
	}

	registry.MustRegister(
		vm.runsTotal,
		vm.runDuration,
		vm.violationsTotal,
		vm.expectedErrorQueries,
	)

	return vm
}

// RecordRun records the outcome and duration of a validation run.
func (vm *ValidationMetrics) RecordRun(recordType string, valid bool, duration time.Duration) {
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	vm.runsTotal.WithLabelValues(recordType, outcome).Inc()
	vm.runDuration.WithLabelValues(recordType).Observe(duration.Seconds())
}

// RecordViolation records a single violation.
func (vm *ValidationMetrics) RecordViolation(recordType, field, rule string) {
	vm.violationsTotal.WithLabelValues(recordType, field, rule).Inc()
}

// RecordReport records the run and every violation of a validation report.
func (vm *ValidationMetrics) RecordReport(report *engine.Report) {
	vm.RecordRun(report.RecordType, report.Valid(), report.Duration)
	for _, v := range report.Violations {
		vm.RecordViolation(report.RecordType, v.Field, v.Rule)
	}
}

// RecordExpectedErrorQuery records one expected-error query.
// The outcome is "failure" when a failing rule was found, "pass" otherwise.
func (vm *ValidationMetrics) RecordExpectedErrorQuery(recordType string, found bool) {
	outcome := "pass"
	if found {
		outcome = "failure"
	}
	vm.expectedErrorQueries.WithLabelValues(recordType, outcome).Inc()
}
