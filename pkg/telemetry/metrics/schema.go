package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"veridian-hq/minerva/pkg/config"
)

// SchemaMetrics tracks metrics related to schema loading.
//
// Metrics:
//   - minerva_validation_schema_reloads_total: Schema reloads by status
//   - minerva_validation_schema_types: Currently loaded schema types
//   - minerva_validation_schema_rules: Currently attached rules across all types
type SchemaMetrics struct {
	// Schema reloads, including the initial load
	reloadsTotal *prometheus.CounterVec

	// Currently loaded schema types
	loadedTypes prometheus.Gauge

	// Currently attached rules across all loaded types
	loadedRules prometheus.Gauge
}

// NewSchemaMetrics creates and registers schema metrics with the provided
// registry.
func NewSchemaMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SchemaMetrics {
	sm := &SchemaMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_reloads_total",
				Help:      "Total number of schema reloads",
			},
			[]string{"status"},
		),

		loadedTypes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_types",
				Help:      "Number of currently loaded schema types",
			},
		),

		loadedRules: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_rules",
				Help:      "Number of rules attached across all loaded types",
			},
		),
	}

	registry.MustRegister(
		sm.reloadsTotal,
		sm.loadedTypes,
		sm.loadedRules,
	)

	return sm
}

// RecordReload records a schema reload attempt.
func (sm *SchemaMetrics) RecordReload(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	sm.reloadsTotal.WithLabelValues(status).Inc()
}

// SetLoaded updates the loaded type and rule gauges after a reload.
func (sm *SchemaMetrics) SetLoaded(types, rules int) {
	sm.loadedTypes.Set(float64(types))
	sm.loadedRules.Set(float64(rules))
}
