package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"veridian-hq/minerva/pkg/config"
)

// Collector owns the Prometheus registry and all metric groups.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "minerva",
//		Subsystem: "validation",
//	}
//	collector := metrics.NewCollector(cfg, nil)
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Validation run metrics
	validationMetrics *ValidationMetrics

	// Schema loading metrics
	schemaMetrics *SchemaMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Collector{
		config:            cfg,
		registry:          registry,
		validationMetrics: NewValidationMetrics(cfg, registry),
		schemaMetrics:     NewSchemaMetrics(cfg, registry),
	}
}

// Validation returns the validation metric group.
func (c *Collector) Validation() *ValidationMetrics {
	return c.validationMetrics
}

// Schema returns the schema metric group.
func (c *Collector) Schema() *SchemaMetrics {
	return c.schemaMetrics
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
