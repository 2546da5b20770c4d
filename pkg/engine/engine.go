package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"veridian-hq/minerva/pkg/rule"
	"veridian-hq/minerva/pkg/schema"
)

// Config contains configuration for the validator.
type Config struct {
	// UnifyExpectedError makes ExpectedError apply the same applicability
	// filtering and empty-value short-circuit as full validation. The
	// historical behavior, and the default, is the narrower direct
	// evaluation that skips both.
	UnifyExpectedError bool
}

// DefaultConfig returns the default validator configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Validator evaluates schema rules against records. It holds no per-run
// state; one Validator is safe for concurrent use once the schemas it is
// given are fully built.
type Validator struct {
	config *Config
	logger *slog.Logger
}

// New creates a validator.
func New(config *Config, logger *slog.Logger) *Validator {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		config: config,
		logger: logger,
	}
}

// Validate runs full validation of a record against its type schema.
//
// For each configured field it filters the rules down to the applicable
// subset; fields with no applicable rules are skipped without reading the
// value. Empty values short-circuit: rules that allow empty are skipped,
// rules that demand presence record their message. Non-empty values run
// every applicable rule's check. Each failing rule records its message both
// into the record's error sink and in the returned report; failures never
// abort the run.
//
// The error return is reserved for configuration mistakes, such as a rule
// whose named condition the record cannot resolve.
func (v *Validator) Validate(ts *schema.TypeSchema, rec rule.Record) (*Report, error) {
	report := &Report{
		RunID:      uuid.NewString(),
		RecordType: ts.Name(),
		StartedAt:  time.Now(),
	}

	for _, field := range ts.Fields() {
		applicable, err := applicableRules(field, rec)
		if err != nil {
			return nil, err
		}

		// Skip the value read entirely when nothing applies; field access
		// on the host may be expensive.
		if len(applicable) == 0 {
			continue
		}

		value := rec.Get(field.FieldName())
		empty := rule.IsEmpty(value)

		for _, r := range applicable {
			if empty {
				if r.AllowEmpty {
					continue
				}
			} else if r.Check(value, rec) {
				continue
			}

			rec.AddError(field.FieldName(), r.Message)
			report.Violations = append(report.Violations, Violation{
				Field:   field.FieldName(),
				Rule:    r.Name,
				Message: r.Message,
			})
		}
	}

	report.Duration = time.Since(report.StartedAt)

	v.logger.Debug("validated record",
		"run_id", report.RunID,
		"record_type", report.RecordType,
		"violation_count", len(report.Violations),
		"duration", report.Duration,
	)

	return report, nil
}

// FieldValid reports whether full validation would record any error for the
// given field right now. The record's error sink is never touched.
func (v *Validator) FieldValid(ts *schema.TypeSchema, rec rule.Record, field string) (bool, error) {
	registry, ok := ts.Lookup(field)
	if !ok || registry.Len() == 0 {
		return true, nil
	}

	applicable, err := applicableRules(registry, rec)
	if err != nil {
		return false, err
	}
	if len(applicable) == 0 {
		return true, nil
	}

	value := rec.Get(field)
	empty := rule.IsEmpty(value)

	for _, r := range applicable {
		if empty {
			if !r.AllowEmpty {
				return false, nil
			}
			continue
		}
		if !r.Check(value, rec) {
			return false, nil
		}
	}

	return true, nil
}

// ExpectedError evaluates a candidate value for one field out of context:
// it builds a transient record of the named type seeded with extra (so
// cross-field rules such as confirmation have their counterpart values) and
// runs the field's rules in registration order against the value, returning
// the first failing rule's message. The second return is false when every
// rule passes.
//
// Unless Config.UnifyExpectedError is set, this path applies neither the
// empty-value short-circuit nor the If/On applicability conditions. The
// asymmetry with Validate is intentional and preserved for compatibility.
func (v *Validator) ExpectedError(set *schema.Set, typeName, field string, value interface{}, extra map[string]interface{}) (string, bool, error) {
	ts, ok := set.Get(typeName)
	if !ok {
		return "", false, &UnknownTypeError{Type: typeName}
	}

	registry, ok := ts.Lookup(field)
	if !ok || registry.Len() == 0 {
		return "", false, nil
	}

	rec := NewValues(extra)

	if v.config.UnifyExpectedError {
		return v.unifiedExpectedError(registry, rec, value)
	}

	for _, r := range registry.Rules() {
		if !r.Check(value, rec) {
			return r.Message, true, nil
		}
	}

	return "", false, nil
}

// unifiedExpectedError is the opt-in variant with full-validation
// semantics: applicability filtering and the empty-value short-circuit.
func (v *Validator) unifiedExpectedError(registry *schema.FieldRules, rec rule.Record, value interface{}) (string, bool, error) {
	empty := rule.IsEmpty(value)

	for _, r := range registry.Rules() {
		ok, err := r.Applicable(rec)
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}

		if empty {
			if !r.AllowEmpty {
				return r.Message, true, nil
			}
			continue
		}
		if !r.Check(value, rec) {
			return r.Message, true, nil
		}
	}

	return "", false, nil
}

// applicableRules filters a field's rules down to those applicable to the
// record, preserving registration order.
func applicableRules(registry *schema.FieldRules, rec rule.Record) ([]rule.Rule, error) {
	rules := registry.Rules()
	applicable := make([]rule.Rule, 0, len(rules))

	for _, r := range rules {
		ok, err := r.Applicable(rec)
		if err != nil {
			return nil, err
		}
		if ok {
			applicable = append(applicable, r)
		}
	}

	return applicable, nil
}
