package engine

import "time"

// Violation is one failing (field, rule) pair from a validation run.
type Violation struct {
	// Field is the record field the failure was recorded against.
	Field string

	// Rule is the name of the failing rule.
	Rule string

	// Message is the human-readable failure message.
	Message string
}

// Report summarizes one full validation run over a single record.
type Report struct {
	// RunID uniquely identifies this validation run.
	RunID string

	// RecordType is the schema type the record was validated against.
	RecordType string

	// Violations lists every failing rule in evaluation order: field
	// declaration order, then rule registration order within a field.
	Violations []Violation

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is the total evaluation time.
	Duration time.Duration
}

// Valid reports whether the run recorded no violations.
func (r *Report) Valid() bool {
	return len(r.Violations) == 0
}

// ViolationsOn returns the violations recorded against one field.
func (r *Report) ViolationsOn(field string) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Field == field {
			out = append(out, v)
		}
	}
	return out
}
