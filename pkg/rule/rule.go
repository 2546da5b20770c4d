package rule

// On restricts a rule to a phase of the record lifecycle.
type On string

const (
	// OnAlways applies the rule regardless of lifecycle state. This is the default.
	OnAlways On = "always"

	// OnCreate applies the rule only to records that have not been persisted yet.
	OnCreate On = "create"

	// OnUpdate applies the rule only to records that already exist.
	OnUpdate On = "update"
)

// DefaultMessage is the failure message used when a rule does not override it.
const DefaultMessage = "is invalid."

// CheckFunc is the core check of a rule. It receives the field's current
// value and the full record (for cross-field context) and reports whether
// the value passes. Check functions must be pure: no hidden state, no
// mutation of the record, and no panics for ordinary failures.
type CheckFunc func(value interface{}, rec Record) bool

// Condition is a typed applicability closure evaluated against the record.
type Condition func(rec Record) bool

// Rule is a single named validation check. Rules are immutable once
// constructed; the With* methods return modified copies.
type Rule struct {
	// Name identifies the rule within a field's registry. Names must be
	// unique per field.
	Name string

	// Message is the failure message recorded when the check fails.
	Message string

	// Check is the core check function.
	Check CheckFunc

	// AllowEmpty controls the empty-value policy. When true (the default
	// set by New), empty values pass without invoking Check. Rules that
	// demand presence set it to false.
	AllowEmpty bool

	// If is an optional applicability closure. A nil If imposes no constraint.
	If Condition

	// IfNamed is an optional named condition resolved through the record's
	// Invoke capability. Unknown names surface as configuration errors at
	// evaluation time.
	IfNamed string

	// On restricts the rule to a lifecycle phase.
	On On
}

// New constructs a rule with the default policies: applicable always,
// empty values allowed. An empty message falls back to DefaultMessage.
func New(name, message string, check CheckFunc) Rule {
	if message == "" {
		message = DefaultMessage
	}
	return Rule{
		Name:       name,
		Message:    message,
		Check:      check,
		AllowEmpty: true,
		On:         OnAlways,
	}
}

// WithMessage returns a copy of the rule with the failure message replaced.
func (r Rule) WithMessage(message string) Rule {
	r.Message = message
	return r
}

// WithOn returns a copy of the rule restricted to a lifecycle phase.
func (r Rule) WithOn(on On) Rule {
	r.On = on
	return r
}

// WithIf returns a copy of the rule gated by a typed condition closure.
func (r Rule) WithIf(cond Condition) Rule {
	r.If = cond
	return r
}

// WithIfNamed returns a copy of the rule gated by a named condition
// resolved through the record.
func (r Rule) WithIfNamed(name string) Rule {
	r.IfNamed = name
	return r
}

// DenyEmpty returns a copy of the rule that treats empty values as failures.
func (r Rule) DenyEmpty() Rule {
	r.AllowEmpty = false
	return r
}

// AllowingEmpty returns a copy of the rule that treats empty values as valid.
func (r Rule) AllowingEmpty() Rule {
	r.AllowEmpty = true
	return r
}

// Applicable reports whether the rule should be evaluated against the given
// record. Both the condition (If or IfNamed) and the lifecycle constraint
// (On) must pass. A failing Invoke is a configuration error, not a
// validation failure, and is returned as such.
func (r Rule) Applicable(rec Record) (bool, error) {
	if r.If != nil && !r.If(rec) {
		return false, nil
	}

	if r.IfNamed != "" {
		ok, err := rec.Invoke(r.IfNamed)
		if err != nil {
			return false, &ConditionError{Rule: r.Name, Condition: r.IfNamed, Cause: err}
		}
		if !ok {
			return false, nil
		}
	}

	switch r.On {
	case OnCreate:
		if !rec.IsNewRecord() {
			return false, nil
		}
	case OnUpdate:
		if rec.IsNewRecord() {
			return false, nil
		}
	}

	return true, nil
}
