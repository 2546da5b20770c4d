package engine

// FieldError is a single recorded validation failure.
type FieldError struct {
	Field   string
	Message string
}

// Values is a map-backed record: a lightweight context carrier that
// satisfies the rule.Record contract without a host framework. The engine
// uses it as the transient record behind ExpectedError; it also serves as
// the host shim for record data read from files or databases.
//
// A fresh Values reports IsNewRecord true, matching an unsaved record.
type Values struct {
	values     map[string]interface{}
	conditions map[string]func() bool
	persisted  bool
	errors     []FieldError
}

// NewValues creates a transient record seeded with the given field values.
// The map is copied; later mutation of the argument has no effect.
func NewValues(values map[string]interface{}) *Values {
	v := &Values{
		values:     make(map[string]interface{}, len(values)),
		conditions: make(map[string]func() bool),
	}
	for field, value := range values {
		v.values[field] = value
	}
	return v
}

// Set assigns a field value.
func (v *Values) Set(field string, value interface{}) *Values {
	v.values[field] = value
	return v
}

// WithCondition defines a named zero-argument condition resolvable through
// Invoke. Conditions registered here stand in for the host record's own
// methods.
func (v *Values) WithCondition(name string, fn func() bool) *Values {
	v.conditions[name] = fn
	return v
}

// MarkPersisted flips the record into the "already exists" lifecycle state,
// so OnUpdate rules apply and OnCreate rules do not.
func (v *Values) MarkPersisted() *Values {
	v.persisted = true
	return v
}

// Get returns the value of a field, or nil when the field is absent.
func (v *Values) Get(field string) interface{} {
	return v.values[field]
}

// IsNewRecord reports whether the record has not been persisted.
func (v *Values) IsNewRecord() bool {
	return !v.persisted
}

// Invoke resolves a named condition. Unknown names are configuration
// errors and fail loudly.
func (v *Values) Invoke(name string) (bool, error) {
	fn, ok := v.conditions[name]
	if !ok {
		return false, &UnknownConditionError{Name: name}
	}
	return fn(), nil
}

// AddError records a validation failure against a field.
func (v *Values) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// Errors returns all recorded failures in the order they were added.
func (v *Values) Errors() []FieldError {
	out := make([]FieldError, len(v.errors))
	copy(out, v.errors)
	return out
}

// ErrorsOn returns the failure messages recorded against one field.
func (v *Values) ErrorsOn(field string) []string {
	var out []string
	for _, e := range v.errors {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// ClearErrors discards recorded failures, keeping field values intact.
func (v *Values) ClearErrors() {
	v.errors = nil
}
