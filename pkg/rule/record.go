package rule

// Record is the capability contract a host record must satisfy for
// validation. It is intentionally narrow: the engine only ever reads field
// values, inspects lifecycle state, resolves named conditions, and records
// failure messages.
type Record interface {
	// Get returns the current value of the named field.
	// Unknown fields return nil.
	Get(field string) interface{}

	// IsNewRecord reports whether the record has not yet been persisted.
	// It gates rules restricted with OnCreate or OnUpdate.
	IsNewRecord() bool

	// Invoke resolves a named zero-argument condition on the record.
	// Unknown condition names must return an error; a broken validation
	// schema should fail loudly rather than be silently skipped.
	Invoke(name string) (bool, error)

	// AddError records a validation failure message against a field.
	AddError(field, message string)
}
