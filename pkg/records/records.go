package records

import "context"

// Item is a single record to validate.
type Item struct {
	// Type is the schema type name the record belongs to.
	Type string `json:"type" yaml:"type"`

	// ID identifies the record for audit purposes. Optional.
	ID string `json:"id" yaml:"id"`

	// Persisted reports whether the record already exists in its
	// backing store. Unpersisted records are treated as new.
	Persisted bool `json:"persisted" yaml:"persisted"`

	// Values holds the field values keyed by field name.
	Values map[string]interface{} `json:"values" yaml:"values"`
}

// Source loads records to validate.
type Source interface {
	// Load returns all items from the source.
	Load(ctx context.Context) ([]Item, error)
}
