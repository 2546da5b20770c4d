package audit

import (
	"context"
	"time"
)

// Record represents the audit trail entry for a single validation run
// of a single record.
type Record struct {
	// Identity
	ID    string `json:"id"`     // UUID v4
	RunID string `json:"run_id"` // Validation run identifier

	// What was validated
	RecordType string `json:"record_type"` // Schema type name
	RecordID   string `json:"record_id"`   // Caller-supplied record identifier

	// Timestamps
	StartedAt  time.Time `json:"started_at"`  // When validation started
	RecordedAt time.Time `json:"recorded_at"` // When the audit record was created

	// Outcome
	Valid          bool          `json:"valid"`
	Violations     []Violation   `json:"violations"`
	ViolationCount int           `json:"violation_count"`
	Duration       time.Duration `json:"duration"`
}

// Violation captures a single failed check within a validation run.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Query defines filter parameters for querying audit records.
type Query struct {
	// Time range, matched against StartedAt.
	StartTime *time.Time `json:"start_time,omitempty"` // Inclusive start time
	EndTime   *time.Time `json:"end_time,omitempty"`   // Inclusive end time

	// Filters
	RecordType string `json:"record_type,omitempty"` // Filter by schema type
	RecordID   string `json:"record_id,omitempty"`   // Filter by record identifier
	RunID      string `json:"run_id,omitempty"`      // Filter by run identifier
	RuleName   string `json:"rule_name,omitempty"`   // Filter by violated rule name
	Field      string `json:"field,omitempty"`       // Filter by violated field
	Valid      *bool  `json:"valid,omitempty"`       // Filter by outcome

	// IDs restricts the query to an exact set of audit record IDs.
	// Retention pruning uses it to delete precisely the records it
	// selected, regardless of timestamp ties.
	IDs []string `json:"ids,omitempty"`

	// Pagination
	Limit  int `json:"limit,omitempty"`  // Max records to return
	Offset int `json:"offset,omitempty"` // Skip N records

	// Sorting
	SortBy    string `json:"sort_by,omitempty"`    // "started_at", "duration", "violation_count"
	SortOrder string `json:"sort_order,omitempty"` // "asc", "desc"
}

// Storage defines the interface for audit storage backends.
// Implementations must be thread-safe and support concurrent access.
type Storage interface {
	// Store persists an audit record.
	// Returns an error if the record cannot be written.
	Store(ctx context.Context, record *Record) error

	// Query retrieves audit records matching the query filters.
	// Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of audit records matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes audit records matching the query filters.
	// Returns the number of records deleted.
	// Used for retention policy enforcement.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the storage backend.
	Close() error
}
