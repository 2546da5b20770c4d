package source

import (
	"context"

	"veridian-hq/minerva/pkg/schema"
)

// Event signals that the schema configuration behind a source changed.
type Event struct {
	// Path is the file that changed, if known.
	Path string

	// Op describes the change ("created", "modified", "removed").
	Op string

	// Err is any error that occurred while watching.
	Err error
}

// Source loads and watches a schema set.
type Source interface {
	// Load reads the full schema set from the source. Configuration
	// errors (unknown rules, duplicate names, broken parents) surface
	// here, before any validation runs.
	Load(ctx context.Context) (*schema.Set, error)

	// Watch reports changes to the underlying schema documents. The
	// channel closes when the context is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}
