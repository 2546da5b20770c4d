package source

import (
	"context"

	"veridian-hq/minerva/pkg/schema"
)

// MemorySource serves a pre-built schema set, for tests and embedded
// configurations.
type MemorySource struct {
	set *schema.Set
}

// NewMemorySource creates an in-memory schema source.
func NewMemorySource(set *schema.Set) *MemorySource {
	if set == nil {
		set = schema.NewSet()
	}
	return &MemorySource{set: set}
}

// Load returns the stored schema set.
func (s *MemorySource) Load(ctx context.Context) (*schema.Set, error) {
	return s.set, nil
}

// Watch returns a channel that never emits and closes with the context.
func (s *MemorySource) Watch(ctx context.Context) (<-chan Event, error) {
	events := make(chan Event)
	go func() {
		<-ctx.Done()
		close(events)
	}()
	return events, nil
}
