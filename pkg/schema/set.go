package schema

// Set is a named collection of type schemas, typically the full validation
// configuration of an application. Registration order is preserved for
// deterministic iteration.
type Set struct {
	types map[string]*TypeSchema
	order []string
}

// NewSet returns an empty schema set.
func NewSet() *Set {
	return &Set{types: make(map[string]*TypeSchema)}
}

// Register adds a type schema to the set. Registering a second schema under
// the same type name is a configuration error.
func (s *Set) Register(ts *TypeSchema) error {
	if _, exists := s.types[ts.Name()]; exists {
		return &DuplicateTypeError{Type: ts.Name()}
	}
	s.types[ts.Name()] = ts
	s.order = append(s.order, ts.Name())
	return nil
}

// Get returns the schema for a record type.
func (s *Set) Get(name string) (*TypeSchema, bool) {
	ts, ok := s.types[name]
	return ts, ok
}

// Types returns all registered schemas in registration order.
func (s *Set) Types() []*TypeSchema {
	out := make([]*TypeSchema, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.types[name])
	}
	return out
}

// Len returns the number of registered types.
func (s *Set) Len() int {
	return len(s.types)
}

// RuleCount returns the total number of rules across all types.
func (s *Set) RuleCount() int {
	n := 0
	for _, ts := range s.types {
		n += ts.RuleCount()
	}
	return n
}
