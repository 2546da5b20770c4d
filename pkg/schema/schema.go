package schema

import (
	"veridian-hq/minerva/pkg/rule"
)

// TypeSchema owns the full validation configuration for one record type:
// a mapping from field name to its ordered rule registry. Field order is
// preserved from first access, which keeps validation output deterministic.
type TypeSchema struct {
	name   string
	parent string
	fields map[string]*FieldRules
	order  []string
}

// Option configures a TypeSchema at construction time.
type Option func(*TypeSchema)

// WithParent copies the parent's field registries into the new schema.
// The copy is taken now: rules attached to the parent after construction do
// not propagate to the child.
func WithParent(parent *TypeSchema) Option {
	return func(s *TypeSchema) {
		if parent == nil {
			return
		}
		s.parent = parent.name
		for _, field := range parent.order {
			s.fields[field] = parent.fields[field].clone()
			s.order = append(s.order, field)
		}
	}
}

// New creates a schema for the named record type.
func New(name string, opts ...Option) *TypeSchema {
	s := &TypeSchema{
		name:   name,
		fields: make(map[string]*FieldRules),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the record type name.
func (s *TypeSchema) Name() string {
	return s.name
}

// Parent returns the name of the parent type, if any.
func (s *TypeSchema) Parent() string {
	return s.parent
}

// Field returns the rule registry for a field, creating an empty one on
// first access. Declaring a rule on an as-yet-unseen field is always safe.
func (s *TypeSchema) Field(name string) *FieldRules {
	if f, ok := s.fields[name]; ok {
		return f
	}
	f := newFieldRules(name)
	s.fields[name] = f
	s.order = append(s.order, name)
	return f
}

// Lookup returns the registry for a field without creating one. Use this on
// read paths; Field is reserved for the declaration phase.
func (s *TypeSchema) Lookup(field string) (*FieldRules, bool) {
	f, ok := s.fields[field]
	return f, ok
}

// Has reports whether any rules are attached to the field.
func (s *TypeSchema) Has(field string) bool {
	f, ok := s.fields[field]
	return ok && f.Len() > 0
}

// Attach appends rules to a field's registry.
func (s *TypeSchema) Attach(field string, rules ...rule.Rule) error {
	f := s.Field(field)
	for _, r := range rules {
		if err := f.Add(r); err != nil {
			return err
		}
	}
	return nil
}

// Fields returns the non-empty field registries in declaration order.
func (s *TypeSchema) Fields() []*FieldRules {
	out := make([]*FieldRules, 0, len(s.order))
	for _, name := range s.order {
		if f := s.fields[name]; f.Len() > 0 {
			out = append(out, f)
		}
	}
	return out
}

// RuleCount returns the total number of rules attached across all fields.
func (s *TypeSchema) RuleCount() int {
	n := 0
	for _, f := range s.fields {
		n += f.Len()
	}
	return n
}
