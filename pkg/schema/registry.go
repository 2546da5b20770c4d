package schema

import (
	"fmt"

	"veridian-hq/minerva/pkg/rule"
)

// FieldRules is the ordered rule registry for a single field. Insertion
// order is preserved and significant: rules evaluate in registration order.
type FieldRules struct {
	field string
	rules []rule.Rule
	index map[string]int
}

func newFieldRules(field string) *FieldRules {
	return &FieldRules{
		field: field,
		index: make(map[string]int),
	}
}

// FieldName returns the field this registry belongs to.
func (f *FieldRules) FieldName() string {
	return f.field
}

// Add appends a rule to the registry. Attaching a second rule with the same
// name is a configuration error.
func (f *FieldRules) Add(r rule.Rule) error {
	if r.Name == "" {
		return fmt.Errorf("field %q: rule name cannot be empty", f.field)
	}
	if r.Check == nil {
		return fmt.Errorf("field %q: rule %q has no check function", f.field, r.Name)
	}
	if _, exists := f.index[r.Name]; exists {
		return &DuplicateRuleError{Field: f.field, Rule: r.Name}
	}

	f.index[r.Name] = len(f.rules)
	f.rules = append(f.rules, r)
	return nil
}

// Has reports whether a rule with the given name is attached.
// Matching is case-sensitive and exact.
func (f *FieldRules) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Get returns the named rule.
func (f *FieldRules) Get(name string) (rule.Rule, bool) {
	i, ok := f.index[name]
	if !ok {
		return rule.Rule{}, false
	}
	return f.rules[i], true
}

// Rules returns the attached rules in registration order.
// The returned slice is a copy.
func (f *FieldRules) Rules() []rule.Rule {
	out := make([]rule.Rule, len(f.rules))
	copy(out, f.rules)
	return out
}

// Len returns the number of attached rules.
func (f *FieldRules) Len() int {
	return len(f.rules)
}

// clone returns a deep copy, used for parent schema composition.
func (f *FieldRules) clone() *FieldRules {
	c := newFieldRules(f.field)
	c.rules = make([]rule.Rule, len(f.rules))
	copy(c.rules, f.rules)
	for name, i := range f.index {
		c.index[name] = i
	}
	return c
}
