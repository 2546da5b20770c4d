package schema

import (
	"errors"
	"fmt"
)

// ErrDuplicateRule indicates two rules with the same name were attached to
// one field.
var ErrDuplicateRule = errors.New("duplicate rule")

// DuplicateRuleError indicates a rule name was attached twice to the same
// field. Silent overwrite is deliberately not supported; a doubled name is
// a broken schema.
type DuplicateRuleError struct {
	Field string
	Rule  string
}

// Error returns the error message.
func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("field %q: rule %q is already attached", e.Field, e.Rule)
}

// Is reports whether target matches ErrDuplicateRule.
func (e *DuplicateRuleError) Is(target error) bool {
	return target == ErrDuplicateRule
}

// DuplicateTypeError indicates two schemas were registered under the same
// type name.
type DuplicateTypeError struct {
	Type string
}

// Error returns the error message.
func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("type %q is already registered", e.Type)
}

// UnknownParentError indicates a schema declaration extends a type that has
// not been declared.
type UnknownParentError struct {
	Type   string
	Parent string
}

// Error returns the error message.
func (e *UnknownParentError) Error() string {
	return fmt.Sprintf("type %q extends unknown type %q", e.Type, e.Parent)
}

// LoadError indicates a schema document could not be loaded.
type LoadError struct {
	Source string
	Cause  error
}

// Error returns the error message.
func (e *LoadError) Error() string {
	return fmt.Sprintf("schema load failed for %q: %v", e.Source, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}
