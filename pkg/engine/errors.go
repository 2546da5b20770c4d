package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownType indicates a validation was requested for a record type
// that has no registered schema.
var ErrUnknownType = errors.New("unknown record type")

// ErrUnknownCondition indicates a rule referenced a named condition the
// record does not provide.
var ErrUnknownCondition = errors.New("unknown condition")

// UnknownTypeError indicates no schema is registered for a record type.
type UnknownTypeError struct {
	Type string
}

// Error returns the error message.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("no schema registered for type %q", e.Type)
}

// Is reports whether target matches ErrUnknownType.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// UnknownConditionError indicates a named condition was not found on a
// record. It signals a broken schema, not bad data.
type UnknownConditionError struct {
	Name string
}

// Error returns the error message.
func (e *UnknownConditionError) Error() string {
	return fmt.Sprintf("condition %q is not defined on the record", e.Name)
}

// Is reports whether target matches ErrUnknownCondition.
func (e *UnknownConditionError) Is(target error) bool {
	return target == ErrUnknownCondition
}
