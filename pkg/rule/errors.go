package rule

import (
	"errors"
	"fmt"
)

// ErrUnknownRule indicates a schema referenced a rule name the catalog does
// not know.
var ErrUnknownRule = errors.New("unknown rule")

// ConditionError indicates a named condition could not be resolved on the
// record. This is a configuration error: the schema references a condition
// the host record does not provide.
type ConditionError struct {
	Rule      string
	Condition string
	Cause     error
}

// Error returns the error message.
func (e *ConditionError) Error() string {
	return fmt.Sprintf("rule %q: condition %q: %v", e.Rule, e.Condition, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ConditionError) Unwrap() error {
	return e.Cause
}

// UnknownRuleError indicates a rule name was not found in the catalog.
type UnknownRuleError struct {
	Name string
}

// Error returns the error message.
func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %q", e.Name)
}

// Is reports whether target matches ErrUnknownRule.
func (e *UnknownRuleError) Is(target error) bool {
	return target == ErrUnknownRule
}

// ParamError indicates a rule builder received invalid parameters.
type ParamError struct {
	Rule  string
	Param string
	Cause error
}

// Error returns the error message.
func (e *ParamError) Error() string {
	return fmt.Sprintf("rule %q: invalid parameter %q: %v", e.Rule, e.Param, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ParamError) Unwrap() error {
	return e.Cause
}
