package rule

import (
	"fmt"
	"reflect"
	"regexp"
	"unicode/utf8"
)

// Required demands a non-empty value. It is the canonical presence rule:
// the only builtin that denies empty values, so the empty-value
// short-circuit records its message instead of skipping the field.
func Required() Rule {
	r := New("required", "is required.", func(value interface{}, _ Record) bool {
		return !IsEmpty(value)
	})
	return r.DenyEmpty()
}

// Length constrains the length of a string (in runes) or collection.
// A max of zero means no upper bound.
func Length(min, max int) Rule {
	var message string
	switch {
	case max <= 0:
		message = fmt.Sprintf("must be at least %d characters.", min)
	case min <= 0:
		message = fmt.Sprintf("must be at most %d characters.", max)
	default:
		message = fmt.Sprintf("must be between %d and %d characters.", min, max)
	}

	return New("length", message, func(value interface{}, _ Record) bool {
		n, ok := lengthOf(value)
		if !ok {
			return false
		}
		if n < min {
			return false
		}
		if max > 0 && n > max {
			return false
		}
		return true
	})
}

// Format requires string values to match a regular expression.
func Format(pattern *regexp.Regexp) Rule {
	return New("format", DefaultMessage, func(value interface{}, _ Record) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		return pattern.MatchString(s)
	})
}

// Inclusion requires the value to be one of an allowed set.
func Inclusion(allowed ...interface{}) Rule {
	return New("inclusion", "is not included in the list.", func(value interface{}, _ Record) bool {
		for _, candidate := range allowed {
			if reflect.DeepEqual(value, candidate) {
				return true
			}
		}
		return false
	})
}

// Confirmation requires the value to equal another field on the record.
// Attach it to the confirmation field (e.g. password_confirmation) naming
// the field it must mirror (e.g. password).
func Confirmation(field string) Rule {
	message := fmt.Sprintf("doesn't match %s.", field)
	return New("confirmation", message, func(value interface{}, rec Record) bool {
		return reflect.DeepEqual(value, rec.Get(field))
	})
}

// lengthOf returns the length of a string (rune count) or of a
// length-bearing collection, and whether the value carries a length at all.
func lengthOf(value interface{}) (int, bool) {
	if value == nil {
		return 0, true
	}
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len(), true
	default:
		return 0, false
	}
}
