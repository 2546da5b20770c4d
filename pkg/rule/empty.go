package rule

import "reflect"

// IsEmpty reports whether a field value counts as empty for the purposes of
// the empty-value short-circuit. Nil, empty strings, and zero-length
// collections are empty; scalar values (numbers, booleans, structs) never
// are. Pointers and interfaces are unwrapped first.
func IsEmpty(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return v.Len() == 0

	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return true
		}
		return IsEmpty(v.Elem().Interface())

	default:
		return false
	}
}
