package rule

import "testing"

func TestIsEmpty(t *testing.T) {
	var nilSlice []string
	var nilMap map[string]int
	var nilPtr *string
	s := "x"

	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"blank string is not empty", " ", false},
		{"non-empty string", "bob", false},
		{"nil slice", nilSlice, true},
		{"empty slice", []string{}, true},
		{"non-empty slice", []string{"a"}, false},
		{"nil map", nilMap, true},
		{"empty map", map[string]int{}, true},
		{"non-empty map", map[string]int{"a": 1}, false},
		{"zero int is not empty", 0, false},
		{"false is not empty", false, false},
		{"zero float is not empty", 0.0, false},
		{"nil pointer", nilPtr, true},
		{"pointer to empty string", new(string), true},
		{"pointer to value", &s, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEmpty(tt.value); got != tt.want {
				t.Errorf("IsEmpty(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
