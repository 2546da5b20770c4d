package rule

import (
	"regexp"
	"testing"
)

func TestRequired(t *testing.T) {
	r := Required()

	if r.AllowEmpty {
		t.Error("required must deny empty values")
	}
	if r.Message != "is required." {
		t.Errorf("unexpected message %q", r.Message)
	}
	if r.Check("", nil) {
		t.Error("empty string should fail the check")
	}
	if !r.Check("bob", nil) {
		t.Error("non-empty string should pass the check")
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		name  string
		min   int
		max   int
		value interface{}
		want  bool
	}{
		{"within bounds", 3, 10, "hello", true},
		{"too short", 3, 10, "hi", false},
		{"too long", 3, 5, "toolong", false},
		{"at min", 3, 10, "abc", true},
		{"at max", 3, 5, "abcde", true},
		{"no upper bound", 3, 0, "a very long string indeed", true},
		{"runes not bytes", 2, 3, "héo", true},
		{"slice length", 1, 2, []int{1, 2}, true},
		{"slice too long", 1, 2, []int{1, 2, 3}, false},
		{"non length-bearing value fails", 1, 5, 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Length(tt.min, tt.max)
			if got := r.Check(tt.value, nil); got != tt.want {
				t.Errorf("Length(%d, %d).Check(%v) = %v, want %v", tt.min, tt.max, tt.value, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	r := Format(regexp.MustCompile(`^[a-z]+$`))

	if !r.Check("abc", nil) {
		t.Error("matching string should pass")
	}
	if r.Check("ABC", nil) {
		t.Error("non-matching string should fail")
	}
	if r.Check(42, nil) {
		t.Error("non-string values should fail")
	}
}

func TestInclusion(t *testing.T) {
	r := Inclusion("small", "medium", "large")

	if !r.Check("medium", nil) {
		t.Error("listed value should pass")
	}
	if r.Check("huge", nil) {
		t.Error("unlisted value should fail")
	}
}

func TestConfirmation(t *testing.T) {
	rec := &stubRecord{values: map[string]interface{}{"password": "opensesame"}}
	r := Confirmation("password")

	if !r.Check("opensesame", rec) {
		t.Error("matching confirmation should pass")
	}
	if r.Check("mismatched", rec) {
		t.Error("mismatched confirmation should fail")
	}
	if r.Message != "doesn't match password." {
		t.Errorf("unexpected message %q", r.Message)
	}
}
