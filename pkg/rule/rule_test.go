package rule

import (
	"errors"
	"fmt"
	"testing"
)

// stubRecord is a minimal Record for exercising applicability logic.
type stubRecord struct {
	values     map[string]interface{}
	persisted  bool
	conditions map[string]bool
	errs       []string
}

func (s *stubRecord) Get(field string) interface{} {
	return s.values[field]
}

func (s *stubRecord) IsNewRecord() bool {
	return !s.persisted
}

func (s *stubRecord) Invoke(name string) (bool, error) {
	v, ok := s.conditions[name]
	if !ok {
		return false, fmt.Errorf("no condition %q", name)
	}
	return v, nil
}

func (s *stubRecord) AddError(field, message string) {
	s.errs = append(s.errs, field+": "+message)
}

func TestNewDefaults(t *testing.T) {
	r := New("custom", "", func(interface{}, Record) bool { return true })

	if !r.AllowEmpty {
		t.Error("new rules should allow empty values by default")
	}
	if r.On != OnAlways {
		t.Errorf("expected OnAlways, got %q", r.On)
	}
	if r.Message != DefaultMessage {
		t.Errorf("expected default message, got %q", r.Message)
	}
}

func TestWithMethodsReturnCopies(t *testing.T) {
	base := New("base", "base message", func(interface{}, Record) bool { return true })

	modified := base.WithMessage("other").WithOn(OnCreate).DenyEmpty()

	if base.Message != "base message" || base.On != OnAlways || !base.AllowEmpty {
		t.Error("With* methods must not mutate the original rule")
	}
	if modified.Message != "other" || modified.On != OnCreate || modified.AllowEmpty {
		t.Error("modified copy did not carry the changes")
	}
}

func TestApplicable(t *testing.T) {
	tests := []struct {
		name      string
		rule      Rule
		record    *stubRecord
		want      bool
		wantError bool
	}{
		{
			name:   "no conditions is always applicable",
			rule:   New("r", "", func(interface{}, Record) bool { return true }),
			record: &stubRecord{},
			want:   true,
		},
		{
			name: "if closure false",
			rule: New("r", "", nil).WithIf(func(Record) bool { return false }),
			record: &stubRecord{},
			want: false,
		},
		{
			name: "if closure true",
			rule: New("r", "", nil).WithIf(func(Record) bool { return true }),
			record: &stubRecord{},
			want: true,
		},
		{
			name:   "named condition true",
			rule:   New("r", "", nil).WithIfNamed("ready"),
			record: &stubRecord{conditions: map[string]bool{"ready": true}},
			want:   true,
		},
		{
			name:   "named condition false",
			rule:   New("r", "", nil).WithIfNamed("ready"),
			record: &stubRecord{conditions: map[string]bool{"ready": false}},
			want:   false,
		},
		{
			name:      "unknown named condition is a configuration error",
			rule:      New("r", "", nil).WithIfNamed("missing"),
			record:    &stubRecord{conditions: map[string]bool{}},
			wantError: true,
		},
		{
			name:   "on create with new record",
			rule:   New("r", "", nil).WithOn(OnCreate),
			record: &stubRecord{},
			want:   true,
		},
		{
			name:   "on create with persisted record",
			rule:   New("r", "", nil).WithOn(OnCreate),
			record: &stubRecord{persisted: true},
			want:   false,
		},
		{
			name:   "on update with new record",
			rule:   New("r", "", nil).WithOn(OnUpdate),
			record: &stubRecord{},
			want:   false,
		},
		{
			name:   "on update with persisted record",
			rule:   New("r", "", nil).WithOn(OnUpdate),
			record: &stubRecord{persisted: true},
			want:   true,
		},
		{
			name: "condition and lifecycle must both pass",
			rule: New("r", "", nil).WithIf(func(Record) bool { return true }).WithOn(OnUpdate),
			record: &stubRecord{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.Applicable(tt.record)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected an error")
				}
				var condErr *ConditionError
				if !errors.As(err, &condErr) {
					t.Errorf("expected a ConditionError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Applicable() = %v, want %v", got, tt.want)
			}
		})
	}
}
