package engine

import (
	"errors"
	"testing"
)

func TestValuesFieldAccess(t *testing.T) {
	v := NewValues(map[string]interface{}{"username": "bob"})

	if got := v.Get("username"); got != "bob" {
		t.Errorf("Get(username) = %v", got)
	}
	if got := v.Get("missing"); got != nil {
		t.Errorf("absent field should be nil, got %v", got)
	}

	v.Set("email", "bob@example.com")
	if got := v.Get("email"); got != "bob@example.com" {
		t.Errorf("Get(email) = %v", got)
	}
}

func TestValuesCopiesSeedMap(t *testing.T) {
	seed := map[string]interface{}{"username": "bob"}
	v := NewValues(seed)

	seed["username"] = "mallory"
	if got := v.Get("username"); got != "bob" {
		t.Errorf("seed map mutation leaked into the record: %v", got)
	}
}

func TestValuesLifecycle(t *testing.T) {
	v := NewValues(nil)
	if !v.IsNewRecord() {
		t.Error("a fresh Values must report as a new record")
	}

	v.MarkPersisted()
	if v.IsNewRecord() {
		t.Error("MarkPersisted should flip the lifecycle state")
	}
}

func TestValuesConditions(t *testing.T) {
	v := NewValues(nil).WithCondition("ready", func() bool { return true })

	ok, err := v.Invoke("ready")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("condition should return true")
	}

	_, err = v.Invoke("missing")
	if err == nil {
		t.Fatal("unknown conditions must fail loudly")
	}
	if !errors.Is(err, ErrUnknownCondition) {
		t.Errorf("expected ErrUnknownCondition, got %v", err)
	}
}

func TestValuesErrorSink(t *testing.T) {
	v := NewValues(nil)
	v.AddError("username", "is required.")
	v.AddError("email", "is invalid.")
	v.AddError("username", "is too short.")

	all := v.Errors()
	if len(all) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(all))
	}
	if all[0].Field != "username" || all[1].Field != "email" {
		t.Error("errors must preserve insertion order")
	}

	on := v.ErrorsOn("username")
	if len(on) != 2 || on[0] != "is required." || on[1] != "is too short." {
		t.Errorf("ErrorsOn(username) = %v", on)
	}

	v.ClearErrors()
	if len(v.Errors()) != 0 {
		t.Error("ClearErrors should drop recorded failures")
	}
}
