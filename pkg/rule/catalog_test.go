package rule

import (
	"errors"
	"testing"
)

func TestCatalogBuildBuiltins(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		name      string
		rule      string
		params    Params
		wantError bool
	}{
		{"required", "required", nil, false},
		{"length with min", "length", Params{"min": 3}, false},
		{"length with float from yaml", "length", Params{"min": float64(3), "max": float64(10)}, false},
		{"length without bounds", "length", Params{}, true},
		{"length with bad min", "length", Params{"min": "three"}, true},
		{"format", "format", Params{"pattern": "^[a-z]+$"}, false},
		{"format with bad pattern", "format", Params{"pattern": "("}, true},
		{"format without pattern", "format", Params{}, true},
		{"inclusion", "inclusion", Params{"values": []interface{}{"a", "b"}}, false},
		{"inclusion without values", "inclusion", Params{}, true},
		{"confirmation", "confirmation", Params{"field": "password"}, false},
		{"confirmation without field", "confirmation", Params{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := c.Build(tt.rule, tt.params)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Name != tt.rule {
				t.Errorf("built rule has name %q, want %q", r.Name, tt.rule)
			}
		})
	}
}

func TestCatalogUnknownRule(t *testing.T) {
	c := DefaultCatalog()

	_, err := c.Build("telepathy", nil)
	if err == nil {
		t.Fatal("expected an error for an unknown rule")
	}
	if !errors.Is(err, ErrUnknownRule) {
		t.Errorf("expected ErrUnknownRule, got %v", err)
	}
}

func TestCatalogRegister(t *testing.T) {
	c := NewCatalog()

	builder := func(Params) (Rule, error) {
		return New("custom", "", func(interface{}, Record) bool { return true }), nil
	}

	if err := c.Register("custom", builder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Has("custom") {
		t.Error("registered rule not found")
	}
	if err := c.Register("custom", builder); err == nil {
		t.Error("duplicate registration should fail")
	}
	if err := c.Register("", builder); err == nil {
		t.Error("empty name should fail")
	}
	if err := c.Register("nilbuilder", nil); err == nil {
		t.Error("nil builder should fail")
	}
}
