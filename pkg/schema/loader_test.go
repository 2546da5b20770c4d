package schema

import (
	"errors"
	"testing"

	"veridian-hq/minerva/pkg/rule"
)

const userSchemaDoc = `
schemas:
  - type: user
    fields:
      username:
        - rule: required
        - rule: length
          params: {min: 3, max: 32}
      email:
        - rule: format
          params: {pattern: "^[^@]+@[^@]+$"}
          message: "is not a valid address."
      password_confirmation:
        - rule: confirmation
          params: {field: password}
          on: create
      nickname:
        - rule: length
          params: {min: 2}
          if: nickname_enabled
`

func TestLoaderLoadsSchemas(t *testing.T) {
	loader := NewLoader(nil, nil)

	set, err := loader.Load([]byte(userSchemaDoc), "user.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ts, ok := set.Get("user")
	if !ok {
		t.Fatal("user schema not registered")
	}

	// Field declaration order survives YAML decoding.
	fields := ts.Fields()
	wantOrder := []string{"username", "email", "password_confirmation", "nickname"}
	if len(fields) != len(wantOrder) {
		t.Fatalf("expected %d fields, got %d", len(wantOrder), len(fields))
	}
	for i, name := range wantOrder {
		if fields[i].FieldName() != name {
			t.Errorf("field %d: got %q, want %q", i, fields[i].FieldName(), name)
		}
	}

	username := fields[0].Rules()
	if len(username) != 2 || username[0].Name != "required" || username[1].Name != "length" {
		t.Errorf("unexpected username rules: %v", username)
	}

	email, _ := ts.Lookup("email")
	formatRule, _ := email.Get("format")
	if formatRule.Message != "is not a valid address." {
		t.Errorf("message override not applied: %q", formatRule.Message)
	}

	conf, _ := ts.Lookup("password_confirmation")
	confRule, _ := conf.Get("confirmation")
	if confRule.On != rule.OnCreate {
		t.Errorf("on override not applied: %q", confRule.On)
	}

	nick, _ := ts.Lookup("nickname")
	nickRule, _ := nick.Get("length")
	if nickRule.IfNamed != "nickname_enabled" {
		t.Errorf("if override not applied: %q", nickRule.IfNamed)
	}
}

func TestLoaderAllowEmptyOverride(t *testing.T) {
	doc := `
schemas:
  - type: user
    fields:
      bio:
        - rule: length
          params: {min: 10}
          allow_empty: false
`
	loader := NewLoader(nil, nil)
	set, err := loader.Load([]byte(doc), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ts, _ := set.Get("user")
	bio, _ := ts.Lookup("bio")
	r, _ := bio.Get("length")
	if r.AllowEmpty {
		t.Error("allow_empty override not applied")
	}
}

func TestLoaderExtends(t *testing.T) {
	doc := `
schemas:
  - type: record
    fields:
      name:
        - rule: required
  - type: user
    extends: record
    fields:
      email:
        - rule: required
`
	loader := NewLoader(nil, nil)
	set, err := loader.Load([]byte(doc), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, _ := set.Get("user")
	if !user.Has("name") {
		t.Error("child type must inherit the parent's rules")
	}
	if !user.Has("email") {
		t.Error("child type must keep its own rules")
	}

	parent, _ := set.Get("record")
	if parent.Has("email") {
		t.Error("parent type must not gain the child's rules")
	}
}

func TestLoaderErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown rule",
			doc: `
schemas:
  - type: user
    fields:
      username:
        - rule: telepathy
`,
		},
		{
			name: "duplicate rule on one field",
			doc: `
schemas:
  - type: user
    fields:
      username:
        - rule: required
        - rule: required
`,
		},
		{
			name: "unknown parent",
			doc: `
schemas:
  - type: user
    extends: ghost
    fields:
      username:
        - rule: required
`,
		},
		{
			name: "missing type name",
			doc: `
schemas:
  - fields:
      username:
        - rule: required
`,
		},
		{
			name: "invalid on value",
			doc: `
schemas:
  - type: user
    fields:
      username:
        - rule: required
          on: destroy
`,
		},
		{
			name: "duplicate type",
			doc: `
schemas:
  - type: user
    fields: {}
  - type: user
    fields: {}
`,
		},
		{
			name: "missing rule name",
			doc: `
schemas:
  - type: user
    fields:
      username:
        - message: "nameless"
`,
		},
		{
			name: "not yaml",
			doc:  `{{{`,
		},
	}

	loader := NewLoader(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load([]byte(tt.doc), "test.yaml")
			if err == nil {
				t.Fatal("expected a load error")
			}
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Errorf("expected a LoadError, got %T", err)
			}
		})
	}
}

func TestLoaderDuplicateRuleErrorDetail(t *testing.T) {
	doc := `
schemas:
  - type: user
    fields:
      username:
        - rule: required
        - rule: required
`
	loader := NewLoader(nil, nil)
	_, err := loader.Load([]byte(doc), "test.yaml")
	if !errors.Is(err, ErrDuplicateRule) {
		t.Errorf("expected ErrDuplicateRule in the chain, got %v", err)
	}
}
