package records

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func TestFileSource_YAML(t *testing.T) {
	path := writeFile(t, "users.yaml", `
type: user
records:
  - id: u1
    persisted: true
    values:
      username: bob
      age: 34
  - id: u2
    values:
      username: ""
`)

	items, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Load() returned %d items, want 2", len(items))
	}

	first := items[0]
	if first.Type != "user" || first.ID != "u1" || !first.Persisted {
		t.Errorf("items[0] = %+v, want persisted user u1", first)
	}
	if first.Values["username"] != "bob" {
		t.Errorf("username = %v, want bob", first.Values["username"])
	}
	if first.Values["age"] != 34 {
		t.Errorf("age = %v (%T), want 34", first.Values["age"], first.Values["age"])
	}

	if items[1].Persisted {
		t.Error("items[1].Persisted = true, want false by default")
	}
}

func TestFileSource_JSON(t *testing.T) {
	path := writeFile(t, "users.json", `{
  "type": "user",
  "records": [
    {"id": "u1", "values": {"username": "alice"}}
  ]
}`)

	items, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Load() returned %d items, want 1", len(items))
	}
	if items[0].Type != "user" || items[0].Values["username"] != "alice" {
		t.Errorf("items[0] = %+v, want user alice", items[0])
	}
}

func TestFileSource_PerRecordTypeOverride(t *testing.T) {
	path := writeFile(t, "mixed.yaml", `
type: user
records:
  - id: u1
    values: {username: bob}
  - id: a1
    type: account
    values: {name: billing}
`)

	items, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if items[0].Type != "user" {
		t.Errorf("items[0].Type = %s, want user", items[0].Type)
	}
	if items[1].Type != "account" {
		t.Errorf("items[1].Type = %s, want account", items[1].Type)
	}
}

func TestFileSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{
			name:    "missing type",
			content: "records:\n  - id: u1\n    values: {username: bob}\n",
		},
		{
			name:    "broken yaml",
			content: "records: [unclosed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.yaml", tt.content)
			if _, err := NewFileSource(path).Load(context.Background()); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		src := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml"))
		if _, err := src.Load(context.Background()); err == nil {
			t.Error("Load() succeeded, want error")
		}
	})
}
