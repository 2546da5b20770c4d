package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestFileSourceLoadsSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "user.yaml", `
schemas:
  - type: user
    fields:
      username:
        - rule: required
`)

	src := NewFileSource(path, nil, nil)
	set, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := set.Get("user"); !ok {
		t.Error("user schema not loaded")
	}
}

func TestFileSourceLoadsDirectoryAcrossFiles(t *testing.T) {
	dir := t.TempDir()

	// Lexical walk order: the base type loads before the type extending it.
	writeFile(t, dir, "01_base.yaml", `
schemas:
  - type: record
    fields:
      name:
        - rule: required
`)
	writeFile(t, dir, "02_user.yaml", `
schemas:
  - type: user
    extends: record
    fields:
      email:
        - rule: required
`)
	writeFile(t, dir, "notes.txt", "not a schema document")

	src := NewFileSource(dir, nil, nil)
	set, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set.Len() != 2 {
		t.Fatalf("expected 2 types, got %d", set.Len())
	}
	user, _ := set.Get("user")
	if !user.Has("name") {
		t.Error("cross-file parent rules not inherited")
	}
}

func TestFileSourceLoadFailsOnBrokenSchema(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", `
schemas:
  - type: user
    fields:
      username:
        - rule: telepathy
`)

	src := NewFileSource(dir, nil, nil)
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("broken schemas must fail at load time")
	}
}

func TestFileSourceLoadMissingPath(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "absent"), nil, nil)
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("missing path should fail")
	}
}

func TestMemorySourceRoundTrip(t *testing.T) {
	src := NewMemorySource(nil)

	set, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("expected an empty set, got %d types", set.Len())
	}

	ctx, cancel := context.WithCancel(context.Background())
	events, err := src.Watch(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancel()
	if _, open := <-events; open {
		t.Error("watch channel should close with the context")
	}
}
