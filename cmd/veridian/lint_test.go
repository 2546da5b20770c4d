package main

import (
	"os"
	"path/filepath"
	"testing"
)

const validSchemaDoc = `
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
`

const invalidSchemaDoc = `
schemas:
  - type: user
    fields:
      username:
        - rule: no_such_rule
`

const emptyTypeSchemaDoc = `
schemas:
  - type: placeholder
    fields: {}
`

const ruleLessFieldSchemaDoc = `
schemas:
  - type: draft
    fields:
      notes: []
`

func writeSchemaFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLintSchemasValidFile(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "valid.yaml", validSchemaDoc)

	lintFlags.file = path
	lintFlags.dir = ""
	lintFlags.strict = false
	lintFlags.format = "text"

	if err := lintSchemas(nil, []string{}); err != nil {
		t.Errorf("lintSchemas() with valid file returned error: %v", err)
	}
}

func TestLintSchemasInvalidFile(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "invalid.yaml", invalidSchemaDoc)

	lintFlags.file = path
	lintFlags.dir = ""
	lintFlags.strict = false
	lintFlags.format = "text"

	if err := lintSchemas(nil, []string{}); err == nil {
		t.Error("lintSchemas() with invalid file should return error")
	}
}

func TestLintSchemasNonexistentFile(t *testing.T) {
	lintFlags.file = filepath.Join(t.TempDir(), "nonexistent.yaml")
	lintFlags.dir = ""
	lintFlags.strict = false
	lintFlags.format = "text"

	if err := lintSchemas(nil, []string{}); err == nil {
		t.Error("lintSchemas() with nonexistent file should return error")
	}
}

func TestLintSchemasNoFileOrDir(t *testing.T) {
	lintFlags.file = ""
	lintFlags.dir = ""
	lintFlags.strict = false
	lintFlags.format = "text"

	if err := lintSchemas(nil, []string{}); err == nil {
		t.Error("lintSchemas() without file or dir should return error")
	}
}

func TestLintSchemasJSONFormat(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "valid.yaml", validSchemaDoc)

	lintFlags.file = path
	lintFlags.dir = ""
	lintFlags.strict = false
	lintFlags.format = "json"

	if err := lintSchemas(nil, []string{}); err != nil {
		t.Errorf("lintSchemas() with JSON format returned error: %v", err)
	}
}

func TestLintSchemasStrictTreatsWarningsAsErrors(t *testing.T) {
	path := writeSchemaFile(t, t.TempDir(), "empty.yaml", emptyTypeSchemaDoc)

	lintFlags.file = path
	lintFlags.dir = ""
	lintFlags.strict = false
	lintFlags.format = "text"

	if err := lintSchemas(nil, []string{}); err != nil {
		t.Errorf("lintSchemas() without strict should tolerate warnings: %v", err)
	}

	lintFlags.strict = true
	if err := lintSchemas(nil, []string{}); err == nil {
		t.Error("lintSchemas() with strict should fail on warnings")
	}
}

func TestLintSchemaFileWarnsOnEmptyTypes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "no fields at all",
			doc:  emptyTypeSchemaDoc,
		},
		{
			name: "fields without rules",
			doc:  ruleLessFieldSchemaDoc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSchemaFile(t, dir, tt.name+".yaml", tt.doc)

			result := lintSchemaFile(path)
			if !result.Valid {
				t.Fatalf("lintSchemaFile(%q).Valid = false, want true", path)
			}
			if len(result.Warnings) != 1 {
				t.Fatalf("got %d warnings, want 1: %+v", len(result.Warnings), result.Warnings)
			}
			if result.Warnings[0].Severity != "warning" {
				t.Errorf("Severity = %q, want warning", result.Warnings[0].Severity)
			}
		})
	}
}

func TestLintSchemaFile(t *testing.T) {
	dir := t.TempDir()
	validPath := writeSchemaFile(t, dir, "valid.yaml", validSchemaDoc)
	invalidPath := writeSchemaFile(t, dir, "invalid.yaml", invalidSchemaDoc)

	tests := []struct {
		name      string
		file      string
		wantValid bool
	}{
		{
			name:      "valid schema",
			file:      validPath,
			wantValid: true,
		},
		{
			name:      "invalid schema",
			file:      invalidPath,
			wantValid: false,
		},
		{
			name:      "nonexistent file",
			file:      filepath.Join(dir, "nonexistent.yaml"),
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintSchemaFile(tt.file)
			if result.Valid != tt.wantValid {
				t.Errorf("lintSchemaFile(%q).Valid = %v, want %v",
					tt.file, result.Valid, tt.wantValid)
			}
		})
	}
}

func TestLintSchemasDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "a.yaml", validSchemaDoc)
	writeSchemaFile(t, dir, "b.yml", emptyTypeSchemaDoc)

	lintFlags.file = ""
	lintFlags.dir = dir
	lintFlags.strict = false
	lintFlags.format = "text"

	if err := lintSchemas(nil, []string{}); err != nil {
		t.Errorf("lintSchemas() over directory returned error: %v", err)
	}
}
