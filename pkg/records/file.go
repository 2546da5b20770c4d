package records

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileDoc is the on-disk layout of a records file.
//
//	type: user
//	records:
//	  - id: u1
//	    persisted: true
//	    values:
//	      username: bob
//
// A per-record type overrides the file-level type.
type fileDoc struct {
	Type    string `json:"type" yaml:"type"`
	Records []Item `json:"records" yaml:"records"`
}

// FileSource loads records from a JSON or YAML file.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from the given file.
// The format is chosen by extension: .json is JSON, everything else YAML.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes all items from the file.
func (s *FileSource) Load(ctx context.Context) ([]Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file %s: %w", s.path, err)
	}

	var doc fileDoc
	if filepath.Ext(s.path) == ".json" {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse records file %s: %w", s.path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse records file %s: %w", s.path, err)
		}
	}

	items := make([]Item, 0, len(doc.Records))
	for i, item := range doc.Records {
		if item.Type == "" {
			item.Type = doc.Type
		}
		if item.Type == "" {
			return nil, fmt.Errorf("record %d in %s has no type", i, s.path)
		}
		items = append(items, item)
	}

	return items, nil
}
