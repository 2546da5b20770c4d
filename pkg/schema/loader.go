package schema

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"veridian-hq/minerva/pkg/rule"
)

// Loader builds schema sets from declarative YAML documents. Rule entries
// are resolved through a catalog; unknown rule names, duplicate rule names,
// and unknown parent types all fail loudly at load time.
type Loader struct {
	catalog *rule.Catalog
	logger  *slog.Logger
}

// NewLoader creates a schema loader. A nil catalog falls back to the
// builtin rule catalog.
func NewLoader(catalog *rule.Catalog, logger *slog.Logger) *Loader {
	if catalog == nil {
		catalog = rule.DefaultCatalog()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		catalog: catalog,
		logger:  logger,
	}
}

// fileDoc is the top-level shape of a schema document.
type fileDoc struct {
	Schemas []typeDecl `yaml:"schemas"`
}

// typeDecl declares one record type. Fields is kept as a raw node so the
// declaration order of fields survives decoding.
type typeDecl struct {
	Type    string    `yaml:"type"`
	Extends string    `yaml:"extends"`
	Fields  yaml.Node `yaml:"fields"`
}

// ruleDecl declares one rule attachment on a field.
type ruleDecl struct {
	Rule       string                 `yaml:"rule"`
	Message    string                 `yaml:"message"`
	On         string                 `yaml:"on"`
	If         string                 `yaml:"if"`
	AllowEmpty *bool                  `yaml:"allow_empty"`
	Params     map[string]interface{} `yaml:"params"`
}

// LoadFile reads a schema document from disk and returns a new set.
func (l *Loader) LoadFile(path string) (*Set, error) {
	set := NewSet()
	if err := l.LoadFileInto(set, path); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadFileInto reads a schema document from disk into an existing set, so a
// directory of documents can share parent types across files.
func (l *Loader) LoadFileInto(set *Set, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Source: path, Cause: err}
	}
	return l.LoadInto(set, data, path)
}

// Load parses a schema document and returns a new set.
func (l *Loader) Load(data []byte, source string) (*Set, error) {
	set := NewSet()
	if err := l.LoadInto(set, data, source); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadInto parses a schema document into an existing set. Types declared
// earlier (in this document or in the set already) can be extended by later
// declarations.
func (l *Loader) LoadInto(set *Set, data []byte, source string) error {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &LoadError{Source: source, Cause: err}
	}

	for _, decl := range doc.Schemas {
		if decl.Type == "" {
			return &LoadError{Source: source, Cause: fmt.Errorf("schema declaration is missing a type name")}
		}

		var opts []Option
		if decl.Extends != "" {
			parent, ok := set.Get(decl.Extends)
			if !ok {
				return &LoadError{Source: source, Cause: &UnknownParentError{Type: decl.Type, Parent: decl.Extends}}
			}
			opts = append(opts, WithParent(parent))
		}

		ts := New(decl.Type, opts...)
		if err := l.loadFields(ts, &decl.Fields); err != nil {
			return &LoadError{Source: source, Cause: fmt.Errorf("type %q: %w", decl.Type, err)}
		}

		if err := set.Register(ts); err != nil {
			return &LoadError{Source: source, Cause: err}
		}

		l.logger.Debug("loaded schema",
			"source", source,
			"type", decl.Type,
			"rule_count", ts.RuleCount(),
		)
	}

	return nil
}

// loadFields walks the raw fields mapping node in document order.
func (l *Loader) loadFields(ts *TypeSchema, fields *yaml.Node) error {
	if fields.Kind == 0 || fields.IsZero() {
		return nil
	}
	if fields.Kind != yaml.MappingNode {
		return fmt.Errorf("fields must be a mapping")
	}

	// Mapping nodes alternate key and value entries.
	for i := 0; i+1 < len(fields.Content); i += 2 {
		key := fields.Content[i]
		value := fields.Content[i+1]

		var decls []ruleDecl
		if err := value.Decode(&decls); err != nil {
			return fmt.Errorf("field %q: %w", key.Value, err)
		}

		registry := ts.Field(key.Value)
		for _, decl := range decls {
			r, err := l.buildRule(decl)
			if err != nil {
				return fmt.Errorf("field %q: %w", key.Value, err)
			}
			if err := registry.Add(r); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildRule resolves a rule declaration through the catalog and applies the
// declaration's overrides.
func (l *Loader) buildRule(decl ruleDecl) (rule.Rule, error) {
	if decl.Rule == "" {
		return rule.Rule{}, fmt.Errorf("rule entry is missing a rule name")
	}

	r, err := l.catalog.Build(decl.Rule, decl.Params)
	if err != nil {
		return rule.Rule{}, err
	}

	if decl.Message != "" {
		r = r.WithMessage(decl.Message)
	}
	if decl.If != "" {
		r = r.WithIfNamed(decl.If)
	}
	if decl.AllowEmpty != nil {
		if *decl.AllowEmpty {
			r = r.AllowingEmpty()
		} else {
			r = r.DenyEmpty()
		}
	}

	switch decl.On {
	case "", string(rule.OnAlways):
		// Default.
	case string(rule.OnCreate):
		r = r.WithOn(rule.OnCreate)
	case string(rule.OnUpdate):
		r = r.WithOn(rule.OnUpdate)
	default:
		return rule.Rule{}, fmt.Errorf("rule %q: invalid on value %q", decl.Rule, decl.On)
	}

	return r, nil
}
