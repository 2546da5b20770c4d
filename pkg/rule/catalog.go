package rule

import (
	"fmt"
	"regexp"
)

// Params carries builder parameters from declarative schema files.
type Params map[string]interface{}

// Builder constructs a rule from declarative parameters.
type Builder func(params Params) (Rule, error)

// Catalog maps rule names to builders so schemas can reference rules by
// name. Register catalogs during setup; lookups after that are read-only.
type Catalog struct {
	builders map[string]Builder
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{builders: make(map[string]Builder)}
}

// DefaultCatalog returns a catalog preloaded with the builtin rules:
// required, length, format, inclusion, and confirmation.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.builders["required"] = buildRequired
	c.builders["length"] = buildLength
	c.builders["format"] = buildFormat
	c.builders["inclusion"] = buildInclusion
	c.builders["confirmation"] = buildConfirmation
	return c
}

// Register adds a builder under a name. Registering over an existing name
// is a configuration error.
func (c *Catalog) Register(name string, builder Builder) error {
	if name == "" {
		return fmt.Errorf("rule name cannot be empty")
	}
	if builder == nil {
		return fmt.Errorf("builder for rule %q cannot be nil", name)
	}
	if _, exists := c.builders[name]; exists {
		return fmt.Errorf("rule %q is already registered", name)
	}
	c.builders[name] = builder
	return nil
}

// Has reports whether a builder is registered under the name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.builders[name]
	return ok
}

// Build constructs the named rule from parameters. Unknown names return an
// UnknownRuleError.
func (c *Catalog) Build(name string, params Params) (Rule, error) {
	builder, ok := c.builders[name]
	if !ok {
		return Rule{}, &UnknownRuleError{Name: name}
	}
	return builder(params)
}

func buildRequired(_ Params) (Rule, error) {
	return Required(), nil
}

func buildLength(params Params) (Rule, error) {
	min, err := params.intValue("min", 0)
	if err != nil {
		return Rule{}, &ParamError{Rule: "length", Param: "min", Cause: err}
	}
	max, err := params.intValue("max", 0)
	if err != nil {
		return Rule{}, &ParamError{Rule: "length", Param: "max", Cause: err}
	}
	if min <= 0 && max <= 0 {
		return Rule{}, &ParamError{Rule: "length", Param: "min", Cause: fmt.Errorf("min or max must be set")}
	}
	return Length(min, max), nil
}

func buildFormat(params Params) (Rule, error) {
	pattern, err := params.stringValue("pattern")
	if err != nil {
		return Rule{}, &ParamError{Rule: "format", Param: "pattern", Cause: err}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, &ParamError{Rule: "format", Param: "pattern", Cause: err}
	}
	return Format(re), nil
}

func buildInclusion(params Params) (Rule, error) {
	values, ok := params["values"].([]interface{})
	if !ok || len(values) == 0 {
		return Rule{}, &ParamError{Rule: "inclusion", Param: "values", Cause: fmt.Errorf("a non-empty list is required")}
	}
	return Inclusion(values...), nil
}

func buildConfirmation(params Params) (Rule, error) {
	field, err := params.stringValue("field")
	if err != nil {
		return Rule{}, &ParamError{Rule: "confirmation", Param: "field", Cause: err}
	}
	return Confirmation(field), nil
}

// intValue reads an integer parameter, tolerating the numeric types YAML
// decoding produces.
func (p Params) intValue(key string, fallback int) (int, error) {
	raw, ok := p[key]
	if !ok {
		return fallback, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", raw)
	}
}

// stringValue reads a required string parameter.
func (p Params) stringValue(key string) (string, error) {
	raw, ok := p[key]
	if !ok {
		return "", fmt.Errorf("parameter is required")
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", raw)
	}
	return s, nil
}
