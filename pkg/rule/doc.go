// Package rule defines the validation rule primitive and the builtin rule
// catalog.
//
// A Rule is a single named check attached to a record field: a check
// function, a human-readable failure message, applicability conditions
// (If/IfNamed/On), and an empty-value policy (AllowEmpty).
//
// Rules are immutable values. Construct them with New or a builtin
// constructor and derive variants with the With* methods:
//
//	r := rule.Required().WithOn(rule.OnCreate)
//	r = rule.Length(3, 32).WithMessage("must be a reasonable handle")
//
// # Applicability
//
// A rule only runs against a record when it is applicable: the If closure
// (or the IfNamed condition resolved through the record) returns true, and
// the On constraint matches the record's lifecycle state. A rule with no
// conditions is always applicable.
//
// # Empty values
//
// Empty values (nil, empty strings, zero-length collections) bypass the
// check function entirely. Rules with AllowEmpty, the default, treat empty
// as valid; rules that demand presence (Required) set AllowEmpty to false
// and report their message instead.
//
// # Catalog
//
// The Catalog maps rule names to parameterized builders so declarative
// schema files can reference rules by name. DefaultCatalog returns a
// catalog preloaded with the builtin rules.
package rule
