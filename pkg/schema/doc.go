// Package schema holds the per-type validation configuration: which rules
// are attached to which fields of which record types.
//
// A TypeSchema maps field names to ordered rule registries (FieldRules).
// Registration order is significant: rules evaluate in the order they were
// attached, and the expected-error query reports the first failure in that
// order. Duplicate rule names on one field are rejected as configuration
// errors.
//
// Schemas compose: a child type built with WithParent starts from a copy of
// its parent's field registries, so rules declared on a base type apply to
// all derived types. The copy is taken when the child is constructed; rules
// added to the parent afterwards do not propagate, mirroring static
// load-time configuration.
//
// Build schemas either programmatically:
//
//	user := schema.New("user")
//	user.Field("username").Add(rule.Required())
//	user.Field("username").Add(rule.Length(3, 32))
//
// or declaratively from YAML documents via the Loader:
//
//	schemas:
//	  - type: user
//	    fields:
//	      username:
//	        - rule: required
//	        - rule: length
//	          params: {min: 3, max: 32}
//
// Schemas are built during a single-threaded setup phase and must not be
// mutated once validation runs begin; after that they are safe for
// concurrent read-only use.
package schema
