// Veridian Minerva is a declarative record validation engine.
//
// It evaluates named, reusable rules against record fields, with
// conditional applicability and an audit trail of every run:
//   - Schema-driven validation of records from files or databases
//   - Conditional rules (on create, on update, named conditions)
//   - Out-of-context expected-error queries for UI preflight
//   - SQLite-backed audit trail with retention pruning
//   - Hot reload of schemas from disk or a Git repository
//
// Usage:
//
//	# Validate records against the configured schemas
//	veridian validate --records records.yaml
//
//	# Validate with a custom configuration file
//	veridian validate --config /path/to/config.yaml --records records.yaml
//
//	# Check schema files for configuration errors
//	veridian lint --file schemas/user.yaml
//
//	# Ask what error a value would produce, without a record
//	veridian expect user email "not-an-address"
//
//	# Query the audit trail
//	veridian audit query --record-type user --valid false
//
//	# Run the watch daemon (schema hot reload, metrics, health)
//	veridian watch
//
// For complete documentation, see: https://github.com/veridian-hq/minerva
package main

func main() {
	Execute()
}
