// Package records supplies the records to validate.
//
// A Source loads Items, each carrying the field values of one record
// plus its lifecycle state. Sources exist for JSON and YAML files and
// for SQLite tables, so the CLI can validate data from fixtures or
// straight out of a database.
package records
