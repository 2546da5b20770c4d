// Package engine evaluates schema rules against record instances.
//
// The Validator offers three operations:
//
//   - Validate runs every applicable rule on every configured field of a
//     record, pushing each failure message into the record's error sink and
//     returning a Report. Data failures never abort the run; every
//     applicable rule is evaluated.
//
//   - FieldValid answers "would Validate record any error for this field
//     right now" without touching the error sink. It backs live, partial
//     checks such as per-field UI feedback.
//
//   - ExpectedError evaluates a single candidate value against a field's
//     rules on a transient record seeded with extra context values, and
//     returns the first failing rule's message. It deliberately skips the
//     empty-value short-circuit and the applicability conditions; that
//     asymmetry is long-standing observable behavior, and Config.
//     UnifyExpectedError opts into the unified semantics instead.
//
// Validation failures are data, not errors: they are recorded, never
// returned. The error return of each operation is reserved for broken
// configuration, such as a rule whose named condition the record cannot
// resolve.
package engine
