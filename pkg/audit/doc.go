// Package audit defines the validation audit trail.
//
// An audit Record captures the outcome of one validation run for one
// record: which type was validated, whether it passed, and every
// violation that was reported. Records are written asynchronously by a
// Recorder and persisted through a Storage backend. Retention policies
// prune old records on a schedule.
//
// Subpackages:
//
//   - storage:   Storage backends (in-memory and SQLite)
//   - recorder:  Asynchronous record writing
//   - retention: Age and count based pruning with cron scheduling
package audit
