// Package retention enforces audit retention policies.
//
// A Pruner deletes audit records that fall outside the retention window
// (age based) or exceed the configured maximum record count (count
// based). Records can optionally be archived to JSON files before
// deletion. A cron Scheduler runs pruning automatically, typically
// once a day.
package retention
