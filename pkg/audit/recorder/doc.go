// Package recorder writes audit records asynchronously.
//
// A Recorder converts validation reports into audit records and enqueues
// them on a buffered channel. A background worker drains the channel and
// writes to the configured storage backend, so validation callers never
// block on storage latency. Close drains any pending records before
// returning.
package recorder
