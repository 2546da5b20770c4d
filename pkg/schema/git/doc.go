// Package git manages schema checkouts sourced from Git repositories.
//
// A Repository clones a remote repository holding schema files, exposes
// the current commit metadata, and pulls updates on demand. A Poller
// wraps a Repository and periodically pulls, invoking a reload callback
// whenever schema files change between commits.
package git
