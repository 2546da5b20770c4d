// Package health provides liveness and readiness probes for the watch
// daemon. Components register CheckFuncs with a Checker; the readiness
// handler runs them all and reports degraded with a 503 when any check
// fails.
package health
