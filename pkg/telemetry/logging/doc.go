// Package logging configures structured logging on top of log/slog.
//
// New builds a slog.Logger from a config.LoggingConfig, choosing the
// handler (JSON or text) and minimum level. Init additionally installs
// the logger as the process default so packages that fall back to
// slog.Default() pick it up.
package logging
