// Package config defines the YAML configuration for the veridian runtime:
// where schemas come from (local path or a Git repository), how validation
// runs are audited and retained, and how logging and metrics behave.
//
// Configuration loads in layers: the YAML file, defaults for anything
// unset, MINERVA_* environment variable overrides, then validation. A
// configuration that fails validation never reaches the runtime.
package config
