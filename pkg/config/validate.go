package config

import (
	"fmt"
)

// Validate checks the configuration for contradictions and unsupported
// values. It is called after defaults and environment overrides are
// applied.
func Validate(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: invalid level %q", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging: invalid format %q", cfg.Logging.Format)
	}

	if cfg.Schemas.Path == "" {
		return fmt.Errorf("schemas: path cannot be empty")
	}

	if cfg.Schemas.Git.Enabled {
		if cfg.Schemas.Git.Repository == "" {
			return fmt.Errorf("schemas.git: repository URL is required when git mode is enabled")
		}
		if cfg.Schemas.Git.Branch == "" {
			return fmt.Errorf("schemas.git: branch cannot be empty")
		}
		switch cfg.Schemas.Git.Auth.Type {
		case "none", "token", "ssh":
		default:
			return fmt.Errorf("schemas.git.auth: invalid type %q", cfg.Schemas.Git.Auth.Type)
		}
		if cfg.Schemas.Git.Auth.Type == "token" && cfg.Schemas.Git.Auth.Token == "" {
			return fmt.Errorf("schemas.git.auth: token is required for token auth")
		}
		if cfg.Schemas.Git.Auth.Type == "ssh" && cfg.Schemas.Git.Auth.SSHKeyPath == "" {
			return fmt.Errorf("schemas.git.auth: ssh_key_path is required for ssh auth")
		}
		if cfg.Schemas.Git.PollSeconds < 0 {
			return fmt.Errorf("schemas.git: poll_seconds cannot be negative")
		}
	}

	if cfg.Audit.Enabled {
		switch cfg.Audit.Backend {
		case "memory", "sqlite":
		default:
			return fmt.Errorf("audit: invalid backend %q", cfg.Audit.Backend)
		}
		if cfg.Audit.Backend == "sqlite" && cfg.Audit.Path == "" {
			return fmt.Errorf("audit: path is required for the sqlite backend")
		}
		if cfg.Audit.Buffer <= 0 {
			return fmt.Errorf("audit: buffer must be positive")
		}
		if cfg.Audit.Retention.Days < 0 {
			return fmt.Errorf("audit.retention: days cannot be negative")
		}
		if cfg.Audit.Retention.MaxRecords < 0 {
			return fmt.Errorf("audit.retention: max_records cannot be negative")
		}
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Address == "" {
			return fmt.Errorf("metrics: address cannot be empty")
		}
		if cfg.Metrics.Namespace == "" {
			return fmt.Errorf("metrics: namespace cannot be empty")
		}
	}

	return nil
}
