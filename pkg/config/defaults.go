package config

// ApplyDefaults fills unset configuration fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	if cfg.Schemas.Path == "" {
		cfg.Schemas.Path = "schemas/"
	}
	if cfg.Schemas.Git.Branch == "" {
		cfg.Schemas.Git.Branch = "main"
	}
	if cfg.Schemas.Git.Enabled && cfg.Schemas.Git.PollSeconds == 0 {
		cfg.Schemas.Git.PollSeconds = 60
	}
	if cfg.Schemas.Git.Auth.Type == "" {
		cfg.Schemas.Git.Auth.Type = "none"
	}

	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = "sqlite"
	}
	if cfg.Audit.Path == "" {
		cfg.Audit.Path = "data/audit.db"
	}
	if cfg.Audit.Buffer == 0 {
		cfg.Audit.Buffer = 1000
	}
	if cfg.Audit.Retention.Days == 0 && cfg.Audit.Retention.MaxRecords == 0 {
		cfg.Audit.Retention.Days = 90
	}
	if cfg.Audit.Retention.Schedule == "" {
		cfg.Audit.Retention.Schedule = "0 3 * * *"
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9109"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "minerva"
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = "validation"
	}
}
