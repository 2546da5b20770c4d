package config

// Config is the root configuration for the veridian runtime.
type Config struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Schemas configures where validation schemas are loaded from.
	Schemas SchemasConfig `yaml:"schemas"`

	// Audit configures the validation audit trail.
	Audit AuditConfig `yaml:"audit"`

	// Metrics configures the Prometheus metrics endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// SchemasConfig configures schema loading.
type SchemasConfig struct {
	// Path is a schema file or a directory of schema files.
	// Default: "schemas/"
	Path string `yaml:"path"`

	// Watch enables hot reload of schema files.
	// Default: false
	Watch bool `yaml:"watch"`

	// Git, when enabled, clones schemas from a Git repository instead of
	// reading Path directly; Path then resolves inside the checkout.
	Git GitConfig `yaml:"git"`
}

// GitConfig configures schema loading from a Git repository.
type GitConfig struct {
	// Enabled activates Git mode.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Repository is the clone URL (HTTPS or SSH).
	Repository string `yaml:"repository"`

	// Branch to track.
	// Default: "main"
	Branch string `yaml:"branch"`

	// Path within the repository to the schema files.
	// Default: "" (repository root)
	Path string `yaml:"path"`

	// PollSeconds is how often to pull for changes. Zero disables polling.
	// Default: 60
	PollSeconds int `yaml:"poll_seconds"`

	// Auth configures Git authentication.
	Auth GitAuthConfig `yaml:"auth"`

	// LocalPath is where the repository is cloned.
	// Default: a directory under the OS temp dir.
	LocalPath string `yaml:"local_path"`

	// CleanOnStart removes any existing checkout before cloning.
	// Default: false
	CleanOnStart bool `yaml:"clean_on_start"`
}

// GitAuthConfig configures Git authentication.
type GitAuthConfig struct {
	// Type: "none", "token", or "ssh".
	// Default: "none"
	Type string `yaml:"type"`

	// Token for HTTPS authentication. Required when Type is "token".
	Token string `yaml:"token"`

	// SSHKeyPath for SSH authentication. Required when Type is "ssh".
	SSHKeyPath string `yaml:"ssh_key_path"`

	// SSHKeyPassphrase for encrypted SSH keys. Optional.
	SSHKeyPassphrase string `yaml:"ssh_key_passphrase"`
}

// AuditConfig configures the validation audit trail.
type AuditConfig struct {
	// Enabled activates audit recording.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend ("memory", "sqlite").
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Path is the SQLite database file for the sqlite backend.
	// Default: "data/audit.db"
	Path string `yaml:"path"`

	// Buffer is the async recorder channel size.
	// Default: 1000
	Buffer int `yaml:"buffer"`

	// Retention configures pruning of old audit records.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig configures audit record retention.
type RetentionConfig struct {
	// Days is the number of days to retain records. Zero keeps forever.
	// Default: 90
	Days int `yaml:"days"`

	// MaxRecords caps the total number of records. Zero means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is a cron expression for automatic pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables scheduling.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Address is the listen address for the metrics HTTP server.
	// Default: ":9109"
	Address string `yaml:"address"`

	// Path is the HTTP path for the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "minerva"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "validation"
	Subsystem string `yaml:"subsystem"`
}
