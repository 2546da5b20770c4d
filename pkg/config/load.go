package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults and MINERVA_*
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	return finish(&cfg)
}

// Default returns the configuration with no file loaded: defaults plus
// environment overrides.
func Default() (*Config, error) {
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies MINERVA_SECTION_FIELD environment variables on
// top of the file-based configuration.
func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Logging.Level, "MINERVA_LOGGING_LEVEL")
	setString(&cfg.Logging.Format, "MINERVA_LOGGING_FORMAT")

	setString(&cfg.Schemas.Path, "MINERVA_SCHEMAS_PATH")
	setBool(&cfg.Schemas.Watch, "MINERVA_SCHEMAS_WATCH")
	setBool(&cfg.Schemas.Git.Enabled, "MINERVA_SCHEMAS_GIT_ENABLED")
	setString(&cfg.Schemas.Git.Repository, "MINERVA_SCHEMAS_GIT_REPOSITORY")
	setString(&cfg.Schemas.Git.Branch, "MINERVA_SCHEMAS_GIT_BRANCH")
	setString(&cfg.Schemas.Git.Auth.Token, "MINERVA_SCHEMAS_GIT_TOKEN")

	setBool(&cfg.Audit.Enabled, "MINERVA_AUDIT_ENABLED")
	setString(&cfg.Audit.Backend, "MINERVA_AUDIT_BACKEND")
	setString(&cfg.Audit.Path, "MINERVA_AUDIT_PATH")

	setBool(&cfg.Metrics.Enabled, "MINERVA_METRICS_ENABLED")
	setString(&cfg.Metrics.Address, "MINERVA_METRICS_ADDRESS")
}

func setString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}

func setBool(target *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}
