package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"veridian-hq/minerva/pkg/audit"
	auditstorage "veridian-hq/minerva/pkg/audit/storage"
	"veridian-hq/minerva/pkg/config"
	"veridian-hq/minerva/pkg/rule"
	"veridian-hq/minerva/pkg/schema"
	"veridian-hq/minerva/pkg/schema/git"
	"veridian-hq/minerva/pkg/schema/source"
	"veridian-hq/minerva/pkg/telemetry/logging"
)

// readConfig loads the configuration file named by the --config flag.
// When the flag is untouched and no config.yaml exists in the working
// directory, built-in defaults are used instead. An explicitly named
// file must exist.
func readConfig() (*config.Config, error) {
	if cfgFile == defaultConfigFile {
		if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
			return config.Default()
		}
	}
	return config.Load(cfgFile)
}

// loadConfig reads the configuration file, applies the global verbose flag
// and initializes the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, badConfig("", fmt.Sprintf("failed to load config: %v", err))
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	if _, err := logging.Init(cfg.Logging, nil); err != nil {
		return nil, badConfig("logging", err.Error())
	}

	return cfg, nil
}

// schemaDir resolves the directory schema files are read from. In Git mode
// the repository is cloned first and the path resolves inside the checkout.
func schemaDir(ctx context.Context, cfg *config.Config) (string, *git.Repository, error) {
	if !cfg.Schemas.Git.Enabled {
		return cfg.Schemas.Path, nil, nil
	}

	repo, err := git.NewRepository(&cfg.Schemas.Git)
	if err != nil {
		return "", nil, err
	}
	if err := repo.Clone(ctx); err != nil {
		return "", nil, fmt.Errorf("failed to clone schema repository: %w", err)
	}
	return repo.SchemaDir(), repo, nil
}

// loadSchemaSet loads the full schema set from the configured source.
func loadSchemaSet(ctx context.Context, cfg *config.Config) (*schema.Set, error) {
	dir, _, err := schemaDir(ctx, cfg)
	if err != nil {
		return nil, err
	}

	loader := schema.NewLoader(rule.DefaultCatalog(), slog.Default())
	src := source.NewFileSource(dir, loader, slog.Default())
	return src.Load(ctx)
}

// openAuditStorage creates the audit storage backend named by the config.
func openAuditStorage(cfg *config.AuditConfig) (audit.Storage, error) {
	switch cfg.Backend {
	case "sqlite", "":
		sqliteConfig := auditstorage.DefaultSQLiteConfig()
		if cfg.Path != "" {
			sqliteConfig.Path = cfg.Path
		}
		return auditstorage.NewSQLiteStorage(sqliteConfig)
	case "memory":
		return auditstorage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported audit backend: %s", cfg.Backend)
	}
}
