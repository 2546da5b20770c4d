package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"veridian-hq/minerva/pkg/audit/recorder"
	"veridian-hq/minerva/pkg/audit/retention"
	"veridian-hq/minerva/pkg/config"
	"veridian-hq/minerva/pkg/engine"
	"veridian-hq/minerva/pkg/records"
	"veridian-hq/minerva/pkg/rule"
	"veridian-hq/minerva/pkg/schema"
	"veridian-hq/minerva/pkg/schema/git"
	"veridian-hq/minerva/pkg/schema/source"
	"veridian-hq/minerva/pkg/telemetry/health"
	"veridian-hq/minerva/pkg/telemetry/metrics"
)

var watchFlags struct {
	records  string
	db       string
	table    string
	typeName string
	idColumn string
	interval time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the validation daemon",
	Long: `Run the validation daemon.

The daemon keeps the schema set loaded and hot, reloading it when the
schema files change on disk or in the configured Git repository. When a
record source is given, records are revalidated after every schema reload
and optionally on a fixed interval, with outcomes written to the audit
trail.

When metrics are enabled, the daemon serves Prometheus metrics and health
endpoints on the configured address.

Examples:
  # Watch schemas, serve metrics and health endpoints
  veridian watch

  # Revalidate a records file after every schema reload
  veridian watch --records records.yaml

  # Revalidate database rows every ten minutes
  veridian watch --db data/app.db --table users --type user --interval 10m`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.records, "records", "r", "", "records file to revalidate (YAML or JSON)")
	watchCmd.Flags().StringVar(&watchFlags.db, "db", "", "SQLite database to revalidate records from")
	watchCmd.Flags().StringVar(&watchFlags.table, "table", "", "table to read records from (with --db)")
	watchCmd.Flags().StringVar(&watchFlags.typeName, "type", "", "record type for database rows (with --db)")
	watchCmd.Flags().StringVar(&watchFlags.idColumn, "id-column", "id", "column holding the record identifier (with --db)")
	watchCmd.Flags().DurationVar(&watchFlags.interval, "interval", 0, "revalidation interval (0 revalidates only on reload)")
}

// schemaHolder is the daemon's shared view of the loaded schema set.
type schemaHolder struct {
	mu  sync.RWMutex
	set *schema.Set
}

func (h *schemaHolder) get() *schema.Set {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.set
}

func (h *schemaHolder) swap(set *schema.Set) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.set = set
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printWatchBanner(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Schema source
	dir, repo, err := schemaDir(ctx, cfg)
	if err != nil {
		return commandFailed("watch", err)
	}

	loader := schema.NewLoader(rule.DefaultCatalog(), slog.Default())
	schemaSource := source.NewFileSource(dir, loader, slog.Default())

	set, err := schemaSource.Load(ctx)
	if err != nil {
		return commandFailed("watch", err)
	}
	holder := &schemaHolder{set: set}
	fmt.Printf("✓ Schemas loaded (%d types, %d rules)\n", set.Len(), set.RuleCount())

	// Metrics
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Metrics, nil)
		collector.Schema().SetLoaded(set.Len(), set.RuleCount())
	}

	// Audit recording
	var auditRecorder *recorder.Recorder
	var pruner *retention.Pruner
	if cfg.Audit.Enabled {
		storage, err := openAuditStorage(&cfg.Audit)
		if err != nil {
			return commandFailed("watch", err)
		}
		defer storage.Close()

		recorderConfig := recorder.DefaultConfig()
		if cfg.Audit.Buffer > 0 {
			recorderConfig.AsyncBuffer = cfg.Audit.Buffer
		}
		auditRecorder = recorder.NewRecorder(storage, recorderConfig)
		defer auditRecorder.Close()

		if cfg.Audit.Retention.Schedule != "" {
			retentionConfig := retention.DefaultConfig()
			retentionConfig.RetentionDays = cfg.Audit.Retention.Days
			retentionConfig.PruneSchedule = cfg.Audit.Retention.Schedule
			retentionConfig.MaxRecords = cfg.Audit.Retention.MaxRecords
			pruner = retention.NewPruner(storage, retentionConfig)
			if err := pruner.Start(ctx); err != nil {
				slog.Warn("failed to start retention scheduler", "error", err)
			} else {
				defer pruner.Stop()
				if next := pruner.NextPruning(); next != nil {
					slog.Debug("audit retention scheduler started", "next_pruning", next)
				}
			}
		}

		fmt.Println("✓ Audit trail initialized")
	}

	// Optional record source for revalidation
	var recordSrc records.Source
	if watchFlags.records != "" || watchFlags.db != "" {
		src, closeSrc, err := newRecordSource(watchFlags.records, watchFlags.db,
			watchFlags.table, watchFlags.typeName, watchFlags.idColumn)
		if err != nil {
			return err
		}
		defer closeSrc()
		recordSrc = src
	}

	validator := engine.New(engine.DefaultConfig(), slog.Default())

	revalidate := func(ctx context.Context) {
		if recordSrc == nil {
			return
		}
		if err := revalidateRecords(ctx, validator, holder.get(), recordSrc, auditRecorder, collector); err != nil {
			slog.Error("revalidation failed", "error", err)
		}
	}

	reload := func(schemaDir string) error {
		newSet, err := schemaSource.Load(ctx)
		if err != nil {
			if collector != nil {
				collector.Schema().RecordReload(false)
			}
			return err
		}
		holder.swap(newSet)
		if collector != nil {
			collector.Schema().RecordReload(true)
			collector.Schema().SetLoaded(newSet.Len(), newSet.RuleCount())
		}
		slog.Info("schemas reloaded", "types", newSet.Len(), "rules", newSet.RuleCount())
		revalidate(ctx)
		return nil
	}

	// Hot reload: Git polling when a repository is configured, file
	// watching otherwise.
	if repo != nil && cfg.Schemas.Git.PollSeconds > 0 {
		interval := time.Duration(cfg.Schemas.Git.PollSeconds) * time.Second
		poller := git.NewPoller(repo, interval, reload)
		if err := poller.Start(ctx); err != nil {
			return commandFailed("watch", err)
		}
		defer poller.Stop()
		fmt.Printf("✓ Polling %s every %s\n", cfg.Schemas.Git.Repository, interval)
	} else if cfg.Schemas.Watch {
		events, err := schemaSource.Watch(ctx)
		if err != nil {
			return commandFailed("watch", err)
		}
		go func() {
			for ev := range events {
				if ev.Err != nil {
					slog.Error("schema watch error", "error", ev.Err)
					continue
				}
				if err := reload(dir); err != nil {
					slog.Error("schema reload failed", "error", err)
				}
			}
		}()
		fmt.Printf("✓ Watching %s for changes\n", dir)
	}

	// Initial revalidation, then the interval loop.
	revalidate(ctx)
	if watchFlags.interval > 0 && recordSrc != nil {
		go func() {
			ticker := time.NewTicker(watchFlags.interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					revalidate(ctx)
				}
			}
		}()
	}

	// Metrics and health HTTP server
	errChan := make(chan error, 1)
	var srv *http.Server
	if cfg.Metrics.Enabled {
		checker := health.New(0)
		checker.RegisterCheck("schemas", func(ctx context.Context) error {
			if holder.get().Len() == 0 {
				return fmt.Errorf("no schemas loaded")
			}
			return nil
		})

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, collector.Handler())
		mux.HandleFunc("/healthz", checker.ReadinessHandler())
		mux.HandleFunc("/livez", checker.LivenessHandler())
		mux.HandleFunc("/version", health.VersionHandler(Version, GitCommit, BuildDate))

		srv = &http.Server{
			Addr:    cfg.Metrics.Address,
			Handler: mux,
		}
		go func() {
			slog.Info("starting metrics server", "address", cfg.Metrics.Address)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("metrics server error: %w", err)
			}
		}()

		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Metrics.Address, cfg.Metrics.Path)
		fmt.Printf("✓ Health endpoint: http://%s/healthz\n", cfg.Metrics.Address)
	}

	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for shutdown signal or server error
	sigChan := shutdownSignals()

	select {
	case err := <-errChan:
		return commandFailed("watch", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		if srv != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("shutdown failed", "error", err)
				return commandFailed("watch", err)
			}
		}

		fmt.Println("✓ Daemon stopped")
		return nil
	}
}

// revalidateRecords runs every record from the source through the current
// schema set, recording outcomes in the audit trail and metrics.
func revalidateRecords(ctx context.Context, validator *engine.Validator, set *schema.Set,
	src records.Source, auditRecorder *recorder.Recorder, collector *metrics.Collector) error {

	items, err := src.Load(ctx)
	if err != nil {
		return err
	}

	invalid := 0
	for _, item := range items {
		ts, ok := set.Get(item.Type)
		if !ok {
			slog.Warn("skipping record of unknown type", "record_type", item.Type, "record_id", item.ID)
			continue
		}

		rec := engine.NewValues(item.Values)
		if item.Persisted {
			rec.MarkPersisted()
		}

		report, err := validator.Validate(ts, rec)
		if err != nil {
			return err
		}

		if !report.Valid() {
			invalid++
		}
		if collector != nil {
			collector.Validation().RecordReport(report)
		}
		if auditRecorder != nil {
			if err := auditRecorder.Record(report, item.ID); err != nil {
				slog.Warn("failed to record audit entry", "record_id", item.ID, "error", err)
			}
		}
	}

	slog.Info("revalidation complete", "records", len(items), "invalid", invalid)
	return nil
}

func printWatchBanner(cfg *config.Config) {
	fmt.Printf("Veridian Minerva v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	if cfg.Schemas.Git.Enabled {
		slog.Debug("schema mode", "mode", "git", "repository", cfg.Schemas.Git.Repository)
	} else {
		slog.Debug("schema mode", "mode", "file", "path", cfg.Schemas.Path)
	}

	if cfg.Audit.Enabled {
		slog.Debug("audit enabled", "backend", cfg.Audit.Backend)
	}
}
