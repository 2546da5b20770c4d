package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"veridian-hq/minerva/pkg/audit"
	"veridian-hq/minerva/pkg/audit/recorder"
	"veridian-hq/minerva/pkg/engine"
	"veridian-hq/minerva/pkg/records"
)

var validateFlags struct {
	records  string
	db       string
	table    string
	typeName string
	idColumn string
	format   string
	output   string
	noAudit  bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate records against the configured schemas",
	Long: `Validate records against the configured schemas.

Records are read from a YAML or JSON file, or from a SQLite table. Each
record is validated against the schema registered for its type, and the
outcome is written to the audit trail when auditing is enabled.

Examples:
  # Validate records from a file
  veridian validate --records records.yaml

  # Validate rows of a SQLite table as records of type "user"
  veridian validate --db data/app.db --table users --type user

  # JSON output for CI/CD
  veridian validate --records records.yaml --format json

  # Skip audit recording for this run
  veridian validate --records records.yaml --no-audit`,
	RunE: validateRecords,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.records, "records", "r", "", "records file (YAML or JSON)")
	validateCmd.Flags().StringVar(&validateFlags.db, "db", "", "SQLite database to read records from")
	validateCmd.Flags().StringVar(&validateFlags.table, "table", "", "table to read records from (with --db)")
	validateCmd.Flags().StringVar(&validateFlags.typeName, "type", "", "record type for database rows (with --db)")
	validateCmd.Flags().StringVar(&validateFlags.idColumn, "id-column", "id", "column holding the record identifier (with --db)")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", "", "output file (default: stdout)")
	validateCmd.Flags().BoolVar(&validateFlags.noAudit, "no-audit", false, "skip audit recording for this run")
}

// RecordResult is the per-record outcome reported by validate.
type RecordResult struct {
	RecordType string            `json:"record_type"`
	RecordID   string            `json:"record_id,omitempty"`
	Valid      bool              `json:"valid"`
	Violations []audit.Violation `json:"violations,omitempty"`
	Duration   time.Duration     `json:"duration"`
}

func validateRecords(cmd *cobra.Command, args []string) error {
	src, closeSrc, err := newRecordSource(validateFlags.records, validateFlags.db,
		validateFlags.table, validateFlags.typeName, validateFlags.idColumn)
	if err != nil {
		return err
	}
	defer closeSrc()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	set, err := loadSchemaSet(ctx, cfg)
	if err != nil {
		return commandFailed("validate", err)
	}

	items, err := src.Load(ctx)
	if err != nil {
		return commandFailed("validate", err)
	}

	// Audit recording is best effort: a broken audit store must not stop
	// a validation run.
	var auditRecorder *recorder.Recorder
	if cfg.Audit.Enabled && !validateFlags.noAudit {
		storage, err := openAuditStorage(&cfg.Audit)
		if err != nil {
			slog.Warn("audit storage unavailable, skipping audit recording", "error", err)
		} else {
			defer storage.Close()
			recorderConfig := recorder.DefaultConfig()
			if cfg.Audit.Buffer > 0 {
				recorderConfig.AsyncBuffer = cfg.Audit.Buffer
			}
			auditRecorder = recorder.NewRecorder(storage, recorderConfig)
			defer auditRecorder.Close()
		}
	}

	validator := engine.New(engine.DefaultConfig(), slog.Default())

	results := make([]RecordResult, 0, len(items))
	invalid := 0

	for _, item := range items {
		ts, ok := set.Get(item.Type)
		if !ok {
			return commandFailed("validate", &engine.UnknownTypeError{Type: item.Type})
		}

		rec := engine.NewValues(item.Values)
		if item.Persisted {
			rec.MarkPersisted()
		}

		report, err := validator.Validate(ts, rec)
		if err != nil {
			return commandFailed("validate", err)
		}

		if auditRecorder != nil {
			if err := auditRecorder.Record(report, item.ID); err != nil {
				slog.Warn("failed to record audit entry", "record_id", item.ID, "error", err)
			}
		}

		if !report.Valid() {
			invalid++
		}
		violations := make([]audit.Violation, 0, len(report.Violations))
		for _, v := range report.Violations {
			violations = append(violations, audit.Violation{
				Field:   v.Field,
				Rule:    v.Rule,
				Message: v.Message,
			})
		}
		results = append(results, RecordResult{
			RecordType: report.RecordType,
			RecordID:   item.ID,
			Valid:      report.Valid(),
			Violations: violations,
			Duration:   report.Duration,
		})
	}

	output := os.Stdout
	if validateFlags.output != "" {
		f, err := os.Create(validateFlags.output)
		if err != nil {
			return commandFailed("validate", err)
		}
		defer f.Close()
		output = f
	}

	if validateFlags.format == "json" {
		err = outputValidateJSON(output, results)
	} else {
		err = outputValidateText(output, results)
	}
	if err != nil {
		return commandFailed("validate", err)
	}

	if invalid > 0 {
		return commandFailed("validate", fmt.Errorf("%d of %d record(s) invalid", invalid, len(results)))
	}
	return nil
}

// newRecordSource builds a record source from the file and database flags.
func newRecordSource(recordsPath, db, table, typeName, idColumn string) (records.Source, func(), error) {
	noop := func() {}

	if recordsPath != "" && db != "" {
		return nil, noop, fmt.Errorf("--records and --db are mutually exclusive")
	}

	if recordsPath != "" {
		return records.NewFileSource(recordsPath), noop, nil
	}

	if db != "" {
		src, err := records.NewSQLiteSource(records.SQLiteSourceConfig{
			Path:     db,
			Table:    table,
			Type:     typeName,
			IDColumn: idColumn,
		})
		if err != nil {
			return nil, noop, err
		}
		return src, func() { _ = src.Close() }, nil
	}

	return nil, noop, fmt.Errorf("either --records or --db must be specified")
}

func outputValidateText(output *os.File, results []RecordResult) error {
	valid := 0
	for _, r := range results {
		if r.Valid {
			valid++
		}
	}

	fmt.Fprintf(output, "Validated %d record(s): %d valid, %d invalid\n", len(results), valid, len(results)-valid)
	fmt.Fprintln(output)

	for _, r := range results {
		if r.Valid {
			continue
		}

		if r.RecordID != "" {
			fmt.Fprintf(output, "✗ %s %s\n", r.RecordType, r.RecordID)
		} else {
			fmt.Fprintf(output, "✗ %s\n", r.RecordType)
		}
		for _, v := range r.Violations {
			fmt.Fprintf(output, "    %s: %s [%s]\n", v.Field, v.Message, v.Rule)
		}
	}

	return nil
}

func outputValidateJSON(output *os.File, results []RecordResult) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	valid := 0
	for _, r := range results {
		if r.Valid {
			valid++
		}
	}

	result := map[string]interface{}{
		"total_records":   len(results),
		"valid_records":   valid,
		"invalid_records": len(results) - valid,
		"records":         results,
	}

	return encoder.Encode(result)
}
