package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"veridian-hq/minerva/pkg/audit"
	"veridian-hq/minerva/pkg/audit/retention"
)

var auditFlags struct {
	backend    string
	timeRange  string
	recordType string
	recordID   string
	runID      string
	ruleName   string
	field      string
	valid      string
	limit      int
	offset     int
	format     string
	output     string

	days        int
	maxRecords  int64
	archive     bool
	archivePath string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the validation audit trail",
	Long: `Query and prune the validation audit trail.

The audit command provides access to the audit database for querying
past validation runs and enforcing retention.

Subcommands:
  query   - Query audit records with filters
  prune   - Delete records past the retention policy

Examples:
  # Query last 24 hours
  veridian audit query --time-range "2026-08-25T00:00:00Z/2026-08-26T00:00:00Z"

  # Filter by record type and outcome
  veridian audit query --record-type user --valid false

  # Export to JSON file
  veridian audit query --format json --output audit.json`,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query audit records",
	Long: `Query audit records with various filters.

Time Range Format:
  RFC3339 interval format: "start/end"
  Example: "2026-08-25T00:00:00Z/2026-08-26T00:00:00Z"

Examples:
  # Query specific time range
  veridian audit query --time-range "2026-08-25T00:00:00Z/2026-08-26T00:00:00Z"

  # Filter by record type and identifier
  veridian audit query --record-type user --record-id user-123

  # Filter by violated rule
  veridian audit query --rule email_format --field email

  # Export to JSON
  veridian audit query --format json --output audit.json`,
	RunE: queryAudit,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Prune audit records",
	Long: `Delete audit records past the retention policy.

Pruning runs in two phases: age-based (records older than the retention
period) and count-based (oldest records beyond the maximum count).
Retention settings come from the configuration file and can be
overridden with flags.`,
	RunE: pruneAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditQueryCmd, auditPruneCmd)

	// Flags for query command
	auditQueryCmd.Flags().StringVar(&auditFlags.backend, "backend", "", "backend: sqlite, memory (uses config if not specified)")
	auditQueryCmd.Flags().StringVar(&auditFlags.timeRange, "time-range", "", "time range (RFC3339 interval: start/end)")
	auditQueryCmd.Flags().StringVar(&auditFlags.recordType, "record-type", "", "filter by record type")
	auditQueryCmd.Flags().StringVar(&auditFlags.recordID, "record-id", "", "filter by record identifier")
	auditQueryCmd.Flags().StringVar(&auditFlags.runID, "run-id", "", "filter by validation run")
	auditQueryCmd.Flags().StringVar(&auditFlags.ruleName, "rule", "", "filter by violated rule name")
	auditQueryCmd.Flags().StringVar(&auditFlags.field, "field", "", "filter by violated field")
	auditQueryCmd.Flags().StringVar(&auditFlags.valid, "valid", "", "filter by outcome (true, false)")
	auditQueryCmd.Flags().IntVar(&auditFlags.limit, "limit", 100, "max results")
	auditQueryCmd.Flags().IntVar(&auditFlags.offset, "offset", 0, "pagination offset")
	auditQueryCmd.Flags().StringVar(&auditFlags.format, "format", "text", "output format: text, json")
	auditQueryCmd.Flags().StringVarP(&auditFlags.output, "output", "o", "", "output file (default: stdout)")

	// Flags for prune command
	auditPruneCmd.Flags().StringVar(&auditFlags.backend, "backend", "", "backend: sqlite, memory")
	auditPruneCmd.Flags().IntVar(&auditFlags.days, "days", -1, "override retention days (0 disables age pruning)")
	auditPruneCmd.Flags().Int64Var(&auditFlags.maxRecords, "max-records", -1, "override max record count (0 means unlimited)")
	auditPruneCmd.Flags().BoolVar(&auditFlags.archive, "archive", false, "archive records to JSON before deletion")
	auditPruneCmd.Flags().StringVar(&auditFlags.archivePath, "archive-path", "data/archives/", "directory for archived records")
}

func queryAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if auditFlags.backend != "" {
		cfg.Audit.Backend = auditFlags.backend
	}

	storage, err := openAuditStorage(&cfg.Audit)
	if err != nil {
		return commandFailed("audit query", err)
	}
	defer storage.Close()

	query, err := buildAuditQuery()
	if err != nil {
		return err
	}

	ctx := context.Background()
	records, err := storage.Query(ctx, query)
	if err != nil {
		return commandFailed("audit query", err)
	}

	output := os.Stdout
	if auditFlags.output != "" {
		f, err := os.Create(auditFlags.output)
		if err != nil {
			return commandFailed("audit query", err)
		}
		defer f.Close()
		output = f
	}

	if auditFlags.format == "json" {
		return outputAuditJSON(output, records)
	}
	return outputAuditText(output, records, query)
}

func pruneAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if auditFlags.backend != "" {
		cfg.Audit.Backend = auditFlags.backend
	}

	storage, err := openAuditStorage(&cfg.Audit)
	if err != nil {
		return commandFailed("audit prune", err)
	}
	defer storage.Close()

	retentionConfig := &retention.Config{
		RetentionDays:       cfg.Audit.Retention.Days,
		ArchiveBeforeDelete: auditFlags.archive,
		ArchivePath:         auditFlags.archivePath,
		MaxRecords:          cfg.Audit.Retention.MaxRecords,
	}
	if auditFlags.days >= 0 {
		retentionConfig.RetentionDays = auditFlags.days
	}
	if auditFlags.maxRecords >= 0 {
		retentionConfig.MaxRecords = auditFlags.maxRecords
	}

	pruner := retention.NewPruner(storage, retentionConfig)

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		return commandFailed("audit prune", err)
	}

	fmt.Printf("✓ Pruned %d record(s)\n", deleted)
	return nil
}

// buildAuditQuery translates the query flags into a storage query.
func buildAuditQuery() (*audit.Query, error) {
	query := &audit.Query{
		RecordType: auditFlags.recordType,
		RecordID:   auditFlags.recordID,
		RunID:      auditFlags.runID,
		RuleName:   auditFlags.ruleName,
		Field:      auditFlags.field,
		Limit:      auditFlags.limit,
		Offset:     auditFlags.offset,
	}

	if auditFlags.timeRange != "" {
		start, end, err := parseTimeRange(auditFlags.timeRange)
		if err != nil {
			return nil, err
		}
		query.StartTime = &start
		query.EndTime = &end
	}

	switch auditFlags.valid {
	case "":
	case "true":
		valid := true
		query.Valid = &valid
	case "false":
		valid := false
		query.Valid = &valid
	default:
		return nil, fmt.Errorf("invalid --valid value %q, expected true or false", auditFlags.valid)
	}

	return query, nil
}

// parseTimeRange parses an RFC3339 interval of the form "start/end".
func parseTimeRange(timeRange string) (time.Time, time.Time, error) {
	startStr, endStr, found := strings.Cut(timeRange, "/")
	if !found {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time range %q, expected start/end", timeRange)
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("time range end %s is before start %s", endStr, startStr)
	}

	return start, end, nil
}

func outputAuditText(output *os.File, records []*audit.Record, query *audit.Query) error {
	fmt.Fprintln(output, "Querying audit records...")
	fmt.Fprintln(output)

	if query.StartTime != nil && query.EndTime != nil {
		fmt.Fprintf(output, "Time range: %s to %s\n",
			query.StartTime.Format(time.RFC3339),
			query.EndTime.Format(time.RFC3339))
	}
	fmt.Fprintf(output, "Total records: %d\n", len(records))
	fmt.Fprintln(output)

	if len(records) == 0 {
		fmt.Fprintln(output, "No records found.")
		return nil
	}

	for i, record := range records {
		if i > 0 {
			fmt.Fprintln(output)
		}

		fmt.Fprintf(output, "Run ID: %s\n", record.RunID)
		fmt.Fprintf(output, "Started: %s\n", record.StartedAt.Format(time.RFC3339))
		fmt.Fprintf(output, "Record Type: %s\n", record.RecordType)
		if record.RecordID != "" {
			fmt.Fprintf(output, "Record ID: %s\n", record.RecordID)
		}
		if record.Valid {
			fmt.Fprintf(output, "Outcome: valid\n")
		} else {
			fmt.Fprintf(output, "Outcome: %d violation(s)\n", record.ViolationCount)
			for _, v := range record.Violations {
				fmt.Fprintf(output, "  %s: %s [%s]\n", v.Field, v.Message, v.Rule)
			}
		}

		// Show limited output for large result sets
		if i >= 9 && len(records) > 10 {
			remaining := len(records) - 10
			fmt.Fprintln(output)
			fmt.Fprintf(output, "... and %d more records\n", remaining)
			fmt.Fprintf(output, "Use --limit and --offset for pagination.\n")
			break
		}
	}

	return nil
}

func outputAuditJSON(output *os.File, records []*audit.Record) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	result := map[string]interface{}{
		"total_records": len(records),
		"records":       records,
	}

	return encoder.Encode(result)
}
