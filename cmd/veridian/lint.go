package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"veridian-hq/minerva/pkg/rule"
	"veridian-hq/minerva/pkg/schema"
)

var lintFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate schema files",
	Long: `Validate schema files for syntax and configuration errors.

The lint command parses schema files and performs comprehensive validation:
  - YAML syntax validation
  - Schema structure validation
  - Rule validation (known rule names, parameter types)
  - Duplicate detection (rule names per field, type names per set)
  - Parent type resolution

Examples:
  # Lint single file
  veridian lint --file schemas.yaml

  # Lint directory
  veridian lint --dir schemas/

  # Strict mode (warnings as errors)
  veridian lint --file schemas.yaml --strict

  # JSON output for CI/CD
  veridian lint --file schemas.yaml --format json`,
	RunE: lintSchemas,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "schema file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of schema files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

func lintSchemas(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string

	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}

	if lintFlags.dir != "" {
		matches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.yaml"))
		if err != nil {
			return fmt.Errorf("failed to list schema files: %w", err)
		}
		ymlMatches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.yml"))
		if err != nil {
			return fmt.Errorf("failed to list schema files: %w", err)
		}
		files = append(files, matches...)
		files = append(files, ymlMatches...)
	}

	if len(files) == 0 {
		return fmt.Errorf("no schema files found")
	}

	results := make([]LintResult, 0, len(files))

	for _, file := range files {
		result := lintSchemaFile(file)
		results = append(results, result)
	}

	// Output results
	if lintFlags.format == "json" {
		return outputLintJSON(results)
	}
	return outputLintText(results, lintFlags.strict)
}

// LintResult represents the validation result for a single schema file.
type LintResult struct {
	File     string        `json:"file"`
	Types    int           `json:"types"`
	Rules    int           `json:"rules"`
	Valid    bool          `json:"valid"`
	Errors   []LintMessage `json:"errors,omitempty"`
	Warnings []LintMessage `json:"warnings,omitempty"`
}

// LintMessage represents a single error or warning.
type LintMessage struct {
	Type     string `json:"type,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func lintSchemaFile(path string) LintResult {
	result := LintResult{
		File:  path,
		Valid: true,
	}

	loader := schema.NewLoader(rule.DefaultCatalog(), slog.Default())

	set, err := loader.LoadFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, LintMessage{
			Message:  err.Error(),
			Severity: "error",
		})
		return result
	}

	result.Types = set.Len()
	result.Rules = set.RuleCount()

	// A type with no rule-bearing fields usually means a half-finished
	// edit. Fields without rules do not survive loading, so a type whose
	// fields are all empty lands here too.
	for _, ts := range set.Types() {
		if len(ts.Fields()) == 0 {
			result.Warnings = append(result.Warnings, LintMessage{
				Type:     ts.Name(),
				Message:  fmt.Sprintf("type %q declares no fields with rules", ts.Name()),
				Severity: "warning",
			})
		}
	}

	return result
}

func outputLintText(results []LintResult, strict bool) error {
	totalErrors := 0
	totalWarnings := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if len(result.Errors) == 0 && len(result.Warnings) == 0 {
			fmt.Println("✓ Syntax valid")
			fmt.Printf("✓ %d type(s), %d rule(s) configured\n", result.Types, result.Rules)
		}

		for _, msg := range result.Errors {
			fmt.Printf("✗ Error: %s\n", msg.Message)
			totalErrors++
		}

		for _, msg := range result.Warnings {
			fmt.Printf("⚠  Warning: %s\n", msg.Message)
			totalWarnings++
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d error(s), %d warning(s)\n", totalErrors, totalWarnings)

	if strict && totalWarnings > 0 {
		fmt.Println("  Strict mode enabled: treating warnings as errors")
		return commandFailed("lint", fmt.Errorf("validation failed"))
	}

	if totalErrors > 0 {
		return commandFailed("lint", fmt.Errorf("validation failed"))
	}

	return nil
}

func outputLintJSON(results []LintResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(results); err != nil {
		return err
	}

	for _, result := range results {
		if !result.Valid {
			return commandFailed("lint", fmt.Errorf("validation failed"))
		}
	}

	return nil
}
