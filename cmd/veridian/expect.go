package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"veridian-hq/minerva/pkg/engine"
)

var expectFlags struct {
	with    []string
	unified bool
	format  string
}

var expectCmd = &cobra.Command{
	Use:   "expect <type> <field> <value>",
	Short: "Query the expected error for an out-of-context value",
	Long: `Query the error a candidate value would produce for a field, without
a full record.

The value is evaluated against the rules registered for the field on the
named type, in registration order, and the first failing rule's message is
printed. Cross-field rules such as confirmation need their counterpart
values supplied via --with.

By default rules are evaluated directly, without the applicability
conditions or the empty-value short-circuit of a full validation run.
Pass --unified for full-validation semantics.

Examples:
  # What error would this email produce?
  veridian expect user email "not-an-address"

  # Confirmation rules need the counterpart value
  veridian expect user password "secret1" --with password_confirmation=secret2

  # Full-validation semantics
  veridian expect user email "" --unified`,
	Args: cobra.ExactArgs(3),
	RunE: expectError,
}

func init() {
	rootCmd.AddCommand(expectCmd)

	expectCmd.Flags().StringArrayVar(&expectFlags.with, "with", nil, "extra field value as key=value (repeatable)")
	expectCmd.Flags().BoolVar(&expectFlags.unified, "unified", false, "apply full-validation semantics")
	expectCmd.Flags().StringVar(&expectFlags.format, "format", "text", "output format: text, json")
}

func expectError(cmd *cobra.Command, args []string) error {
	typeName, field, value := args[0], args[1], args[2]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	set, err := loadSchemaSet(ctx, cfg)
	if err != nil {
		return commandFailed("expect", err)
	}

	extra := make(map[string]interface{}, len(expectFlags.with))
	for _, pair := range expectFlags.with {
		key, val, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid --with value %q, expected key=value", pair)
		}
		extra[key] = val
	}

	engineConfig := engine.DefaultConfig()
	engineConfig.UnifyExpectedError = expectFlags.unified
	validator := engine.New(engineConfig, slog.Default())

	message, found, err := validator.ExpectedError(set, typeName, field, value, extra)
	if err != nil {
		return commandFailed("expect", err)
	}

	if expectFlags.format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		result := map[string]interface{}{
			"record_type": typeName,
			"field":       field,
			"found":       found,
		}
		if found {
			result["message"] = message
		}
		return encoder.Encode(result)
	}

	if found {
		fmt.Printf("✗ %s.%s: %s\n", typeName, field, message)
	} else {
		fmt.Printf("✓ %s.%s: no expected error\n", typeName, field)
	}
	return nil
}
