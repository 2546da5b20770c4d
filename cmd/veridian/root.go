package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// defaultConfigFile is looked up relative to the working directory when
// no --config flag is given.
const defaultConfigFile = "config.yaml"

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "veridian",
	Short: "Veridian Minerva - declarative record validation engine",
	Long: `Veridian Minerva is an open-source validation engine that evaluates
named, reusable rules against record fields.

Schemas declare which rules guard which fields of which record types,
including when each rule applies (on create, on update, or under a named
condition). The engine validates records from files or databases, records
every run in an audit trail, and can answer what error an out-of-context
value would produce.

For more information, visit: https://github.com/veridian-hq/minerva`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Disable default completion command (we'll add our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
