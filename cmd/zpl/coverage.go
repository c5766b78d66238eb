package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var coverageFormat string

func init() {
	coverageCmd.Flags().StringVar(&coverageFormat, "format", "text", "output format (text|json)")
}

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Report spec-field coverage across the project's spec directory",
	Args:  cobra.NoArgs,
	RunE:  runCoverage,
}

func runCoverage(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	schema, err := loadSpecSchema(cfg)
	if err != nil {
		return err
	}
	artifacts, _, err := compileSpecDir(cmd.Context(), cfg, schema)
	if err != nil {
		return fmt.Errorf("coverage: %w", err)
	}

	if coverageFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(artifacts.Coverage)
	}

	fmt.Fprintf(os.Stdout, "%d command(s)\n", artifacts.Coverage.TotalCommands)
	for _, f := range artifacts.Coverage.Fields {
		fmt.Fprintf(os.Stdout, "  %-20s present=%-4d missing=%d\n", f.Field, f.Present, f.Missing)
	}
	return nil
}
