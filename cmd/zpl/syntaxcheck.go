package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplspec"
)

var syntaxCheckFormat string

func init() {
	syntaxCheckCmd.Flags().StringVar(&syntaxCheckFormat, "format", "pretty", "diagnostic output format (pretty|json)")
}

var syntaxCheckCmd = &cobra.Command{
	Use:   "syntax-check <file.zpl>",
	Short: "Check a file parses cleanly, without running the validator",
	Args:  cobra.ExactArgs(1),
	RunE:  runSyntaxCheck,
}

func runSyntaxCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	tbl, err := loadCommandTables(cmd, cfg)
	if err != nil {
		return err
	}
	maxDiagnostics, err := resolveMaxDiagnostics(cmd, cfg)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(args[0]) // #nosec G304 -- path is a CLI argument
	if err != nil {
		return fmt.Errorf("syntax-check: %w", err)
	}

	result := zpl.ParseWithTables(string(src), tbl)
	hasErrors, err := renderDiagnostics(cmd, result.Diagnostics, result.Files, maxDiagnostics, syntaxCheckFormat)
	if err != nil {
		return err
	}
	if hasErrors {
		cmd.SilenceUsage = true
		return fmt.Errorf("")
	}
	return nil
}
