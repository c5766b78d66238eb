package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplspec"
	"zplspec/internal/diag"
)

var lintFormat string

func init() {
	lintCmd.Flags().StringVar(&lintFormat, "format", "pretty", "diagnostic output format (pretty|json)")
}

var lintCmd = &cobra.Command{
	Use:   "lint <file.zpl>",
	Short: "Validate a label source file against the command table and an optional printer profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	tbl, err := loadCommandTables(cmd, cfg)
	if err != nil {
		return err
	}
	prof, err := loadPrinterProfile(cmd, cfg)
	if err != nil {
		return err
	}
	maxDiagnostics, err := resolveMaxDiagnostics(cmd, cfg)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(args[0]) // #nosec G304 -- path is a CLI argument
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}

	parsed := zpl.ParseWithTables(string(src), tbl)
	res := zpl.Validate(parsed.Ast, tbl, prof)

	all := make([]*diag.Diagnostic, 0, len(parsed.Diagnostics)+len(res.Issues))
	all = append(all, parsed.Diagnostics...)
	all = append(all, res.Issues...)

	hasErrors, err := renderDiagnostics(cmd, all, parsed.Files, maxDiagnostics, lintFormat)
	if err != nil {
		return err
	}
	if hasErrors {
		cmd.SilenceUsage = true
		return fmt.Errorf("")
	}
	return nil
}
