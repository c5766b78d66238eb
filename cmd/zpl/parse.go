package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplspec"
)

var parseFormat string

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "pretty", "diagnostic output format (pretty|json)")
}

var parseCmd = &cobra.Command{
	Use:   "parse <file.zpl>",
	Short: "Parse a label source file and report lexer/parser diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("parse: %w", err)
	}

	result := zpl.ParseWithTables(string(src), tbl)
	fmt.Fprintf(os.Stdout, "%d label(s), %d node(s)\n", len(result.Ast.Labels), result.Ast.Nodes.Len())
	for i, label := range result.Ast.Labels {
		status := "closed"
		if label.Unclosed {
			status = "unclosed"
		}
		if label.Implicit {
			status = "implicit"
		}
		fmt.Fprintf(os.Stdout, "  label %d: %d node(s), %s\n", i, len(label.Nodes), status)
	}

	hasErrors, err := renderDiagnostics(cmd, result.Diagnostics, result.Files, maxDiagnostics, parseFormat)
	if err != nil {
		return err
	}
	if hasErrors {
		cmd.SilenceUsage = true
		return fmt.Errorf("")
	}
	return nil
}
