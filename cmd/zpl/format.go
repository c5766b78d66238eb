package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplspec"
	"zplspec/internal/format"
)

var (
	formatIndent      string
	formatCompaction  string
	formatComments    string
	formatWrite       bool
	formatDiagFormat  string
	formatIndentWidth int
	formatUseTabs     bool
)

func init() {
	formatCmd.Flags().StringVar(&formatIndent, "indent", "label", "indent mode (none|label|field)")
	formatCmd.Flags().StringVar(&formatCompaction, "compaction", "field", "compaction mode (none|field)")
	formatCmd.Flags().StringVar(&formatComments, "comment-placement", "line", "^FX comment placement (inline|line)")
	formatCmd.Flags().IntVar(&formatIndentWidth, "indent-width", 4, "spaces per indent level")
	formatCmd.Flags().BoolVar(&formatUseTabs, "tabs", false, "indent with tabs instead of spaces")
	formatCmd.Flags().BoolVar(&formatWrite, "write", false, "rewrite the file in place instead of printing to stdout")
	formatCmd.Flags().StringVar(&formatDiagFormat, "diag-format", "pretty", "diagnostic output format for parse errors (pretty|json)")
}

var formatCmd = &cobra.Command{
	Use:   "format <file.zpl>",
	Short: "Normalize a label source file's layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormat,
}

func runFormat(cmd *cobra.Command, args []string) error {
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

	opts, err := parseFormatOptions()
	if err != nil {
		return err
	}

	path := args[0]
	src, err := os.ReadFile(path) // #nosec G304 -- path is a CLI argument
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	parsed := zpl.ParseWithTables(string(src), tbl)
	if hasErrors, renderErr := renderDiagnostics(cmd, parsed.Diagnostics, parsed.Files, maxDiagnostics, formatDiagFormat); renderErr != nil {
		return renderErr
	} else if hasErrors {
		cmd.SilenceUsage = true
		return fmt.Errorf("format: %s has syntax errors, refusing to format", path)
	}

	out, err := zpl.Format(parsed.Ast, parsed.File, tbl, opts)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	if !formatWrite {
		_, writeErr := os.Stdout.WriteString(out)
		return writeErr
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	return os.WriteFile(path, []byte(out), info.Mode().Perm())
}

func parseFormatOptions() (zpl.FormatOptions, error) {
	var opts zpl.FormatOptions

	switch formatIndent {
	case "none":
		opts.Indent = format.IndentNone
	case "label":
		opts.Indent = format.IndentLabel
	case "field":
		opts.Indent = format.IndentField
	default:
		return opts, fmt.Errorf("format: unsupported --indent %q", formatIndent)
	}

	switch formatCompaction {
	case "none":
		opts.Compaction = format.CompactionNone
	case "field":
		opts.Compaction = format.CompactionField
	default:
		return opts, fmt.Errorf("format: unsupported --compaction %q", formatCompaction)
	}

	switch formatComments {
	case "inline":
		opts.CommentPlacement = format.CommentInline
	case "line":
		opts.CommentPlacement = format.CommentLine
	default:
		return opts, fmt.Errorf("format: unsupported --comment-placement %q", formatComments)
	}

	opts.IndentWidth = formatIndentWidth
	opts.UseTabs = formatUseTabs
	return opts, nil
}
