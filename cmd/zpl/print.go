package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zplspec/internal/buildpipeline"
	"zplspec/internal/ui"
)

var (
	printJobs       int
	printSkipFormat bool
	printWrite      bool
	printNoProgress bool
	printDiagFormat string
)

func init() {
	printCmd.Flags().IntVar(&printJobs, "jobs", 0, "maximum concurrent files (0 uses GOMAXPROCS)")
	printCmd.Flags().BoolVar(&printSkipFormat, "skip-format", false, "parse and validate only, skip the format stage")
	printCmd.Flags().BoolVar(&printWrite, "write", false, "rewrite each file in place with its formatted output")
	printCmd.Flags().BoolVar(&printNoProgress, "no-progress", false, "disable the interactive progress display")
	printCmd.Flags().StringVar(&printDiagFormat, "diag-format", "pretty", "diagnostic output format (pretty|json)")
}

var printCmd = &cobra.Command{
	Use:   "print <file.zpl>...",
	Short: "Parse, validate, and format one or more label source files concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
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
	formatOpts, err := parseFormatOptions()
	if err != nil {
		return err
	}

	req := buildpipeline.PrintRequest{
		Files:      args,
		Tables:     tbl,
		Profile:    prof,
		Format:     formatOpts,
		SkipFormat: printSkipFormat,
		Jobs:       printJobs,
	}

	var results []buildpipeline.PrintResult
	if printNoProgress || !isTerminal(os.Stdout) {
		results, err = buildpipeline.Run(cmd.Context(), req)
	} else {
		events := make(chan buildpipeline.Event, 64)
		req.Progress = buildpipeline.ChannelSink{Ch: events}

		program := tea.NewProgram(ui.NewProgressModel("print", args, events))
		runErr := make(chan error, 1)
		go func() {
			defer close(events)
			r, e := buildpipeline.Run(cmd.Context(), req)
			results = r
			runErr <- e
		}()
		_, progErr := program.Run()
		if err = <-runErr; err == nil {
			err = progErr
		}
	}
	if err != nil {
		return fmt.Errorf("print: %w", err)
	}

	hasFailures := false
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			hasFailures = true
			continue
		}
		if len(res.Issues) > 0 {
			fileHasErrors, renderErr := renderDiagnostics(cmd, res.Issues, res.Files, maxDiagnostics, printDiagFormat)
			if renderErr != nil {
				return renderErr
			}
			if fileHasErrors {
				hasFailures = true
			}
		}
		if !res.OK || printSkipFormat || res.Formatted == "" {
			continue
		}
		if !printWrite {
			fmt.Fprintf(os.Stdout, "----- %s -----\n%s", res.Path, res.Formatted)
			continue
		}
		info, statErr := os.Stat(res.Path)
		if statErr != nil {
			return fmt.Errorf("print: %w", statErr)
		}
		if writeErr := os.WriteFile(res.Path, []byte(res.Formatted), info.Mode().Perm()); writeErr != nil {
			return fmt.Errorf("print: %w", writeErr)
		}
	}

	if hasFailures {
		cmd.SilenceUsage = true
		return fmt.Errorf("")
	}
	return nil
}
