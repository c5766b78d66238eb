package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplspec/internal/config"
	"zplspec/internal/diag"
	"zplspec/internal/diagfmt"
	"zplspec/internal/profile"
	"zplspec/internal/source"
	"zplspec/internal/tables"
)

// loadProjectConfig resolves the zplspec.toml manifest: an explicit
// --config flag wins, otherwise the working directory is walked upward;
// finding nothing falls back to config.Default() so every command works
// in a directory with no manifest at all.
func loadProjectConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if explicit != "" {
		return config.Load(explicit)
	}
	cfg, _, err := config.LoadFromDir(".")
	return cfg, err
}

// loadCommandTables resolves the command table a parse/validate run
// should use: an explicit --tables flag wins, then the project config's
// tables_out (if that artifact has already been generated by genspec),
// otherwise the built-in table compiled into the binary.
func loadCommandTables(cmd *cobra.Command, cfg config.Config) (*tables.ParserTables, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("tables")
	if err != nil {
		return nil, err
	}
	path := explicit
	if path == "" {
		if _, statErr := os.Stat(cfg.TablesOut); statErr == nil {
			path = cfg.TablesOut
		}
	}
	if path == "" {
		return tables.Builtin(), nil
	}
	return tables.Load(path)
}

// loadPrinterProfile resolves an optional printer profile: an explicit
// --profile flag wins, then the project config's profile_path. Neither
// set is not an error; validation simply runs without profile gates.
func loadPrinterProfile(cmd *cobra.Command, cfg config.Config) (*profile.Profile, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("profile")
	if err != nil {
		return nil, err
	}
	path := explicit
	if path == "" {
		path = cfg.ProfilePath
	}
	if path == "" {
		return nil, nil
	}
	return profile.Load(path)
}

// resolveMaxDiagnostics applies CLI-flag > config-value > built-in
// precedence, per internal/config.ResolveInt. A flag value of 0 counts as
// not set.
func resolveMaxDiagnostics(cmd *cobra.Command, cfg config.Config) (int, error) {
	flagVal, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, err
	}
	flagSet := cmd.Root().PersistentFlags().Changed("max-diagnostics") && flagVal != 0
	return config.ResolveInt(flagVal, flagSet, cfg.MaxDiagnostics, config.Default().MaxDiagnostics), nil
}

// useColor decides whether diagnostic output should be colorized, per
// the --color flag's auto|on|off values.
func useColor(cmd *cobra.Command, out *os.File) bool {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(out)
	}
}

// bagFrom collects a flat diagnostic slice into a capped, sorted,
// deduplicated Bag for rendering with internal/diagfmt.
func bagFrom(items []*diag.Diagnostic, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range items {
		if !bag.Add(d) {
			break
		}
	}
	bag.Sort()
	bag.Dedup()
	return bag
}

// renderDiagnostics writes items to stdout in the requested format and
// reports whether any error-severity diagnostic was present. fs resolves
// each diagnostic's span back to a file/line/column; it is the FileSet
// returned alongside the zpl.ParseResult the diagnostics came from.
func renderDiagnostics(cmd *cobra.Command, items []*diag.Diagnostic, fs *source.FileSet, maxDiagnostics int, format string) (hasErrors bool, err error) {
	bag := bagFrom(items, maxDiagnostics)
	hasErrors = bag.HasErrors()

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{
			Color:    useColor(cmd, os.Stdout),
			Context:  2,
			PathMode: diagfmt.PathModeAuto,
		})
	case "json":
		err = diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
		})
	default:
		err = fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	return hasErrors, err
}
