// Command zpl is the CLI surface over the zplspec core: parse, lint,
// syntax-check, format, explain, coverage, print, and genspec, each a
// thin wrapper around the root zpl package and internal/specgen.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zplspec/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "zpl",
	Short: "ZPL II lexer, parser, validator, and formatter",
	Long:  `zpl parses, validates, and formats Zebra Programming Language (ZPL II) label source, offline and deterministically.`,
}

func main() {
	rootCmd.Version = version.VersionString()

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(syntaxCheckCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(genspecCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostic output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum diagnostics to show (0 uses the project config or built-in default)")
	rootCmd.PersistentFlags().String("tables", "", "path to a compiled tables.json (defaults to the built-in command table)")
	rootCmd.PersistentFlags().String("profile", "", "path to a printer profile JSON file")
	rootCmd.PersistentFlags().String("config", "", "path to a zplspec.toml project manifest (defaults to searching upward from .)")

	if err := rootCmd.Execute(); err != nil {
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
