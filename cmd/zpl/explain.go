package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplspec"
)

var explainList bool

func init() {
	explainCmd.Flags().BoolVar(&explainList, "list", false, "list every registered diagnostic id")
}

var explainCmd = &cobra.Command{
	Use:   "explain [id]",
	Short: "Look up a diagnostic id's description",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	if explainList {
		ids := zpl.KnownDiagnostics()
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ids)
	}
	if len(args) != 1 {
		return fmt.Errorf("explain: requires exactly one diagnostic id, or --list")
	}
	title, ok := zpl.Explain(args[0])
	if !ok {
		cmd.SilenceUsage = true
		return fmt.Errorf("explain: unknown diagnostic id %q", args[0])
	}
	fmt.Fprintln(os.Stdout, title)
	return nil
}
