package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplspec/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the zpl CLI version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(os.Stdout, version.VersionString())
		return nil
	},
}
