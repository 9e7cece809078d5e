package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/figspec"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of figspec",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "figspec version %s\n", strings.TrimSpace(figspec.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
