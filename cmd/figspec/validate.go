package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/figspec"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check recorded decisions; exits 1 when errors are found",
	Long: `Checks every recorded decision against the target framework's rules
(component base, layout shape, pins, cell sizing, children of lists and
buttons) and prints {"ok", "errors", "warnings"}. Exit status 1 means the
report has errors; 2 means the check itself could not run.`,
	Args: cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, args []string, eng *figspec.Engine) error {
		report, err := eng.Validate(cmd.Context())
		if err != nil {
			return err
		}
		if err := printResult(cmd, report); err != nil {
			return err
		}
		if !report.OK {
			return exitCode(1)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
