package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/figspec"
	"github.com/aretw0/figspec/internal/cli"
)

var applyCmd = &cobra.Command{
	Use:   "apply [patch]",
	Short: "Record decisions from a patch file or stdin",
	Long: `Accepts one {"id": ..., "component": {...}} object, a list of them, or
{"decisions": {"<id>": {...}}}. Each decision replaces any earlier one for its
id. Unknown ids and malformed items are skipped and reported; a payload of
none of these shapes is rejected without touching the state.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withEngine(func(cmd *cobra.Command, args []string, eng *figspec.Engine) error {
		path, _ := cmd.Flags().GetString("patch")
		if path == "" && len(args) > 0 {
			path = args[0]
		}
		data, err := cli.ReadInput(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		res, err := eng.Apply(cmd.Context(), data)
		if err != nil {
			return err
		}
		for _, s := range res.Skipped {
			env.logger.Warn("skipped patch item", "id", s.ID, "reason", s.Reason)
		}
		return printResult(cmd, res)
	}),
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringP("patch", "p", "", `Patch JSON file, or "-" for stdin (default stdin)`)
}
