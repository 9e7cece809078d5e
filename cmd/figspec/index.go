package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/figspec/internal/cli"
	"github.com/aretw0/figspec/pkg/domain"
)

var indexCmd = &cobra.Command{
	Use:     "index [input]",
	Aliases: []string{"init"},
	Short:   "Index a design JSON into a fresh state document",
	Long: `Reads the exported design tree (a node object, or a wrapper with the node
under "document") from a file or stdin ("-"), extracts facts, fixes the
breadth-first order and replaces the state document. Existing decisions are
discarded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		if input == "" && len(args) > 0 {
			input = args[0]
		}

		if cmd.Flags().Changed("ui-system") {
			env.cfg.UISystem, _ = cmd.Flags().GetString("ui-system")
		}
		if cmd.Flags().Changed("include-invisible") {
			env.cfg.IncludeInvisible, _ = cmd.Flags().GetBool("include-invisible")
		}
		if cmd.Flags().Changed("max-text-len") {
			env.cfg.MaxTextLen, _ = cmd.Flags().GetInt("max-text-len")
		}
		if err := env.cfg.Validate(); err != nil {
			return err
		}

		data, err := cli.ReadInput(input, cmd.InOrStdin())
		if err != nil {
			return err
		}
		var payload any
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}

		eng, done, err := openEngine(false)
		if err != nil {
			return err
		}
		defer done()

		res, err := eng.Index(cmd.Context(), payload, env.cfg.UISystem)
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			env.logger.Warn("index warning", "warning", w)
		}
		return printResult(cmd, res)
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringP("input", "i", "", `Design JSON file, or "-" for stdin (default stdin)`)
	indexCmd.Flags().String("ui-system", "", "Target UI system: UIKit or SwiftUI (default from config, UIKit)")
	indexCmd.Flags().Bool("include-invisible", false, "Index hidden nodes too")
	indexCmd.Flags().Int("max-text-len", 0, "Truncate TEXT characters in facts (default 200; -1 disables)")
}
