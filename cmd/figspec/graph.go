package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/figspec"
	"github.com/aretw0/figspec/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the indexed tree as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart (graph TD) of the indexed tree with decided, pending and next nodes styled.`,
	Args:  cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, args []string, eng *figspec.Engine) error {
		state, err := eng.State(cmd.Context())
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if plain, _ := cmd.Flags().GetBool("plain"); !plain {
			status, err := eng.Status(cmd.Context())
			if err != nil {
				return err
			}
			overlay = &graph.Overlay{}
			if status.NextNodeID != nil {
				overlay.Next = *status.NextNodeID
			}
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(state, overlay))
		return err
	}),
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("plain", false, "Omit progress styling")
}
