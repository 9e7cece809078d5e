package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/figspec"
	"github.com/aretw0/figspec/internal/presentation/markdown"
	"github.com/aretw0/figspec/pkg/domain"
)

var skeletonCmd = &cobra.Command{
	Use:   "skeleton",
	Short: "Print a depth-limited skeleton tree",
	Args:  cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, args []string, eng *figspec.Engine) error {
		node, _ := cmd.Flags().GetString("node-id")
		depth, _ := cmd.Flags().GetInt("depth")
		res, err := eng.Skeleton(cmd.Context(), node, depth)
		if err != nil {
			return err
		}
		return printView(cmd, res, func() string { return markdown.Skeleton(res) })
	}),
}

var childrenCmd = &cobra.Command{
	Use:   "children",
	Short: "List the direct children of a node",
	Args:  cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, args []string, eng *figspec.Engine) error {
		node, _ := cmd.Flags().GetString("node-id")
		res, err := eng.Children(cmd.Context(), node)
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	}),
}

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Print the facts of a node",
	Args:  cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, args []string, eng *figspec.Engine) error {
		node, _ := cmd.Flags().GetString("node-id")
		res, err := eng.Facts(cmd.Context(), node)
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	}),
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Return the context of the next undecided node in breadth-first order",
	Args:  cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, args []string, eng *figspec.Engine) error {
		res, err := eng.Next(cmd.Context())
		if err != nil {
			return err
		}
		return printView(cmd, res, func() string { return markdown.Next(res) })
	}),
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Return a slice of the breadth-first order with decided flags",
	Args:  cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, args []string, eng *figspec.Engine) error {
		start, _ := cmd.Flags().GetInt("start")
		count, _ := cmd.Flags().GetInt("count")
		res, err := eng.Batch(cmd.Context(), start, count)
		if err != nil {
			return err
		}
		return printView(cmd, res, func() string { return markdown.Batch(res) })
	}),
}

func init() {
	rootCmd.AddCommand(skeletonCmd, childrenCmd, factsCmd, nextCmd, batchCmd)

	skeletonCmd.Flags().String("node-id", "", "Node to start from (default the root)")
	skeletonCmd.Flags().Int("depth", domain.DefaultSkeletonDepth, "Levels below the node to include")
	addFormatFlag(skeletonCmd)

	childrenCmd.Flags().String("node-id", "", "Node id")
	_ = childrenCmd.MarkFlagRequired("node-id")

	factsCmd.Flags().String("node-id", "", "Node id")
	_ = factsCmd.MarkFlagRequired("node-id")

	addFormatFlag(nextCmd)

	batchCmd.Flags().Int("start", 0, "First breadth-first index")
	batchCmd.Flags().Int("count", domain.DefaultBatchSize, "Maximum number of nodes")
	addFormatFlag(batchCmd)
}
