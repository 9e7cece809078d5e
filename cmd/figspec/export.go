package main

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/aretw0/figspec"
	"github.com/aretw0/figspec/internal/adapters/file"
	"github.com/aretw0/figspec/internal/cli"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the spec tree assembled from the recorded decisions",
	Args:  cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, args []string, eng *figspec.Engine) error {
		var absorb *bool
		if noAbsorb, _ := cmd.Flags().GetBool("no-absorb"); noAbsorb {
			f := false
			absorb = &f
		}
		doc, err := eng.Export(cmd.Context(), absorb)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			return printResult(cmd, doc)
		}

		var buf bytes.Buffer
		p := printer(cmd)
		p.Out = &buf
		if err := p.Print(cmd.Context(), doc); err != nil {
			return err
		}
		if err := file.WriteAtomic(output, buf.Bytes()); err != nil {
			return err
		}
		env.logger.Info("wrote export", "path", output)

		// The result on stdout describes the write, unfiltered.
		out := cli.Printer{Out: cmd.OutOrStdout()}
		return out.Print(cmd.Context(), map[string]any{"ok": true, "output": output})
	}),
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().Bool("no-absorb", false, "Keep label and image children instead of folding them into buttons and images")
	exportCmd.Flags().StringP("output", "o", "", "Write the export to a file (atomically) instead of stdout")
}
