package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/figspec"
	"github.com/aretw0/figspec/internal/cli"
	"github.com/aretw0/figspec/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show progress: counts and the next node id",
	Args:  cobra.NoArgs,
	RunE: withEngine(func(cmd *cobra.Command, args []string, eng *figspec.Engine) error {
		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			return watchStatus(cmd, eng)
		}
		res, err := eng.Status(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	}),
}

// watchStatus prints status now and after every change to the state file, until interrupted.
func watchStatus(cmd *cobra.Command, eng *figspec.Engine) error {
	if env.cfg.Store != config.StoreFile {
		return fmt.Errorf("--watch needs the file store, not %q", env.cfg.Store)
	}

	ctx := cmd.Context()
	emit := func() {
		res, err := eng.Status(ctx)
		if err != nil {
			// A missing or half-written document is expected between writes.
			env.logger.Warn("status unavailable", "error", err)
			return
		}
		if err := printResult(cmd, res); err != nil {
			env.logger.Warn("print status", "error", err)
		}
	}

	return cli.WatchFile(ctx, env.cfg.StatePath, emit, env.logger)
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolP("watch", "w", false, "Re-print status whenever the state file changes")
}
