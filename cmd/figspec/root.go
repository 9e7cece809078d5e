package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/figspec"
	"github.com/aretw0/figspec/internal/cli"
	"github.com/aretw0/figspec/internal/config"
	"github.com/aretw0/figspec/internal/logging"
	"github.com/aretw0/figspec/internal/presentation/tui"
)

// env is resolved once per invocation before any command runs.
var env struct {
	cfg    *config.Config
	logger *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:   "figspec",
	Short: "figspec turns a design tree into a UIKit/SwiftUI spec one decision at a time",
	Long: `figspec indexes an exported design tree, hands out one node at a time in
breadth-first order with the facts and hints needed to decide its target
component, records the decisions, validates them and exports the final spec tree.

Every command prints a single JSON document on stdout; diagnostics go to stderr.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("state", "", "State file path (default "+config.Default().StatePath+")")
	flags.String("config", "", "Config file (.yaml, .yml, .toml or .json)")
	flags.String("store", "", "State store: file or redis")
	flags.String("redis-addr", "", "Redis address for the redis store")
	flags.String("redis-key", "", "Document key for the redis store")
	flags.Bool("pretty", false, "Indent JSON output")
	flags.String("jq", "", "Filter the JSON result through a jq expression")
	flags.Bool("debug", false, "Enable debug logging on stderr")
}

// setup layers flags over config and builds the invocation logger.
func setup(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, used, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("state") {
		cfg.StatePath, _ = cmd.Flags().GetString("state")
	}
	if cmd.Flags().Changed("store") {
		cfg.Store, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.Redis.Addr, _ = cmd.Flags().GetString("redis-addr")
	}
	if cmd.Flags().Changed("redis-key") {
		cfg.Redis.Key, _ = cmd.Flags().GetString("redis-key")
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	env.cfg = cfg
	env.logger = logging.WithInvocation(logging.New(level)).With("command", cmd.Name())
	if used != "" {
		env.logger.Debug("loaded config", "path", used)
	}
	return nil
}

// openEngine opens the configured store. The caller must call the returned function when done.
func openEngine(shared bool) (*figspec.Engine, func(), error) {
	eng, closeStore, err := cli.OpenEngine(env.cfg, env.logger, shared)
	if err != nil {
		return nil, nil, err
	}
	return eng, func() {
		if err := closeStore(); err != nil {
			env.logger.Warn("failed to close store", "error", err)
		}
	}, nil
}

func printer(cmd *cobra.Command) *cli.Printer {
	pretty, _ := cmd.Flags().GetBool("pretty")
	jq, _ := cmd.Flags().GetString("jq")
	return &cli.Printer{Out: cmd.OutOrStdout(), Pretty: pretty, JQ: jq}
}

func printResult(cmd *cobra.Command, v any) error {
	return printer(cmd).Print(cmd.Context(), v)
}

// Output formats for commands that offer a markdown view.
const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", formatJSON, "Output format: json or markdown")
}

// printView prints v as JSON, or renders md() when --format markdown is set.
func printView(cmd *cobra.Command, v any, md func() string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case formatJSON, "":
		return printResult(cmd, v)
	case formatMarkdown, "md":
		return tui.Render(cmd.OutOrStdout(), md())
	}
	return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatMarkdown)
}

// withEngine opens a non-shared engine for one command body.
func withEngine(fn func(cmd *cobra.Command, args []string, eng *figspec.Engine) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		eng, done, err := openEngine(false)
		if err != nil {
			return err
		}
		defer done()
		return fn(cmd, args, eng)
	}
}
