package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/figspec"
	"github.com/aretw0/figspec/internal/presentation/tui"
	httpAdapter "github.com/aretw0/figspec/pkg/adapters/http"
	"github.com/aretw0/figspec/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workflow as a JSON HTTP API",
	Long: `Exposes status, next, skeleton, children, facts, batch, decisions, validate
and export over HTTP, plus Prometheus metrics on /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		eng, done, err := openEngine(true)
		if err != nil {
			return err
		}
		defer done()

		srv := &http.Server{
			Addr:              addr,
			Handler:           httpAdapter.NewHandler(eng, observability.NewMetrics(), env.logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			serverErrors <- srv.ListenAndServe()
		}()

		errOut := cmd.ErrOrStderr()
		tui.PrintBanner(errOut, figspec.Version)
		fmt.Fprintf(errOut, "Serving %s on %s\n", eng.Key(), addr)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-cmd.Context().Done():
			env.logger.Info("shutting down", "addr", addr)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				env.logger.Warn("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
			fmt.Fprintln(errOut, "Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
