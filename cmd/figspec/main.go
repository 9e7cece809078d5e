// Command figspec drives the design-to-spec decision workflow from the shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/figspec/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()

	err := rootCmd.ExecuteContext(ctx)
	return exitStatus(err, ctx.Signal() != nil, os.Stderr)
}

// exitStatus maps a command error to the process status:
// 0 success, 1 validation errors, 2 operational failure, 130 interrupted.
func exitStatus(err error, interrupted bool, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exit exitCode
	if errors.As(err, &exit) {
		return int(exit)
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	if interrupted {
		return 130
	}
	return 2
}

// exitCode ends the process with a status and no message; the command already reported.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}
