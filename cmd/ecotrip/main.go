// Command ecotrip estimates the carbon footprint of single trips.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/EHLuC/ecotrip/internal/cli"
	"github.com/EHLuC/ecotrip/pkg/version"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run executes the root command with a context cancelled on SIGINT/SIGTERM.
// Cobra has already printed the error when one is returned.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(version.GetVersion()).ExecuteContext(ctx)
}
