// Package cli implements the ecotrip command tree.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the ecotrip CLI.
// It wires configuration, logging, storage and metrics into every
// subcommand through a shared app value.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{version: ver}

	cmd := &cobra.Command{
		Use:     "ecotrip",
		Short:   "Estimate the carbon footprint of a trip",
		Long:    "EcoTrip: estimate CO2 emissions for a trip by distance and transport mode, compare modes and keep a short history",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			a.setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.shutdown(cmd)
		},
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&a.flags.debug, "debug", false, "enable debug logging")
	flags.StringVar(&a.flags.configPath, "config", "", "config file (default ~/.ecotrip/config.yaml)")
	flags.StringVar(&a.flags.projectDir, "project-dir", "", "project directory holding a .ecotrip overlay")
	flags.StringVar(&a.flags.storage, "storage", "", "storage backend: file, sqlite, memory (overrides config)")
	flags.BoolVar(&a.flags.ephemeral, "ephemeral", false, "keep history in memory for this run only")

	cmd.AddCommand(
		newCalcCmd(a),
		newCompareCmd(a),
		newHistoryCmd(a),
		newModesCmd(a),
		newTUICmd(a),
		newConfigCmd(a),
	)
	shutdownOnError(cmd, a)

	return cmd
}

// shutdownOnError wraps every RunE below cmd so that a failing command still
// writes metrics and releases storage and the log file. Cobra only runs
// PersistentPostRunE after a successful RunE.
func shutdownOnError(cmd *cobra.Command, a *app) {
	for _, c := range cmd.Commands() {
		shutdownOnError(c, a)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err == nil {
			return nil
		}
		if shutdownErr := a.shutdown(cmd); shutdownErr != nil {
			return errors.Join(err, shutdownErr)
		}
		return err
	}
}

const rootCmdExample = `  # Footprint of a 150 km car trip
  ecotrip calc --distance 150 --mode car

  # Same trip as JSON, without saving it to history
  ecotrip calc --distance 150 --mode car --output json --no-save

  # Compare every mode over 300 km
  ecotrip compare --distance 300

  # Show and summarise the last calculations
  ecotrip history list
  ecotrip history stats

  # Interactive calculator
  ecotrip tui

  # Write a default configuration file
  ecotrip config init`
