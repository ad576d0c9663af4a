package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/EHLuC/ecotrip/internal/logging"
	"github.com/EHLuC/ecotrip/internal/session"
	"github.com/EHLuC/ecotrip/internal/tui"
)

// errNotTerminal is returned when the TUI is started without a terminal.
var errNotTerminal = errors.New("the interactive calculator requires a terminal; use 'ecotrip calc' instead")

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive calculator",
		Long: `Start the interactive calculator. Type a distance, pick a transport mode
with tab or the arrow keys and press enter.

Keys:
  enter      calculate
  tab/↑/↓    change mode
  c          show or hide the comparison table
  x          clear history
  t          switch between light and dark theme
  esc        cancel a pending calculation
  q, ctrl+c  quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errNotTerminal
			}
			return executeTUI(cmd, a)
		},
	}
}

func executeTUI(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	hist, err := a.openHistory(ctx, true)
	if err != nil {
		return err
	}

	ctrl := a.newController(hist, session.WithDelay(a.cfg.Calculation.Delay))
	if err = ctrl.LoadHistory(ctx); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "cli").
		Str("operation", "tui").
		Dur("delay", ctrl.Delay()).
		Int("history_size", len(ctrl.State().History)).
		Msg("starting interactive calculator")

	return tui.Run(ctx, ctrl)
}
