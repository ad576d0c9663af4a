package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/history"
	"github.com/EHLuC/ecotrip/internal/logging"
	"github.com/EHLuC/ecotrip/internal/session"
)

// calcFlags holds the calc command flags.
type calcFlags struct {
	distance string
	mode     string
	output   string
	noSave   bool
}

// newCalcCmd creates the "calc" command that estimates one trip.
func newCalcCmd(a *app) *cobra.Command {
	var flags calcFlags

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Estimate the CO2 emission of a trip",
		Long: `Estimate the CO2 emission of a single trip from its distance and transport
mode, show the trees needed to offset it and an advisory tip, and record the
result in the history log.`,
		Example: `  ecotrip calc --distance 150 --mode car
  ecotrip calc --distance 12,5 --mode onibus
  ecotrip calc --distance 800 --mode airplane --output json --no-save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalc(cmd, a, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.distance, "distance", "d", "", "trip distance in kilometres (required)")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", string(greenops.ModeCar), "transport mode (see 'ecotrip modes')")
	cmd.Flags().StringVar(&flags.output, "output", outputTable, "Output format: table, json")
	cmd.Flags().BoolVar(&flags.noSave, "no-save", false, "do not record the result in history")
	_ = cmd.MarkFlagRequired("distance")

	return cmd
}

// calcJSONOutput is the JSON form of a calculation.
type calcJSONOutput struct {
	session.Result
	SeverityLabel string                       `json:"severity_label"`
	Equivalencies []greenops.EquivalencyResult `json:"equivalencies"`
	Saved         bool                         `json:"saved"`
	HistorySize   int                          `json:"history_size"`
}

// executeCalc validates the input, runs the calculation through a session
// controller with no delay and renders the result.
func executeCalc(cmd *cobra.Command, a *app, flags calcFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if err := validateOutput(flags.output, outputTable, outputJSON); err != nil {
		return err
	}
	if _, err := greenops.ParseDistance(flags.distance); err != nil {
		return fmt.Errorf("%w: %q must be a positive number of kilometres", err, flags.distance)
	}
	mode, err := greenops.ParseMode(flags.mode)
	if err != nil {
		return err
	}

	var hist *history.Store
	if !flags.noSave {
		if hist, err = a.openHistory(ctx, true); err != nil {
			return err
		}
	}

	ctrl := a.newController(hist, session.WithDelay(0))
	ctrl.SetDistance(flags.distance)
	ctrl.SelectMode(mode)
	if _, err = ctrl.Submit(ctx); err != nil {
		return err
	}

	state := ctrl.State()
	if state.Result == nil {
		return errors.New("calculation did not complete")
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "cli").
		Str("operation", "calc").
		Str("mode", string(mode)).
		Float64("emission_kg", state.Result.EmissionKg).
		Bool("saved", hist != nil && state.Err == nil).
		Msg("calculation rendered")

	switch flags.output {
	case outputJSON:
		err = writeJSON(cmd.OutOrStdout(), calcJSONOutput{
			Result:        *state.Result,
			SeverityLabel: state.Result.Severity.Label(),
			Equivalencies: state.Result.Equivalency.Results,
			Saved:         hist != nil && state.Err == nil,
			HistorySize:   len(state.History),
		})
	default:
		err = renderCalcTable(cmd, *state.Result)
	}
	if err != nil {
		return err
	}

	if state.Err != nil {
		return fmt.Errorf("result not saved: %w", state.Err)
	}
	return nil
}

// renderCalcTable renders a result as aligned key/value lines.
func renderCalcTable(cmd *cobra.Command, r session.Result) error {
	entry := greenops.Lookup(r.Mode)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "Mode:\t%s %s\n", entry.Icon, entry.Label)
	fmt.Fprintf(tw, "Distance:\t%s km\n", formatKm(r.DistanceKm))
	fmt.Fprintf(tw, "Emission:\t%s kg CO2\n", greenops.FormatKg(r.EmissionKg))
	fmt.Fprintf(tw, "Severity:\t%s\n", r.Severity.Label())
	fmt.Fprintf(tw, "Trees to offset:\t%d\n", r.TreesToOffset)
	fmt.Fprintf(tw, "Tip:\t%s\n", r.Advice)
	if !r.Equivalency.IsEmpty {
		fmt.Fprintf(tw, "Equivalent:\t%s\n", r.Equivalency.DisplayText)
	}
	return tw.Flush()
}
