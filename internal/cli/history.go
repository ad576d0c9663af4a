package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/EHLuC/ecotrip/internal/cli/sorting"
	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/history"
	"github.com/EHLuC/ecotrip/internal/logging"
)

// newHistoryCmd creates the history command group.
func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage past calculations",
		Long: `View and manage the history of past calculations. The history keeps the
most recent calculations only (10 by default).`,
	}
	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistoryStatsCmd(a),
		newHistoryClearCmd(a),
		newHistoryMigrateCmd(a),
	)
	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var output, sortExpr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past calculations, newest first",
		Example: `  ecotrip history list
  ecotrip history list --sort emission:desc
  ecotrip history list --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeHistoryList(cmd, a, output, sortExpr)
		},
	}

	cmd.Flags().StringVar(&output, "output", outputTable, "Output format: table, json, ndjson")
	cmd.Flags().StringVar(&sortExpr, "sort", "", "sort by field[:asc|desc]: date, distance, emission, mode")

	return cmd
}

func newHistoryStatsCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeHistoryStats(cmd, a, output)
		},
	}

	cmd.Flags().StringVar(&output, "output", outputTable, "Output format: table, json")

	return cmd
}

func newHistoryClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all past calculations",
		Long: `Delete the stored history. This also resets a history that can no longer
be read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			hist, err := a.openHistory(ctx, false)
			if err != nil {
				return err
			}
			if err = a.newController(hist).ClearHistory(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

// historyJSONOutput represents the JSON output for history list.
type historyJSONOutput struct {
	Entries []history.Entry `json:"entries"`
	Count   int             `json:"count"`
	Totals  history.Totals  `json:"totals"`
}

func executeHistoryList(cmd *cobra.Command, a *app, output, sortExpr string) error {
	ctx := cmd.Context()

	if err := validateOutput(output, outputTable, outputJSON, outputNDJSON); err != nil {
		return err
	}

	hist, err := a.openHistory(ctx, true)
	if err != nil {
		return err
	}
	entries := hist.Entries()

	if sortExpr != "" {
		field, order, parseErr := sorting.ParseSort(sortExpr)
		if parseErr != nil {
			return parseErr
		}
		if entries, err = sorting.NewEntrySorter().Sort(entries, field, order); err != nil {
			return err
		}
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "cli").
		Str("operation", "history_list").
		Int("entry_count", len(entries)).
		Msg("history retrieved")

	switch output {
	case outputJSON:
		return writeJSON(cmd.OutOrStdout(), historyJSONOutput{
			Entries: entries,
			Count:   len(entries),
			Totals:  history.Aggregate(entries),
		})
	case outputNDJSON:
		return renderHistoryNDJSON(cmd, entries)
	default:
		return renderHistoryTable(cmd, entries)
	}
}

// renderHistoryTable renders entries as a table.
func renderHistoryTable(cmd *cobra.Command, entries []history.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No calculations yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "DATE\tWHEN\tMODE\tDISTANCE (KM)\tEMISSION (KG)")
	fmt.Fprintln(tw, "----\t----\t----\t-------------\t-------------")

	for _, e := range entries {
		when := ""
		if t := e.Time(); !t.IsZero() {
			when = humanize.Time(t)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Date,
			when,
			modeLabel(e.Mode),
			formatKm(e.DistanceKm),
			greenops.FormatKg(e.EmissionKg),
		)
	}

	return tw.Flush()
}

// renderHistoryNDJSON renders entries as newline-delimited JSON.
func renderHistoryNDJSON(cmd *cobra.Command, entries []history.Entry) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	for _, e := range entries {
		if err := encoder.Encode(e); err != nil {
			return fmt.Errorf("encoding history NDJSON: %w", err)
		}
	}
	return nil
}

// modeTotals is one row of the per-mode breakdown.
type modeTotals struct {
	Mode       greenops.TransportMode `json:"mode"`
	Count      int                    `json:"count"`
	EmissionKg float64                `json:"emission_kg"`
}

// historyStatsOutput represents the JSON output for history stats.
type historyStatsOutput struct {
	history.Totals
	ByMode []modeTotals `json:"by_mode"`
}

func executeHistoryStats(cmd *cobra.Command, a *app, output string) error {
	if err := validateOutput(output, outputTable, outputJSON); err != nil {
		return err
	}

	hist, err := a.openHistory(cmd.Context(), true)
	if err != nil {
		return err
	}
	entries := hist.Entries()
	stats := historyStatsOutput{Totals: history.Aggregate(entries), ByMode: breakdownByMode(entries)}

	if output == outputJSON {
		return writeJSON(cmd.OutOrStdout(), stats)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "Calculations:\t%d\n", stats.Count)
	fmt.Fprintf(tw, "Total emission:\t%s kg CO2\n", greenops.FormatKg(stats.TotalEmissionKg))
	fmt.Fprintf(tw, "Trees to offset:\t%d\n", stats.TotalTreesToOffset)
	for _, m := range stats.ByMode {
		fmt.Fprintf(tw, "  %s:\t%d trips, %s kg\n", modeLabel(m.Mode), m.Count, greenops.FormatKg(m.EmissionKg))
	}
	return tw.Flush()
}

// breakdownByMode groups entries by mode in emission table order.
func breakdownByMode(entries []history.Entry) []modeTotals {
	byMode := make(map[greenops.TransportMode]*modeTotals)
	for _, e := range entries {
		t, ok := byMode[e.Mode]
		if !ok {
			t = &modeTotals{Mode: e.Mode}
			byMode[e.Mode] = t
		}
		t.Count++
		t.EmissionKg = greenops.RoundKg(t.EmissionKg + e.EmissionKg)
	}

	out := make([]modeTotals, 0, len(byMode))
	for _, mode := range greenops.Modes() {
		if t, ok := byMode[mode]; ok {
			out = append(out, *t)
			delete(byMode, mode)
		}
	}
	// Unknown modes from older data go last, by name.
	unknown := make([]modeTotals, 0, len(byMode))
	for _, t := range byMode {
		unknown = append(unknown, *t)
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i].Mode < unknown[j].Mode })
	return append(out, unknown...)
}

// modeLabel returns the display label of mode, or the raw identifier for
// modes outside the table.
func modeLabel(mode greenops.TransportMode) string {
	if e := greenops.Lookup(mode); e.Label != "" {
		return e.Label
	}
	return string(mode)
}
