package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/EHLuC/ecotrip/internal/greenops"
)

// barWidth is the width of the share bar at 100%.
const barWidth = 20

// newCompareCmd creates the "compare" command listing every mode's emission
// for one distance.
func newCompareCmd(a *app) *cobra.Command {
	var (
		distance string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare emissions of every transport mode",
		Long: `List the emission of every transport mode for the same distance, lowest
first. Without --distance the comparison uses 100 km.`,
		Example: `  ecotrip compare
  ecotrip compare --distance 450 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCompare(cmd, a, distance, output)
		},
	}

	cmd.Flags().StringVarP(&distance, "distance", "d", "", "trip distance in kilometres (default 100)")
	cmd.Flags().StringVar(&output, "output", outputTable, "Output format: table, json")

	return cmd
}

// compareJSONOutput is the JSON form of a comparison.
type compareJSONOutput struct {
	DistanceKm float64               `json:"distance_km"`
	Rows       []greenops.Comparison `json:"rows"`
}

func executeCompare(cmd *cobra.Command, _ *app, distance, output string) error {
	if err := validateOutput(output, outputTable, outputJSON); err != nil {
		return err
	}

	km := greenops.DefaultComparisonDistanceKm
	if distance != "" {
		parsed, err := greenops.ParseDistance(distance)
		if err != nil {
			return fmt.Errorf("%w: %q must be a positive number of kilometres", err, distance)
		}
		km = parsed
	}
	rows := greenops.Compare(km)

	if output == outputJSON {
		return writeJSON(cmd.OutOrStdout(), compareJSONOutput{DistanceKm: km, Rows: rows})
	}
	return renderCompareTable(cmd, km, rows)
}

// renderCompareTable renders comparison rows with a proportional bar.
func renderCompareTable(cmd *cobra.Command, km float64, rows []greenops.Comparison) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Emissions for %s km:\n\n", formatKm(km))

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "MODE\tKG/KM\tEMISSION (KG)\tSHARE\t")
	fmt.Fprintln(tw, "----\t-----\t-------------\t-----\t")

	for _, row := range rows {
		note := ""
		if row.Best {
			note = "best"
		}
		fmt.Fprintf(tw, "%s %s\t%.2f\t%s\t%s\t%s\n",
			row.Icon, row.Label,
			row.FactorKgPerKm,
			greenops.FormatKg(row.EmissionKg),
			shareBar(row.Share),
			note,
		)
	}

	return tw.Flush()
}

// shareBar renders share (0..1) as a bar of at most barWidth cells.
func shareBar(share float64) string {
	n := int(share*barWidth + 0.5)
	n = max(0, min(n, barWidth))
	return strings.Repeat("█", n)
}
