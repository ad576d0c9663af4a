package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/EHLuC/ecotrip/internal/greenops"
)

// newModesCmd creates the "modes" command printing the emission table.
func newModesCmd(_ *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List transport modes and their emission factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output, outputTable, outputJSON); err != nil {
				return err
			}
			entries := greenops.Entries()
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, "MODE\tLABEL\tKG CO2/KM")
			fmt.Fprintln(tw, "----\t-----\t---------")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s %s\t%.2f\n", e.Mode, e.Icon, e.Label, e.FactorKgPerKm)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&output, "output", outputTable, "Output format: table, json")

	return cmd
}
