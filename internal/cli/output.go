package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// Output formats.
const (
	outputTable  = "table"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
)

// validateOutput rejects formats outside allowed.
func validateOutput(output string, allowed ...string) error {
	if slices.Contains(allowed, output) {
		return nil
	}
	return fmt.Errorf("unsupported output format: %s (valid: %s)", output, strings.Join(allowed, ", "))
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// formatKm renders a distance without trailing zeros.
func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
