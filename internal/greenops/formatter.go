package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatKg formats an emission with two decimals and thousand separators.
// Example: FormatKg(1234.5) returns "1,234.50".
func FormatKg(kg float64) string {
	return FormatFloat(kg, kgPrecision)
}

// FormatFloat formats a float with the specified precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(f*multiplier) / multiplier

	if precision == 0 {
		return FormatNumber(int64(rounded))
	}

	formatted := fmt.Sprintf("%.*f", precision, rounded)

	// Group the integer part; the decimal part is kept verbatim.
	intStr, fracStr, ok := strings.Cut(formatted, ".")
	if !ok {
		return formatted
	}
	intPart, err := strconv.ParseInt(intStr, 10, 64)
	if err != nil {
		return formatted
	}
	grouped := printer.Sprintf("%d", intPart)
	if intPart == 0 && strings.HasPrefix(intStr, "-") {
		grouped = "-" + grouped
	}
	return grouped + "." + fracStr
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values below LargeNumberThreshold (1 million) use comma-separated format.
// Values at or above LargeNumberThreshold use "~X.X million" format.
// Values at or above BillionThreshold use "~X.X billion" format.
//
// Example: FormatLarge(1500000000) returns "~1.5 billion".
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}

	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}

	return FormatNumber(int64(math.Round(n)))
}
