package greenops

// Offset and equivalency factors.
const (
	// TreeAbsorptionKgPerYear is the kg CO2 a single tree absorbs in one year.
	// Tree-offset counts are ceil(emission / TreeAbsorptionKgPerYear).
	TreeAbsorptionKgPerYear = 22.0

	// SmartphoneChargeKg is kg CO2e per smartphone full charge.
	// Source: EPA GHG Equivalencies Calculator (2024 edition).
	SmartphoneChargeKg = 0.00822
)

// Severity band upper limits (exclusive), in kg CO2.
const (
	// LowSeverityLimitKg bounds the low band.
	LowSeverityLimitKg = 20.0

	// MediumSeverityLimitKg bounds the medium band.
	MediumSeverityLimitKg = 50.0

	// HighSeverityLimitKg bounds the high band; anything at or above is very high.
	HighSeverityLimitKg = 100.0
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2 for showing equivalencies.
	// Below this threshold the equivalencies become meaninglessly small.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold is the threshold for using abbreviated display.
	// Values at or above this threshold use "~X.X million" format.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000
)

// DefaultComparisonDistanceKm is the distance the comparison table uses when
// no valid distance has been entered.
const DefaultComparisonDistanceKm = 100.0

// kgPrecision is the number of decimals emissions are rounded to.
const kgPrecision = 2
