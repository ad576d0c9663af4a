// Package greenops provides per-trip carbon emission calculations.
//
// It holds the fixed emission factor table for each transport mode and the
// pure functions built on it: the footprint calculator, severity bands,
// cross-mode comparison and relatable equivalencies such as the number of
// trees needed to absorb an emission over one year.
package greenops

import "fmt"

// TransportMode identifies a way of travelling.
type TransportMode string

const (
	// ModeCar is an average passenger car.
	ModeCar TransportMode = "car"
	// ModeMotorcycle is a motorcycle.
	ModeMotorcycle TransportMode = "motorcycle"
	// ModeBus is a public bus.
	ModeBus TransportMode = "bus"
	// ModeAirplane is a commercial flight.
	ModeAirplane TransportMode = "airplane"
	// ModeTrain is a passenger train.
	ModeTrain TransportMode = "train"
	// ModeBicycle is a bicycle.
	ModeBicycle TransportMode = "bicycle"
	// ModeWalking is travelling on foot.
	ModeWalking TransportMode = "walking"
)

// String returns the mode identifier.
func (m TransportMode) String() string {
	return string(m)
}

// EmissionFactorEntry describes one transport mode in the emission table.
type EmissionFactorEntry struct {
	// Mode is the transport mode this entry belongs to.
	Mode TransportMode `json:"mode"`

	// FactorKgPerKm is the kg CO2 emitted per kilometre travelled.
	FactorKgPerKm float64 `json:"factor_kg_per_km"`

	// Label is the display name (e.g., "Car").
	Label string `json:"label"`

	// Icon is the display glyph (e.g., "🚗").
	Icon string `json:"icon"`
}

// Footprint is the outcome of a single trip calculation.
type Footprint struct {
	// EmissionKg is the emission rounded to two decimals.
	EmissionKg float64 `json:"emission_kg"`

	// TreesToOffset is the number of trees needed to absorb EmissionKg in one year.
	TreesToOffset int `json:"trees_to_offset"`
}

// Severity is the qualitative band an emission amount falls into.
type Severity int

const (
	// SeverityZero is exactly zero emission.
	SeverityZero Severity = iota
	// SeverityLow is below LowSeverityLimitKg.
	SeverityLow
	// SeverityMedium is below MediumSeverityLimitKg.
	SeverityMedium
	// SeverityHigh is below HighSeverityLimitKg.
	SeverityHigh
	// SeverityVeryHigh is HighSeverityLimitKg or more.
	SeverityVeryHigh
)

// String returns the band identifier used in machine-readable output.
func (s Severity) String() string {
	switch s {
	case SeverityZero:
		return "zero"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityVeryHigh:
		return "very-high"
	default:
		return fmt.Sprintf("Severity(%d)", s)
	}
}

// Label returns the human-readable band name.
func (s Severity) Label() string {
	switch s {
	case SeverityZero:
		return "Zero Emission"
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityVeryHigh:
		return "Very High"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so bands serialize by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Comparison is one row of the cross-mode comparison table.
type Comparison struct {
	EmissionFactorEntry

	// EmissionKg is the emission for the compared distance, rounded to two decimals.
	EmissionKg float64 `json:"emission_kg"`

	// Share is EmissionKg relative to the largest emission in the table (0..1).
	Share float64 `json:"share"`

	// Best marks the first row when it emits nothing.
	Best bool `json:"best"`
}

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyTrees converts CO2 to trees absorbing it over one year.
	EquivalencyTrees EquivalencyType = iota

	// EquivalencyCarKilometers converts CO2 to kilometres driven in an average car.
	EquivalencyCarKilometers

	// EquivalencySmartphonesCharged converts CO2 to smartphone full charges.
	EquivalencySmartphonesCharged
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyTrees:
		return "Trees"
	case EquivalencyCarKilometers:
		return "CarKilometers"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	// Type identifies the equivalency category.
	Type EquivalencyType `json:"type"`

	// Value is the raw calculated equivalency value.
	Value float64 `json:"value"`

	// FormattedValue is the display-ready string with separators/scaling.
	FormattedValue string `json:"formatted_value"`

	// Label is the descriptive phrase (e.g., "km driven").
	Label string `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// InputKg is the emission the equivalencies were derived from.
	InputKg float64 `json:"input_kg"`

	// Results contains calculated equivalencies in display order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the full prose format for CLI/TUI output.
	// Example: "Equivalent to driving ~250 km or charging ~3,650 smartphones"
	DisplayText string `json:"display_text"`

	// IsEmpty is true if no equivalencies were calculated.
	IsEmpty bool `json:"is_empty"`
}
