package greenops

import (
	"math"
	"strconv"
	"strings"
)

// Compute returns the footprint of travelling distanceKm by mode.
//
// The emission is distanceKm times the mode's factor, rounded to two
// decimals; the tree count is derived from the rounded value. Callers must
// check the distance with ValidateDistance first: Compute does not guard
// against non-positive or non-finite input.
//
// Example:
//
//	fp := Compute(150, ModeCar) // EmissionKg: 18, TreesToOffset: 1
func Compute(distanceKm float64, mode TransportMode) Footprint {
	kg := RoundKg(distanceKm * Lookup(mode).FactorKgPerKm)
	return Footprint{
		EmissionKg:    kg,
		TreesToOffset: TreesToOffset(kg),
	}
}

// ValidateDistance returns ErrInvalidDistance unless distanceKm is a finite
// number greater than zero.
func ValidateDistance(distanceKm float64) error {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm <= 0 {
		return ErrInvalidDistance
	}
	return nil
}

// ParseDistance parses a user-entered distance in kilometres.
// A decimal comma is accepted ("12,5"). Empty, non-numeric and
// non-positive values yield ErrInvalidDistance, as do Go-only literal forms
// such as hex floats ("0x10") and digit separators ("1_000").
func ParseDistance(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, ErrInvalidDistance
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidDistance
	}
	if validErr := ValidateDistance(v); validErr != nil {
		return 0, validErr
	}
	return v, nil
}

// RoundKg rounds a kilogram value to two decimals. Values too large to
// scale are returned unchanged; they carry no fractional digits anyway.
func RoundKg(v float64) float64 {
	multiplier := math.Pow(10, kgPrecision)
	scaled := v * multiplier
	if math.IsInf(scaled, 0) {
		return v
	}
	return math.Round(scaled) / multiplier
}

// TreesToOffset returns how many trees absorb kg of CO2 in one year.
// Zero or negative emissions need no trees; counts beyond math.MaxInt are
// clamped to it.
func TreesToOffset(kg float64) int {
	if kg <= 0 || math.IsNaN(kg) {
		return 0
	}
	trees := math.Ceil(kg / TreeAbsorptionKgPerYear)
	if trees >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(trees)
}
