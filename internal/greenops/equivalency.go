package greenops

import (
	"context"
	"fmt"
	"math"

	"github.com/EHLuC/ecotrip/internal/logging"
)

// Calculate converts an emission in kg CO2 into relatable equivalencies:
// trees absorbing it over one year, kilometres driven in an average car and
// smartphones charged.
//
// Below MinEquivalencyThresholdKg the output is empty (IsEmpty = true) with
// InputKg set and no error. Negative input returns ErrNegativeValue, and
// non-finite input or results return ErrCalculationOverflow.
func Calculate(kg float64) (EquivalencyOutput, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	trees := float64(TreesToOffset(kg))
	carKm := kg / Lookup(ModeCar).FactorKgPerKm
	phones := kg / SmartphoneChargeKg

	if math.IsInf(carKm, 0) || math.IsInf(phones, 0) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	treesFormatted := formatEquivalencyValue(trees)
	kmFormatted := formatEquivalencyValue(carKm)
	phonesFormatted := formatEquivalencyValue(phones)

	results := []EquivalencyResult{
		{
			Type:           EquivalencyTrees,
			Value:          trees,
			FormattedValue: treesFormatted,
			Label:          "trees for one year",
		},
		{
			Type:           EquivalencyCarKilometers,
			Value:          carKm,
			FormattedValue: kmFormatted,
			Label:          "km driven",
		},
		{
			Type:           EquivalencySmartphonesCharged,
			Value:          phones,
			FormattedValue: phonesFormatted,
			Label:          "smartphones charged",
		},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s km or charging ~%s smartphones",
			kmFormatted, phonesFormatted),
		IsEmpty: false,
	}, nil
}

// CalculateForDisplay is Calculate for presentation code: failures are
// logged through the context logger and reported as an empty output.
func CalculateForDisplay(ctx context.Context, kg float64) EquivalencyOutput {
	output, err := Calculate(kg)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "greenops").
			Float64("emission_kg", kg).
			Err(err).
			Msg("equivalency calculation failed")
		return EquivalencyOutput{IsEmpty: true}
	}
	return output
}

// formatEquivalencyValue uses large number scaling for million/billion
// values, otherwise a rounded, comma-separated integer.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
