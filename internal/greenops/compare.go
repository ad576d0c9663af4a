package greenops

import "sort"

// Compare computes the emission of every transport mode for distanceKm and
// returns the rows sorted ascending by emission. The sort is stable, so
// modes with equal emissions keep table order.
//
// Each row's Share is its emission relative to the largest one (0 when every
// mode emits nothing), and the first row is marked Best when it emits zero.
func Compare(distanceKm float64) []Comparison {
	rows := make([]Comparison, 0, len(emissionTable))
	maxKg := 0.0
	for _, e := range emissionTable {
		kg := RoundKg(distanceKm * e.FactorKgPerKm)
		if kg > maxKg {
			maxKg = kg
		}
		rows = append(rows, Comparison{EmissionFactorEntry: e, EmissionKg: kg})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EmissionKg < rows[j].EmissionKg
	})

	for i := range rows {
		if maxKg > 0 {
			rows[i].Share = rows[i].EmissionKg / maxKg
		}
	}
	if len(rows) > 0 && rows[0].EmissionKg == 0 {
		rows[0].Best = true
	}

	return rows
}

// ComparisonDistance returns distanceKm when it is valid, otherwise
// DefaultComparisonDistanceKm.
func ComparisonDistance(distanceKm float64) float64 {
	if ValidateDistance(distanceKm) != nil {
		return DefaultComparisonDistanceKm
	}
	return distanceKm
}
