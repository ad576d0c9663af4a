package greenops

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		kg          float64
		wantTrees   float64
		wantCarKm   float64
		wantPhones  float64
		wantIsEmpty bool
		wantErr     error
	}{
		{
			name:       "30kg reference value",
			kg:         30,
			wantTrees:  2,
			wantCarKm:  250,     // 30 / 0.12
			wantPhones: 3649.64, // 30 / 0.00822
		},
		{
			name:       "exactly at threshold",
			kg:         1,
			wantTrees:  1,
			wantCarKm:  8.333333,
			wantPhones: 121.65,
		},
		{
			name:        "below threshold returns empty",
			kg:          0.5,
			wantIsEmpty: true,
		},
		{
			name:        "zero returns empty",
			kg:          0,
			wantIsEmpty: true,
		},
		{
			name:    "negative value returns error",
			kg:      -10,
			wantErr: ErrNegativeValue,
		},
		{
			name:    "infinity returns overflow",
			kg:      math.Inf(1),
			wantErr: ErrCalculationOverflow,
		},
		{
			name:    "NaN returns overflow",
			kg:      math.NaN(),
			wantErr: ErrCalculationOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.kg)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.IsEmpty, "IsEmpty should be true on error")
				return
			}
			require.NoError(t, err)

			if tt.wantIsEmpty {
				assert.True(t, got.IsEmpty)
				assert.InDelta(t, tt.kg, got.InputKg, 1e-9)
				return
			}

			assert.False(t, got.IsEmpty)
			require.Len(t, got.Results, 3)
			assert.Equal(t, EquivalencyTrees, got.Results[0].Type)
			assert.InDelta(t, tt.wantTrees, got.Results[0].Value, 1e-9)
			assert.InDelta(t, tt.wantCarKm, got.Results[1].Value, tt.wantCarKm*0.01)
			assert.InDelta(t, tt.wantPhones, got.Results[2].Value, tt.wantPhones*0.01)
			assert.Contains(t, got.DisplayText, "Equivalent to driving")
			assert.Contains(t, got.DisplayText, "smartphones")
		})
	}
}

func TestCalculate_DisplayTextFormatting(t *testing.T) {
	got, err := Calculate(30)
	require.NoError(t, err)

	assert.Equal(t, "Equivalent to driving ~250 km or charging ~3,650 smartphones", got.DisplayText)
	assert.Equal(t, "2", got.Results[0].FormattedValue)
}

func TestCalculateForDisplay(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input passes through", func(t *testing.T) {
		got := CalculateForDisplay(ctx, 30)
		assert.False(t, got.IsEmpty)
	})

	t.Run("errors become empty output", func(t *testing.T) {
		got := CalculateForDisplay(ctx, -1)
		assert.True(t, got.IsEmpty)
		assert.Empty(t, got.Results)
	})
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "Trees", EquivalencyTrees.String())
	assert.Equal(t, "CarKilometers", EquivalencyCarKilometers.String())
	assert.Equal(t, "SmartphonesCharged", EquivalencySmartphonesCharged.String())
	assert.Equal(t, "EquivalencyType(99)", EquivalencyType(99).String())
}

func TestCalculate_HugeEmissionKeepsTreesPositive(t *testing.T) {
	fp := Compute(1e300, ModeCar)

	out, err := Calculate(fp.EmissionKg)
	require.NoError(t, err)
	require.Len(t, out.Results, 3)
	assert.Equal(t, EquivalencyTrees, out.Results[0].Type)
	assert.InDelta(t, float64(math.MaxInt), out.Results[0].Value, 1)
	assert.Positive(t, out.Results[0].Value)
}
