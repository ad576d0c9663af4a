package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmissionTable_OneEntryPerMode(t *testing.T) {
	seen := make(map[TransportMode]bool)
	for _, e := range Entries() {
		assert.False(t, seen[e.Mode], "duplicate entry for %s", e.Mode)
		seen[e.Mode] = true
		assert.GreaterOrEqual(t, e.FactorKgPerKm, 0.0, "negative factor for %s", e.Mode)
		assert.NotEmpty(t, e.Label)
		assert.NotEmpty(t, e.Icon)
	}
	assert.Len(t, seen, 7)
}

func TestModes_TableOrder(t *testing.T) {
	assert.Equal(t, []TransportMode{
		ModeCar, ModeMotorcycle, ModeBus, ModeAirplane, ModeTrain, ModeBicycle, ModeWalking,
	}, Modes())
}

func TestLookup(t *testing.T) {
	car := Lookup(ModeCar)
	assert.InDelta(t, 0.12, car.FactorKgPerKm, 1e-9)
	assert.Equal(t, "Car", car.Label)

	unknown := Lookup("hovercraft")
	assert.Equal(t, TransportMode("hovercraft"), unknown.Mode)
	assert.Zero(t, unknown.FactorKgPerKm)
	assert.False(t, IsKnownMode("hovercraft"))
	assert.True(t, IsKnownMode(ModeTrain))
}

func TestEntries_ReturnsCopy(t *testing.T) {
	entries := Entries()
	entries[0].FactorKgPerKm = 99

	assert.InDelta(t, 0.12, Lookup(ModeCar).FactorKgPerKm, 1e-9)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  TransportMode
	}{
		{input: "car", want: ModeCar},
		{input: "CAR", want: ModeCar},
		{input: "carro", want: ModeCar},
		{input: "moto", want: ModeMotorcycle},
		{input: "onibus", want: ModeBus},
		{input: "aviao", want: ModeAirplane},
		{input: " plane ", want: ModeAirplane},
		{input: "trem", want: ModeTrain},
		{input: "bike", want: ModeBicycle},
		{input: "pe", want: ModeWalking},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseMode("rocket")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		kg   float64
		want Severity
	}{
		{kg: 0, want: SeverityZero},
		{kg: 0.01, want: SeverityLow},
		{kg: 19.99, want: SeverityLow},
		{kg: 20, want: SeverityMedium},
		{kg: 49.99, want: SeverityMedium},
		{kg: 50, want: SeverityHigh},
		{kg: 99.99, want: SeverityHigh},
		{kg: 100, want: SeverityVeryHigh},
		{kg: 2500, want: SeverityVeryHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityFor(tt.kg), "kg=%v", tt.kg)
	}
}

func TestSeverity_Strings(t *testing.T) {
	assert.Equal(t, "very-high", SeverityVeryHigh.String())
	assert.Equal(t, "Zero Emission", SeverityZero.Label())

	text, err := SeverityMedium.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "medium", string(text))
}
