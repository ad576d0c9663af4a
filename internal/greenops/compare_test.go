package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_100km(t *testing.T) {
	rows := Compare(100)
	require.Len(t, rows, 7)

	// Zero-emission modes come first in table order.
	assert.Equal(t, ModeBicycle, rows[0].Mode)
	assert.Equal(t, ModeWalking, rows[1].Mode)
	assert.Zero(t, rows[0].EmissionKg)
	assert.Zero(t, rows[1].EmissionKg)
	assert.True(t, rows[0].Best)
	assert.False(t, rows[1].Best)

	wantOrder := []TransportMode{ModeBicycle, ModeWalking, ModeTrain, ModeBus, ModeMotorcycle, ModeCar, ModeAirplane}
	for i, mode := range wantOrder {
		assert.Equal(t, mode, rows[i].Mode, "row %d", i)
	}

	last := rows[len(rows)-1]
	assert.InDelta(t, 25.0, last.EmissionKg, 1e-9)
	assert.InDelta(t, 1.0, last.Share, 1e-9)
	assert.InDelta(t, 12.0/25.0, rows[5].Share, 1e-9)
}

func TestCompare_AscendingOrder(t *testing.T) {
	rows := Compare(37.3)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].EmissionKg, rows[i].EmissionKg)
	}
}

func TestCompare_AllZeroShare(t *testing.T) {
	rows := Compare(0.001)
	for _, r := range rows {
		assert.Zero(t, r.Share, "mode %s", r.Mode)
	}
}

func TestComparisonDistance(t *testing.T) {
	assert.InDelta(t, 42.0, ComparisonDistance(42), 1e-9)
	assert.InDelta(t, DefaultComparisonDistanceKm, ComparisonDistance(0), 1e-9)
	assert.InDelta(t, DefaultComparisonDistanceKm, ComparisonDistance(-5), 1e-9)
}
