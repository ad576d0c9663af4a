package sorting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EHLuC/ecotrip/internal/cli/sorting"
	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/history"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		expr      string
		wantField string
		wantOrder string
		wantErr   bool
	}{
		{expr: "emission", wantField: "emission", wantOrder: "desc"},
		{expr: "distance:asc", wantField: "distance", wantOrder: "asc"},
		{expr: " mode : DESC ", wantField: "mode", wantOrder: "desc"},
		{expr: "", wantErr: true},
		{expr: ":asc", wantErr: true},
		{expr: "date:sideways", wantErr: true},
		{expr: "a:b:c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			field, order, err := sorting.ParseSort(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestEntrySorter_Sort(t *testing.T) {
	entries := []history.Entry{
		{ID: "03", DistanceKm: 10, Mode: greenops.ModeCar, EmissionKg: 1.2},
		{ID: "02", DistanceKm: 300, Mode: greenops.ModeAirplane, EmissionKg: 75},
		{ID: "01", DistanceKm: 10, Mode: greenops.ModeBus, EmissionKg: 0.5},
	}
	s := sorting.NewEntrySorter()

	ids := func(es []history.Entry) []string {
		out := make([]string, len(es))
		for i, e := range es {
			out[i] = e.ID
		}
		return out
	}

	tests := []struct {
		field, order string
		want         []string
	}{
		{"emission", "desc", []string{"02", "03", "01"}},
		{"emission", "asc", []string{"01", "03", "02"}},
		{"distance", "asc", []string{"03", "01", "02"}},
		{"date", "asc", []string{"01", "02", "03"}},
		{"mode", "asc", []string{"02", "01", "03"}},
	}

	for _, tt := range tests {
		t.Run(tt.field+":"+tt.order, func(t *testing.T) {
			got, err := s.Sort(entries, tt.field, tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	assert.Equal(t, []string{"03", "02", "01"}, ids(entries), "input not modified")
}

func TestEntrySorter_InvalidField(t *testing.T) {
	s := sorting.NewEntrySorter()
	_, err := s.Sort(nil, "price", "asc")
	require.ErrorIs(t, err, sorting.ErrInvalidSortField)
	assert.False(t, s.IsValidField("price"))
	assert.Equal(t, []string{"date", "distance", "emission", "mode"}, s.ValidFields())
}
