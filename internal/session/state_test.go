package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/history"
	"github.com/EHLuC/ecotrip/internal/session"
)

func TestNewState(t *testing.T) {
	s := session.NewState()
	assert.Equal(t, greenops.ModeCar, s.Mode)
	assert.Equal(t, session.ThemeLight, s.Theme)
	assert.False(t, s.Busy)
	assert.Nil(t, s.Result)
	assert.False(t, s.CanCalculate())
}

func TestActions_DoNotMutateInput(t *testing.T) {
	base := session.HistoryLoaded(session.NewState(), []history.Entry{{ID: "a"}})

	next := session.SetDistance(base, "42")
	next = session.SelectMode(next, greenops.ModeTrain)
	next = session.ToggleComparison(next)
	next = session.ToggleTheme(next)
	next.History[0].ID = "changed"

	assert.Equal(t, "", base.Distance)
	assert.Equal(t, greenops.ModeCar, base.Mode)
	assert.False(t, base.ShowComparison)
	assert.Equal(t, session.ThemeLight, base.Theme)
	assert.Equal(t, "a", base.History[0].ID)

	assert.Equal(t, "42", next.Distance)
	assert.Equal(t, greenops.ModeTrain, next.Mode)
	assert.True(t, next.ShowComparison)
	assert.Equal(t, session.ThemeDark, next.Theme)
}

func TestToggleTheme_RoundTrip(t *testing.T) {
	s := session.ToggleTheme(session.ToggleTheme(session.NewState()))
	assert.Equal(t, session.ThemeLight, s.Theme)
}

func TestBeginCalculation(t *testing.T) {
	tests := []struct {
		name     string
		state    session.State
		wantBusy bool
	}{
		{name: "empty distance", state: session.NewState()},
		{name: "zero distance", state: session.SetDistance(session.NewState(), "0")},
		{name: "non numeric", state: session.SetDistance(session.NewState(), "abc")},
		{name: "valid", state: session.SetDistance(session.NewState(), "12,5"), wantBusy: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := session.BeginCalculation(tt.state)
			assert.Equal(t, tt.wantBusy, got.Busy)
		})
	}
}

func TestBeginCalculation_NoOpWhileBusy(t *testing.T) {
	busy := session.BeginCalculation(session.SetDistance(session.NewState(), "10"))
	assert.True(t, busy.Busy)
	assert.False(t, busy.CanCalculate())
	assert.Equal(t, busy, session.BeginCalculation(busy))
}

func TestCompleteAndFailCalculation(t *testing.T) {
	busy := session.BeginCalculation(session.SetDistance(session.NewState(), "10"))
	result := session.Result{Mode: greenops.ModeCar, DistanceKm: 10, EmissionKg: 1.2, TreesToOffset: 1}
	entries := []history.Entry{{ID: "x"}}

	done := session.CompleteCalculation(busy, result, entries)
	assert.False(t, done.Busy)
	if assert.NotNil(t, done.Result) {
		assert.InDelta(t, 1.2, done.Result.EmissionKg, 1e-9)
	}
	assert.Equal(t, entries, done.History)

	boom := errors.New("boom")
	failed := session.FailCalculation(busy, boom)
	assert.False(t, failed.Busy)
	assert.ErrorIs(t, failed.Err, boom)
}

func TestHistoryCleared(t *testing.T) {
	s := session.HistoryLoaded(session.NewState(), []history.Entry{{ID: "a"}, {ID: "b"}})
	assert.Len(t, s.History, 2)
	assert.Empty(t, session.HistoryCleared(s).History)
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, session.ThemeDark, session.ParseTheme("dark"))
	assert.Equal(t, session.ThemeLight, session.ParseTheme("light"))
	assert.Equal(t, session.ThemeLight, session.ParseTheme(""))
}
