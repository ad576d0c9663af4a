package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/history"
	"github.com/EHLuC/ecotrip/internal/session"
	"github.com/EHLuC/ecotrip/internal/storage"
)

func newTestModel(t *testing.T) (Model, *session.Controller) {
	t.Helper()
	hist := history.New(storage.NewMemoryStore())
	ctrl := session.NewController(nil, hist, session.WithDelay(0))
	return NewModel(context.Background(), ctrl), ctrl
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func selectMode(t *testing.T, m Model, mode greenops.TransportMode) Model {
	t.Helper()
	for range greenops.Entries() {
		if m.state.Mode == mode {
			return m
		}
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, mode, m.state.Mode)
	return m
}

func TestModel_TypingUpdatesDistance(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = send(t, m, runes("1"), runes("2"), runes(","), runes("5"))

	assert.Equal(t, "12,5", m.input.Value())
	assert.Equal(t, "12,5", ctrl.State().Distance)
	assert.Equal(t, "12,5", m.state.Distance)
}

func TestModel_RejectsNonNumericInput(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = send(t, m, runes("4"), runes("a"), runes("-"), runes("2"))

	assert.Equal(t, "42", m.input.Value())
	assert.Equal(t, "42", ctrl.State().Distance)
}

func TestModel_Backspace(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = send(t, m, runes("1"), runes("0"), tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "1", m.input.Value())
	assert.Equal(t, "1", ctrl.State().Distance)
}

func TestModel_TabCyclesModes(t *testing.T) {
	m, ctrl := newTestModel(t)
	entries := greenops.Entries()
	require.Equal(t, entries[0].Mode, m.state.Mode)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, entries[1].Mode, ctrl.State().Mode)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, entries[len(entries)-1].Mode, m.state.Mode, "wraps around")
}

func TestModel_SubmitShowsResult(t *testing.T) {
	m, ctrl := newTestModel(t)

	m = selectMode(t, m, greenops.ModeAirplane)
	m = send(t, m, runes("3"), runes("0"), runes("0"), tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, m.state.Result)
	assert.InDelta(t, 75.0, m.state.Result.EmissionKg, 0.001)
	assert.Equal(t, greenops.SeverityHigh, m.state.Result.Severity)
	assert.Len(t, ctrl.State().History, 1)

	view := m.View()
	assert.Contains(t, view, "75.00 kg CO₂")
	assert.Contains(t, view, "High")
	assert.Contains(t, view, "4 trees")
	assert.Contains(t, view, "1 trip •")
}

func TestModel_SubmitInvalidDistance(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.ErrorIs(t, m.err, greenops.ErrInvalidDistance)
	assert.Nil(t, m.state.Result)
	assert.Contains(t, m.View(), "Enter a distance greater than zero.")

	m = send(t, m, runes("5"))
	assert.NoError(t, m.err, "typing clears the error")
}

func TestModel_ToggleComparison(t *testing.T) {
	m, _ := newTestModel(t)
	assert.NotContains(t, m.View(), "Compare")

	m = send(t, m, runes("c"))
	require.True(t, m.state.ShowComparison)
	view := m.View()
	assert.Contains(t, view, "Compare • 100.00 km")
	assert.Equal(t, 1, m.comparisons.Len())

	m = send(t, m, runes("5"), runes("0"))
	m.View()
	assert.Equal(t, 2, m.comparisons.Len())

	m = send(t, m, runes("c"))
	assert.False(t, m.state.ShowComparison)
}

func TestModel_ToggleTheme(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, session.ThemeLight, m.state.Theme)

	m = send(t, m, runes("t"))
	assert.Equal(t, session.ThemeDark, m.state.Theme)
}

func TestModel_ClearHistory(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = send(t, m, runes("1"), runes("0"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.state.History, 1)

	_, cmd := m.Update(runes("x"))
	require.NotNil(t, cmd)
	msg := cmd()
	cleared, ok := msg.(historyClearedMsg)
	require.True(t, ok)
	require.NoError(t, cleared.err)

	m = send(t, m, msg)
	assert.Empty(t, m.state.History)
	assert.Empty(t, ctrl.State().History)
	assert.Contains(t, m.View(), "No calculations yet.")
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m, _ := newTestModel(t)
		_, cmd := m.Update(key)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_StateMsgRefreshes(t *testing.T) {
	m, ctrl := newTestModel(t)

	ctrl.SetDistance("250")
	m = send(t, m, stateMsg{})

	assert.Equal(t, "250", m.state.Distance)
}

func TestModel_NarrowLayoutStacksSidebar(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 40})

	assert.Equal(t, 60, m.width)
	assert.Contains(t, m.View(), "History")
}

func TestIsDistanceKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want bool
	}{
		{"digit", runes("7"), true},
		{"dot", runes("."), true},
		{"comma", runes(","), true},
		{"letter", runes("c"), false},
		{"minus", runes("-"), false},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, true},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, false},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("12"), Paste: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDistanceKey(tt.msg))
		})
	}
}
