// Package session holds the interactive calculator state as an immutable
// value, the pure actions that derive new states from it, and a Controller
// that runs calculations through a Scheduler.
package session

import (
	"github.com/EHLuC/ecotrip/internal/advice"
	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/history"
)

// Theme is the display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns ThemeDark for "dark" and ThemeLight for anything else.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Result is the outcome of one calculation.
type Result struct {
	Mode          greenops.TransportMode     `json:"mode"`
	DistanceKm    float64                    `json:"distance_km"`
	EmissionKg    float64                    `json:"emission_kg"`
	TreesToOffset int                        `json:"trees_to_offset"`
	Severity      greenops.Severity          `json:"severity"`
	Advice        string                     `json:"advice"`
	Rule          advice.Rule                `json:"-"`
	Equivalency   greenops.EquivalencyOutput `json:"-"`
}

// State is a snapshot of the calculator. Values are never mutated in
// place; every action returns a new State.
type State struct {
	// Distance is the raw distance text as typed.
	Distance string

	Mode           greenops.TransportMode
	Result         *Result
	History        []history.Entry
	ShowComparison bool
	Theme          Theme

	// Busy is true while a calculation is pending.
	Busy bool

	// Err is the last calculation or persistence error, if any.
	Err error
}

// NewState returns the initial state: car selected, light theme, empty input.
func NewState() State {
	return State{Mode: greenops.ModeCar, Theme: ThemeLight}
}

// DistanceKm parses the raw distance text.
func (s State) DistanceKm() (float64, error) {
	return greenops.ParseDistance(s.Distance)
}

// CanCalculate reports whether a calculation may start.
func (s State) CanCalculate() bool {
	_, err := s.DistanceKm()
	return err == nil && !s.Busy
}

// clone copies the slice and pointer fields so the returned value shares
// nothing mutable with s.
func (s State) clone() State {
	if s.History != nil {
		s.History = append([]history.Entry(nil), s.History...)
	}
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	return s
}

// SetDistance replaces the distance text.
func SetDistance(s State, text string) State {
	n := s.clone()
	n.Distance = text
	return n
}

// SelectMode changes the selected transport mode.
func SelectMode(s State, mode greenops.TransportMode) State {
	n := s.clone()
	n.Mode = mode
	return n
}

// ToggleComparison shows or hides the comparison table.
func ToggleComparison(s State) State {
	n := s.clone()
	n.ShowComparison = !n.ShowComparison
	return n
}

// ToggleTheme flips between light and dark.
func ToggleTheme(s State) State {
	n := s.clone()
	if n.Theme == ThemeDark {
		n.Theme = ThemeLight
	} else {
		n.Theme = ThemeDark
	}
	return n
}

// BeginCalculation marks the state busy. It returns s unchanged when the
// distance is invalid or a calculation is already pending.
func BeginCalculation(s State) State {
	if !s.CanCalculate() {
		return s
	}
	n := s.clone()
	n.Busy = true
	n.Err = nil
	return n
}

// CompleteCalculation stores result and the updated history and clears busy.
func CompleteCalculation(s State, result Result, entries []history.Entry) State {
	n := s.clone()
	n.Busy = false
	n.Result = &result
	n.History = append([]history.Entry(nil), entries...)
	return n
}

// FailCalculation clears busy and records err.
func FailCalculation(s State, err error) State {
	n := s.clone()
	n.Busy = false
	n.Err = err
	return n
}

// HistoryCleared empties the history.
func HistoryCleared(s State) State {
	n := s.clone()
	n.History = []history.Entry{}
	return n
}

// HistoryLoaded replaces the history with entries.
func HistoryLoaded(s State, entries []history.Entry) State {
	n := s.clone()
	n.History = append([]history.Entry(nil), entries...)
	return n
}
