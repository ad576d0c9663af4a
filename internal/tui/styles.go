// Package tui implements the interactive EcoTrip calculator as a Bubble Tea
// program driven by a session.Controller.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/session"
)

// Severity colours.
const (
	ColorZero     = lipgloss.Color("42")  // Green
	ColorOK       = lipgloss.Color("114") // Light green
	ColorWarning  = lipgloss.Color("214") // Orange
	ColorHigh     = lipgloss.Color("202") // Dark orange
	ColorCritical = lipgloss.Color("196") // Red
)

// Chrome colours.
const (
	ColorHeader = lipgloss.Color("39")
	ColorBorder = lipgloss.Color("241")
	ColorMuted  = lipgloss.Color("245")
	ColorAccent = lipgloss.Color("35")
)

// Icons.
const (
	IconPointer = "▸"
	IconLeaf    = "🌱"
	IconTree    = "🌳"
	IconBar     = "█"
)

// Palette groups the styles that change with the theme.
type Palette struct {
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Title    lipgloss.Style
	Panel    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// PaletteFor returns the palette for theme.
func PaletteFor(theme session.Theme) Palette {
	fg := lipgloss.Color("235")
	bg := lipgloss.Color("255")
	border := ColorBorder
	if theme == session.ThemeDark {
		fg = lipgloss.Color("252")
		bg = lipgloss.Color("234")
		border = lipgloss.Color("238")
	}

	return Palette{
		Text:  lipgloss.NewStyle().Foreground(fg),
		Muted: lipgloss.NewStyle().Foreground(ColorMuted),
		Title: lipgloss.NewStyle().Bold(true).Foreground(ColorHeader),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(ColorCritical),
		Help:     lipgloss.NewStyle().Foreground(ColorMuted).Background(bg),
	}
}

// SeverityColor maps a severity band to its display colour.
func SeverityColor(s greenops.Severity) lipgloss.Color {
	switch s {
	case greenops.SeverityZero:
		return ColorZero
	case greenops.SeverityLow:
		return ColorOK
	case greenops.SeverityMedium:
		return ColorWarning
	case greenops.SeverityHigh:
		return ColorHigh
	case greenops.SeverityVeryHigh:
		return ColorCritical
	default:
		return ColorMuted
	}
}

// RenderSeverity renders the band label in its colour.
func RenderSeverity(s greenops.Severity) string {
	return lipgloss.NewStyle().Bold(true).Foreground(SeverityColor(s)).Render(s.Label())
}
