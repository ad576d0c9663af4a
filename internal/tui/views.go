package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/history"
)

const (
	// narrowWidth is the width below which the sidebar stacks under the form.
	narrowWidth = 80

	mainColumnWidth    = 52
	sidebarColumnWidth = 36
	columnGap          = 2
)

const helpText = "enter calculate • tab/↑/↓ mode • c compare • x clear history • t theme • esc cancel • q quit"

// View renders the calculator.
func (m Model) View() string {
	p := PaletteFor(m.state.Theme)

	sections := []string{m.renderForm(p)}
	if m.state.Result != nil {
		sections = append(sections, m.renderResult(p))
	}
	if m.state.ShowComparison {
		sections = append(sections, m.renderComparison(p))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, sections...)
	sidebar := m.renderHistory(p)

	var body string
	if m.width < narrowWidth {
		body = lipgloss.JoinVertical(lipgloss.Left, left, sidebar)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", columnGap), sidebar)
	}

	title := p.Title.Render(IconLeaf + " EcoTrip")
	return lipgloss.JoinVertical(lipgloss.Left, title, body, p.Help.Render(helpText))
}

func (m Model) renderForm(p Palette) string {
	lines := []string{
		p.Title.Render("Trip"),
		m.input.View(),
		"",
		m.modes.View(),
		"",
	}

	switch {
	case m.state.Busy:
		lines = append(lines, RenderLoading(m.loading))
	case m.err != nil:
		lines = append(lines, p.Error.Render(errorText(m.err)))
	case m.state.Err != nil:
		lines = append(lines, p.Error.Render("Not saved: "+m.state.Err.Error()))
	default:
		lines = append(lines, p.Muted.Render("Press enter to calculate."))
	}

	return p.Panel.Width(mainColumnWidth).Render(strings.Join(lines, "\n"))
}

func renderModeItem(e greenops.EmissionFactorEntry, selected bool) string {
	text := fmt.Sprintf("%s %-10s %s kg/km", e.Icon, e.Label, strconv.FormatFloat(e.FactorKgPerKm, 'f', -1, 64))
	if selected {
		return lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Render(IconPointer + " " + text)
	}
	return "  " + text
}

func (m Model) renderResult(p Palette) string {
	r := m.state.Result
	entry := greenops.Lookup(r.Mode)
	emission := lipgloss.NewStyle().Bold(true).Foreground(SeverityColor(r.Severity)).
		Render(greenops.FormatKg(r.EmissionKg) + " kg CO₂")

	lines := []string{
		p.Title.Render("Result"),
		fmt.Sprintf("%s %s • %s km", entry.Icon, entry.Label, greenops.FormatFloat(r.DistanceKm, 2)), //nolint:mnd // Two decimals.
		emission,
		"Severity: " + RenderSeverity(r.Severity),
		fmt.Sprintf("%s %s to offset in one year", IconTree, plural(r.TreesToOffset, "tree")),
	}
	if r.Advice != "" {
		lines = append(lines, "", p.Text.Render(r.Advice))
	}
	if !r.Equivalency.IsEmpty && r.Equivalency.DisplayText != "" {
		lines = append(lines, p.Muted.Render(r.Equivalency.DisplayText))
	}

	return p.Panel.Width(mainColumnWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderComparison(p Palette) string {
	d, err := m.state.DistanceKm()
	if err != nil {
		d = greenops.DefaultComparisonDistanceKm
	}
	t := newComparisonTable(m.comparisons.Rows(d))

	header := p.Title.Render(fmt.Sprintf("Compare • %s km", greenops.FormatFloat(d, 2))) //nolint:mnd // Two decimals.
	return p.Panel.Width(mainColumnWidth).Render(header + "\n" + t.View())
}

func (m Model) renderHistory(p Palette) string {
	lines := []string{p.Title.Render("History")}

	if len(m.state.History) == 0 {
		lines = append(lines, p.Muted.Render("No calculations yet."))
		return p.Panel.Width(sidebarColumnWidth).Render(strings.Join(lines, "\n"))
	}

	for _, e := range m.state.History {
		entry := greenops.Lookup(e.Mode)
		lines = append(lines,
			fmt.Sprintf("%s %s km • %s kg", entry.Icon, greenops.FormatFloat(e.DistanceKm, 2), greenops.FormatKg(e.EmissionKg)), //nolint:mnd // Two decimals.
			p.Muted.Render(entryWhen(e)),
		)
	}

	totals := history.Aggregate(m.state.History)
	lines = append(lines, "",
		fmt.Sprintf("%s • %s kg", plural(totals.Count, "trip"), greenops.FormatKg(totals.TotalEmissionKg)),
		fmt.Sprintf("%s %s", IconTree, plural(totals.TotalTreesToOffset, "tree")),
	)

	return p.Panel.Width(sidebarColumnWidth).Render(strings.Join(lines, "\n"))
}

// entryWhen is the date label plus the relative time when the ID carries one.
func entryWhen(e history.Entry) string {
	t := e.Time()
	if t.IsZero() {
		return e.Date
	}
	return e.Date + " • " + humanize.Time(t)
}

// plural formats n with word, adding an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}
