package picker

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor is used to centre the selection in the viewport.
const halfViewportDivisor = 2

// RenderFunc renders one item. selected marks the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a selectable list of items.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	selected int
	wrap     bool

	// visibleFrom and visibleTo bound the rendered rows (to is exclusive).
	visibleFrom int
	visibleTo   int

	height int
}

// New creates a picker over items showing at most height rows. When wrap is
// true moving past either end continues at the other.
func New[T any](items []T, height int, wrap bool, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		wrap:       wrap,
		height:     max(height, 1),
	}
	m.updateVisibleRange()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update moves the selection on up/down, tab/shift+tab, j/k, home/end.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		m.handleKey(key)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys are handled.
func (m *Model[T]) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyShiftTab:
		m.Prev()
	case tea.KeyDown, tea.KeyTab:
		m.Next()
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		switch msg.String() {
		case "j":
			m.Next()
		case "k":
			m.Prev()
		}
	}
}

// Next moves the selection down one row.
func (m *Model[T]) Next() {
	switch {
	case len(m.items) == 0:
		return
	case m.selected < len(m.items)-1:
		m.selected++
	case m.wrap:
		m.selected = 0
	}
	m.updateVisibleRange()
}

// Prev moves the selection up one row.
func (m *Model[T]) Prev() {
	switch {
	case len(m.items) == 0:
		return
	case m.selected > 0:
		m.selected--
	case m.wrap:
		m.selected = len(m.items) - 1
	}
	m.updateVisibleRange()
}

// SetSelected selects index, clamped to the item range.
func (m *Model[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}
	m.selected = max(0, min(index, len(m.items)-1))
	m.updateVisibleRange()
}

// SetHeight changes the number of visible rows.
func (m *Model[T]) SetHeight(height int) {
	m.height = max(height, 1)
	m.updateVisibleRange()
}

// updateVisibleRange keeps the selection inside the rendered window.
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	from := m.selected - m.height/halfViewportDivisor
	from = max(0, min(from, len(m.items)-m.height))
	m.visibleFrom = from
	m.visibleTo = min(from+m.height, len(m.items))
}

// View renders the visible rows.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	lines := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// Selected returns the selected index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// SelectedItem returns the selected item, or nil when the list is empty.
func (m *Model[T]) SelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// VisibleRange returns the rendered row bounds; to is exclusive.
//
//nolint:nonamedreturns // Named returns document the bounds.
func (m *Model[T]) VisibleRange() (from, to int) {
	return m.visibleFrom, m.visibleTo
}
