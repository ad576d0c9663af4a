package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/EHLuC/ecotrip/internal/greenops"
	"github.com/EHLuC/ecotrip/internal/logging"
	"github.com/EHLuC/ecotrip/internal/session"
	"github.com/EHLuC/ecotrip/internal/tui/picker"
)

// Layout defaults used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30

	distanceCharLimit  = 12
	distanceInputWidth = 14
)

// stateMsg signals that the controller published a new state.
type stateMsg struct{}

// historyClearedMsg carries the outcome of clearing the history.
type historyClearedMsg struct {
	err error
}

// Model is the Bubble Tea model for the calculator.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type Model struct {
	ctx  context.Context
	ctrl *session.Controller

	// Interactive components
	input       textinput.Model
	modes       *picker.Model[greenops.EmissionFactorEntry]
	loading     *LoadingState
	comparisons *comparisonCache

	// state mirrors ctrl.State() as of the last update.
	state session.State

	width  int
	height int

	// err is the last input or clear error shown under the form.
	err error
}

// NewModel creates the calculator model over ctrl.
func NewModel(ctx context.Context, ctrl *session.Controller) Model {
	st := ctrl.State()

	entries := greenops.Entries()
	modes := picker.New(entries, len(entries), true, renderModeItem)
	for i, e := range entries {
		if e.Mode == st.Mode {
			modes.SetSelected(i)
		}
	}

	return Model{
		ctx:         ctx,
		ctrl:        ctrl,
		input:       newDistanceInput(st.Distance),
		modes:       modes,
		loading:     NewLoadingState(),
		comparisons: newComparisonCache(),
		state:       st,
		width:       defaultWidth,
		height:      defaultHeight,
	}
}

func newDistanceInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Distance in km"
	ti.CharLimit = distanceCharLimit
	ti.Width = distanceInputWidth
	ti.Prompt = "km › "
	ti.SetValue(value)
	ti.Focus()
	return ti
}

// Init starts cursor blinking and listens for controller updates.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForUpdate(m.ctx, m.ctrl.Updates()))
}

// waitForUpdate blocks until the controller publishes or ctx ends.
func waitForUpdate(ctx context.Context, updates <-chan session.State) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-updates:
			return stateMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		cmd := m.refresh()
		return m, tea.Batch(cmd, waitForUpdate(m.ctx, m.ctrl.Updates()))

	case spinner.TickMsg:
		if !m.state.Busy {
			return m, nil
		}
		return m, m.loading.Update(msg)

	case historyClearedMsg:
		m.err = msg.err
		return m, m.refresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh copies the controller state and starts the spinner when a
// calculation has just begun.
func (m *Model) refresh() tea.Cmd {
	wasBusy := m.state.Busy
	m.state = m.ctrl.State()
	if m.state.Busy && !wasBusy {
		return m.loading.Init()
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.ctrl.Cancel()
		return m, tea.Quit
	case "enter":
		return m.submit()
	case "esc":
		m.ctrl.Cancel()
		return m, m.refresh()
	case "c":
		m.ctrl.ToggleComparison()
		return m, m.refresh()
	case "t":
		m.ctrl.ToggleTheme()
		return m, m.refresh()
	case "x":
		return m, m.clearHistory()
	case "tab", "shift+tab", "up", "down":
		m.modes.Update(msg)
		if item := m.modes.SelectedItem(); item != nil {
			m.ctrl.SelectMode(item.Mode)
		}
		return m, m.refresh()
	}

	if !isDistanceKey(msg) {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDistance(m.input.Value())
	m.err = nil
	return m, tea.Batch(cmd, m.refresh())
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	started, err := m.ctrl.Submit(m.ctx)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	if !started {
		return m, nil
	}
	return m, m.refresh()
}

func (m Model) clearHistory() tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl
	return func() tea.Msg {
		err := ctrl.ClearHistory(ctx)
		if err != nil {
			logging.FromContext(ctx).Warn().
				Ctx(ctx).
				Str("component", "tui").
				Err(err).
				Msg("clearing history failed")
		}
		return historyClearedMsg{err: err}
	}
}

// isDistanceKey reports whether msg edits the distance field. Only digits
// and decimal separators are accepted as text.
//
//nolint:exhaustive // Every other key type is rejected.
func isDistanceKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight:
		return true
	case tea.KeyRunes:
		if msg.Paste || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '.' && r != ',' {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// errorText is the message shown for err under the form.
func errorText(err error) string {
	if errors.Is(err, greenops.ErrInvalidDistance) {
		return "Enter a distance greater than zero."
	}
	return err.Error()
}
