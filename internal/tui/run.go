package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/EHLuC/ecotrip/internal/session"
)

// Run starts the calculator in the alternate screen and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, ctrl *session.Controller, opts ...tea.ProgramOption) error {
	m := NewModel(ctx, ctrl)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)

	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
