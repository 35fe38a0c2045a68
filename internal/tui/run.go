package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/lostboard/internal/board"
)

// Run starts the board UI on the alternate screen and blocks until the user
// quits or ctx is canceled.
func Run(ctx context.Context, b *board.Board, opt Options) error {
	m := New(ctx, b, opt)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.debouncer.Stop()
	}
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
