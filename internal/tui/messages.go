package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/lostboard/internal/board"
	"github.com/idilsaglam/lostboard/internal/model"
)

type loadedMsg struct{ err error }

type addedMsg struct {
	item model.Item
	err  error
}

type markedMsg struct {
	id   string
	item model.Item
	err  error
}

// searchCommittedMsg carries search text once typing has gone quiet.
type searchCommittedMsg struct{ text string }

func loadCmd(ctx context.Context, b *board.Board) tea.Cmd {
	return func() tea.Msg { return loadedMsg{err: b.Load(ctx)} }
}

func addCmd(ctx context.Context, b *board.Board, d model.Draft) tea.Cmd {
	return func() tea.Msg {
		it, err := b.Add(ctx, d)
		return addedMsg{item: it, err: err}
	}
}

func markCmd(ctx context.Context, b *board.Board, id string) tea.Cmd {
	return func() tea.Msg {
		it, err := b.MarkDone(ctx, id)
		return markedMsg{id: id, item: it, err: err}
	}
}

// waitForSearch blocks until the debouncer commits a value.
func waitForSearch(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return nil
		}
		return searchCommittedMsg{text: text}
	}
}
