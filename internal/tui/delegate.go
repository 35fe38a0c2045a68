package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/lostboard/internal/model"
)

// card adapts a board item to list.Item.
type card struct {
	item    model.Item
	marking bool
}

func (c card) Title() string       { return c.item.Title }
func (c card) Description() string { return c.item.Location + " · " + c.item.Date }
func (c card) FilterValue() string { return c.item.Title }

// cardDelegate renders each item as a two-line card:
//
//	> ● found  Wallet                    ✔ done
//	    Central library · 2025-03-01   [ In process... ]
type cardDelegate struct{}

func (d cardDelegate) Height() int                               { return 2 }
func (d cardDelegate) Spacing() int                              { return 1 }
func (d cardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d cardDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	c, ok := li.(card)
	if !ok {
		return
	}

	title := c.item.Title
	if c.item.Done() {
		title = doneStyle.Render(title)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}

	fmt.Fprintf(w, "%s%s  %s  %s\n", prefix, kindBadge(c.item.Kind), title, statusBadge(c.item.Status))
	fmt.Fprintf(w, "    %s  %s", mutedStyle.Render(c.Description()), actionLabel(c))
}

func kindBadge(k model.Kind) string {
	if k == model.KindFound {
		return foundStyle.Render(symFound + " found")
	}
	return lostStyle.Render(symLost + " lost")
}

func statusBadge(s model.Status) string {
	if s == model.StatusDone {
		return successStyle.Render(symDone + " done")
	}
	return pendingStyle.Render(symActive + " active")
}

// actionLabel is the card's "button": the mark-done action for active items.
func actionLabel(c card) string {
	switch {
	case c.marking:
		return pendingStyle.Render("[ In process... ]")
	case c.item.Done():
		return ""
	case c.item.Kind == model.KindFound:
		return accentStyle.Render("[ enter: returned ]")
	default:
		return accentStyle.Render("[ enter: found it ]")
	}
}

func toCards(items []model.Item, marking map[string]bool) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, card{item: it, marking: marking[it.ID]})
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
