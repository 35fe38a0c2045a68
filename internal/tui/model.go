// Package tui is the interactive board: a filterable list of item cards
// with an add form, backed by board.Board.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/lostboard/internal/board"
	"github.com/idilsaglam/lostboard/internal/itemstore"
	"github.com/idilsaglam/lostboard/internal/logger"
	"github.com/idilsaglam/lostboard/internal/model"
	"github.com/idilsaglam/lostboard/internal/view"
)

type Options struct {
	SearchDebounce time.Duration
	Log            logrus.FieldLogger
	// Now is the clock for the form's default date.
	Now func() time.Time
}

type Model struct {
	ctx      context.Context
	board    *board.Board
	pipe     *view.Pipeline
	log      logrus.FieldLogger
	now      func() time.Time
	boardRev uint64 // board revision last pushed into pipe

	debouncer *view.Debouncer
	searchCh  chan string

	list      list.Model
	search    textinput.Model
	searching bool

	adding bool
	form   addForm

	// marking mirrors the board's in-flight set so a card is disabled on
	// the same keypress that starts the request.
	marking map[string]bool

	loading   bool
	status    string
	statusErr bool
	width     int
	height    int
}

var (
	typeBind   = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type"))
	statusBind = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status"))
	searchBind = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	markBind   = key.NewBinding(key.WithKeys("enter", "d"), key.WithHelp("enter", "mark done"))
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	reloadBind = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
)

func New(ctx context.Context, b *board.Board, opt Options) Model {
	var log logrus.FieldLogger = logger.Discard()
	if opt.Log != nil {
		log = opt.Log
	}
	now := opt.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		ctx:      ctx,
		board:    b,
		boardRev: b.Revision(),
		pipe:     view.NewPipeline(b.Items()),
		log:      log.WithField("component", "tui"),
		now:      now,
		searchCh: make(chan string, 1),
		marking:  make(map[string]bool),
		loading:  true,
		width:    80,
		height:   24,
	}
	ch := m.searchCh
	m.debouncer = view.NewDebouncer(opt.SearchDebounce, func(text string) {
		// Keep only the newest committed value if the UI has not caught up.
		for {
			select {
			case ch <- text:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})

	l := list.New(nil, cardDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	// Filtering is the pipeline's job.
	l.SetFilteringEnabled(false)
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding {
		return []key.Binding{typeBind, statusBind, searchBind, markBind, addBind, reloadBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra
	l.KeyMap.Quit = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	m.list = l

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "search title or location"
	m.search.CharLimit = 120

	m.resize()
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.ctx, m.board), waitForSearch(m.searchCh))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError("load failed: " + describe(msg.err))
		} else {
			m.setStatus(plural(m.board.Len(), "item", "items") + " loaded")
		}
		m.syncBoard()
		m.refresh()
		return m, nil

	case addedMsg:
		if msg.err != nil {
			m.form.submitting = false
			if fe, ok := model.AsFieldErrors(msg.err); ok {
				m.form.errs = fe
				return m, nil
			}
			m.setError("add failed: " + describe(msg.err))
			return m, nil
		}
		m.adding = false
		m.syncBoard()
		m.refresh()
		m.setStatus("added " + msg.item.Title)
		return m, nil

	case markedMsg:
		delete(m.marking, msg.id)
		if msg.err != nil && !errors.Is(msg.err, board.ErrInFlight) {
			m.setError("mark done failed: " + describe(msg.err))
		} else if msg.err == nil {
			m.setStatus("marked " + msg.item.Title + " done")
		}
		m.syncBoard()
		m.refresh()
		return m, nil

	case searchCommittedMsg:
		m.pipe.CommitSearch(msg.text)
		m.refresh()
		return m, waitForSearch(m.searchCh)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.debouncer.Stop()
			return m, tea.Quit
		}
		if m.adding {
			return m.updateForm(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.debouncer.Stop()
		return m, tea.Quit
	case "t":
		m.pipe.SetKind(m.pipe.Criteria().Kind.Next())
		m.refresh()
		return m, nil
	case "s":
		m.pipe.SetStatus(m.pipe.Criteria().Status.Next())
		m.refresh()
		return m, nil
	case "/":
		m.searching = true
		m.search.Focus()
		m.resize()
		return m, textinput.Blink
	case "enter", "d":
		return m.markSelected()
	case "a":
		m.adding = true
		m.form = newAddForm(m.now())
		return m, textinput.Blink
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.setStatus("reloading...")
		return m, loadCmd(m.ctx, m.board)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// markSelected starts mark-done for the selected card. Done cards and cards
// already being marked ignore the key.
func (m Model) markSelected() (tea.Model, tea.Cmd) {
	c, ok := m.list.SelectedItem().(card)
	if !ok || c.item.Done() || m.marking[c.item.ID] {
		return m, nil
	}
	m.marking[c.item.ID] = true
	m.refresh()
	return m, markCmd(m.ctx, m.board, c.item.ID)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		m.resize()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.debouncer.Trigger(v)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, action, cmd := m.form.update(msg)
	m.form = f
	switch action {
	case formCancel:
		m.adding = false
		return m, nil
	case formSubmit:
		return m, addCmd(m.ctx, m.board, m.form.draft())
	}
	return m, cmd
}

// syncBoard feeds the board into the pipeline when it changed since the
// last sync.
func (m *Model) syncBoard() {
	rev := m.board.Revision()
	if rev == m.boardRev {
		return
	}
	m.boardRev = rev
	m.pipe.SetItems(m.board.Items())
}

// refresh rebuilds the cards and keeps the cursor on a visible card when
// the result shrinks.
func (m *Model) refresh() {
	m.list.SetItems(toCards(m.pipe.Result(), m.marking))
	if n := len(m.list.Items()); m.list.Index() >= n {
		m.list.Select(max(0, n-1))
	}
}

func (m *Model) resize() {
	h := m.height - 8
	if m.searching {
		h--
	}
	if h < 4 {
		h = 4
	}
	m.list.SetSize(m.width-4, h)
}

func (m *Model) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *Model) setError(s string)  { m.status, m.statusErr = s, true }

func (m Model) View() string {
	if m.adding {
		return panelStyle.Render(m.form.View())
	}

	all := m.board.Items()
	c := view.Tally(all)
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s %d",
		titleStyle.Render("Lost & Found"),
		lostStyle.Render(symLost), c.Lost,
		foundStyle.Render(symFound), c.Found,
		pendingStyle.Render(symActive), c.Active,
		successStyle.Render(symDone), c.Done,
	)

	crit := m.pipe.Criteria()
	search := ""
	if m.searching {
		search = m.search.View()
	} else if crit.Search != "" {
		search = "search: " + accentStyle.Render(crit.Search)
	}
	filters := joinNonEmpty("   ",
		"type: "+accentStyle.Render(crit.Kind.String()),
		"status: "+accentStyle.Render(crit.Status.String()),
		search,
	)

	var body string
	switch {
	case m.loading && len(all) == 0:
		body = mutedStyle.Render("loading...")
	case len(m.list.Items()) == 0:
		body = mutedStyle.Render("no items match")
	default:
		body = m.list.View()
	}

	status := mutedStyle.Render(plural(len(m.list.Items()), "item", "items") + " shown")
	if m.status != "" {
		if m.statusErr {
			status = errorStyle.Render(m.status)
		} else {
			status = joinNonEmpty("  ", status, successStyle.Render(m.status))
		}
	}

	return panelStyle.Render(strings.Join([]string{header, filters, "", body, "", status}, "\n"))
}

// describe shortens store errors for the status line.
func describe(err error) string {
	if code := itemstore.StatusCode(err); code != 0 {
		return fmt.Sprintf("server returned %d", code)
	}
	if itemstore.IsParse(err) {
		return "unexpected response from server"
	}
	return err.Error()
}
