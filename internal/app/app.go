// Package app wires the mailbox store, search filter, navigation state
// machine, refresh coordinator, and status notifier into the Bubble Tea
// program.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mailterm/internal/input"
	"github.com/nhle/mailterm/internal/keys"
	"github.com/nhle/mailterm/internal/mailbox"
	"github.com/nhle/mailterm/internal/model"
	"github.com/nhle/mailterm/internal/nav"
	"github.com/nhle/mailterm/internal/provider"
	"github.com/nhle/mailterm/internal/refresh"
	"github.com/nhle/mailterm/internal/status"
	"github.com/nhle/mailterm/internal/theme"
	"github.com/nhle/mailterm/internal/ui"
)

// tickRate drives status expiry and selection reconciliation.
const tickRate = 250 * time.Millisecond

// tickMsg is the periodic render tick.
type tickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	store       *mailbox.Store
	filter      *mailbox.Filter
	nav         *nav.State
	coordinator *refresh.Coordinator
	notifier    *status.Notifier
	keys        *keys.KeyMap

	layout     ui.Layout
	helpView   ui.Help
	viewport   viewport.Model
	listOffset int
	viewedID   string

	statusTimeout time.Duration
	ready         bool
}

// New creates the root model around the given mail provider.
func New(p provider.Provider, display model.DisplayConfig) Model {
	store := mailbox.NewStore()
	filter := mailbox.NewFilter()
	notifier := status.NewNotifier()
	km := keys.DefaultKeyMap()

	timeout := time.Duration(display.StatusTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return Model{
		store:         store,
		filter:        filter,
		nav:           nav.New(store, filter),
		coordinator:   refresh.New(store, p, notifier),
		notifier:      notifier,
		keys:          km,
		helpView:      ui.NewHelp(km, 80, 24),
		viewport:      viewport.New(80, 24),
		statusTimeout: timeout,
	}
}

// Init starts the first refresh and the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.coordinator.Start(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.helpView.SetSize(m.layout.ContentWidth(), m.layout.ContentHeight())
		m.viewport.Width = m.layout.DetailWidth() - 2
		m.viewport.Height = m.layout.ContentHeight() - 2
		m.syncPanes(true)
		return m, nil

	case refresh.ResultMsg:
		// Stale completions are discarded inside Apply; either way the
		// selection is re-validated against whatever is now active.
		m.coordinator.Apply(msg)
		m.nav.Reconcile()
		m.syncPanes(false)
		return m, nil

	case tickMsg:
		m.notifier.ClearOlderThan(m.statusTimeout)
		m.nav.Reconcile()
		m.syncPanes(false)
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey translates a key press into an abstract event, applies it
// to the navigation state machine, and performs any requested effect.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always terminates, regardless of mode.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Page keys scroll the body pane while reading.
	if m.nav.Mode() == nav.ModeDetail &&
		(msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	ev := input.FromKey(msg, m.keys, m.nav.Mode() == nav.ModeSearch)

	switch m.nav.Apply(ev) {
	case nav.EffectQuit:
		return m, tea.Quit
	case nav.EffectRefresh:
		return m, m.coordinator.Start()
	}

	m.syncPanes(false)
	return m, nil
}

// syncPanes keeps the list scroll window and the body viewport in step
// with the selection. The body content is reset only when a different
// message is shown, so scroll position survives redraws.
func (m *Model) syncPanes(force bool) {
	m.listOffset = ui.ScrollOffset(m.nav.Selected(), m.listOffset, m.listHeight())

	selected, ok := m.nav.SelectedMessage()
	if !ok {
		m.viewedID = ""
		return
	}
	if force || selected.ID != m.viewedID {
		m.viewedID = selected.ID
		m.viewport.SetContent(ui.RenderMessage(selected, m.layout.DetailWidth()-2))
		m.viewport.GotoTop()
	}
}

// listHeight returns the number of index rows that fit in the left pane.
func (m Model) listHeight() int {
	h := m.layout.ContentHeight() - 2
	if m.nav.Mode() == nav.ModeSearch {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("mailterm", m.fetchState())

	var content string
	if m.nav.Mode() == nav.ModeHelp {
		content = m.helpView.View()
	} else {
		content = m.renderSplit()
	}

	text, style := m.statusLine()
	statusBar := m.layout.RenderStatusBar(text, style)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderSplit renders the two-pane view: message index left, selected
// message body right.
func (m Model) renderSplit() string {
	active := m.nav.Active()
	listW := m.layout.ListWidth()
	detailW := m.layout.DetailWidth()
	contentH := m.layout.ContentHeight()

	list := ui.RenderList(
		active, m.nav.Selected(), m.listOffset, listW-2, m.listHeight(),
	)
	if m.nav.Mode() == nav.ModeSearch {
		list = lipgloss.JoinVertical(
			lipgloss.Left,
			ui.RenderSearchBar(m.filter.Query(), listW-2),
			list,
		)
	}

	var body string
	if _, ok := m.nav.SelectedMessage(); ok {
		body = m.viewport.View()
	} else {
		body = ui.RenderEmptyDetail(detailW-2, contentH-2)
	}

	listPane := m.paneStyle(m.nav.Mode() != nav.ModeDetail).
		Width(listW - 2).
		Height(contentH - 2).
		Render(list)
	detailPane := m.paneStyle(m.nav.Mode() == nav.ModeDetail).
		Width(detailW - 2).
		Height(contentH - 2).
		Render(body)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) paneStyle(focused bool) lipgloss.Style {
	if focused {
		return theme.FocusedPaneStyle
	}
	return theme.PaneStyle
}

// fetchState summarizes the store status for the header.
func (m Model) fetchState() string {
	snap := m.store.Current()
	switch snap.Status {
	case mailbox.StatusLoading:
		return "refreshing…"
	case mailbox.StatusFailed:
		return "⚠ refresh failed"
	case mailbox.StatusReady:
		return fmt.Sprintf("%d messages", len(snap.Messages))
	default:
		return ""
	}
}

// statusLine picks the status bar content: an active notifier message
// wins, otherwise key hints for the current mode.
func (m Model) statusLine() (string, lipgloss.Style) {
	if st, _, ok := m.notifier.Current(); ok {
		if st.Severity == status.Error {
			return st.Text, theme.ErrorStatusStyle
		}
		return st.Text, theme.InfoStatusStyle
	}

	switch m.nav.Mode() {
	case nav.ModeDetail:
		return "esc/h back | j/k next/prev | pgup/pgdn scroll | ? help", theme.StatusBarStyle
	case nav.ModeSearch:
		hint := "enter confirm | esc done | type to filter"
		if count := ui.RenderMatchCount(m.filter.Query(), len(m.nav.Active())); count != "" {
			hint = count + " | " + hint
		}
		return hint, theme.StatusBarStyle
	case nav.ModeHelp:
		return "press any key to return", theme.StatusBarStyle
	default:
		return "q quit | ? help | / search | r refresh | enter open", theme.StatusBarStyle
	}
}
