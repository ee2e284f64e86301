package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mtodo/internal/application/session"
	"mtodo/internal/domain/valueobject"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
	modeConfirm
)

// Options configures the TUI
type Options struct {
	RemindersEnabled bool
	ReminderInterval time.Duration
}

// Model represents the TUI state. All session calls happen on the
// bubbletea update loop, so reminder checks never overlap a command.
type Model struct {
	session *session.Session
	opts    Options

	snap   session.Snapshot
	cursor int
	scroll int
	width  int
	height int

	mode    mode
	search  textinput.Model
	form    *form
	confirm *confirmation
	help    help.Model

	status      string
	statusError bool
	reminder    string
}

// confirmation is a pending destructive action awaiting y/n
type confirmation struct {
	prompt string
	run    func(m *Model)
}

// NewModel creates a new TUI model over a loaded session
func NewModel(s *session.Session, opts Options) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search title or description"
	search.CharLimit = 100

	m := Model{
		session: s,
		opts:    opts,
		search:  search,
		help:    help.New(),
	}
	m.refresh()
	return m
}

// reminderTickMsg is sent when the reminder interval elapses
type reminderTickMsg time.Time

// doReminderTick returns a command that waits for the next reminder check
func doReminderTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return reminderTickMsg(t)
	})
}

// Init evaluates reminders once and schedules the periodic check
func (m Model) Init() tea.Cmd {
	if !m.opts.RemindersEnabled || m.opts.ReminderInterval <= 0 {
		return nil
	}
	return func() tea.Msg { return reminderTickMsg(time.Now()) }
}

// refresh re-derives the snapshot and keeps the cursor on the selection
func (m *Model) refresh() {
	m.snap = m.session.Snapshot()
	if m.snap.SelectedID != "" {
		for i, t := range m.snap.Todos {
			if t.ID == m.snap.SelectedID {
				m.cursor = i
				break
			}
		}
	}
	m.clampCursor()
	m.syncSelection()
}

// clampCursor ensures the cursor is within valid bounds
func (m *Model) clampCursor() {
	count := len(m.snap.Todos)
	if count == 0 {
		m.cursor = 0
	} else if m.cursor >= count {
		m.cursor = count - 1
	} else if m.cursor < 0 {
		m.cursor = 0
	}
}

// syncSelection mirrors the cursor into the session selection
func (m *Model) syncSelection() {
	if len(m.snap.Todos) == 0 {
		m.session.ClearSelection()
		m.snap.SelectedID = ""
		m.snap.CanModifySelected = false
		return
	}
	id, err := valueobject.ParseTaskID(m.snap.Todos[m.cursor].ID)
	if err != nil {
		return
	}
	if err := m.session.Select(id); err == nil {
		m.snap.SelectedID = id.String()
		m.snap.CanModifySelected = true
	}
}

// updateScroll keeps the cursor inside the viewport
func (m *Model) updateScroll(viewportHeight int) {
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	count := len(m.snap.Todos)
	if count == 0 {
		m.scroll = 0
		return
	}

	if m.cursor < m.scroll {
		m.scroll = m.cursor
	} else if m.cursor >= m.scroll+viewportHeight {
		m.scroll = m.cursor - viewportHeight + 1
	}

	maxScroll := count - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusError = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusError = true
}
