// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/taskpad/internal/kvstore"
	"github.com/nibzard/taskpad/internal/notify"
	"github.com/nibzard/taskpad/internal/theme"
	"github.com/nibzard/taskpad/internal/todo"
)

// toastDuration is how long a notice stays on screen.
const toastDuration = 3 * time.Second

// Options wires the interface to its state.
type Options struct {
	// Store holds the tasks. Its notifier must be Notices.
	Store   *todo.Store
	Notices *notify.Recorder

	// Storage and ThemeKey persist the display mode.
	Storage  kvstore.Storage
	ThemeKey string
	Mode     theme.Mode

	Logger *log.Logger
}

// Run starts the interface and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type model struct {
	store    *todo.Store
	notices  *notify.Recorder
	storage  kvstore.Storage
	themeKey string
	mode     theme.Mode
	styles   *theme.Styles
	logger   *log.Logger

	tasks  []todo.Task
	cursor int

	adding   bool
	input    textinput.Model
	priority todo.Priority

	toast    *notify.Notice
	toastSeq int

	showHelp bool
	width    int
}

type clearToastMsg struct {
	seq int
}

func newModel(opts Options) *model {
	if opts.Notices == nil {
		opts.Notices = &notify.Recorder{}
	}
	if opts.Storage == nil {
		opts.Storage = kvstore.NewMemory()
	}
	if opts.ThemeKey == "" {
		opts.ThemeKey = theme.DefaultKey
	}
	if !opts.Mode.Valid() {
		opts.Mode = theme.Light
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 500
	ti.Width = 40

	m := &model{
		store:    opts.Store,
		notices:  opts.Notices,
		storage:  opts.Storage,
		themeKey: opts.ThemeKey,
		mode:     opts.Mode,
		styles:   theme.StylesFor(opts.Mode),
		logger:   opts.Logger,
		input:    ti,
		priority: todo.PriorityNone,
	}
	m.refresh()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 12; w > 10 && w < 60 {
			m.input.Width = w
		}
		return m, nil
	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateDialog(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		m.showHelp = false
		return m, nil
	}

	if msg.Type == tea.KeySpace {
		return m, m.toggleSelected()
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if len(m.tasks) > 0 {
			m.cursor = len(m.tasks) - 1
		}
	case "x", "enter":
		return m, m.toggleSelected()
	case "d", "delete":
		return m, m.deleteSelected()
	case "a", "n":
		m.adding = true
		m.priority = todo.PriorityNone
		m.input.Reset()
		return m, m.input.Focus()
	case "t":
		return m, m.toggleTheme()
	case "?":
		m.showHelp = true
	}
	return m, nil
}

func (m *model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeDialog()
		return m, nil
	case "tab":
		m.priority = m.priority.Next()
		return m, nil
	case "shift+tab":
		for range len(todo.Priorities()) - 1 {
			m.priority = m.priority.Next()
		}
		return m, nil
	case "enter":
		task, err := m.store.Add(m.input.Value(), m.priority)
		if err != nil {
			m.logger.Debug("Add rejected", "err", err)
			return m, m.takeNotices()
		}
		m.closeDialog()
		m.refresh()
		m.selectID(task.ID)
		m.checkPersist()
		return m, m.takeNotices()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) closeDialog() {
	m.adding = false
	m.input.Blur()
	m.input.Reset()
	m.priority = todo.PriorityNone
}

func (m *model) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// toggleSelected flips the task under the cursor and keeps the cursor on it
// after it moves in display order.
func (m *model) toggleSelected() tea.Cmd {
	task, ok := m.selected()
	if !ok {
		return nil
	}
	m.store.Toggle(task.ID)
	m.refresh()
	m.selectID(task.ID)
	m.checkPersist()
	return m.takeNotices()
}

func (m *model) deleteSelected() tea.Cmd {
	task, ok := m.selected()
	if !ok {
		return nil
	}
	m.store.Delete(task.ID)
	m.refresh()
	m.checkPersist()
	return m.takeNotices()
}

// checkPersist queues an error notice when the last write failed. It is
// queued after the store's own notice so the toast shows the failure.
func (m *model) checkPersist() {
	if err := m.store.PersistErr(); err != nil {
		m.notices.Notify(notify.Error(fmt.Sprintf("Error saving tasks: %v", err)))
	}
}

func (m *model) toggleTheme() tea.Cmd {
	mode, err := theme.Toggle(m.storage, m.themeKey, m.mode)
	m.mode = mode
	m.styles = theme.StylesFor(mode)
	if err != nil {
		m.logger.Error("Error saving display mode", "key", m.themeKey, "err", err)
		m.notices.Notify(notify.Error(fmt.Sprintf("Error saving display mode: %v", err)))
		return m.takeNotices()
	}
	return nil
}

// refresh reloads the display-ordered snapshot and clamps the cursor.
func (m *model) refresh() {
	m.tasks = m.store.Sorted()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) selectID(id string) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

// takeNotices moves the newest pending notice into the toast slot and
// schedules its removal.
func (m *model) takeNotices() tea.Cmd {
	pending := m.notices.Drain()
	if len(pending) == 0 {
		return nil
	}
	last := pending[len(pending)-1]
	m.toast = &last
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
