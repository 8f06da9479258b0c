package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/batchview/internal/ident"
	"github.com/five82/batchview/internal/logtail"
	"github.com/five82/batchview/internal/state"
)

const (
	defaultPollTick      = time.Second
	defaultActivityLines = 8
	defaultWidth         = 80
	maxCardWidth         = 96
)

// Controller is the part of the sync controller the viewer drives.
type Controller interface {
	Snapshot() state.Snapshot
	Refresh()
	Bind(id string)
}

// Options configures the UI.
type Options struct {
	// Context ends the program when cancelled. Optional.
	Context    context.Context
	Controller Controller
	ThemeName  string
	// PollTick is how often the snapshot is re-read. Defaults to one second.
	PollTick time.Duration
	// LogPath feeds the activity pane. Empty disables it.
	LogPath       string
	ActivityLines int
	// Now is used for the "Last updated" age. Defaults to time.Now.
	Now func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	ctrl     Controller
	pollTick time.Duration
	logPath  string
	logLines int
	now      func() time.Time

	keys     keyMap
	help     help.Model
	progress progress.Model
	input    textinput.Model

	theme  Theme
	width  int
	height int

	snapshot state.Snapshot

	prompting bool
	promptErr string

	showActivity bool
	activity     []logtail.Entry
	activityErr  error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = defaultPollTick
	}
	lines := opts.ActivityLines
	if lines <= 0 {
		lines = defaultActivityLines
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	theme := GetTheme(opts.ThemeName)

	input := textinput.New()
	input.Placeholder = "batch id, /batch/<id> or ?batch_id=<id>"
	input.Prompt = "› "
	input.CharLimit = 256

	m := Model{
		ctx:      opts.Context,
		ctrl:     opts.Controller,
		pollTick: pollTick,
		logPath:  opts.LogPath,
		logLines: lines,
		now:      now,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		theme:    theme,
		width:    defaultWidth,
	}
	m.progress = newProgress(theme, m.cardWidth())
	if m.ctrl != nil {
		m.snapshot = m.ctrl.Snapshot()
	}
	return m
}

func newProgress(theme Theme, width int) progress.Model {
	bar := progress.New(
		progress.WithSolidFill(theme.Accent),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = theme.Border
	bar.Width = max(width-4, 10)
	return bar
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.ctrl != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.ctrl))
	}
	if m.ctx != nil {
		cmds = append(cmds, quitOnCancelCmd(m.ctx))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(m.cardWidth()-4, 10)
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case activityMsg:
		m.activity = msg.entries
		m.activityErr = msg.err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		if m.ctrl == nil {
			return m, nil
		}
		m.ctrl.Refresh()
		return m, fetchSnapshotCmd(m.ctrl)

	case key.Matches(msg, m.keys.Prompt):
		m.prompting = true
		m.promptErr = ""
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Activity):
		m.showActivity = !m.showActivity
		if m.showActivity {
			return m, m.readActivity()
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.progress = newProgress(m.theme, m.cardWidth())
		return m, nil
	}

	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		id, err := ident.FromInput(m.input.Value())
		if err != nil {
			m.promptErr = err.Error()
			return m, nil
		}
		m.closePrompt()
		if m.ctrl == nil {
			return m, nil
		}
		m.ctrl.Bind(id)
		return m, fetchSnapshotCmd(m.ctrl)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.promptErr = ""
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.promptErr = ""
	m.input.Blur()
	m.input.Reset()
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.ctrl != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.ctrl))
	}
	if m.showActivity {
		if cmd := m.readActivity(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) readActivity() tea.Cmd {
	if m.logPath == "" {
		return nil
	}
	return readActivityCmd(m.logPath, m.logLines)
}

func (m Model) cardWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	return min(w-2, maxCardWidth)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(ctrl.Snapshot())
	}
}

// quitOnCancelCmd quits the program once ctx is done.
func quitOnCancelCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return tea.QuitMsg{}
	}
}

func readActivityCmd(path string, lines int) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Read(path, lines)
		return activityMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
