// Package tui renders the colony in a terminal and drives the engine from the
// bubbletea event loop.
package tui

import (
	"fmt"
	"strings"
	"time"

	"colony/internal/core"
	"colony/internal/engine"
	"colony/internal/midiout"
	"colony/internal/render"
	"colony/pkg/pitch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameInterval is how often the model polls the engine.
const FrameInterval = 10 * time.Millisecond

// recentNotes is how many of the latest note-ons are listed under the grid.
const recentNotes = 12

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5C16C"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9AA0B4"))
	notesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7DD3FC"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

type tickMsg time.Time

// Model is the bubbletea model for the terminal front end.
type Model struct {
	engine *engine.Engine
	recent *midiout.Capture
	step   *core.FixedStep
	keys   keyMap
	help   help.Model
	cells  []string

	quitting bool
}

// New returns a model driving e. recent, when non-nil, should also be wired
// into the engine's output so played notes can be listed.
func New(e *engine.Engine, recent *midiout.Capture) Model {
	return Model{
		engine: e,
		recent: recent,
		step:   core.NewFixedStep(e.StepInterval()),
		keys:   newKeyMap(),
		help:   help.New(),
		cells:  levelCells(),
	}
}

// levelCells pre-renders one glyph per brightness level using the GUI palette.
func levelCells() []string {
	palette := render.AgePalette()
	cells := make([]string, len(palette))
	cells[0] = lipgloss.NewStyle().Foreground(lipgloss.Color("#2A2A33")).Render("· ")
	for lvl := 1; lvl < len(palette); lvl++ {
		c := palette[lvl]
		hex := fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
		cells[lvl] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
	}
	return cells
}

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles key presses and frame ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.poll(time.Time(msg))
		return m, tick()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.engine.Shutdown()
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.engine.TogglePaused()
		case key.Matches(msg, m.keys.Step):
			m.engine.Step(time.Now())
		case key.Matches(msg, m.keys.Reseed):
			m.engine.Reseed()
		case key.Matches(msg, m.keys.Clear):
			m.engine.Clear()
		case key.Matches(msg, m.keys.Panic):
			m.engine.Shutdown()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// poll steps the engine when a step is due and runs due note tasks.
func (m Model) poll(now time.Time) {
	m.step.SetInterval(m.engine.StepInterval())
	if m.step.ShouldStep(now) && !m.engine.Paused() {
		m.engine.Tick(now)
	}
	m.engine.Advance(now)
}

// View renders the grid, the status line, recent notes and key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("colony") + "\n\n")
	snap := m.engine.Snapshot()
	for r := 0; r < snap.Rows; r++ {
		for c := 0; c < snap.Cols; c++ {
			b.WriteString(m.cells[pitch.AgeToLevel(snap.Age(r, c))])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	status := m.engine.StatusLine()
	if m.engine.Paused() {
		b.WriteString(pausedStyle.Render(status))
	} else {
		b.WriteString(statusStyle.Render(status))
	}
	b.WriteString("\n")
	if names := m.recentNames(); names != "" {
		b.WriteString(notesStyle.Render(names) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) recentNames() string {
	if m.recent == nil {
		return ""
	}
	var names []string
	msgs := m.recent.Messages()
	for i := len(msgs) - 1; i >= 0 && len(names) < recentNotes; i-- {
		if msgs[i].Kind == midiout.KindNoteOn {
			names = append(names, pitch.NoteName(int(msgs[i].Key)))
		}
	}
	return strings.Join(names, " ")
}
