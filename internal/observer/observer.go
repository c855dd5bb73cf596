// ABOUTME: Terminal observer rendering per-script action/selection counts and playback state
// ABOUTME: Grounded on the teacher's view.go bubbletea model, standing in for the out-of-scope ImGui renderer

// Package observer implements a terminal consumer of the core's event
// bus. It is the thinnest legitimate stand-in for the out-of-scope
// ImGui/OpenGL renderer: a read-mostly view that subscribes to the
// MediaTimeChanged and PlaybackStateChanged events. Per-script action and
// selection counts are re-read from the project on each redraw tick; the
// view does not subscribe to ActionsChanged or SelectionChanged.
package observer

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ofsedit/internal/eventbus"
	"ofsedit/internal/funscript"
	"ofsedit/internal/project"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dirtyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// keyMap mirrors the teacher's viewKeyMap shape: named bindings with
// help text, rather than bare key-string switches.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// tickMsg drives the periodic redraw; the event bus delivers changes
// synchronously but bubbletea needs its own pump to refresh the view.
type tickMsg time.Time

// liveState is the mutable slice of bus-driven state, shared by pointer
// between the Subscribe closures and every Model value bubbletea copies
// around internally; the Model itself stays an immutable value per
// bubbletea convention, but its live readings flow through this pointer.
type liveState struct {
	mediaPos float32
	paused   bool
}

// Model is the bubbletea model for the terminal observer.
type Model struct {
	proj     *project.Project
	bus      *eventbus.Bus
	width    int
	height   int
	live     *liveState
	viewport viewport.Model
	ready    bool
}

// New wires a Model to proj's event bus, subscribing to the playback
// time and playback state events.
func New(proj *project.Project, bus *eventbus.Bus) Model {
	live := &liveState{paused: true}
	bus.Subscribe(eventbus.MediaTimeChanged, func(ev eventbus.Event) {
		if t, ok := ev.Payload.(float32); ok {
			live.mediaPos = t
		}
	})
	bus.Subscribe(eventbus.PlaybackStateChanged, func(ev eventbus.Event) {
		if paused, ok := ev.Payload.(bool); ok {
			live.paused = paused
		}
	})
	return Model{proj: proj, bus: bus, live: live}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		headerHeight, footerHeight := 3, 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(m.renderScriptList())
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case tickMsg:
		m.viewport.SetContent(m.renderScriptList())
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	header := titleStyle.Render(fmt.Sprintf("ofsedit — %s", m.proj.MediaPath))

	state := "playing"
	if m.live.paused {
		state = "paused"
	}
	header += "\n" + statStyle.Render(fmt.Sprintf("t=%.2fs  %s", m.live.mediaPos, state))

	if !m.ready {
		return header + "\n" + m.renderScriptList()
	}
	return header + "\n" + m.viewport.View() + "\n" + helpStyle.Render("↑/↓ scroll · q quit")
}

func (m Model) renderScriptList() string {
	out := ""
	for i, s := range m.proj.Scripts() {
		if i > 0 {
			out += "\n"
		}
		line := fmt.Sprintf("[%d] %-20s actions=%-6d selected=%-4d",
			s.ID, s.Title, s.Actions().Len(), s.Selection().Len())
		if s.UnsavedEdits {
			line += " " + dirtyStyle.Render("*")
		}
		out += line
	}
	return out
}

// HeatmapLine renders a one-row ASCII approximation of a script's
// heatmap marks, useful where the full renderer's gradient bar is out of
// reach of a terminal cell grid.
func HeatmapLine(actions []funscript.Action, duration float32, width int) string {
	marks := funscript.Heatmap(actions, duration)
	if width <= 0 {
		width = 40
	}
	row := make([]byte, width)
	for i := range row {
		row[i] = ' '
	}
	for _, mk := range marks {
		idx := int(mk.Pos * float32(width))
		if idx < 0 {
			idx = 0
		}
		if idx >= width {
			idx = width - 1
		}
		row[idx] = densityGlyph(mk.Color)
	}
	return string(row)
}

func densityGlyph(c funscript.Color) byte {
	sum := int(c.R) + int(c.G) + int(c.B)
	switch {
	case sum < 60:
		return '.'
	case sum < 300:
		return '-'
	case sum < 500:
		return '='
	default:
		return '#'
	}
}
