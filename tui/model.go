package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-rhythm/display"
	"go-rhythm/game"
	"go-rhythm/hw"
	"go-rhythm/theme"
	"go-rhythm/widgets"
)

// Screen refresh rate
const fps = 30

// HandDistance is where a key press puts the simulated hand, in mm
const HandDistance = 60

// Board is the simulated hardware the model shows and controls
type Board struct {
	Display *display.Memory
	Rig     *hw.Rig
	Green   *hw.Latch
	Red     *hw.Latch
	Width   int
}

type Model struct {
	Board   Board
	Theme   *theme.Theme
	Session string
	Song    string

	// Status returns the latest loop snapshot; safe from any goroutine
	Status func() game.Status
	// Release schedules the hand to leave after key repeats stop
	Release func(f func())

	done   <-chan RunResult
	cancel context.CancelFunc

	result   *RunResult
	quitting bool
}

// RunResult is what the game goroutine reports when it stops
type RunResult struct {
	Result game.Result
	Err    error
}

type tickMsg time.Time

type doneMsg RunResult

func NewModel(board Board, th *theme.Theme, done <-chan RunResult, cancel context.CancelFunc) Model {
	return Model{
		Board:   board,
		Theme:   th,
		Status:  func() game.Status { return game.Status{} },
		Release: func(f func()) {},
		done:    done,
		cancel:  cancel,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitDone(done <-chan RunResult) tea.Cmd {
	return func() tea.Msg {
		return doneMsg(<-done)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitDone(m.done))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case " ", "space", "enter":
			// terminals send no key-up: the hand leaves once repeats stop
			m.Board.Rig.SetHand(HandDistance)
			rig := m.Board.Rig
			m.Release(func() { rig.RemoveHand() })
		}

	case tickMsg:
		return m, tick()

	case doneMsg:
		res := RunResult(msg)
		m.result = &res
	}

	return m, nil
}

// Over reports whether the game goroutine has finished
func (m Model) Over() bool {
	return m.result != nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.Status()
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	window := "    "
	if st.Scoring {
		window = "NOW!"
	}
	header := headerStyle.Render(fmt.Sprintf("go-rhythm  %s  %-9s  tick:%04d  score:%03d  %s",
		m.Song, st.State, st.Tick, st.Score, window))

	lcd := widgets.RenderLCD(m.Theme, []string{m.Board.Display.Text()}, m.Board.Width, 2)

	hand := string(m.Theme.Symbols.Empty)
	if m.Board.Rig.HandPresent() {
		hand = string(m.Theme.Symbols.Hand)
	}
	leds := strings.Join([]string{
		widgets.RenderLED(m.Theme, "hit", m.Board.Green.IsHigh(), m.Theme.Hit()),
		widgets.RenderLED(m.Theme, "miss", m.Board.Red.IsHigh(), m.Theme.Miss()),
		"sensor " + hand,
	}, "   ")

	help := dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{{
		Keys: []widgets.KeyBinding{
			{Key: "space", Desc: "hold hand over the sensor"},
			{Key: "q", Desc: "quit"},
		},
	}}))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(lcd)
	out.WriteString("\n\n")
	out.WriteString(leds)
	out.WriteString("\n\n")

	if m.Over() {
		if m.result.Err != nil {
			out.WriteString(lipgloss.NewStyle().Foreground(m.Theme.Warning()).
				Render(fmt.Sprintf("stopped: %v", m.result.Err)))
		} else {
			r := m.result.Result
			out.WriteString(lipgloss.NewStyle().Foreground(m.Theme.Hit()).
				Render(fmt.Sprintf("GAME OVER  %d / %d notes", r.Score, r.Notes)))
		}
		out.WriteString("\n\n")
	}

	out.WriteString(help)
	out.WriteString(dimStyle.Render("\nsession " + m.Session))
	return out.String()
}
