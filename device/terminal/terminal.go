// Package terminal shows the matrix in a terminal and turns key presses into
// button levels.
//
// Keys latch: a press marks its button as held until the game loop next
// samples it, which stands in for a physical button held across the sample.
package terminal

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/ledsnake/display"
	"github.com/brensch/ledsnake/loop"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	litStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	darkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const (
	litGlyph  = "●"
	darkGlyph = "·"
)

type frameMsg struct {
	frame display.Frame
	n     uint64
	hold  time.Duration
}

type model struct {
	title   string
	frame   display.Frame
	n       uint64
	hold    time.Duration
	presses [2]uint64
	press   func(loop.Button)
}

func newModel(title string, press func(loop.Button)) model {
	return model{title: title, press: press}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "a", "A", "down":
			m.pressButton(loop.ButtonA)
		case "b", "B", "right":
			m.pressButton(loop.ButtonB)
		}
	case frameMsg:
		m.frame = msg.frame
		m.n = msg.n
		m.hold = msg.hold
	}
	return m, nil
}

func (m *model) pressButton(b loop.Button) {
	m.presses[b]++
	if m.press != nil {
		m.press(b)
	}
}

func (m model) View() string {
	var rows []string
	for r := range m.frame {
		cells := make([]string, len(m.frame[r]))
		for c, v := range m.frame[r] {
			if v != 0 {
				cells[c] = litStyle.Render(litGlyph)
			} else {
				cells[c] = darkStyle.Render(darkGlyph)
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	status := fmt.Sprintf("frame %d  hold %s  A×%d  B×%d", m.n, m.hold, m.presses[loop.ButtonA], m.presses[loop.ButtonB])
	help := "a/↓ button A   b/→ button B   q quit"

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		boardStyle.Render(strings.Join(rows, "\n")),
		status,
		helpStyle.Render(help),
	) + "\n"
}

// Terminal is both the presenter and the buttons for a terminal session.
type Terminal struct {
	prog    *tea.Program
	buttons [2]atomic.Bool
	frames  atomic.Uint64
	sleep   func(time.Duration)

	started atomic.Bool
	done    chan struct{}
	mu      sync.Mutex
	err     error
}

// New prepares a session. Nothing is drawn until Start.
func New(title string, opts ...tea.ProgramOption) *Terminal {
	t := &Terminal{sleep: time.Sleep, done: make(chan struct{})}
	t.prog = tea.NewProgram(newModel(title, t.press), opts...)
	return t
}

// Start runs the UI in the background. onExit runs once the UI has stopped,
// whether the user quit or the terminal failed.
func (t *Terminal) Start(onExit func()) {
	t.started.Store(true)
	go func() {
		_, err := t.prog.Run()
		t.mu.Lock()
		t.err = err
		t.mu.Unlock()
		close(t.done)
		if onExit != nil {
			onExit()
		}
	}()
}

// Done is closed when the UI has stopped.
func (t *Terminal) Done() <-chan struct{} {
	return t.done
}

// Err returns the UI error, if any, once Done is closed.
func (t *Terminal) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Quit asks the UI to stop.
func (t *Terminal) Quit() {
	t.prog.Quit()
}

// Present shows frame and blocks for hold. A UI that stopped with an error
// makes the display unavailable; a UI the user quit drops frames quietly.
func (t *Terminal) Present(frame display.Frame, hold time.Duration) error {
	select {
	case <-t.done:
		if err := t.Err(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("%w: %v", display.ErrUnavailable, err)
		}
		return nil
	default:
	}

	n := t.frames.Add(1)
	if t.started.Load() {
		t.prog.Send(frameMsg{frame: frame, n: n, hold: hold})
	}
	t.sleep(hold)
	return nil
}

// Pressed reports and clears the latched state of b.
func (t *Terminal) Pressed(b loop.Button) bool {
	if b < loop.ButtonA || b > loop.ButtonB {
		return false
	}
	return t.buttons[b].Swap(false)
}

func (t *Terminal) press(b loop.Button) {
	t.buttons[b].Store(true)
}
