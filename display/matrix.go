// Package display holds the 5x5 cell matrix and turns it into frames for a
// presenter.
//
// The matrix is rebuilt from game state on every tick: callers Clear it, paint
// the cells they need and Present. Only the blink phase of each cell survives
// a Clear, so blinking cells keep flashing even though they are repainted
// from scratch each time.
package display

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brensch/ledsnake/game"
)

var (
	// ErrOutOfBounds is returned by Set for coordinates off the grid. The
	// write has already been dropped and logged; callers may ignore it.
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrUnavailable means the presenter cannot drive the display at all.
	ErrUnavailable = errors.New("display unavailable")
)

// State is the logical state of one cell.
type State uint8

const (
	Off State = iota
	On
	Blink
)

func (s State) String() string {
	switch s {
	case Off:
		return "off"
	case On:
		return "on"
	case Blink:
		return "blink"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Cell is a cell state plus, for Blink, whether the next render lights it.
type Cell struct {
	State State
	Phase bool
}

// Blinking returns a Blink cell that renders lit when phase is true.
func Blinking(phase bool) Cell {
	return Cell{State: Blink, Phase: phase}
}

// Frame is one complete image: 1 for a lit cell, 0 for a dark one.
type Frame [game.GridSize][game.GridSize]uint8

// Lit counts the lit cells.
func (f Frame) Lit() int {
	n := 0
	for r := range f {
		for c := range f[r] {
			if f[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// String draws the frame with '#' for lit cells and '.' for dark ones.
func (f Frame) String() string {
	var sb strings.Builder
	for r := range f {
		for c := range f[r] {
			if f[r][c] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Presenter shows a frame for roughly hold before returning.
type Presenter interface {
	Present(frame Frame, hold time.Duration) error
}

// Matrix is the 5x5 grid of cells. It owns its presenter for its lifetime.
type Matrix struct {
	state     [game.GridSize][game.GridSize]State
	phase     [game.GridSize][game.GridSize]bool
	presenter Presenter
	log       *slog.Logger
}

// New returns an all-off matrix. A nil logger discards diagnostics.
func New(presenter Presenter, logger *slog.Logger) *Matrix {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Matrix{presenter: presenter, log: logger}
	for r := range m.phase {
		for c := range m.phase[r] {
			m.phase[r][c] = true
		}
	}
	return m
}

// Set writes a cell. Coordinates off the grid are logged and dropped.
func (m *Matrix) Set(p game.Point, cell Cell) error {
	if !p.InBounds() {
		m.log.Warn("invalid cell coordinates", "row", p.Row, "col", p.Col, "state", cell.State.String())
		return fmt.Errorf("set %s: %w", p, ErrOutOfBounds)
	}
	m.state[p.Row][p.Col] = cell.State
	if cell.State == Blink {
		m.phase[p.Row][p.Col] = cell.Phase
	}
	return nil
}

// Get returns the cell at p, or false if p is off the grid.
func (m *Matrix) Get(p game.Point) (Cell, bool) {
	if !p.InBounds() {
		return Cell{}, false
	}
	cell := Cell{State: m.state[p.Row][p.Col]}
	if cell.State == Blink {
		cell.Phase = m.phase[p.Row][p.Col]
	}
	return cell, true
}

func (m *Matrix) TurnOn(p game.Point) {
	_ = m.Set(p, Cell{State: On})
}

func (m *Matrix) TurnOff(p game.Point) {
	_ = m.Set(p, Cell{State: Off})
}

// Blink marks p as blinking and carries on from the phase the cell last had,
// so repainting every tick does not restart the animation.
func (m *Matrix) Blink(p game.Point) {
	if !p.InBounds() {
		_ = m.Set(p, Blinking(true))
		return
	}
	_ = m.Set(p, Blinking(m.phase[p.Row][p.Col]))
}

// Clear turns every cell off. Blink phases are kept.
func (m *Matrix) Clear() {
	for r := range m.state {
		for c := range m.state[r] {
			m.state[r][c] = Off
		}
	}
}

// Render builds the frame for the current cells.
//
// Rendering advances the blink animation: every Blink cell is drawn with its
// current phase and then has that phase flipped, so consecutive renders of a
// blinking cell alternate lit and dark. Callers never tick the animation
// separately.
func (m *Matrix) Render() Frame {
	var f Frame
	for r := range m.state {
		for c := range m.state[r] {
			switch m.state[r][c] {
			case On:
				f[r][c] = 1
			case Blink:
				if m.phase[r][c] {
					f[r][c] = 1
				}
				m.phase[r][c] = !m.phase[r][c]
			}
		}
	}
	return f
}

// Present renders the matrix and hands the frame to the presenter, which
// blocks for about hold.
func (m *Matrix) Present(hold time.Duration) error {
	frame := m.Render()
	if m.presenter == nil {
		return fmt.Errorf("present: %w", ErrUnavailable)
	}
	if err := m.presenter.Present(frame, hold); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
