//go:build tinygo

// Package microbit drives the micro:bit v2 LED matrix and buttons.
//
// The 25 LEDs share five row lines (active high) and five column lines
// (active low), so a frame is shown by lighting one row at a time, fast
// enough that the eye sees the whole image.
package microbit

import (
	"errors"
	"machine"
	"time"

	"github.com/brensch/ledsnake/display"
	"github.com/brensch/ledsnake/game"
	"github.com/brensch/ledsnake/loop"
)

// rowPeriod is how long each row stays lit per scan.
const rowPeriod = 2 * time.Millisecond

var (
	rowPins = [game.GridSize]machine.Pin{
		machine.LED_ROW_1, machine.LED_ROW_2, machine.LED_ROW_3, machine.LED_ROW_4, machine.LED_ROW_5,
	}
	colPins = [game.GridSize]machine.Pin{
		machine.LED_COL_1, machine.LED_COL_2, machine.LED_COL_3, machine.LED_COL_4, machine.LED_COL_5,
	}
	buttonPins = [2]machine.Pin{machine.BUTTONA, machine.BUTTONB}
)

// Board owns the display and button pins. Take it once at startup.
type Board struct{}

// Setup configures every pin the game uses.
func Setup() (*Board, error) {
	for _, p := range rowPins {
		if p == machine.NoPin {
			return nil, errors.New("microbit: missing LED row pin")
		}
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}
	for _, p := range colPins {
		if p == machine.NoPin {
			return nil, errors.New("microbit: missing LED column pin")
		}
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}
	for _, p := range buttonPins {
		if p == machine.NoPin {
			return nil, errors.New("microbit: missing button pin")
		}
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return &Board{}, nil
}

// Present scans frame onto the matrix until hold has passed, then blanks it.
func (b *Board) Present(frame display.Frame, hold time.Duration) error {
	deadline := time.Now().Add(hold)
	for time.Now().Before(deadline) {
		for r, row := range rowPins {
			for c, col := range colPins {
				col.Set(frame[r][c] == 0)
			}
			row.High()
			time.Sleep(rowPeriod)
			row.Low()
		}
	}
	for _, col := range colPins {
		col.High()
	}
	return nil
}

// Pressed reads the button level directly. The buttons pull low when pressed.
func (b *Board) Pressed(btn loop.Button) bool {
	if btn < loop.ButtonA || btn > loop.ButtonB {
		return false
	}
	return !buttonPins[btn].Get()
}

// FailLoop blinks the centre LED forever. It is the only thing left to do
// when the board could not be set up.
func FailLoop() {
	row, col := rowPins[2], colPins[2]
	row.Configure(machine.PinConfig{Mode: machine.PinOutput})
	col.Configure(machine.PinConfig{Mode: machine.PinOutput})
	col.Low()
	for {
		row.Low()
		time.Sleep(time.Millisecond * 100)
		row.High()
		time.Sleep(time.Millisecond * 100)
	}
}
