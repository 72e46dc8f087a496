// Package headless presents frames as text and plays buttons from a script,
// for dry runs without a terminal UI or a board.
package headless

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/brensch/ledsnake/display"
	"github.com/brensch/ledsnake/loop"
)

// Presenter writes each frame to w and then waits for the hold.
type Presenter struct {
	w     io.Writer
	log   *slog.Logger
	sleep func(time.Duration)

	// AfterPresent, if set, runs once per frame after the hold.
	AfterPresent func(frame uint64)

	frames uint64
}

// NewPresenter returns a presenter writing to w. A nil w only logs.
func NewPresenter(w io.Writer, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Presenter{w: w, log: logger, sleep: time.Sleep}
}

// WithSleep replaces the hold wait, mostly so tests do not sleep.
func (p *Presenter) WithSleep(sleep func(time.Duration)) *Presenter {
	p.sleep = sleep
	return p
}

func (p *Presenter) Present(frame display.Frame, hold time.Duration) error {
	p.frames++
	p.log.Debug("frame", "n", p.frames, "lit", frame.Lit(), "hold", hold)
	if p.w != nil {
		if _, err := fmt.Fprintf(p.w, "-- frame %d --\n%s", p.frames, frame); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
	}
	p.sleep(hold)
	if p.AfterPresent != nil {
		p.AfterPresent(p.frames)
	}
	return nil
}

func (p *Presenter) Frames() uint64 {
	return p.frames
}

// Script replays a fixed sequence of button levels, one step per tick.
// Steps are separated by spaces or commas: "a", "b", "ab" press the named
// buttons, "." presses nothing. After the last step no button is pressed.
type Script struct {
	mu    sync.Mutex
	steps [][2]bool
	pos   int
}

func ParseScript(s string) (*Script, error) {
	sc := &Script{}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	for _, f := range fields {
		var step [2]bool
		if f != "." {
			for _, r := range strings.ToLower(f) {
				switch r {
				case 'a':
					step[loop.ButtonA] = true
				case 'b':
					step[loop.ButtonB] = true
				default:
					return nil, fmt.Errorf("script step %q: want a, b, ab or .", f)
				}
			}
		}
		sc.steps = append(sc.steps, step)
	}
	return sc, nil
}

func (s *Script) Pressed(b loop.Button) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.steps) || b < loop.ButtonA || b > loop.ButtonB {
		return false
	}
	return s.steps[s.pos][b]
}

// Next moves to the following step. Wire it to Presenter.AfterPresent.
func (s *Script) Next() {
	s.mu.Lock()
	s.pos++
	s.mu.Unlock()
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}
