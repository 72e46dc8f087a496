// Package loop runs the game: sample the buttons, move the actor, repaint the
// matrix and present it for a fixed hold.
//
// The hold is the only pacing. Buttons are sampled once per cycle, so presses
// shorter than the hold can be missed and several presses within one hold
// count once.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/brensch/ledsnake/display"
	"github.com/brensch/ledsnake/game"
	"github.com/brensch/ledsnake/rules"
)

// Button identifies one of the two momentary inputs.
type Button int

const (
	ButtonA Button = iota
	ButtonB
)

func (b Button) String() string {
	if b == ButtonB {
		return "B"
	}
	return "A"
}

// Buttons reports the instantaneous level of each button. Reads must not block.
type Buttons interface {
	Pressed(b Button) bool
}

// Mode picks which game the loop plays.
type Mode int

const (
	// ModeSnake moves the actor every cycle; buttons only steer it.
	ModeSnake Mode = iota
	// ModeToken moves a blinking token one cell per button press.
	ModeToken
)

func (m Mode) String() string {
	if m == ModeToken {
		return "token"
	}
	return "snake"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "snake":
		return ModeSnake, nil
	case "token":
		return ModeToken, nil
	}
	return ModeSnake, fmt.Errorf("unknown mode %q", s)
}

// buttonHeadings maps each button to the heading it selects.
var buttonHeadings = [...]struct {
	button  Button
	heading game.Heading
}{
	{ButtonA, game.Down},
	{ButtonB, game.Right},
}

type Config struct {
	Mode  Mode
	Hold  time.Duration
	Rules rules.Settings
	// Rand drives food placement; nil means deterministic placement.
	Rand *rand.Rand
}

// World is the game state the loop owns.
type World struct {
	Actor     *game.Actor
	Obstacles *game.Obstacles
	Food      *game.Food
}

// Stats counts what the loop has done so far.
type Stats struct {
	Ticks         uint64
	Moves         uint64
	Blocked       uint64
	Eaten         uint64
	PresentErrors uint64
}

type Loop struct {
	cfg     Config
	matrix  *display.Matrix
	world   World
	buttons Buttons
	log     *slog.Logger
	stats   Stats
}

// New checks the starting layout and returns a loop ready to Run.
func New(cfg Config, matrix *display.Matrix, world World, buttons Buttons, logger *slog.Logger) (*Loop, error) {
	if matrix == nil {
		return nil, errors.New("loop: nil matrix")
	}
	if world.Actor == nil {
		return nil, errors.New("loop: nil actor")
	}
	if buttons == nil {
		return nil, errors.New("loop: nil buttons")
	}
	if cfg.Hold <= 0 {
		return nil, fmt.Errorf("loop: hold must be positive, got %s", cfg.Hold)
	}
	for _, p := range world.Actor.Body() {
		if world.Obstacles.Contains(p) {
			return nil, fmt.Errorf("loop: actor starts on obstacle %s", p)
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Loop{
		cfg:     cfg,
		matrix:  matrix,
		world:   world,
		buttons: buttons,
		log:     logger.With("mode", cfg.Mode.String()),
	}, nil
}

func (l *Loop) Stats() Stats {
	return l.stats
}

func (l *Loop) World() World {
	return l.world
}

// Run ticks until ctx is done or the display becomes unavailable. On the
// device ctx is never cancelled, so Run only returns on a fatal display error.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("game started",
		"head", l.world.Actor.Head(),
		"heading", l.world.Actor.Heading().String(),
		"length", l.world.Actor.Len(),
		"obstacles", l.world.Obstacles.Len(),
		"food", l.world.Food.Len(),
		"hold", l.cfg.Hold,
	)
	for {
		select {
		case <-ctx.Done():
			l.log.Info("game stopped", "ticks", l.stats.Ticks, "moves", l.stats.Moves, "blocked", l.stats.Blocked)
			return ctx.Err()
		default:
		}
		if err := l.Tick(); err != nil {
			return err
		}
	}
}

// Tick runs one cycle. Only an unavailable display is returned as an error;
// blocked moves and other present failures are logged and the cycle ends
// normally.
func (l *Loop) Tick() error {
	l.stats.Ticks++

	switch l.cfg.Mode {
	case ModeToken:
		l.tickToken()
	default:
		l.tickSnake()
	}

	l.paint()
	if err := l.matrix.Present(l.cfg.Hold); err != nil {
		if errors.Is(err, display.ErrUnavailable) {
			l.log.Error("display unavailable", "err", err)
			return err
		}
		l.stats.PresentErrors++
		l.log.Warn("present failed", "err", err, "tick", l.stats.Ticks)
	}
	return nil
}

func (l *Loop) tickSnake() {
	for _, bh := range buttonHeadings {
		if !l.buttons.Pressed(bh.button) {
			continue
		}
		l.log.Debug("button pressed", "button", bh.button.String())
		if !rules.Steer(l.world.Actor, bh.heading, l.cfg.Rules.RejectReversal) {
			l.log.Debug("reversal ignored", "heading", bh.heading.String())
		}
	}
	l.step()
}

// tickToken moves the token once per pressed button, in button order.
func (l *Loop) tickToken() {
	for _, bh := range buttonHeadings {
		if !l.buttons.Pressed(bh.button) {
			continue
		}
		l.log.Debug("button pressed", "button", bh.button.String())
		l.world.Actor.SetHeading(bh.heading)
		l.step()
	}
}

func (l *Loop) step() {
	out, err := rules.Step(l.world.Actor, l.world.Obstacles, l.world.Food, l.cfg.Rules, l.cfg.Rand, l.stats.Ticks)
	if err != nil {
		l.stats.Blocked++
		l.log.Info("move blocked", "err", err, "head", l.world.Actor.Head())
		return
	}
	l.stats.Moves++
	if out.Ate {
		l.stats.Eaten++
		l.log.Info("food eaten", "at", l.world.Actor.Head(), "length", l.world.Actor.Len())
		if out.Respawned {
			l.log.Debug("food placed", "at", out.Spawned)
		}
	}
}

// paint rebuilds the matrix from the world: obstacles, then food, then the
// actor on top.
func (l *Loop) paint() {
	m := l.matrix
	m.Clear()
	for _, p := range l.world.Obstacles.Points() {
		m.TurnOn(p)
	}
	for _, p := range l.world.Food.Points() {
		m.Blink(p)
	}
	body := l.world.Actor.Body()
	for _, p := range body {
		if l.cfg.Mode == ModeToken {
			m.Blink(p)
		} else {
			m.TurnOn(p)
		}
	}
}
