// Package config turns flags and LEDSNAKE_* environment variables into the
// settings a game session starts from.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brensch/ledsnake/game"
	"github.com/brensch/ledsnake/logging"
	"github.com/brensch/ledsnake/loop"
	"github.com/brensch/ledsnake/rules"
)

const envPrefix = "LEDSNAKE_"

// Device names accepted by -device.
const (
	DeviceTerminal = "terminal"
	DeviceHeadless = "headless"
)

type Config struct {
	Mode   loop.Mode
	Device string
	Hold   time.Duration

	Start     game.Point
	Heading   game.Heading
	Length    int
	Obstacles []game.Point
	Food      []game.Point

	FoodMode       rules.FoodMode
	RejectReversal bool
	// Seed drives food placement; 0 keeps placement deterministic.
	Seed int64

	// Script and Ticks only apply to the headless device.
	Script string
	Ticks  int

	LogLevel  slog.Level
	LogFile   string
	LogIndent bool
}

// Default returns the firmware layout for mode: a two-cell snake heading
// down from the centre with decorative food in two corners, or a single
// blinking token next to one obstacle.
func Default(mode loop.Mode) Config {
	c := Config{
		Mode:     mode,
		Device:   DeviceTerminal,
		Start:    game.Point{Row: 2, Col: 2},
		Heading:  game.Down,
		FoodMode: rules.FoodDecorative,
		LogLevel: slog.LevelInfo,
	}
	switch mode {
	case loop.ModeToken:
		c.Hold = 100 * time.Millisecond
		c.Length = 1
		c.Obstacles = []game.Point{{Row: 3, Col: 1}}
	default:
		c.Hold = 300 * time.Millisecond
		c.Length = 2
		c.Food = []game.Point{{Row: 0, Col: 0}, {Row: 4, Col: 4}}
	}
	return c
}

// Parse registers the flags on fs, parses args and returns the resulting
// config. Empty flags fall back to the mode defaults.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	mode := fs.String("mode", getEnvOrDefault("MODE", "snake"), "Game to play: snake or token")
	device := fs.String("device", getEnvOrDefault("DEVICE", DeviceTerminal), "Where to present frames: terminal or headless")
	hold := fs.Duration("hold", getEnvDurationOrDefault("HOLD", 0), "How long each frame is held (0 = mode default)")
	start := fs.String("start", getEnvOrDefault("START", ""), "Start cell as row,col")
	heading := fs.String("heading", getEnvOrDefault("HEADING", ""), "Initial heading: up, down, left or right")
	length := fs.Int("length", getEnvIntOrDefault("LENGTH", 0), "Initial body length (0 = mode default)")
	obstacles := fs.String("obstacles", getEnvOrDefault("OBSTACLES", ""), "Obstacle cells as row,col;row,col (\"none\" for no obstacles)")
	food := fs.String("food", getEnvOrDefault("FOOD", ""), "Food cells as row,col;row,col (\"none\" for no food)")
	foodMode := fs.String("food-mode", getEnvOrDefault("FOOD_MODE", "decorative"), "What eating food does: decorative, consume or grow")
	rejectReversal := fs.Bool("reject-reversal", getEnvBoolOrDefault("REJECT_REVERSAL", false), "Ignore 180 degree turns")
	seed := fs.Int64("seed", int64(getEnvIntOrDefault("SEED", 0)), "Food placement seed (0 = deterministic)")
	script := fs.String("script", getEnvOrDefault("SCRIPT", ""), "Headless button script, one token per tick: a, b, ab or .")
	ticks := fs.Int("ticks", getEnvIntOrDefault("TICKS", 0), "Headless: stop after this many ticks (0 = run until interrupted)")
	logLevel := fs.String("log-level", getEnvOrDefault("LOG_LEVEL", "info"), "Log level: debug, info, warn or error")
	logFile := fs.String("log-file", getEnvOrDefault("LOG_FILE", ""), "Write logs to this file instead of stderr")
	logIndent := fs.Bool("log-indent", getEnvBoolOrDefault("LOG_INDENT", false), "Pretty-print log records")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	m, err := loop.ParseMode(*mode)
	if err != nil {
		return Config{}, err
	}
	c := Default(m)
	c.Device = *device
	c.RejectReversal = *rejectReversal
	c.Seed = *seed
	c.Script = *script
	c.Ticks = *ticks
	c.LogFile = *logFile
	c.LogIndent = *logIndent

	if *hold != 0 {
		c.Hold = *hold
	}
	if *length != 0 {
		c.Length = *length
	}
	if *start != "" {
		p, err := ParsePoint(*start)
		if err != nil {
			return Config{}, fmt.Errorf("-start: %w", err)
		}
		c.Start = p
	}
	if *heading != "" {
		h, err := game.ParseHeading(*heading)
		if err != nil {
			return Config{}, fmt.Errorf("-heading: %w", err)
		}
		c.Heading = h
	}
	if *obstacles != "" {
		if c.Obstacles, err = ParsePoints(*obstacles); err != nil {
			return Config{}, fmt.Errorf("-obstacles: %w", err)
		}
	}
	if *food != "" {
		if c.Food, err = ParsePoints(*food); err != nil {
			return Config{}, fmt.Errorf("-food: %w", err)
		}
	}
	if c.FoodMode, err = rules.ParseFoodMode(*foodMode); err != nil {
		return Config{}, fmt.Errorf("-food-mode: %w", err)
	}
	if c.LogLevel, err = logging.ParseLevel(*logLevel); err != nil {
		return Config{}, fmt.Errorf("-log-level: %w", err)
	}

	return c, c.Validate()
}

// Validate checks the fields a session cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.Device != DeviceTerminal && c.Device != DeviceHeadless {
		errs = append(errs, fmt.Errorf("unknown device %q", c.Device))
	}
	if c.Hold <= 0 {
		errs = append(errs, fmt.Errorf("hold must be positive, got %s", c.Hold))
	}
	if c.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must not be negative, got %d", c.Ticks))
	}
	return errors.Join(errs...)
}

// World builds the actor, obstacles and food described by c.
func (c Config) World() (loop.World, error) {
	actor, err := game.NewActor(c.Start, c.Heading, c.Length)
	if err != nil {
		return loop.World{}, err
	}
	obstacles, err := game.NewObstacles(c.Obstacles...)
	if err != nil {
		return loop.World{}, err
	}
	food, err := game.NewFood(c.Food...)
	if err != nil {
		return loop.World{}, err
	}
	return loop.World{Actor: actor, Obstacles: obstacles, Food: food}, nil
}

// Loop returns the loop settings described by c.
func (c Config) Loop() loop.Config {
	lc := loop.Config{
		Mode:  c.Mode,
		Hold:  c.Hold,
		Rules: rules.Settings{Food: c.FoodMode, RejectReversal: c.RejectReversal},
	}
	if c.Seed != 0 {
		lc.Rand = rand.New(rand.NewSource(c.Seed))
	}
	return lc
}

// ParsePoint parses "row,col".
func ParsePoint(s string) (game.Point, error) {
	rs, cs, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return game.Point{}, fmt.Errorf("point %q: want row,col", s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return game.Point{}, fmt.Errorf("point %q: row: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(cs))
	if err != nil {
		return game.Point{}, fmt.Errorf("point %q: col: %w", s, err)
	}
	p := game.Point{Row: r, Col: col}
	if !p.InBounds() {
		return game.Point{}, fmt.Errorf("point %s: %w", p, game.ErrOutOfBounds)
	}
	return p, nil
}

// ParsePoints parses "row,col;row,col". "none" yields an empty list.
func ParsePoints(s string) ([]game.Point, error) {
	s = strings.TrimSpace(s)
	if s == "none" {
		return []game.Point{}, nil
	}
	var out []game.Point
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		p, err := ParsePoint(part)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func getEnvOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBoolOrDefault(key string, def bool) bool {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDurationOrDefault(key string, def time.Duration) time.Duration {
	v := getEnvOrDefault(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
