// Package game defines the core grid types for the 5x5 matrix game.
//
// These types are the only state the engine keeps between ticks: the actor's
// body, the obstacles it cannot enter and the food cells it may eat. Everything
// the display shows is derived from them on every frame.
package game

import "fmt"

// GridSize is the edge length of the square play field.
const GridSize = 5

// Capacity is the number of cells on the grid and the longest an actor can get.
const Capacity = GridSize * GridSize

// Point is a grid coordinate.
// (0,0) is the top-left cell; Row grows downwards and Col grows to the right.
type Point struct {
	Row int
	Col int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// InBounds reports whether p lies on the grid.
func (p Point) InBounds() bool {
	return p.Row >= 0 && p.Row < GridSize && p.Col >= 0 && p.Col < GridSize
}

// Wrap folds p onto the grid, treating both axes as a torus.
func Wrap(p Point) Point {
	return Point{Row: wrapAxis(p.Row), Col: wrapAxis(p.Col)}
}

func wrapAxis(v int) int {
	v %= GridSize
	if v < 0 {
		v += GridSize
	}
	return v
}

// Heading is the direction applied on the next movement step.
type Heading int

const (
	Up Heading = iota
	Down
	Left
	Right
)

var headingNames = [...]string{"up", "down", "left", "right"}

func (h Heading) String() string {
	if h < Up || h > Right {
		return fmt.Sprintf("heading(%d)", int(h))
	}
	return headingNames[h]
}

// Valid reports whether h is one of the four axis-aligned headings.
func (h Heading) Valid() bool {
	return h >= Up && h <= Right
}

// Opposite returns the heading pointing the other way.
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// delta returns the unwrapped row/col offset of one step in heading h.
func (h Heading) delta() (int, int) {
	switch h {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}

// Step moves p one cell in heading h with wraparound on both axes.
func Step(p Point, h Heading) Point {
	dr, dc := h.delta()
	return Wrap(Point{Row: p.Row + dr, Col: p.Col + dc})
}

// ParseHeading accepts the lower-case names produced by Heading.String.
func ParseHeading(s string) (Heading, error) {
	for i, name := range headingNames {
		if s == name {
			return Heading(i), nil
		}
	}
	return Up, fmt.Errorf("unknown heading %q", s)
}
