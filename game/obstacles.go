package game

import "fmt"

// Obstacles is a fixed set of cells an actor may never enter.
// It is built once and only read afterwards. A nil *Obstacles is empty.
type Obstacles struct {
	grid   [GridSize][GridSize]bool
	points []Point
}

// NewObstacles builds the set. Duplicates collapse; off-grid cells are an error.
func NewObstacles(points ...Point) (*Obstacles, error) {
	o := &Obstacles{}
	for _, p := range points {
		if !p.InBounds() {
			return nil, fmt.Errorf("obstacle %s: %w", p, ErrOutOfBounds)
		}
		if o.grid[p.Row][p.Col] {
			continue
		}
		o.grid[p.Row][p.Col] = true
		o.points = append(o.points, p)
	}
	return o, nil
}

func (o *Obstacles) Contains(p Point) bool {
	if o == nil || !p.InBounds() {
		return false
	}
	return o.grid[p.Row][p.Col]
}

// Points returns the obstacle cells in insertion order.
func (o *Obstacles) Points() []Point {
	if o == nil {
		return nil
	}
	out := make([]Point, len(o.points))
	copy(out, o.points)
	return out
}

func (o *Obstacles) Len() int {
	if o == nil {
		return 0
	}
	return len(o.points)
}
