// food.go holds the food cells shown blinking on the matrix.

package game

import "fmt"

// Food is the set of target cells. Whether the actor can eat them is decided
// by the rules package; by default they are purely decorative.
// A nil *Food is empty.
type Food struct {
	points []Point
}

// NewFood builds the set. Duplicates collapse; off-grid cells are an error.
func NewFood(points ...Point) (*Food, error) {
	f := &Food{points: make([]Point, 0, len(points))}
	for _, p := range points {
		if err := f.Place(p); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Place adds p to the set. Placing an existing cell is a no-op.
func (f *Food) Place(p Point) error {
	if !p.InBounds() {
		return fmt.Errorf("food %s: %w", p, ErrOutOfBounds)
	}
	if f.Contains(p) {
		return nil
	}
	f.points = append(f.points, p)
	return nil
}

// Remove deletes p and reports whether it was present.
func (f *Food) Remove(p Point) bool {
	if f == nil {
		return false
	}
	for i, q := range f.points {
		if q == p {
			f.points = append(f.points[:i], f.points[i+1:]...)
			return true
		}
	}
	return false
}

func (f *Food) Contains(p Point) bool {
	if f == nil {
		return false
	}
	for _, q := range f.points {
		if q == p {
			return true
		}
	}
	return false
}

// Points returns a copy of the food cells.
func (f *Food) Points() []Point {
	if f == nil {
		return nil
	}
	out := make([]Point, len(f.points))
	copy(out, f.points)
	return out
}

func (f *Food) Len() int {
	if f == nil {
		return 0
	}
	return len(f.points)
}
