package game

import (
	"errors"
	"testing"
)

func TestWrap_NormalisesNegatives(t *testing.T) {
	cases := []struct {
		in, want Point
	}{
		{Point{-1, 0}, Point{4, 0}},
		{Point{0, -1}, Point{0, 4}},
		{Point{5, 5}, Point{0, 0}},
		{Point{-6, 12}, Point{4, 2}},
		{Point{2, 3}, Point{2, 3}},
	}
	for _, c := range cases {
		if got := Wrap(c.in); got != c.want {
			t.Fatalf("Wrap(%v)=%v want=%v", c.in, got, c.want)
		}
	}
}

func TestStep_Headings(t *testing.T) {
	p := Point{Row: 0, Col: 0}
	if got := Step(p, Up); got != (Point{4, 0}) {
		t.Fatalf("up=%v", got)
	}
	if got := Step(p, Left); got != (Point{0, 4}) {
		t.Fatalf("left=%v", got)
	}
	if got := Step(p, Down); got != (Point{1, 0}) {
		t.Fatalf("down=%v", got)
	}
	if got := Step(p, Right); got != (Point{0, 1}) {
		t.Fatalf("right=%v", got)
	}
}

func TestHeading_OppositeAndParse(t *testing.T) {
	for h := Up; h <= Right; h++ {
		if h.Opposite().Opposite() != h {
			t.Fatalf("%s opposite twice=%s", h, h.Opposite().Opposite())
		}
		got, err := ParseHeading(h.String())
		if err != nil || got != h {
			t.Fatalf("ParseHeading(%q)=%v,%v", h.String(), got, err)
		}
	}
	if _, err := ParseHeading("north"); err == nil {
		t.Fatalf("ParseHeading accepted north")
	}
}

func TestObstacles_RejectOffGrid(t *testing.T) {
	if _, err := NewObstacles(Point{Row: 0, Col: 5}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err=%v want ErrOutOfBounds", err)
	}
	o, err := NewObstacles(Point{1, 1}, Point{1, 1}, Point{2, 3})
	if err != nil {
		t.Fatalf("NewObstacles: %v", err)
	}
	if o.Len() != 2 {
		t.Fatalf("len=%d want=2", o.Len())
	}
	if !o.Contains(Point{2, 3}) || o.Contains(Point{3, 2}) {
		t.Fatalf("contains mismatch: %v", o.Points())
	}
	var empty *Obstacles
	if empty.Contains(Point{0, 0}) || empty.Len() != 0 {
		t.Fatalf("nil obstacles not empty")
	}
}

func TestFood_PlaceAndRemove(t *testing.T) {
	f, err := NewFood(Point{0, 0}, Point{4, 4}, Point{0, 0})
	if err != nil {
		t.Fatalf("NewFood: %v", err)
	}
	if f.Len() != 2 {
		t.Fatalf("len=%d want=2", f.Len())
	}
	if !f.Remove(Point{0, 0}) {
		t.Fatalf("remove (0,0) reported absent")
	}
	if f.Remove(Point{0, 0}) {
		t.Fatalf("remove (0,0) twice reported present")
	}
	if err := f.Place(Point{-1, 2}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("place off grid err=%v", err)
	}
	if got := f.Points(); len(got) != 1 || got[0] != (Point{4, 4}) {
		t.Fatalf("points=%v want [(4,4)]", got)
	}
}
