package game

import (
	"errors"
	"strings"
	"testing"
)

// dumpBoard is a test helper to visualize an actor on the grid.
func dumpBoard(a *Actor, obstacles *Obstacles) string {
	var grid [GridSize][GridSize]byte
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = '.'
		}
	}
	for _, p := range obstacles.Points() {
		grid[p.Row][p.Col] = '#'
	}
	for i, p := range a.Body() {
		if i == 0 {
			grid[p.Row][p.Col] = 'H'
		} else {
			grid[p.Row][p.Col] = 'o'
		}
	}
	var sb strings.Builder
	for r := range grid {
		sb.Write(grid[r][:])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func logAdvance(t *testing.T, label string, before string, a *Actor, obstacles *Obstacles) {
	t.Logf("%s\n  BEFORE (heading=%s):\n%s  AFTER:\n%s", label, a.Heading(), before, dumpBoard(a, obstacles))
}

func mustActor(t *testing.T, start Point, h Heading, length int) *Actor {
	t.Helper()
	a, err := NewActor(start, h, length)
	if err != nil {
		t.Fatalf("NewActor(%v, %s, %d): %v", start, h, length, err)
	}
	return a
}

func assertBody(t *testing.T, a *Actor, want []Point) {
	t.Helper()
	got := a.Body()
	if len(got) != len(want) {
		t.Fatalf("body len=%d want=%d (body=%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body[%d]=%v want=%v", i, got[i], want[i])
		}
	}
}

func assertUnique(t *testing.T, a *Actor) {
	t.Helper()
	seen := make(map[Point]bool, a.Len())
	for _, p := range a.Body() {
		if !p.InBounds() {
			t.Fatalf("body cell %v off grid", p)
		}
		if seen[p] {
			t.Fatalf("body cell %v repeated: %v", p, a.Body())
		}
		seen[p] = true
	}
}

func TestNewActor_TrailsAwayFromHeading(t *testing.T) {
	a := mustActor(t, Point{Row: 0, Col: 2}, Down, 3)
	assertBody(t, a, []Point{{0, 2}, {4, 2}, {3, 2}})

	a = mustActor(t, Point{Row: 1, Col: 0}, Right, 2)
	assertBody(t, a, []Point{{1, 0}, {1, 4}})

	a = mustActor(t, Point{Row: 4, Col: 4}, Up, 2)
	assertBody(t, a, []Point{{4, 4}, {0, 4}})

	a = mustActor(t, Point{Row: 2, Col: 4}, Left, 2)
	assertBody(t, a, []Point{{2, 4}, {2, 0}})
}

func TestNewActor_RejectsBadSeeds(t *testing.T) {
	if _, err := NewActor(Point{Row: 0, Col: 0}, Down, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("length 0 err=%v want ErrInvalidLength", err)
	}
	if _, err := NewActor(Point{Row: 0, Col: 0}, Down, GridSize+1); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("length %d err=%v want ErrInvalidLength", GridSize+1, err)
	}
	if _, err := NewActor(Point{Row: 5, Col: 0}, Down, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("start off grid err=%v want ErrOutOfBounds", err)
	}
	if _, err := NewActor(Point{Row: 0, Col: 0}, Heading(7), 1); err == nil {
		t.Fatalf("unknown heading accepted")
	}
}

func TestAdvance_WrapsAtEdges(t *testing.T) {
	for y := 0; y < GridSize; y++ {
		a := mustActor(t, Point{Row: 4, Col: y}, Down, 1)
		if err := a.Advance(nil); err != nil {
			t.Fatalf("advance down from (4,%d): %v", y, err)
		}
		if got, want := a.Head(), (Point{Row: 0, Col: y}); got != want {
			t.Fatalf("head=%v want=%v", got, want)
		}

		b := mustActor(t, Point{Row: y, Col: 4}, Right, 1)
		if err := b.Advance(nil); err != nil {
			t.Fatalf("advance right from (%d,4): %v", y, err)
		}
		if got, want := b.Head(), (Point{Row: y, Col: 0}); got != want {
			t.Fatalf("head=%v want=%v", got, want)
		}
	}
}

func TestAdvance_AllHeadingsStayOnGrid(t *testing.T) {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			for h := Up; h <= Right; h++ {
				a := mustActor(t, Point{Row: r, Col: c}, h, 1)
				if err := a.Advance(nil); err != nil {
					t.Fatalf("advance %s from (%d,%d): %v", h, r, c, err)
				}
				if !a.Head().InBounds() {
					t.Fatalf("advance %s from (%d,%d) left grid: %v", h, r, c, a.Head())
				}
			}
		}
	}
}

func TestAdvance_KeepsLengthWithoutGrow(t *testing.T) {
	a := mustActor(t, Point{Row: 2, Col: 2}, Down, 4)
	headings := []Heading{Down, Down, Right, Right, Up, Right, Down, Down, Down, Right}
	for i, h := range headings {
		a.SetHeading(h)
		if err := a.Advance(nil); err != nil {
			t.Fatalf("step %d (%s): %v\n%s", i, h, err, dumpBoard(a, nil))
		}
		if a.Len() != 4 {
			t.Fatalf("step %d len=%d want=4", i, a.Len())
		}
		assertUnique(t, a)
	}
}

func TestGrow_AddsExactlyOneCell(t *testing.T) {
	a := mustActor(t, Point{Row: 1, Col: 1}, Right, 2)
	before := dumpBoard(a, nil)

	a.Grow()
	if !a.GrowPending() {
		t.Fatalf("grow not pending")
	}
	if err := a.Advance(nil); err != nil {
		t.Fatalf("advance: %v", err)
	}
	logAdvance(t, "grow", before, a, nil)
	assertBody(t, a, []Point{{1, 2}, {1, 1}, {1, 0}})
	if a.GrowPending() {
		t.Fatalf("grow still pending after advance")
	}

	if err := a.Advance(nil); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if a.Len() != 3 {
		t.Fatalf("len=%d want=3", a.Len())
	}
}

func TestAdvance_BlockedByObstacle(t *testing.T) {
	obstacles, err := NewObstacles(Point{Row: 3, Col: 1})
	if err != nil {
		t.Fatalf("NewObstacles: %v", err)
	}
	a := mustActor(t, Point{Row: 2, Col: 1}, Down, 2)
	want := a.Body()

	err = a.Advance(obstacles)
	if !errors.Is(err, ErrBlocked) {
		t.Fatalf("err=%v want ErrBlocked", err)
	}
	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("err=%T want *BlockedError", err)
	}
	if blocked.At != (Point{Row: 3, Col: 1}) || blocked.Reason != BlockedByObstacle {
		t.Fatalf("blocked=%+v want at (3,1) by obstacle", blocked)
	}
	assertBody(t, a, want)
}

func TestAdvance_BlockedKeepsPendingGrowth(t *testing.T) {
	obstacles, _ := NewObstacles(Point{Row: 0, Col: 1})
	a := mustActor(t, Point{Row: 0, Col: 0}, Right, 1)
	a.Grow()
	if err := a.Advance(obstacles); !errors.Is(err, ErrBlocked) {
		t.Fatalf("err=%v want ErrBlocked", err)
	}
	if !a.GrowPending() {
		t.Fatalf("blocked move consumed pending growth")
	}
	a.SetHeading(Down)
	if err := a.Advance(obstacles); err != nil {
		t.Fatalf("advance: %v", err)
	}
	assertBody(t, a, []Point{{1, 0}, {0, 0}})
}

// curl seeds a body along row 0, turns it down and back left so the head sits
// at (1,4), and leaves it heading up into (0,4).
func curl(t *testing.T, length int) *Actor {
	t.Helper()
	a := mustActor(t, Point{Row: 0, Col: 0}, Right, length)
	for _, h := range []Heading{Down, Left} {
		a.SetHeading(h)
		if err := a.Advance(nil); err != nil {
			t.Fatalf("curl %s: %v", h, err)
		}
	}
	a.SetHeading(Up)
	return a
}

func TestAdvance_MayEnterVacatingTail(t *testing.T) {
	a := curl(t, 4)
	before := dumpBoard(a, nil)
	if err := a.Advance(nil); err != nil {
		t.Fatalf("advance into tail: %v\n%s", err, before)
	}
	logAdvance(t, "chase tail", before, a, nil)
	assertBody(t, a, []Point{{0, 4}, {1, 4}, {1, 0}, {0, 0}})
}

func TestAdvance_BlockedByOwnBody(t *testing.T) {
	a := curl(t, 5)
	want := a.Body()
	err := a.Advance(nil)
	var blocked *BlockedError
	if !errors.As(err, &blocked) || blocked.Reason != BlockedByBody {
		t.Fatalf("err=%v want body block\n%s", err, dumpBoard(a, nil))
	}
	assertBody(t, a, want)

	// The tail is kept while growing, so it is no longer a free cell.
	b := curl(t, 4)
	b.Grow()
	if err := b.Advance(nil); !errors.Is(err, ErrBlocked) {
		t.Fatalf("growing into own tail err=%v want ErrBlocked", err)
	}
}

func TestAdvance_FillsGridThenBlocks(t *testing.T) {
	a := mustActor(t, Point{Row: 0, Col: 0}, Right, 1)
	step := func(h Heading, n int) {
		a.SetHeading(h)
		for i := 0; i < n; i++ {
			a.Grow()
			if err := a.Advance(nil); err != nil {
				t.Fatalf("fill %s: %v\n%s", h, err, dumpBoard(a, nil))
			}
		}
	}
	step(Right, 4)
	for row := 1; row < GridSize; row++ {
		step(Down, 1)
		if row%2 == 1 {
			step(Left, 4)
		} else {
			step(Right, 4)
		}
	}
	if a.Len() != Capacity {
		t.Fatalf("len=%d want=%d", a.Len(), Capacity)
	}
	assertUnique(t, a)

	for h := Up; h <= Right; h++ {
		a.SetHeading(h)
		if err := a.Advance(nil); !errors.Is(err, ErrBlocked) {
			t.Fatalf("full grid heading %s err=%v want ErrBlocked", h, err)
		}
	}
	if a.Len() != Capacity {
		t.Fatalf("len=%d want=%d after blocked moves", a.Len(), Capacity)
	}
}

func TestAdvance_RingWrapsManyTimes(t *testing.T) {
	a := mustActor(t, Point{Row: 3, Col: 0}, Right, 3)
	for i := 1; i <= 3*Capacity+2; i++ {
		if err := a.Advance(nil); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got, want := a.Head(), (Point{Row: 3, Col: i % GridSize}); got != want {
			t.Fatalf("step %d head=%v want=%v", i, got, want)
		}
		assertUnique(t, a)
	}
}

func TestScenario_DownPastObstacleAndWrap(t *testing.T) {
	obstacles, _ := NewObstacles(Point{Row: 3, Col: 1})
	a := mustActor(t, Point{Row: 0, Col: 2}, Down, 3)

	wantHeads := []Point{{1, 2}, {2, 2}, {3, 2}, {4, 2}, {0, 2}}
	for i, want := range wantHeads {
		before := dumpBoard(a, obstacles)
		if err := a.Advance(obstacles); err != nil {
			t.Fatalf("advance %d: %v", i+1, err)
		}
		logAdvance(t, "scenario", before, a, obstacles)
		if a.Head() != want {
			t.Fatalf("advance %d head=%v want=%v", i+1, a.Head(), want)
		}
		if a.Len() != 3 {
			t.Fatalf("advance %d len=%d want=3", i+1, a.Len())
		}
	}
}
