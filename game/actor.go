package game

import "fmt"

// Actor is the player-controlled body: a head-first run of unique cells and
// the heading applied on the next Advance.
//
// The body lives in a fixed ring so an actor never allocates after NewActor.
// Element i of the body (0 is the head) sits at body[(head+i)%Capacity].
type Actor struct {
	body        [Capacity]Point
	head        int
	length      int
	heading     Heading
	growPending bool
}

// NewActor seeds a straight body of the given length with its head on start,
// trailing away from heading. Seed cells wrap around the grid edges.
func NewActor(start Point, heading Heading, length int) (*Actor, error) {
	if !start.InBounds() {
		return nil, fmt.Errorf("actor start %s: %w", start, ErrOutOfBounds)
	}
	if !heading.Valid() {
		return nil, fmt.Errorf("actor heading %s not supported", heading)
	}
	// A straight seed only has GridSize distinct cells before it meets itself.
	if length < 1 || length > GridSize {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidLength, length, GridSize)
	}

	a := &Actor{heading: heading, length: length}
	back := heading.Opposite()
	p := start
	for i := 0; i < length; i++ {
		a.body[i] = p
		p = Step(p, back)
	}
	return a, nil
}

// Len returns the number of cells in the body.
func (a *Actor) Len() int {
	return a.length
}

// Head returns the leading cell.
func (a *Actor) Head() Point {
	return a.body[a.head]
}

// At returns body cell i, counting from the head.
func (a *Actor) At(i int) Point {
	return a.body[(a.head+i)%Capacity]
}

// Body returns a copy of the body, head first.
func (a *Actor) Body() []Point {
	out := make([]Point, a.length)
	for i := range out {
		out[i] = a.At(i)
	}
	return out
}

// Contains reports whether p is part of the body.
func (a *Actor) Contains(p Point) bool {
	for i := 0; i < a.length; i++ {
		if a.At(i) == p {
			return true
		}
	}
	return false
}

func (a *Actor) Heading() Heading {
	return a.heading
}

// SetHeading replaces the heading used by the next Advance. No reversal check
// happens here; see rules.Steer.
func (a *Actor) SetHeading(h Heading) {
	a.heading = h
}

// Grow makes the next successful Advance keep the tail.
func (a *Actor) Grow() {
	a.growPending = true
}

func (a *Actor) GrowPending() bool {
	return a.growPending
}

// Next returns the cell the head would move to, without moving.
func (a *Actor) Next() Point {
	return Step(a.Head(), a.heading)
}

// Advance moves the head one step along the heading, wrapping at the edges.
//
// A candidate cell in obstacles, or on the body other than a tail that is
// about to be vacated, fails with a *BlockedError matching ErrBlocked and
// leaves the actor untouched. On success the tail is dropped unless Grow was
// called, in which case the body gets one cell longer.
func (a *Actor) Advance(obstacles *Obstacles) error {
	next := a.Next()

	if obstacles.Contains(next) {
		return &BlockedError{At: next, Reason: BlockedByObstacle}
	}

	last := a.length - 1
	for i := 0; i < a.length; i++ {
		if a.At(i) != next {
			continue
		}
		if i == last && !a.growPending {
			break
		}
		return &BlockedError{At: next, Reason: BlockedByBody}
	}

	// The slot before the head is the old tail when the ring is full; it is
	// only reused here when that tail is being dropped anyway.
	a.head = (a.head + Capacity - 1) % Capacity
	a.body[a.head] = next
	if a.growPending {
		a.length++
		a.growPending = false
	}
	return nil
}
