package game

import (
	"errors"
	"fmt"
)

var (
	// ErrBlocked is matched by every failed Advance. The body is unchanged.
	ErrBlocked = errors.New("move blocked")

	// ErrInvalidLength is returned by NewActor for lengths it cannot seed.
	ErrInvalidLength = errors.New("invalid actor length")

	// ErrOutOfBounds is returned when a seed coordinate is off the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// BlockReason says what occupied the cell an actor tried to enter.
type BlockReason int

const (
	BlockedByObstacle BlockReason = iota
	BlockedByBody
)

func (r BlockReason) String() string {
	if r == BlockedByBody {
		return "body"
	}
	return "obstacle"
}

// BlockedError describes a refused move.
type BlockedError struct {
	At     Point
	Reason BlockReason
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("move blocked by %s at %s", e.Reason, e.At)
}

func (e *BlockedError) Is(target error) bool {
	return target == ErrBlocked
}
