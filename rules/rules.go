package rules

import (
	"errors"
	"math/rand"

	"github.com/brensch/ledsnake/game"
)

// foodSalt keeps food placement independent of any other hash keyed on tick.
const foodSalt = 0x464F4F445F4D4F56 // "FOOD_MOV"

// Settings holds the rule choices that vary between builds.
type Settings struct {
	Food FoodMode
	// RejectReversal makes Steer ignore a 180 degree turn for bodies longer
	// than one cell.
	RejectReversal bool
}

// DefaultSettings matches the firmware: decorative food, reversals allowed.
var DefaultSettings = Settings{Food: FoodDecorative}

// Outcome reports what one Step did.
type Outcome struct {
	Moved bool
	// Blocked is set when the move was refused.
	Blocked *game.BlockedError
	// Ate is set when the head landed on food that was consumed.
	Ate bool
	// Spawned is the replacement food cell, valid when Respawned is set.
	Spawned   game.Point
	Respawned bool
}

// Steer applies the requested heading and reports whether it was taken.
// With rejectReversal, turning straight back on a body of two or more cells
// is ignored.
func Steer(actor *game.Actor, h game.Heading, rejectReversal bool) bool {
	if !h.Valid() {
		return false
	}
	if rejectReversal && actor.Len() > 1 && h == actor.Heading().Opposite() {
		return false
	}
	actor.SetHeading(h)
	return true
}

// Step advances the actor one cell and applies the food rules.
//
// A blocked move is reported through Outcome.Blocked and the returned error
// (which matches game.ErrBlocked); nothing else changes in that case. Any
// other error from Advance is returned as is.
func Step(actor *game.Actor, obstacles *game.Obstacles, food *game.Food, settings Settings, rng *rand.Rand, tick uint64) (Outcome, error) {
	var out Outcome

	if err := actor.Advance(obstacles); err != nil {
		var blocked *game.BlockedError
		if errors.As(err, &blocked) {
			out.Blocked = blocked
		}
		return out, err
	}
	out.Moved = true

	if settings.Food == FoodDecorative || !food.Remove(actor.Head()) {
		return out, nil
	}
	out.Ate = true
	if settings.Food == FoodGrow {
		actor.Grow()
	}

	out.Spawned, out.Respawned = relocateFood(food, actor, obstacles, rng, tick, foodSalt)
	return out, nil
}
