package rules

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/brensch/ledsnake/game"
)

// FoodMode selects what happens when the head lands on a food cell.
//
//   - FoodDecorative: nothing; food only blinks. This is the default.
//   - FoodConsume: the food is removed and a new piece is placed on a free cell.
//   - FoodGrow: as FoodConsume, and the actor grows on its next move.
type FoodMode int

const (
	FoodDecorative FoodMode = iota
	FoodConsume
	FoodGrow
)

var foodModeNames = [...]string{"decorative", "consume", "grow"}

func (m FoodMode) String() string {
	if m < FoodDecorative || m > FoodGrow {
		return fmt.Sprintf("foodmode(%d)", int(m))
	}
	return foodModeNames[m]
}

func ParseFoodMode(s string) (FoodMode, error) {
	for i, name := range foodModeNames {
		if s == name {
			return FoodMode(i), nil
		}
	}
	return FoodDecorative, fmt.Errorf("unknown food mode %q", s)
}

// FreeCells lists the cells not covered by the actor, an obstacle or food,
// in row-major order.
func FreeCells(actor *game.Actor, obstacles *game.Obstacles, food *game.Food) []game.Point {
	var taken [game.GridSize][game.GridSize]bool
	if actor != nil {
		for i := 0; i < actor.Len(); i++ {
			p := actor.At(i)
			taken[p.Row][p.Col] = true
		}
	}
	for _, p := range obstacles.Points() {
		taken[p.Row][p.Col] = true
	}
	for _, p := range food.Points() {
		taken[p.Row][p.Col] = true
	}

	free := make([]game.Point, 0, game.Capacity)
	for r := 0; r < game.GridSize; r++ {
		for c := 0; c < game.GridSize; c++ {
			if !taken[r][c] {
				free = append(free, game.Point{Row: r, Col: c})
			}
		}
	}
	return free
}

// relocateFood places one piece of food on a free cell and returns it.
// If rng is nil the choice is a deterministic function of tick, salt and the
// actor's head so replays and tests see the same board.
func relocateFood(food *game.Food, actor *game.Actor, obstacles *game.Obstacles, rng *rand.Rand, tick uint64, salt uint64) (game.Point, bool) {
	free := FreeCells(actor, obstacles, food)
	if len(free) == 0 {
		return game.Point{}, false
	}

	var idx int
	if rng != nil {
		idx = rng.Intn(len(free))
	} else {
		idx = int(deterministicU64Fast(actor, tick, salt) % uint64(len(free)))
	}

	p := free[idx]
	// free cells are on the grid by construction
	_ = food.Place(p)
	return p, true
}

func deterministicU64Fast(actor *game.Actor, tick uint64, salt uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], tick)
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], salt)
	_, _ = h.Write(buf[:])

	if actor != nil {
		head := actor.Head()
		binary.LittleEndian.PutUint64(buf[:], (uint64(uint32(head.Row))<<32)|uint64(uint32(head.Col)))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(actor.Len()))
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}
