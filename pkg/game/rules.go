package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/IlikeChooros/go-slidevote/pkg/search"
)

var (
	ErrIllegalMove = errors.New("game: move doesn't change the board")
	ErrCellTaken   = errors.New("game: cell is not empty")
)

// Number of tiles on a fresh board
const StartTiles = 2

// Whether no move can change the board
func IsOver(b Board) bool {
	if b.EmptyCells() > 0 {
		return false
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			exp := b.cells[r][c]
			if (c+1 < Size && b.cells[r][c+1] == exp) || (r+1 < Size && b.cells[r+1][c] == exp) {
				return false
			}
		}
	}
	return true
}

// Rules of the game, stateless, safe for concurrent use
type Rules struct{}

var _ search.Expander[Board] = Rules{}

func (Rules) ApplyMove(b Board, dir search.Direction) (Board, bool) {
	return Move(b, dir)
}

func (Rules) Successors(afterstate Board) []Board {
	return Successors(afterstate)
}

// Fresh board with StartTiles random tiles
func (Rules) NewGame(rng *rand.Rand) Board {
	b := NewBoard()
	for i := 0; i < StartTiles; i++ {
		b, _ = Spawn(b, rng)
	}
	return b
}

// Make a real game move: slide in given direction, then insert a random tile
func (Rules) Step(b Board, dir search.Direction, rng *rand.Rand) (Board, error) {
	next, moved := Move(b, dir)
	if !moved {
		return b, fmt.Errorf("%w: %v on %v", ErrIllegalMove, dir, b)
	}
	next, _ = Spawn(next, rng)
	return next, nil
}

func (Rules) IsOver(b Board) bool {
	return IsOver(b)
}

func (Rules) Score(b Board) int {
	return b.Score()
}

func (Rules) MaxTile(b Board) int {
	return b.MaxTile()
}
