// Board heuristics, every heuristic is a pure function of the board
// (and optionally the direction it is evaluated for), higher is better
package heuristic

import (
	"github.com/IlikeChooros/go-slidevote/pkg/game"
	"github.com/IlikeChooros/go-slidevote/pkg/search"
)

type Heuristic = search.Heuristic[game.Board]

// Number of empty cells
type EmptyCells struct{}

func (EmptyCells) Score(b game.Board, _ search.Direction) float64 {
	return float64(b.EmptyCells())
}

func (EmptyCells) String() string { return "empty" }

// Penalty for rows and columns that are not ordered, 0 if every
// line is monotonic in either direction
type Monotonicity struct{}

func (Monotonicity) Score(b game.Board, _ search.Direction) float64 {
	penalty := 0
	for i := 0; i < game.Size; i++ {
		var rowInc, rowDec, colInc, colDec int
		for j := 0; j+1 < game.Size; j++ {
			accumulate(b.Exponent(i, j), b.Exponent(i, j+1), &rowInc, &rowDec)
			accumulate(b.Exponent(j, i), b.Exponent(j+1, i), &colInc, &colDec)
		}
		penalty += min(rowInc, rowDec) + min(colInc, colDec)
	}
	return -float64(penalty)
}

func accumulate(a, b int, inc, dec *int) {
	if a < b {
		*inc += b - a
	} else {
		*dec += a - b
	}
}

func (Monotonicity) String() string { return "monotonic" }

// Negative sum of exponent differences between neighbouring tiles
type Smoothness struct{}

func (Smoothness) Score(b game.Board, _ search.Direction) float64 {
	diff := 0
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			exp := b.Exponent(r, c)
			if exp == 0 {
				continue
			}
			if c+1 < game.Size && b.Exponent(r, c+1) != 0 {
				diff += abs(exp - b.Exponent(r, c+1))
			}
			if r+1 < game.Size && b.Exponent(r+1, c) != 0 {
				diff += abs(exp - b.Exponent(r+1, c))
			}
		}
	}
	return -float64(diff)
}

func (Smoothness) String() string { return "smooth" }

// Exponent of the largest tile if it sits in a corner, 0 otherwise
type CornerMax struct{}

func (CornerMax) Score(b game.Board, _ search.Direction) float64 {
	best := 0
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			best = max(best, b.Exponent(r, c))
		}
	}
	last := game.Size - 1
	for _, cell := range [...]game.Cell{{Row: 0, Col: 0}, {Row: 0, Col: last}, {Row: last, Col: 0}, {Row: last, Col: last}} {
		if best > 0 && b.Exponent(cell.Row, cell.Col) == best {
			return float64(best)
		}
	}
	return 0
}

func (CornerMax) String() string { return "corner" }

// Value of the largest tile
type MaxTile struct{}

func (MaxTile) Score(b game.Board, _ search.Direction) float64 {
	return float64(b.MaxTile())
}

func (MaxTile) String() string { return "maxtile" }

// Accumulated game score
type Score struct{}

func (Score) Score(b game.Board, _ search.Direction) float64 {
	return float64(b.Score())
}

func (Score) String() string { return "score" }

// Merges made by the last move
type Merges struct{}

func (Merges) Score(b game.Board, _ search.Direction) float64 {
	return float64(b.Merges())
}

func (Merges) String() string { return "merges" }

// Rewards big tiles close to the edge the evaluated direction pushes towards,
// the weight of a cell is its distance from the opposite edge plus one
type EdgeBias struct{}

func (EdgeBias) Score(b game.Board, dir search.Direction) float64 {
	total := 0
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			var weight int
			switch dir {
			case search.Up:
				weight = game.Size - r
			case search.Down:
				weight = r + 1
			case search.Left:
				weight = game.Size - c
			case search.Right:
				weight = c + 1
			}
			total += weight * b.Exponent(r, c)
		}
	}
	return float64(total)
}

func (EdgeBias) String() string { return "edge" }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
