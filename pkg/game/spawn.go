package game

import "math/rand"

// Probability of a new tile being '4' instead of '2'
const FourProbability = 0.1

// Exponents of the tiles that may be inserted after a move
var spawnExponents = [...]uint8{1, 2}

type Cell struct {
	Row, Col int
}

// Empty cells in row-major order
func (b Board) EmptyPositions() []Cell {
	cells := make([]Cell, 0, Size*Size)
	for r := range b.cells {
		for c, exp := range b.cells[r] {
			if exp == 0 {
				cells = append(cells, Cell{r, c})
			}
		}
	}
	return cells
}

// Place a tile with given value on an empty cell
func (b Board) With(cell Cell, value int) (Board, error) {
	exp, err := exponent(value)
	if err != nil || exp == 0 {
		return b, ErrInvalidBoard
	}
	if b.cells[cell.Row][cell.Col] != 0 {
		return b, ErrCellTaken
	}
	b.cells[cell.Row][cell.Col] = exp
	return b, nil
}

// Insert a random tile on a random empty cell, returns false if the board is full
func Spawn(b Board, rng *rand.Rand) (Board, bool) {
	empty := b.EmptyPositions()
	if len(empty) == 0 {
		return b, false
	}

	cell := empty[rng.Intn(len(empty))]
	exp := spawnExponents[0]
	if rng.Float64() < FourProbability {
		exp = spawnExponents[1]
	}
	b.cells[cell.Row][cell.Col] = exp
	return b, true
}

// Every possible outcome of the random insertion, empty cells in row-major
// order, for each cell the '2' first, then '4'
func Successors(b Board) []Board {
	empty := b.EmptyPositions()
	out := make([]Board, 0, len(empty)*len(spawnExponents))
	for _, cell := range empty {
		for _, exp := range spawnExponents {
			next := b
			next.cells[cell.Row][cell.Col] = exp
			out = append(out, next)
		}
	}
	return out
}
