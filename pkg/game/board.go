package game

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Side length of the grid
const Size = 4

var ErrInvalidBoard = errors.New("game: invalid board")

// Immutable snapshot of the game. Tiles are stored as exponents of two,
// 0 meaning an empty cell, so exponent 1 is tile '2', 11 is '2048' etc.
// The zero value is an empty board with no score
type Board struct {
	cells  [Size][Size]uint8
	score  int
	merges int
	// bit r*Size+c set if the last move merged a tile at (r, c)
	merged uint16
}

func NewBoard() Board {
	return Board{}
}

// Create a board from tile values (0 for an empty cell), every value
// must be a power of two
func FromValues(values [Size][Size]int) (Board, error) {
	var b Board
	for r := range values {
		for c, v := range values[r] {
			exp, err := exponent(v)
			if err != nil {
				return Board{}, fmt.Errorf("%w: cell (%d, %d): %v", ErrInvalidBoard, r, c, err)
			}
			b.cells[r][c] = exp
		}
	}
	return b, nil
}

// Same as FromValues, but panics on error
func MustFromValues(values [Size][Size]int) Board {
	b, err := FromValues(values)
	if err != nil {
		panic(err)
	}
	return b
}

// Parse the storage notation, rows separated with '/', cells with ','
// for example "2,0,0,0/0,0,0,0/0,0,4,0/0,0,0,0"
func ParseBoard(s string) (Board, error) {
	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != Size {
		return Board{}, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Size, len(rows))
	}

	var values [Size][Size]int
	for r, row := range rows {
		cells := strings.Split(row, ",")
		if len(cells) != Size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, r, len(cells))
		}
		for c, cell := range cells {
			v, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return Board{}, fmt.Errorf("%w: cell (%d, %d): %v", ErrInvalidBoard, r, c, err)
			}
			values[r][c] = v
		}
	}
	return FromValues(values)
}

func exponent(v int) (uint8, error) {
	switch {
	case v == 0:
		return 0, nil
	case v < 2 || v&(v-1) != 0:
		return 0, fmt.Errorf("%d is not a power of two", v)
	}
	return uint8(bits.TrailingZeros(uint(v))), nil
}

func valueOf(exp uint8) int {
	if exp == 0 {
		return 0
	}
	return 1 << exp
}

// Tile value at given cell, 0 if empty
func (b Board) Value(r, c int) int {
	return valueOf(b.cells[r][c])
}

// Tile exponent at given cell, 0 if empty
func (b Board) Exponent(r, c int) int {
	return int(b.cells[r][c])
}

// All tile values
func (b Board) Values() (values [Size][Size]int) {
	for r := range b.cells {
		for c := range b.cells[r] {
			values[r][c] = b.Value(r, c)
		}
	}
	return values
}

func (b Board) EmptyCells() int {
	n := 0
	for r := range b.cells {
		for _, exp := range b.cells[r] {
			if exp == 0 {
				n++
			}
		}
	}
	return n
}

// Largest tile value on the board
func (b Board) MaxTile() int {
	var best uint8
	for r := range b.cells {
		for _, exp := range b.cells[r] {
			best = max(best, exp)
		}
	}
	return valueOf(best)
}

// Accumulated game score, sum of all tiles created by merges
func (b Board) Score() int {
	return b.score
}

// Number of merges made by the move that produced this board
func (b Board) Merges() int {
	return b.merges
}

// Whether the move that produced this board merged a tile into (r, c)
func (b Board) MergedAt(r, c int) bool {
	return b.merged&(1<<(r*Size+c)) != 0
}

// Same tiles on both boards, score and merge info are ignored
func (b Board) Equal(other Board) bool {
	return b.cells == other.cells
}

// Storage notation, accepted by ParseBoard
func (b Board) String() string {
	builder := strings.Builder{}
	for r := range b.cells {
		if r > 0 {
			builder.WriteByte('/')
		}
		for c := range b.cells[r] {
			if c > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.Itoa(b.Value(r, c)))
		}
	}
	return builder.String()
}
