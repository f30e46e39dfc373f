package search

import (
	"fmt"
	"strings"
)

// Direction of a move, the numeric value is used as an index into
// the score matrix rows and the vote vector, so the order must never change
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Number of move directions
const NumDirections = 4

// All directions, in the canonical order
var Directions = [NumDirections]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Valid reports whether d is one of the four canonical directions
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Parse a direction name (case insensitive), accepts single letters as well
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Vote count per direction, indexed by Direction
type Votes [NumDirections]int

// Sum of all votes, equals the number of heuristics used to compute them
func (v Votes) Total() int {
	total := 0
	for _, n := range v {
		total += n
	}
	return total
}

func (v Votes) String() string {
	return fmt.Sprintf("Votes{Up=%d, Down=%d, Left=%d, Right=%d}", v[Up], v[Down], v[Left], v[Right])
}
