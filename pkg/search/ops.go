package search

import "fmt"

// State transition provider, the engine treats boards as opaque values
// and never modifies them, every call must be deterministic
type Expander[B any] interface {
	// Apply the move in given direction, returns the afterstate and
	// false if the move didn't change the board (illegal direction)
	ApplyMove(board B, dir Direction) (B, bool)
	// Every outcome of inserting one random tile into the afterstate,
	// must be returned in a stable order
	Successors(afterstate B) []B
}

// Pure scoring function of a board, optionally aware of the direction
// the board is being evaluated for. Must be safe for concurrent use
type Heuristic[B any] interface {
	Score(board B, dir Direction) float64
}

// Adapter to use ordinary functions as heuristics
type HeuristicFunc[B any] func(board B, dir Direction) float64

func (f HeuristicFunc[B]) Score(board B, dir Direction) float64 {
	return f(board, dir)
}

// Name used in the logs and listener stats
func heuristicName[B any](h Heuristic[B]) string {
	if s, ok := h.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", h)
}
