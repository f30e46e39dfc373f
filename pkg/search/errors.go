package search

import "errors"

var (
	ErrInvalidDepth     = errors.New("search: invalid max depth")
	ErrInvalidWeighting = errors.New("search: invalid depth weighting")
	ErrNilExpander      = errors.New("search: nil expander")
	ErrNoHeuristics     = errors.New("search: no heuristics given")
	ErrNilHeuristic     = errors.New("search: nil heuristic")

	// Every root move is illegal, the position is terminal
	ErrNoLegalMoves = errors.New("search: no legal moves")
)
