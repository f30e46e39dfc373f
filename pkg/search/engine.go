package search

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Multi-direction bounded breadth-first search. For every direction the engine
// keeps a separate frontier holding only the states reached by repeating that
// move from the root, the four frontiers advance depth together.
//
// The engine holds no per-call state, so a single instance may be used
// concurrently over independent boards
type Engine[B any] struct {
	config   Config
	expander Expander[B]
	listener *StatsListener
	logger   zerolog.Logger
}

func NewEngine[B any](expander Expander[B], config Config) (*Engine[B], error) {
	if expander == nil {
		return nil, ErrNilExpander
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Engine[B]{
		config:   config,
		expander: expander,
		logger:   log.Logger,
	}, nil
}

func (e *Engine[B]) Config() Config {
	return e.config
}

// Attach listener callbacks, must be called before the engine is used
func (e *Engine[B]) SetListener(listener StatsListener) {
	e.listener = &listener
}

func (e *Engine[B]) SetLogger(logger zerolog.Logger) {
	e.logger = logger
}

// Votes per direction for given board, using a fresh tie-break generator
// created from the configuration
func (e *Engine[B]) ComputeVotes(root B, heuristics []Heuristic[B]) (Votes, error) {
	return e.ComputeVotesWithRand(root, heuristics, e.config.newRand())
}

// Same as ComputeVotes, but ties are broken with given generator. The generator
// must not be shared with concurrent calls
func (e *Engine[B]) ComputeVotesWithRand(root B, heuristics []Heuristic[B], rng *rand.Rand) (Votes, error) {
	matrix, err := e.Explore(root, heuristics)
	if err != nil {
		return Votes{}, err
	}
	if !matrix.AnyLegal() {
		return Votes{}, ErrNoLegalMoves
	}
	if rng == nil {
		rng = e.config.newRand()
	}

	votes := matrix.tally(rng, func(h int, score float64, tied []Direction, chosen Direction) {
		name := heuristicName(heuristics[h])
		e.logger.Debug().
			Str("heuristic", name).
			Float64("score", score).
			Strs("tied", directionNames(tied)).
			Stringer("chosen", chosen).
			Msg("tie-break")
		e.listener.tie(TieStats{
			Heuristic: h,
			Name:      name,
			Score:     score,
			Tied:      append([]Direction(nil), tied...),
			Chosen:    chosen,
		})
	})
	if votes.Total() != len(heuristics) {
		panic(fmt.Sprintf("[search] tally: %d votes for %d heuristics", votes.Total(), len(heuristics)))
	}
	return votes, nil
}

// Run the exploration and return the direction x heuristic score matrix.
// A terminal root (no legal move) yields an all-zero matrix with no legal direction
func (e *Engine[B]) Explore(root B, heuristics []Heuristic[B]) (*ScoreMatrix, error) {
	if err := validateHeuristics(heuristics); err != nil {
		return nil, err
	}

	var (
		frontiers [NumDirections]frontier[B]
		counter   depthCounter
		values    = make([]float64, len(heuristics))
		matrix    = NewScoreMatrix(len(heuristics))
		maxDepth  = e.config.MaxDepth
	)

	evaluate := func(dir Direction, board B, depth int) {
		weight := e.config.weight(depth)
		for h, heuristic := range heuristics {
			values[h] = heuristic.Score(board, dir) * weight
		}
		matrix.add(dir, values, depth)
	}

	// In afterstate mode the root afterstates are scored at depth 1 and the frontier
	// entries produce depth 2 states, otherwise the entries themselves are scored at depth 1
	depth := 1
	if e.config.EvaluateAfterstates {
		depth = 2
	}

	// Root moves
	for _, d := range Directions {
		afterstate, moved := e.expander.ApplyMove(root, d)
		if !moved {
			continue
		}
		matrix.Legal[d] = true

		if e.config.EvaluateAfterstates {
			evaluate(d, afterstate, 1)
		}
		if depth <= maxDepth {
			counter.remaining += e.enqueue(&frontiers[d], afterstate)
		}
	}

	// States each frontier still holds at the current depth, a frontier never
	// pops a deeper state before the other ones finished theirs
	level := frontierLens(&frontiers)

	for !allEmpty(&frontiers) && depth <= maxDepth {
		for _, d := range Directions {
			if level[d] == 0 {
				continue
			}
			level[d]--

			queue := &frontiers[d]
			state := queue.Pop()
			matrix.Expanded++
			afterstate, moved := e.expander.ApplyMove(state, d)

			if moved && depth < maxDepth {
				counter.queue(e.enqueue(queue, afterstate))
			}

			if e.config.EvaluateAfterstates {
				if moved {
					evaluate(d, afterstate, depth)
				}
			} else {
				evaluate(d, state, depth)
			}

			if counter.pop() {
				depth++
				counter.advance()
				if depth <= maxDepth {
					level = frontierLens(&frontiers)
					e.onDepth(depth, counter.remaining, &frontiers)
				}
				break
			}
		}
	}

	stats := SearchStats{
		Depth:       matrix.Depth,
		Expanded:    matrix.Expanded,
		Evaluations: matrix.Evaluations,
		Legal:       matrix.Legal,
	}
	e.logger.Debug().
		Int("depth", stats.Depth).
		Int("expanded", stats.Expanded).
		Ints("evaluations", stats.Evaluations[:]).
		Msg("exploration finished")
	e.listener.finish(stats)
	return matrix, nil
}

// Add the successors of an afterstate to the frontier, returns how many were added
func (e *Engine[B]) enqueue(queue *frontier[B], afterstate B) int {
	if e.config.EvaluateAfterstates {
		return queue.Push(afterstate)
	}
	return queue.Push(e.expander.Successors(afterstate)...)
}

func (e *Engine[B]) onDepth(depth, remaining int, frontiers *[NumDirections]frontier[B]) {
	stats := DepthStats{Depth: depth, Remaining: remaining}
	for d := range frontiers {
		stats.Frontiers[d] = frontiers[d].Len()
	}
	e.logger.Debug().
		Int("depth", depth).
		Int("remaining", remaining).
		Ints("frontiers", stats.Frontiers[:]).
		Msg("depth advanced")
	e.listener.depth(stats)
}

func directionNames(dirs []Direction) []string {
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	return names
}

func validateHeuristics[B any](heuristics []Heuristic[B]) error {
	if len(heuristics) == 0 {
		return ErrNoHeuristics
	}
	for i, h := range heuristics {
		if h == nil {
			return fmt.Errorf("%w at index %d", ErrNilHeuristic, i)
		}
	}
	return nil
}
