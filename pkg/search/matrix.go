package search

import (
	"fmt"
	"math/rand"
	"strings"
)

// Accumulated heuristic scores of a single engine call, Scores[dir][h] is the sum
// of weighted values heuristic h gave to the states explored along direction dir
type ScoreMatrix struct {
	Scores [NumDirections][]float64

	// Whether the root move in given direction changed the board
	Legal [NumDirections]bool

	// Number of scored states per direction
	Evaluations [NumDirections]int

	// Number of states taken out of the frontiers
	Expanded int

	// Deepest depth at which states were scored
	Depth int
}

func NewScoreMatrix(nHeuristics int) *ScoreMatrix {
	m := &ScoreMatrix{}
	for d := range m.Scores {
		m.Scores[d] = make([]float64, nHeuristics)
	}
	return m
}

// Number of heuristic columns
func (m *ScoreMatrix) Heuristics() int {
	return len(m.Scores[Up])
}

// Whether at least one root move is legal
func (m *ScoreMatrix) AnyLegal() bool {
	for _, legal := range m.Legal {
		if legal {
			return true
		}
	}
	return false
}

// Add the values of a single scored state, must be one value per heuristic
func (m *ScoreMatrix) add(dir Direction, values []float64, depth int) {
	row := m.Scores[dir]
	if len(values) != len(row) {
		panic(fmt.Sprintf("[search] ScoreMatrix: got %d values for %d heuristics", len(values), len(row)))
	}
	for h, v := range values {
		row[h] += v
	}
	m.Evaluations[dir]++
	m.Depth = max(m.Depth, depth)
}

// Reduce the matrix to one vote per heuristic, only legal directions take part.
// Ties are resolved by drawing uniformly from the tied directions with rng
func (m *ScoreMatrix) Tally(rng *rand.Rand) Votes {
	return m.tally(rng, nil)
}

func (m *ScoreMatrix) tally(rng *rand.Rand, onTie func(h int, score float64, tied []Direction, chosen Direction)) Votes {
	var votes Votes
	tied := make([]Direction, 0, NumDirections)

	for h := 0; h < m.Heuristics(); h++ {
		tied = tied[:0]
		var best float64

		for _, d := range Directions {
			if !m.Legal[d] {
				continue
			}
			score := m.Scores[d][h]
			if len(tied) == 0 || score > best {
				best = score
				tied = append(tied[:0], d)
			} else if score == best {
				tied = append(tied, d)
			}
		}

		var choice Direction
		switch len(tied) {
		case 0:
			panic(fmt.Sprintf("[search] tally: no direction scored for heuristic %d", h))
		case 1:
			choice = tied[0]
		default:
			choice = tied[rng.Intn(len(tied))]
			if onTie != nil {
				onTie(h, best, tied, choice)
			}
		}
		votes[choice]++
	}
	return votes
}

func (m *ScoreMatrix) String() string {
	builder := strings.Builder{}
	for _, d := range Directions {
		fmt.Fprintf(&builder, "%-5s legal=%-5v evals=%-6d %v\n", d, m.Legal[d], m.Evaluations[d], m.Scores[d])
	}
	return builder.String()
}
