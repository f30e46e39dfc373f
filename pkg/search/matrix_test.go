package search

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"
)

func matrixOf(legal [NumDirections]bool, scores ...[NumDirections]float64) *ScoreMatrix {
	m := NewScoreMatrix(len(scores))
	m.Legal = legal
	for h, row := range scores {
		for d, v := range row {
			m.Scores[d][h] = v
		}
	}
	return m
}

var allLegal = [NumDirections]bool{true, true, true, true}

func TestTallySingleMaximum(t *testing.T) {
	is := is.New(t)
	m := matrixOf(allLegal,
		[NumDirections]float64{1, 5, 2, 3},
		[NumDirections]float64{-4, -2, -1, -3},
		[NumDirections]float64{0, 0, 0, 9},
	)
	votes := m.Tally(rand.New(rand.NewSource(1)))
	is.Equal(votes, Votes{0, 1, 1, 1})
}

func TestTallySkipsIllegal(t *testing.T) {
	is := is.New(t)
	m := matrixOf([NumDirections]bool{false, true, true, false},
		[NumDirections]float64{100, 1, 2, 100},
	)
	is.Equal(m.Tally(rand.New(rand.NewSource(1))), Votes{0, 0, 1, 0})
}

func TestTallyFixedSource(t *testing.T) {
	is := is.New(t)
	m := matrixOf(allLegal, [NumDirections]float64{2, 1, 2, 2})

	// Int31 of the source is 0, picks the first tied direction
	is.Equal(m.Tally(rand.New(fixedSource(0))), Votes{1, 0, 0, 0})
	// Int31 is 1, picks the second
	is.Equal(m.Tally(rand.New(fixedSource(1<<32))), Votes{0, 0, 1, 0})
}

func TestTallyTieFairness(t *testing.T) {
	is := is.New(t)
	m := matrixOf(allLegal, [NumDirections]float64{7, 7, 7, 7})

	var counts Votes
	const runs = 4000
	for seed := int64(0); seed < runs; seed++ {
		votes := m.Tally(rand.New(rand.NewSource(seed)))
		is.Equal(votes.Total(), 1)
		for d, n := range votes {
			counts[d] += n
		}
	}
	for d, n := range counts {
		if n < runs/4-200 || n > runs/4+200 {
			t.Errorf("%v chosen %d times out of %d", Direction(d), n, runs)
		}
	}
}

func TestTallyNoLegalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when no direction can be voted for")
		}
	}()
	m := matrixOf([NumDirections]bool{}, [NumDirections]float64{1, 2, 3, 4})
	m.Tally(rand.New(rand.NewSource(1)))
}

func TestMatrixAddMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for mismatched value count")
		}
	}()
	NewScoreMatrix(2).add(Up, []float64{1}, 1)
}

func TestMatrixAdd(t *testing.T) {
	is := is.New(t)
	m := NewScoreMatrix(2)
	m.add(Left, []float64{1, 2}, 1)
	m.add(Left, []float64{0.5, -1}, 3)

	is.Equal(m.Heuristics(), 2)
	is.Equal(m.Scores[Left], []float64{1.5, 1})
	is.Equal(m.Evaluations[Left], 2)
	is.Equal(m.Evaluations[Up], 0)
	is.Equal(m.Depth, 3)
	is.True(!m.AnyLegal())
}
