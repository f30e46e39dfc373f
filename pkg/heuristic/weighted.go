package heuristic

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/IlikeChooros/go-slidevote/pkg/game"
	"github.com/IlikeChooros/go-slidevote/pkg/search"
)

type Term struct {
	Heuristic Heuristic
	Weight    float64
}

// Linear combination of heuristics, takes part in the vote as a single heuristic
type Weighted struct {
	Terms []Term
}

func NewWeighted(terms ...Term) *Weighted {
	return &Weighted{Terms: terms}
}

func (w *Weighted) Score(b game.Board, dir search.Direction) float64 {
	return lo.SumBy(w.Terms, func(t Term) float64 {
		return t.Weight * t.Heuristic.Score(b, dir)
	})
}

func (w *Weighted) String() string {
	parts := lo.Map(w.Terms, func(t Term, _ int) string {
		return fmt.Sprintf("%v:%g", t.Heuristic, t.Weight)
	})
	return strings.Join(parts, "+")
}
