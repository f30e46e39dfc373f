package heuristic

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/matryer/is"

	"github.com/IlikeChooros/go-slidevote/pkg/game"
	"github.com/IlikeChooros/go-slidevote/pkg/search"
)

func board(t *testing.T, s string) game.Board {
	t.Helper()
	b, err := game.ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard(%q): %v", s, err)
	}
	return b
}

func TestHeuristics(t *testing.T) {
	tests := []struct {
		h     Heuristic
		board string
		want  float64
	}{
		{EmptyCells{}, "2,0,0,0/0,0,0,0/0,0,0,0/0,0,0,0", 15},
		{EmptyCells{}, "2,4,2,4/4,2,4,2/2,4,2,4/4,2,4,2", 0},
		{Monotonicity{}, "2,8,4,16/0,0,0,0/0,0,0,0/0,0,0,0", -1},
		{Monotonicity{}, "16,8,4,2/8,4,2,0/4,2,0,0/2,0,0,0", 0},
		{Smoothness{}, "2,8,0,0/2,0,0,0/0,0,0,0/0,0,0,0", -2},
		{Smoothness{}, "4,4,4,4/4,4,4,4/0,0,0,0/0,0,0,0", 0},
		{CornerMax{}, "0,0,0,0/0,0,0,0/0,0,2,0/0,0,0,64", 6},
		{CornerMax{}, "0,0,0,0/0,64,0,0/0,0,0,0/0,0,0,2", 0},
		{CornerMax{}, "0,0,0,0/0,0,0,0/0,0,0,0/0,0,0,0", 0},
		{MaxTile{}, "0,0,0,0/0,64,0,0/0,0,0,0/0,0,0,2", 64},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%v %s", tc.h, tc.board), func(t *testing.T) {
			is := is.New(t)
			is.Equal(tc.h.Score(board(t, tc.board), search.Up), tc.want)
		})
	}
}

func TestMoveHeuristics(t *testing.T) {
	is := is.New(t)
	b, moved := game.Move(board(t, "2,2,4,4/0,0,0,0/0,0,0,0/0,0,0,0"), search.Left)
	is.True(moved)
	is.Equal(Merges{}.Score(b, search.Left), 2.0)
	is.Equal(Score{}.Score(b, search.Left), 12.0)
}

func TestEdgeBias(t *testing.T) {
	is := is.New(t)
	b := board(t, "2,0,0,0/0,0,0,0/0,0,0,0/0,0,0,0")
	want := [search.NumDirections]float64{4, 1, 4, 1}
	for _, d := range search.Directions {
		is.Equal(EdgeBias{}.Score(b, d), want[d])
	}
}

func TestWeighted(t *testing.T) {
	is := is.New(t)
	w := NewWeighted(Term{EmptyCells{}, 2}, Term{MaxTile{}, 0.5})
	is.Equal(w.Score(board(t, "2,0,0,0/0,0,0,0/0,0,0,0/0,0,0,0"), search.Up), 31.0)
	is.Equal(w.String(), "empty:2+maxtile:0.5")
	is.Equal(NewWeighted().Score(game.NewBoard(), search.Up), 0.0)
}

func TestRegistry(t *testing.T) {
	is := is.New(t)
	names := Names()
	is.Equal(len(names), 8)
	is.True(sort.StringsAreSorted(names))

	for _, name := range names {
		h, err := ByName(name)
		is.NoErr(err)
		is.Equal(fmt.Sprint(h), name)
	}

	_, err := ByName("minimax")
	is.True(errors.Is(err, ErrUnknownHeuristic))
}

func TestParse(t *testing.T) {
	is := is.New(t)

	hs, err := Parse(nil)
	is.NoErr(err)
	is.Equal(len(hs), len(Default()))

	hs, err = Parse([]string{" empty", "", "Smooth"})
	is.NoErr(err)
	is.Equal(hs, []Heuristic{EmptyCells{}, Smoothness{}})

	hs, err = Parse([]string{"empty:2+merges"})
	is.NoErr(err)
	is.Equal(len(hs), 1)
	w, ok := hs[0].(*Weighted)
	is.True(ok)
	is.Equal(w.Terms, []Term{{EmptyCells{}, 2}, {Merges{}, 1}})

	_, err = Parse([]string{"empty", "nope"})
	is.True(errors.Is(err, ErrUnknownHeuristic))

	_, err = Parse([]string{"empty:heavy"})
	is.True(err != nil)
}
