package bench

import (
	"bytes"
	"context"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-slidevote/pkg/decision"
	"github.com/IlikeChooros/go-slidevote/pkg/game"
	"github.com/IlikeChooros/go-slidevote/pkg/heuristic"
	"github.com/IlikeChooros/go-slidevote/pkg/search"
)

// Dummy game, the board is the number of moves made, the game ends after 'length' moves
type counter int

func (c counter) String() string { return "c" + string(rune('0'+int(c)%10)) }

type dummyGame struct {
	length int
}

func (dummyGame) NewGame(*rand.Rand) counter { return 0 }
func (dummyGame) Step(b counter, _ search.Direction, _ *rand.Rand) (counter, error) {
	return b + 1, nil
}
func (g dummyGame) IsOver(b counter) bool { return int(b) >= g.length }
func (dummyGame) Score(b counter) int     { return int(b) * 10 }
func (dummyGame) MaxTile(b counter) int   { return int(b) }

// Always votes for one direction
type dummyVoter struct {
	dir search.Direction
}

func (v dummyVoter) ComputeVotesWithRand(_ counter, hs []search.Heuristic[counter], _ *rand.Rand) (search.Votes, error) {
	var votes search.Votes
	votes[v.dir] = len(hs)
	return votes, nil
}

type fixedStrategy search.Direction

func (s fixedStrategy) Decide(search.Votes, *rand.Rand) (search.Direction, error) {
	return search.Direction(s), nil
}

type countingListener struct {
	started, moves, games, workers, summaries atomic.Int32
}

func (l *countingListener) OnStart(StartInfo)                  { l.started.Add(1) }
func (l *countingListener) OnMoveMade(MoveInfo[counter])       { l.moves.Add(1) }
func (l *countingListener) OnFinishedGame(GameResult[counter]) { l.games.Add(1) }
func (l *countingListener) OnFinishedWork(WorkerInfo)          { l.workers.Add(1) }
func (l *countingListener) Summary(Summary)                    { l.summaries.Add(1) }

var dummyHeuristics = []search.Heuristic[counter]{
	search.HeuristicFunc[counter](func(counter, search.Direction) float64 { return 0 }),
}

func newDummyArena(length int) *Arena[counter] {
	return NewArena[counter](dummyGame{length}, dummyVoter{search.Down}, dummyHeuristics, decision.Majority{}).
		WithSeed(1)
}

func TestArenaListeners(t *testing.T) {
	listener := &countingListener{}
	arena := newDummyArena(8).Setup(10, 4)

	results, summary, err := arena.Run(listener)
	require.NoError(t, err)
	require.Len(t, results, 10)

	assert.EqualValues(t, 1, listener.started.Load())
	assert.EqualValues(t, 80, listener.moves.Load())
	assert.EqualValues(t, 10, listener.games.Load())
	assert.EqualValues(t, 4, listener.workers.Load())
	assert.EqualValues(t, 1, listener.summaries.Load())

	assert.Equal(t, 10, arena.Games())
	assert.Equal(t, 80, arena.Moves())
	for i, r := range results {
		assert.Equal(t, i, r.GameID)
		assert.Equal(t, int64(1+i), r.Seed)
		assert.Equal(t, 80, r.Score)
		assert.True(t, r.Finished)
	}
	assert.Equal(t, 10, summary.Games)
	assert.Equal(t, 4, summary.Workers)
	assert.Equal(t, 80.0, summary.Mean)
}

func TestArenaMoreWorkersThanGames(t *testing.T) {
	listener := &countingListener{}
	_, summary, err := newDummyArena(2).Setup(3, 16).Run(listener)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Workers)
	assert.EqualValues(t, 3, listener.workers.Load())
}

func TestArenaMaxMoves(t *testing.T) {
	results, summary, err := newDummyArena(100).Setup(4, 2).WithMaxMoves(5).Run(nil)
	require.NoError(t, err)
	for _, r := range results {
		assert.True(t, r.Truncated)
		assert.Equal(t, 5, r.Moves)
	}
	assert.Equal(t, 4, summary.Truncated)
}

func TestArenaIllegalDecision(t *testing.T) {
	arena := newDummyArena(5).Setup(4, 2)
	arena.Strategy = fixedStrategy(search.Left)
	_, _, err := arena.Run(nil)
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestArenaCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, summary, err := newDummyArena(5).Setup(6, 2).WithContext(ctx).Run(nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 6)
	assert.Empty(t, Finished(results))
	assert.Equal(t, 0, summary.Games)
}

func TestArenaValidation(t *testing.T) {
	_, _, err := newDummyArena(5).Setup(0, 2).Run(nil)
	assert.ErrorIs(t, err, ErrNoGames)

	_, _, err = newDummyArena(5).Setup(3, 0).Run(nil)
	assert.ErrorIs(t, err, ErrNoWorkers)

	arena := newDummyArena(5)
	arena.Heuristics = nil
	_, _, err = arena.Run(nil)
	assert.ErrorIs(t, err, ErrNoHeuristics)

	arena = newDummyArena(5)
	arena.Engine = nil
	_, _, err = arena.Run(nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func playReal(t *testing.T, workers int) []GameResult[game.Board] {
	t.Helper()
	engine, err := search.NewEngine[game.Board](game.Rules{}, search.DefaultConfig().WithAfterstates(true).WithMaxDepth(1))
	require.NoError(t, err)

	hs := []search.Heuristic[game.Board]{heuristic.EmptyCells{}, heuristic.Smoothness{}, heuristic.EdgeBias{}}
	arena := NewArena[game.Board](game.Rules{}, engine, hs, decision.Majority{}).
		Setup(6, workers).WithSeed(2024).WithMaxMoves(300)

	results, _, err := arena.Run(nil)
	require.NoError(t, err)
	return results
}

func TestArenaReproducible(t *testing.T) {
	sequential := playReal(t, 1)
	parallel := playReal(t, 3)

	for i := range sequential {
		assert.Equal(t, sequential[i].Score, parallel[i].Score, "game %d", i)
		assert.Equal(t, sequential[i].Moves, parallel[i].Moves, "game %d", i)
		assert.True(t, sequential[i].Board.Equal(parallel[i].Board), "game %d", i)
		assert.Positive(t, sequential[i].Moves)
	}
}

func TestSummarize(t *testing.T) {
	results := []GameResult[counter]{
		{Score: 10, Moves: 1, MaxTile: 8},
		{Score: 20, Moves: 2, MaxTile: 16},
		{Score: 30, Moves: 3, MaxTile: 16, Truncated: true},
	}
	s := Summarize(results, 2, []string{"a"}, 1500*time.Millisecond)

	assert.Equal(t, 3, s.Games)
	assert.InDelta(t, 20, s.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(200.0/3), s.StdDev, 1e-9)
	assert.Equal(t, 30, s.Max)
	assert.Equal(t, 10, s.Min)
	assert.Equal(t, 6, s.Moves)
	assert.InDelta(t, 2, s.MeanMoves, 1e-9)
	assert.Equal(t, 1, s.Truncated)
	assert.Equal(t, map[int]int{8: 1, 16: 2}, s.TileCounts)
	assert.InDelta(t, 1.5, s.ElapsedSeconds, 1e-9)
	assert.Contains(t, s.String(), `"std_dev"`)

	empty := Summarize[counter](nil, 1, nil, 0)
	assert.Equal(t, 0, empty.Games)
	assert.Zero(t, empty.Mean)
}

func TestWriteOutputs(t *testing.T) {
	results := []GameResult[counter]{
		{GameID: 0, Score: 10, Board: 1},
		{GameID: 1, Score: 25, Board: 2},
	}

	buf := bytes.Buffer{}
	require.NoError(t, WriteScoresCSV(&buf, results))
	assert.Equal(t, "gameid,gamescore\n0,10\n1,25\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteBoards(&buf, results))
	assert.Equal(t, "gameid,board\n0,c1\n1,c2\n", buf.String())

	path := filepath.Join(t.TempDir(), "out", "games.parquet")
	require.NoError(t, WriteParquet(path, results))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	rows, err := parquet.ReadFile[GameRow](path)
	require.NoError(t, err)
	assert.Equal(t, GameRows(results), rows)
}

func TestProgressListener(t *testing.T) {
	listener := NewProgressListener[counter](2)
	_, _, err := newDummyArena(3).Setup(5, 2).Run(listener)
	require.NoError(t, err)
	assert.EqualValues(t, 5, listener.finished.Load())

	_, _, err = newDummyArena(3).Setup(2, 1).Run(MultiListener[counter]{listener, &countingListener{}})
	require.NoError(t, err)
	assert.EqualValues(t, 7, listener.finished.Load())
}

func TestMain(m *testing.M) {
	search.SetSeedGeneratorFn(func() int64 {
		return 42
	})
	os.Exit(m.Run())
}
