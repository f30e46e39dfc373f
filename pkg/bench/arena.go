package bench

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/IlikeChooros/go-slidevote/pkg/decision"
	"github.com/IlikeChooros/go-slidevote/pkg/search"
)

/*
Arena benchmark subpackage, plays a series of independent games with the same
heuristics, engine and decision strategy, and summarizes the final scores.
*/

type Arena[B any] struct {
	ArenaStats
	Game       GameLike[B]
	Engine     VoterLike[B]
	Heuristics []search.Heuristic[B]
	Strategy   decision.Strategy
	NGames     int
	NWorkers   int
	Seed       int64
	MaxMoves   int
	ctx        context.Context
}

func NewArena[B any](game GameLike[B], engine VoterLike[B], heuristics []search.Heuristic[B], strategy decision.Strategy) *Arena[B] {
	return &Arena[B]{
		Game:       game,
		Engine:     engine,
		Heuristics: heuristics,
		Strategy:   strategy,
		NGames:     100,
		NWorkers:   2,
		Seed:       int64(frand.Uint64n(math.MaxInt64 / 2)),
		ctx:        context.Background(),
	}
}

func (a *Arena[B]) WithContext(ctx context.Context) *Arena[B] {
	a.ctx = ctx
	return a
}

// Game i is played with a generator seeded with seed + i
func (a *Arena[B]) WithSeed(seed int64) *Arena[B] {
	a.Seed = seed
	return a
}

// Stop every game after given number of moves, 0 means no limit
func (a *Arena[B]) WithMaxMoves(maxMoves int) *Arena[B] {
	a.MaxMoves = maxMoves
	return a
}

func (a *Arena[B]) Setup(nGames, nWorkers int) *Arena[B] {
	a.NGames = nGames
	a.NWorkers = nWorkers
	return a
}

func (a *Arena[B]) validate() error {
	switch {
	case a.Game == nil || a.Engine == nil || a.Strategy == nil:
		return ErrNotConfigured
	case len(a.Heuristics) == 0:
		return ErrNoHeuristics
	case a.NGames <= 0:
		return ErrNoGames
	case a.NWorkers <= 0:
		return ErrNoWorkers
	}
	return nil
}

// Play all games, blocks until every worker finished. Results are indexed by game id,
// on error (or cancellation) the games that were not finished are left zero-valued
func (a *Arena[B]) Run(listener ListenerLike[B]) ([]GameResult[B], Summary, error) {
	if err := a.validate(); err != nil {
		return nil, Summary{}, err
	}
	if listener == nil {
		listener = DefaultListener[B]{}
	}

	a.ArenaStats = ArenaStats{}
	workers := min(a.NWorkers, a.NGames)
	names := HeuristicNames(a.Heuristics)
	listener.OnStart(StartInfo{
		NGames:     a.NGames,
		Workers:    workers,
		Seed:       a.Seed,
		Heuristics: names,
	})

	start := time.Now()
	results := make([]GameResult[B], a.NGames)
	g, ctx := errgroup.WithContext(a.ctx)

	// Game ids are spread evenly, worker i plays i, i + workers, ...
	for i := range workers {
		g.Go(func() error {
			return a.worker(ctx, i, workers, results, listener)
		})
	}

	err := g.Wait()
	finished := results
	if err != nil {
		finished = Finished(results)
		log.Err(err).Int("finished", len(finished)).Msg("arena stopped")
	}

	summary := Summarize(finished, workers, names, time.Since(start))
	listener.Summary(summary)
	return results, summary, err
}

func (a *Arena[B]) worker(ctx context.Context, id, workers int, results []GameResult[B], listener ListenerLike[B]) error {
	played := 0
	defer func() {
		listener.OnFinishedWork(WorkerInfo{
			WorkerID:      id,
			NGames:        played,
			FinishedGames: a.Games(),
		})
	}()

	for gameID := id; gameID < a.NGames; gameID += workers {
		result, err := a.playGame(ctx, id, gameID, listener)
		if err != nil {
			return err
		}
		results[gameID] = result
		played++
		atomic.AddUint32(&a.games, 1)
		listener.OnFinishedGame(result)
	}
	return nil
}

// Play a single game, the moves, spawns and tie-breaks are all drawn
// from one generator, so a game depends only on its seed
func (a *Arena[B]) playGame(ctx context.Context, workerID, gameID int, listener ListenerLike[B]) (GameResult[B], error) {
	start := time.Now()
	seed := a.Seed + int64(gameID)
	rng := rand.New(rand.NewSource(seed))
	board := a.Game.NewGame(rng)
	result := GameResult[B]{GameID: gameID, WorkerID: workerID, Seed: seed}

	for !a.Game.IsOver(board) {
		if a.MaxMoves > 0 && result.Moves >= a.MaxMoves {
			result.Truncated = true
			atomic.AddUint32(&a.truncated, 1)
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
			// continue
		}

		votes, err := a.Engine.ComputeVotesWithRand(board, a.Heuristics, rng)
		if err != nil {
			return result, fmt.Errorf("game %d, move %d: %w", gameID, result.Moves, err)
		}
		dir, err := a.Strategy.Decide(votes, rng)
		if err != nil {
			return result, fmt.Errorf("game %d, move %d: %w", gameID, result.Moves, err)
		}
		if !dir.Valid() || votes[dir] == 0 {
			return result, fmt.Errorf("%w: %v with votes %v in game %d", ErrIllegalMove, dir, votes, gameID)
		}
		if board, err = a.Game.Step(board, dir, rng); err != nil {
			return result, fmt.Errorf("game %d, move %d: %w", gameID, result.Moves, err)
		}

		result.Moves++
		atomic.AddUint64(&a.moves, 1)
		listener.OnMoveMade(MoveInfo[B]{
			WorkerID:  workerID,
			GameID:    gameID,
			Move:      result.Moves,
			Direction: dir,
			Votes:     votes,
			Board:     board,
		})
	}

	result.Board = board
	result.Score = a.Game.Score(board)
	result.MaxTile = a.Game.MaxTile(board)
	result.Elapsed = time.Since(start)
	result.Finished = true
	return result, nil
}

// Results of the games that were played to the end (or the move limit)
func Finished[B any](results []GameResult[B]) []GameResult[B] {
	out := make([]GameResult[B], 0, len(results))
	for _, r := range results {
		if r.Finished {
			out = append(out, r)
		}
	}
	return out
}

func HeuristicNames[B any](heuristics []search.Heuristic[B]) []string {
	names := make([]string, len(heuristics))
	for i, h := range heuristics {
		if s, ok := h.(fmt.Stringer); ok {
			names[i] = s.String()
		} else {
			names[i] = fmt.Sprintf("%T", h)
		}
	}
	return names
}
