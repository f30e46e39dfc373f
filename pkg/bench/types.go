package bench

import (
	"errors"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/IlikeChooros/go-slidevote/pkg/search"
)

var (
	ErrNoGames       = errors.New("bench: number of games must be positive")
	ErrNoWorkers     = errors.New("bench: number of workers must be positive")
	ErrIllegalMove   = errors.New("bench: strategy chose a direction without votes")
	ErrNotConfigured = errors.New("bench: arena is missing the game, engine or strategy")
	ErrNoHeuristics  = errors.New("bench: no heuristics given")
)

// Game played by the arena, implementations must be stateless
type GameLike[B any] interface {
	NewGame(rng *rand.Rand) B
	// Play the move and insert a random tile
	Step(board B, dir search.Direction, rng *rand.Rand) (B, error)
	IsOver(board B) bool
	Score(board B) int
	MaxTile(board B) int
}

// Vote source, satisfied by *search.Engine
type VoterLike[B any] interface {
	ComputeVotesWithRand(root B, heuristics []search.Heuristic[B], rng *rand.Rand) (search.Votes, error)
}

// Counters shared by the workers
type ArenaStats struct {
	games     uint32
	moves     uint64
	truncated uint32
}

func (as *ArenaStats) Games() int {
	return int(atomic.LoadUint32(&as.games))
}

func (as *ArenaStats) Moves() int {
	return int(atomic.LoadUint64(&as.moves))
}

func (as *ArenaStats) Truncated() int {
	return int(atomic.LoadUint32(&as.truncated))
}

type StartInfo struct {
	NGames     int
	Workers    int
	Seed       int64
	Heuristics []string
}

type MoveInfo[B any] struct {
	WorkerID  int
	GameID    int
	Move      int
	Direction search.Direction
	Votes     search.Votes
	Board     B
}

// Outcome of a single game. Truncated is set if the game was stopped
// by the move limit, Finished once the game was played to the end
type GameResult[B any] struct {
	GameID    int
	WorkerID  int
	Seed      int64
	Score     int
	MaxTile   int
	Moves     int
	Board     B
	Elapsed   time.Duration
	Truncated bool
	Finished  bool
}

type WorkerInfo struct {
	WorkerID      int
	NGames        int
	FinishedGames int
}

type Summary struct {
	Games          int         `json:"games"`
	Workers        int         `json:"workers"`
	Heuristics     []string    `json:"heuristics"`
	Mean           float64     `json:"mean"`
	StdDev         float64     `json:"std_dev"`
	Max            int         `json:"max"`
	Min            int         `json:"min"`
	Moves          int         `json:"moves"`
	MeanMoves      float64     `json:"mean_moves"`
	Truncated      int         `json:"truncated"`
	TileCounts     map[int]int `json:"tile_counts"`
	ElapsedSeconds float64     `json:"elapsed_seconds"`
}
