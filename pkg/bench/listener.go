package bench

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Arena callbacks, called from the worker goroutines, so every implementation
// must be safe for concurrent use. Summary is called once, after all workers finished
type ListenerLike[B any] interface {
	OnStart(info StartInfo)
	OnMoveMade(info MoveInfo[B])
	OnFinishedGame(result GameResult[B])
	OnFinishedWork(info WorkerInfo)
	Summary(summary Summary)
}

type DefaultListener[B any] struct{}

func (DefaultListener[B]) OnStart(StartInfo)            {}
func (DefaultListener[B]) OnMoveMade(MoveInfo[B])       {}
func (DefaultListener[B]) OnFinishedGame(GameResult[B]) {}
func (DefaultListener[B]) OnFinishedWork(WorkerInfo)    {}
func (DefaultListener[B]) Summary(Summary)              {}

// Logs a progress line every 'every' finished games
type ProgressListener[B any] struct {
	DefaultListener[B]
	every    int
	finished atomic.Int64
	total    int
}

func NewProgressListener[B any](every int) *ProgressListener[B] {
	return &ProgressListener[B]{every: max(every, 1)}
}

func (p *ProgressListener[B]) OnStart(info StartInfo) {
	p.total = info.NGames
	log.Info().
		Int("games", info.NGames).
		Int("workers", info.Workers).
		Int64("seed", info.Seed).
		Strs("heuristics", info.Heuristics).
		Msg("arena started")
}

func (p *ProgressListener[B]) OnFinishedGame(result GameResult[B]) {
	n := p.finished.Add(1)
	log.Debug().
		Int("game", result.GameID).
		Int("score", result.Score).
		Int("moves", result.Moves).
		Int("max-tile", result.MaxTile).
		Dur("elapsed", result.Elapsed).
		Msg("game finished")
	if n%int64(p.every) == 0 {
		log.Info().Msgf("completed %d/%d games", n, p.total)
	}
}

func (p *ProgressListener[B]) OnFinishedWork(info WorkerInfo) {
	log.Debug().
		Int("worker", info.WorkerID).
		Int("games", info.NGames).
		Int("finished", info.FinishedGames).
		Msg("worker done")
}

func (p *ProgressListener[B]) Summary(summary Summary) {
	log.Info().
		Int("games", summary.Games).
		Float64("mean", summary.Mean).
		Float64("std-dev", summary.StdDev).
		Int("max", summary.Max).
		Int("min", summary.Min).
		Float64("elapsed", summary.ElapsedSeconds).
		Msg("arena finished")
}

// Forwards every callback to all listeners, in order
type MultiListener[B any] []ListenerLike[B]

func (m MultiListener[B]) OnStart(info StartInfo) {
	for _, l := range m {
		l.OnStart(info)
	}
}

func (m MultiListener[B]) OnMoveMade(info MoveInfo[B]) {
	for _, l := range m {
		l.OnMoveMade(info)
	}
}

func (m MultiListener[B]) OnFinishedGame(result GameResult[B]) {
	for _, l := range m {
		l.OnFinishedGame(result)
	}
}

func (m MultiListener[B]) OnFinishedWork(info WorkerInfo) {
	for _, l := range m {
		l.OnFinishedWork(info)
	}
}

func (m MultiListener[B]) Summary(summary Summary) {
	for _, l := range m {
		l.Summary(summary)
	}
}
