package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"lukechampine.com/frand"

	"github.com/IlikeChooros/go-slidevote/pkg/bench"
	"github.com/IlikeChooros/go-slidevote/pkg/config"
	"github.com/IlikeChooros/go-slidevote/pkg/game"
	"github.com/IlikeChooros/go-slidevote/pkg/search"
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Debug().Msg("debug logging is on")
}

func main() {
	cfg, err := config.LoadWithOutput(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if cfg != nil {
		setupLogging(cfg.Debug)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn().Msg("interrupted, partial results were written")
			return
		}
		log.Fatal().Err(err).Msg("run failed")
	}
}

func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	searchConfig, err := cfg.SearchConfig()
	if err != nil {
		return err
	}
	heuristics, err := cfg.BuildHeuristics()
	if err != nil {
		return err
	}
	strategy, err := cfg.Strategy()
	if err != nil {
		return err
	}

	rules := game.Rules{}
	engine, err := search.NewEngine[game.Board](rules, searchConfig)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if !cfg.HasSeed {
		seed = int64(frand.Uint64n(1 << 62))
	}
	log.Info().Str("search", searchConfig.String()).Str("decider", fmt.Sprint(strategy)).Msg("loaded config")

	arena := bench.NewArena[game.Board](rules, engine, heuristics, strategy).
		Setup(cfg.Games, cfg.Workers).
		WithSeed(seed).
		WithMaxMoves(cfg.MaxMoves).
		WithContext(ctx)

	var listener bench.ListenerLike[game.Board] = bench.DefaultListener[game.Board]{}
	if cfg.ProgressEvery > 0 {
		listener = bench.NewProgressListener[game.Board](cfg.ProgressEvery)
	}

	results, summary, runErr := arena.Run(listener)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		results = bench.Finished(results)
	}

	fmt.Fprintln(stdout, summary.String())

	if cfg.ShowBoard && len(results) > 0 {
		best := results[0]
		for _, r := range results[1:] {
			if r.Score > best.Score {
				best = r
			}
		}
		fmt.Fprintf(stdout, "best game %d (seed %d, %d moves):\n", best.GameID, best.Seed, best.Moves)
		if err := game.Render(best.Board, termenv.NewOutput(stdout)); err != nil {
			return err
		}
	}

	if err := writeOutputs(cfg, results); err != nil {
		return err
	}
	return runErr
}

func writeOutputs(cfg *config.Config, results []bench.GameResult[game.Board]) error {
	if cfg.ScoreCSV != "" {
		if err := bench.WriteFile(cfg.ScoreCSV, func(w io.Writer) error {
			return bench.WriteScoresCSV(w, results)
		}); err != nil {
			return fmt.Errorf("write scores: %w", err)
		}
		log.Info().Str("path", cfg.ScoreCSV).Msg("scores written")
	}
	if cfg.BoardFile != "" {
		if err := bench.WriteFile(cfg.BoardFile, func(w io.Writer) error {
			return bench.WriteBoards(w, results)
		}); err != nil {
			return fmt.Errorf("write boards: %w", err)
		}
		log.Info().Str("path", cfg.BoardFile).Msg("boards written")
	}
	if cfg.ParquetFile != "" {
		if err := bench.WriteParquet(cfg.ParquetFile, results); err != nil {
			return err
		}
		log.Info().Str("path", cfg.ParquetFile).Msg("parquet written")
	}
	return nil
}
