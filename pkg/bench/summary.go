package bench

import (
	"encoding/json"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Score statistics of finished games. The standard deviation is the
// population one, like the batch runners always reported it
func Summarize[B any](results []GameResult[B], workers int, heuristics []string, elapsed time.Duration) Summary {
	summary := Summary{
		Games:          len(results),
		Workers:        workers,
		Heuristics:     heuristics,
		TileCounts:     make(map[int]int),
		ElapsedSeconds: elapsed.Seconds(),
	}
	if len(results) == 0 {
		return summary
	}

	scores := make([]float64, len(results))
	moves := make([]float64, len(results))
	for i, r := range results {
		scores[i] = float64(r.Score)
		moves[i] = float64(r.Moves)
		summary.Moves += r.Moves
		summary.TileCounts[r.MaxTile]++
		if r.Truncated {
			summary.Truncated++
		}
	}

	summary.Mean, summary.StdDev = stat.PopMeanStdDev(scores, nil)
	summary.Max = int(floats.Max(scores))
	summary.Min = int(floats.Min(scores))
	summary.MeanMoves = stat.Mean(moves, nil)
	return summary
}

func (s Summary) String() string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
