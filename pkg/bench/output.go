package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Final scores as "gameid,gamescore" csv
func WriteScoresCSV[B any](w io.Writer, results []GameResult[B]) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"gameid", "gamescore"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := writer.Write([]string{strconv.Itoa(r.GameID), strconv.Itoa(r.Score)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Final boards, one "gameid,board" line per game, the board
// is written in its storage notation
func WriteBoards[B fmt.Stringer](w io.Writer, results []GameResult[B]) error {
	if _, err := fmt.Fprintln(w, "gameid,board"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%d,%s\n", r.GameID, r.Board.String()); err != nil {
			return err
		}
	}
	return nil
}

// Single game row of the results file
type GameRow struct {
	GameID    int32  `parquet:"game_id"`
	Seed      int64  `parquet:"seed"`
	Score     int64  `parquet:"score"`
	MaxTile   int32  `parquet:"max_tile"`
	Moves     int32  `parquet:"moves"`
	Truncated bool   `parquet:"truncated"`
	ElapsedMs int64  `parquet:"elapsed_ms"`
	Board     string `parquet:"board"`
}

const resultsSchema = "slidevote_game_v1"

func GameRows[B fmt.Stringer](results []GameResult[B]) []GameRow {
	rows := make([]GameRow, len(results))
	for i, r := range results {
		rows[i] = GameRow{
			GameID:    int32(r.GameID),
			Seed:      r.Seed,
			Score:     int64(r.Score),
			MaxTile:   int32(r.MaxTile),
			Moves:     int32(r.Moves),
			Truncated: r.Truncated,
			ElapsedMs: r.Elapsed.Milliseconds(),
			Board:     r.Board.String(),
		}
	}
	return rows
}

// Write the results as a zstd compressed parquet file, through a temp file
// renamed into place once complete
func WriteParquet[B fmt.Stringer](outPath string, results []GameResult[B]) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, GameRows(results),
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", resultsSchema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// Create the file and write the output with given function
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
