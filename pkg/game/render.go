package game

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Tile colours by exponent, anything past the last one uses the last colour
var tileColors = []string{
	"#776e65", "#eee4da", "#ede0c8", "#f2b179", "#f59563", "#f67c5f", "#f65e3b",
	"#edcf72", "#edcc61", "#edc850", "#edc53f", "#edc22e", "#3c3a32",
}

const cellWidth = 6

// Render the board as a coloured grid, followed by the score line
func Render(b Board, out *termenv.Output) error {
	separator := "+" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", Size) + "\n"

	builder := strings.Builder{}
	builder.WriteString(separator)
	for r := 0; r < Size; r++ {
		builder.WriteByte('|')
		for c := 0; c < Size; c++ {
			builder.WriteString(renderCell(b, r, c, out))
			builder.WriteByte('|')
		}
		builder.WriteByte('\n')
		builder.WriteString(separator)
	}
	fmt.Fprintf(&builder, "score: %d, max tile: %d\n", b.Score(), b.MaxTile())

	_, err := io.WriteString(out, builder.String())
	return err
}

func renderCell(b Board, r, c int, out *termenv.Output) string {
	text := strings.Repeat(" ", cellWidth)
	if v := b.Value(r, c); v != 0 {
		text = fmt.Sprintf("%*s", cellWidth, strconv.Itoa(v))
	}

	exp := min(b.Exponent(r, c), len(tileColors)-1)
	style := out.String(text).Foreground(out.Color(tileColors[exp]))
	if b.MergedAt(r, c) {
		style = style.Bold()
	}
	return style.String()
}
