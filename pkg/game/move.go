package game

import "github.com/IlikeChooros/go-slidevote/pkg/search"

// Position of the j-th cell of lane i, j = 0 being the edge the tiles move towards
func cellOf(dir search.Direction, i, j int) (r, c int) {
	switch dir {
	case search.Up:
		return j, i
	case search.Down:
		return Size - 1 - j, i
	case search.Left:
		return i, j
	case search.Right:
		return i, Size - 1 - j
	}
	panic("[game] invalid direction " + dir.String())
}

// Slide the tiles of the lane towards index 0, merging equal neighbours,
// every tile takes part in at most one merge. Returns the new lane, merged
// indices as a bit mask and the score gained
func slide(lane [Size]uint8) (out [Size]uint8, merged uint8, gained int) {
	n := 0
	canMerge := false
	for _, exp := range lane {
		if exp == 0 {
			continue
		}
		if canMerge && out[n-1] == exp {
			out[n-1]++
			merged |= 1 << (n - 1)
			gained += valueOf(out[n-1])
			canMerge = false
			continue
		}
		out[n] = exp
		n++
		canMerge = true
	}
	return out, merged, gained
}

// Apply the move in given direction, returns false if nothing moved,
// in which case the board is returned as it was
func Move(b Board, dir search.Direction) (Board, bool) {
	next := Board{score: b.score}
	for i := 0; i < Size; i++ {
		var lane [Size]uint8
		for j := range lane {
			r, c := cellOf(dir, i, j)
			lane[j] = b.cells[r][c]
		}

		out, merged, gained := slide(lane)
		next.score += gained
		for j, exp := range out {
			r, c := cellOf(dir, i, j)
			next.cells[r][c] = exp
			if merged&(1<<j) != 0 {
				next.merges++
				next.merged |= 1 << (r*Size + c)
			}
		}
	}

	if next.cells == b.cells {
		return b, false
	}
	return next, true
}

// Whether the move in given direction would change the board
func CanMove(b Board, dir search.Direction) bool {
	_, moved := Move(b, dir)
	return moved
}
