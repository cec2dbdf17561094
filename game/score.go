package game

import "github.com/bits-and-blooms/bitset"

// DefaultKomi is White's compensation when the caller does not specify one.
const DefaultKomi = 6.5

// Score is an area count of a finished (or abandoned) position.
type Score struct {
	Black float64
	White float64 // includes komi
}

// Winner returns Black or White, or Empty on a draw.
func (s Score) Winner() Color {
	switch {
	case s.Black > s.White:
		return Black
	case s.White > s.Black:
		return White
	default:
		return Empty
	}
}

// Margin is Black's score minus White's.
func (s Score) Margin() float64 {
	return s.Black - s.White
}

// AreaScore counts stones plus territory for each color, adding komi to White.
//
// An empty region is territory only when every stone on its border has the same
// color; regions touching both colors, or no stones at all, are neutral. Seki and
// dead stones are not recognized.
func AreaScore(board Board, komi float64) Score {
	var territory [3]int

	seen := bitset.New(uint(len(board.cells)))
	for i, c := range board.cells {
		if c != Empty || seen.Test(uint(i)) {
			continue
		}

		seen.Set(uint(i))
		stack := []Point{board.point(i)}
		size := 0
		var border [3]bool
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++

			for _, nb := range board.Neighbors(cur) {
				j := uint(board.index(nb))
				switch v := board.cells[j]; v {
				case Empty:
					if !seen.Test(j) {
						seen.Set(j)
						stack = append(stack, nb)
					}
				default:
					border[v] = true
				}
			}
		}

		if border[Black] != border[White] {
			owner := Black
			if border[White] {
				owner = White
			}
			territory[owner] += size
		}
	}

	return Score{
		Black: float64(board.Count(Black) + territory[Black]),
		White: float64(board.Count(White)+territory[White]) + komi,
	}
}
