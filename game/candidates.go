package game

import (
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/exp/rand"
)

const (
	localRadius   = 2  // Manhattan distance from existing stones
	minCandidates = 10 // below this, pad with random empties
	maxFallback   = 40
)

// CaptureCandidates returns the last liberty of every opponent group in atari,
// i.e. the points where player captures immediately.
func CaptureCandidates(board Board, player Color) []Point {
	opponent := player.Opponent()
	n := uint(len(board.cells))
	seen := bitset.New(n)
	added := bitset.New(n)

	var out []Point
	for i, c := range board.cells {
		if c != opponent || seen.Test(uint(i)) {
			continue
		}
		stones, libs := board.Group(board.point(i))
		for _, s := range stones {
			seen.Set(uint(board.index(s)))
		}
		if len(libs) == 1 {
			if j := uint(board.index(libs[0])); !added.Test(j) {
				added.Set(j)
				out = append(out, libs[0])
			}
		}
	}
	return out
}

// LocalCandidates returns the empty points within Manhattan distance 2 of any stone.
// On an empty board the only candidate is the center point.
func LocalCandidates(board Board) []Point {
	occupied := board.Occupied()
	if len(occupied) == 0 {
		c := board.size / 2
		return []Point{{X: c, Y: c}}
	}

	near := bitset.New(uint(len(board.cells)))
	for _, p := range occupied {
		for dx := -localRadius; dx <= localRadius; dx++ {
			for dy := -localRadius; dy <= localRadius; dy++ {
				if abs(dx)+abs(dy) > localRadius {
					continue
				}
				q := Point{X: p.X + dx, Y: p.Y + dy}
				if board.InBounds(q) && board.At(q) == Empty {
					near.Set(uint(board.index(q)))
				}
			}
		}
	}

	out := make([]Point, 0, near.Count())
	for i, ok := near.NextSet(0); ok; i, ok = near.NextSet(i + 1) {
		out = append(out, board.point(int(i)))
	}
	return out
}

// LegalMoves returns a pruned set of legal moves for player, always ending with Pass.
//
// It is not a full enumeration: only captures, points near existing stones and, when
// those are scarce, a random sample of empties are considered. This keeps the branching
// factor of 19×19 search manageable. rng drives the random sample.
func LegalMoves(board Board, player Color, ko *Board, rng *rand.Rand) []Move {
	set := bitset.New(uint(len(board.cells)))
	var candidates []Point
	add := func(p Point) {
		if i := uint(board.index(p)); !set.Test(i) {
			set.Set(i)
			candidates = append(candidates, p)
		}
	}

	for _, p := range CaptureCandidates(board, player) {
		add(p)
	}
	for _, p := range LocalCandidates(board) {
		add(p)
	}

	if len(candidates) < minCandidates {
		empties := board.Empties()
		rng.Shuffle(len(empties), func(i, j int) {
			empties[i], empties[j] = empties[j], empties[i]
		})
		for _, p := range empties[:min(maxFallback, len(empties))] {
			add(p)
		}
	}

	moves := make([]Move, 0, len(candidates)+1)
	for _, p := range candidates {
		m := Move{Point: p}
		if IsLegal(board, player, m, ko) {
			moves = append(moves, m)
		}
	}
	return append(moves, Pass())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
