package game

import "github.com/bits-and-blooms/bitset"

// Group returns the stones 4-connected to p with the same color as p, and the
// distinct empty points adjacent to them. p must hold a stone.
//
// The walk uses an explicit stack, so depth does not grow with group size.
func (b Board) Group(p Point) (stones []Point, liberties []Point) {
	color := b.At(p)
	n := uint(len(b.cells))
	seen := bitset.New(n)
	libs := bitset.New(n)

	seen.Set(uint(b.index(p)))
	stack := []Point{p}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stones = append(stones, cur)

		for _, nb := range b.Neighbors(cur) {
			i := uint(b.index(nb))
			switch v := b.cells[i]; {
			case v == Empty:
				if !libs.Test(i) {
					libs.Set(i)
					liberties = append(liberties, nb)
				}
			case v == color && !seen.Test(i):
				seen.Set(i)
				stack = append(stack, nb)
			}
		}
	}
	return stones, liberties
}

// Liberties returns the number of liberties of the group containing p.
func (b Board) Liberties(p Point) int {
	_, libs := b.Group(p)
	return len(libs)
}
