package game

import "fmt"

// Color is the content of a board intersection, and doubles as the player identifier.
type Color int8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other player. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// IsPlayer reports whether c is Black or White.
func (c Color) IsPlayer() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return "."
	}
}

// Point is an intersection on the board; X is the column and Y the row.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Move is either a stone placement or a pass. The zero value is the placement at (0,0).
type Move struct {
	Point
	IsPass bool
}

// Play returns the move placing a stone at (x, y).
func Play(x, y int) Move {
	return Move{Point: Point{X: x, Y: y}}
}

// Pass returns the pass move.
func Pass() Move {
	return Move{IsPass: true}
}

func (m Move) String() string {
	if m.IsPass {
		return "pass"
	}
	return m.Point.String()
}
