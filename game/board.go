package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBoardSize  = errors.New("board size must be 9, 13 or 19")
	ErrBoardShape = errors.New("board is not square")
)

// SupportedSizes are the board sizes accepted at the service boundary.
var SupportedSizes = []int{9, 13, 19}

// Board is an n×n grid of intersections, indexed by y*n + x.
// A Board is never modified once handed out: placements and removals produce copies,
// so boards can be shared freely between search nodes.
type Board struct {
	size  int
	cells []Color
}

// NewBoard returns an empty board. It does not restrict the size; see ValidSize.
func NewBoard(size int) Board {
	return Board{size: size, cells: make([]Color, size*size)}
}

// ValidSize reports whether size is one of SupportedSizes.
func ValidSize(size int) bool {
	for _, s := range SupportedSizes {
		if s == size {
			return true
		}
	}
	return false
}

// FromRows builds a board from rows[y][x] values (0 empty, 1 black, 2 white).
// Values outside that domain are read as empty.
func FromRows(rows [][]int) (Board, error) {
	n := len(rows)
	if !ValidSize(n) {
		return Board{}, fmt.Errorf("%d rows: %w", n, ErrBoardSize)
	}
	b := NewBoard(n)
	for y, row := range rows {
		if len(row) != n {
			return Board{}, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), n, ErrBoardShape)
		}
		for x, v := range row {
			// Compare before narrowing so wide values cannot wrap into a color.
			if v == int(Black) || v == int(White) {
				b.cells[y*n+x] = Color(v)
			}
		}
	}
	return b, nil
}

// Rows returns the board as rows[y][x] values, the inverse of FromRows.
func (b Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for y := range rows {
		rows[y] = make([]int, b.size)
		for x := range rows[y] {
			rows[y][x] = int(b.cells[y*b.size+x])
		}
	}
	return rows
}

func (b Board) Size() int {
	return b.size
}

func (b Board) InBounds(p Point) bool {
	return p.X >= 0 && p.X < b.size && p.Y >= 0 && p.Y < b.size
}

// At returns the color at p. p must be in bounds.
func (b Board) At(p Point) Color {
	return b.cells[b.index(p)]
}

// Equal reports whether both boards have the same size and identical cells.
func (b Board) Equal(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i, c := range b.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// Neighbors returns the orthogonally adjacent in-bounds points of p.
func (b Board) Neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	if p.X > 0 {
		out = append(out, Point{p.X - 1, p.Y})
	}
	if p.X+1 < b.size {
		out = append(out, Point{p.X + 1, p.Y})
	}
	if p.Y > 0 {
		out = append(out, Point{p.X, p.Y - 1})
	}
	if p.Y+1 < b.size {
		out = append(out, Point{p.X, p.Y + 1})
	}
	return out
}

// Empties returns every empty point in row-major order.
func (b Board) Empties() []Point {
	return b.collect(func(c Color) bool { return c == Empty })
}

// Occupied returns every point holding a stone in row-major order.
func (b Board) Occupied() []Point {
	return b.collect(Color.IsPlayer)
}

// Count returns the number of stones of color c.
func (b Board) Count(c Color) int {
	count := 0
	for _, v := range b.cells {
		if v == c {
			count++
		}
	}
	return count
}

func (b Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			sb.WriteString(b.cells[y*b.size+x].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b Board) collect(keep func(Color) bool) []Point {
	var out []Point
	for i, c := range b.cells {
		if keep(c) {
			out = append(out, b.point(i))
		}
	}
	return out
}

func (b Board) copy() Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

// with returns a copy of the board with c placed at p.
func (b Board) with(p Point, c Color) Board {
	nb := b.copy()
	nb.cells[nb.index(p)] = c
	return nb
}

// clear empties the given points in place; only used on boards private to the caller.
func (b Board) clear(points []Point) {
	for _, p := range points {
		b.cells[b.index(p)] = Empty
	}
}

func (b Board) index(p Point) int {
	return p.Y*b.size + p.X
}

func (b Board) point(i int) Point {
	return Point{X: i % b.size, Y: i / b.size}
}
