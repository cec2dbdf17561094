package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// parseBoard builds a board from rows of '.', 'B' and 'W'. The board is as wide as
// there are rows.
func parseBoard(t *testing.T, rows ...string) Board {
	t.Helper()
	b := NewBoard(len(rows))
	for y, row := range rows {
		require.Len(t, row, len(rows), "row %d should be as long as the board is tall", y)
		for x, r := range row {
			switch r {
			case 'B':
				b.cells[b.index(Point{x, y})] = Black
			case 'W':
				b.cells[b.index(Point{x, y})] = White
			}
		}
	}
	return b
}

// requireAllGroupsLive fails if any group on the board has no liberties.
func requireAllGroupsLive(t *testing.T, b Board) {
	t.Helper()
	for _, p := range b.Occupied() {
		require.Positive(t, b.Liberties(p), "group at %v has no liberties on\n%s", p, b)
	}
}

func TestFromRows(t *testing.T) {
	t.Run("round trips rows", func(t *testing.T) {
		rows := NewBoard(9).Rows()
		rows[0][1] = 1
		rows[8][4] = 2

		b, err := FromRows(rows)

		require.NoError(t, err)
		require.Equal(t, Black, b.At(Point{1, 0}))
		require.Equal(t, White, b.At(Point{4, 8}))
		require.Equal(t, rows, b.Rows())
	})

	t.Run("coerces unknown values to empty", func(t *testing.T) {
		rows := NewBoard(9).Rows()
		rows[3][3] = 7
		rows[3][4] = -1
		rows[0][0] = 257
		rows[0][1] = 258
		rows[0][2] = -255

		b, err := FromRows(rows)

		require.NoError(t, err)
		require.Equal(t, 0, b.Count(Black)+b.Count(White), "Unknown values should read as empty")
	})

	t.Run("rejects unsupported sizes", func(t *testing.T) {
		_, err := FromRows(NewBoard(7).Rows())

		require.ErrorIs(t, err, ErrBoardSize)
	})

	t.Run("rejects ragged rows", func(t *testing.T) {
		rows := NewBoard(9).Rows()
		rows[4] = rows[4][:8]

		_, err := FromRows(rows)

		require.ErrorIs(t, err, ErrBoardShape)
	})
}

func TestBoardNeighbors(t *testing.T) {
	b := NewBoard(9)

	require.ElementsMatch(t, []Point{{1, 0}, {0, 1}}, b.Neighbors(Point{0, 0}), "Corner has two neighbors")
	require.ElementsMatch(t, []Point{{3, 0}, {5, 0}, {4, 1}}, b.Neighbors(Point{4, 0}), "Edge has three neighbors")
	require.Len(t, b.Neighbors(Point{4, 4}), 4, "Center has four neighbors")
}

func TestBoardGroup(t *testing.T) {
	t.Run("collects connected stones and distinct liberties", func(t *testing.T) {
		b := parseBoard(t,
			"BB.......",
			"B........",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
		)

		stones, libs := b.Group(Point{0, 0})

		require.ElementsMatch(t, []Point{{0, 0}, {1, 0}, {0, 1}}, stones)
		require.ElementsMatch(t, []Point{{2, 0}, {1, 1}, {0, 2}}, libs, "Shared liberty (1,1) should be counted once")
	})

	t.Run("stops at stones of the other color", func(t *testing.T) {
		b := parseBoard(t,
			"BW.......",
			"W........",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
			".........",
		)

		stones, libs := b.Group(Point{0, 0})

		require.Equal(t, []Point{{0, 0}}, stones)
		require.Empty(t, libs)
	})

	t.Run("walks a board-filling group without recursion", func(t *testing.T) {
		b := NewBoard(19)
		for i := range b.cells {
			b.cells[i] = Black
		}
		b.cells[0] = Empty

		stones, libs := b.Group(Point{18, 18})

		require.Len(t, stones, 19*19-1)
		require.Equal(t, []Point{{0, 0}}, libs)
	})
}

func TestBoardIsImmutable(t *testing.T) {
	b := NewBoard(9)
	next := b.with(Point{4, 4}, Black)

	require.Equal(t, Empty, b.At(Point{4, 4}), "Original board should not change")
	require.Equal(t, Black, next.At(Point{4, 4}))
	require.False(t, b.Equal(next))
}
