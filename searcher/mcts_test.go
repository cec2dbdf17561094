package searcher

import (
	"testing"
	"time"

	"goban/game"

	"github.com/stretchr/testify/require"
)

func TestPlayoutCap(t *testing.T) {
	require.Equal(t, 162, PlayoutCap(9), "2n² is below the 9x9 limit")
	require.Equal(t, 260, PlayoutCap(13))
	require.Equal(t, 320, PlayoutCap(19))
}

func TestReward(t *testing.T) {
	require.Equal(t, Win, reward(game.Black, game.Black))
	require.Equal(t, Loss, reward(game.White, game.Black))
	require.Equal(t, Draw, reward(game.Empty, game.White))
}

func TestNewMCTS(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		m := NewMCTS()

		require.Equal(t, DefaultDuration, m.duration)
		require.Equal(t, game.DefaultKomi, m.komi)
		require.Equal(t, Exploration, m.exploration)
		require.NotNil(t, m.rng)
	})

	t.Run("clamps the duration to the minimum", func(t *testing.T) {
		require.Equal(t, MinDuration, NewMCTS(WithDuration(time.Millisecond)).duration)
		require.Equal(t, DefaultDuration, NewMCTS(WithDuration(0)).duration, "Non-positive durations are ignored")
	})
}

func TestSearch(t *testing.T) {
	t.Run("returns a legal move and counts completed iterations", func(t *testing.T) {
		board := game.NewBoard(9)
		m := NewMCTS(WithEpisodes(200), WithSeed(1), WithMetrics())

		result := m.Search(board, game.Black, nil)

		require.Equal(t, 200, result.Iterations)
		require.True(t, game.IsLegal(board, game.Black, result.Move, nil), "Move %v should be legal", result.Move)
		require.Equal(t, 200, result.Metric.Episodes)
		require.Zero(t, result.Metric.Discarded)
		require.Equal(t, 9, result.Metric.BoardSize)
		require.Equal(t, PlayoutCap(9), result.Metric.Cutoff)

		total := 0
		best := 0
		for _, stat := range result.Policy {
			require.LessOrEqual(t, stat.Visits, result.Iterations)
			require.LessOrEqual(t, stat.Wins, float64(stat.Visits))
			total += stat.Visits
			if stat.Visits > best {
				best = stat.Visits
			}
		}
		require.Equal(t, result.Iterations, total, "Every iteration passes through one root child")

		for _, stat := range result.Policy {
			if stat.Move == result.Move {
				require.Equal(t, best, stat.Visits, "The most visited move is chosen")
			}
		}
	})

	t.Run("is reproducible for a fixed seed", func(t *testing.T) {
		board := atariBoard(t)

		first := NewMCTS(WithEpisodes(100), WithSeed(42)).Search(board, game.White, nil)
		second := NewMCTS(WithEpisodes(100), WithSeed(42)).Search(board, game.White, nil)

		require.Equal(t, first.Move, second.Move)
		require.Equal(t, first.Policy, second.Policy)
	})

	t.Run("never recaptures a ko at the root", func(t *testing.T) {
		before := koShape(t)
		taken, err := game.Apply(before, game.Black, game.Play(2, 1), nil)
		require.NoError(t, err)

		result := NewMCTS(WithEpisodes(300), WithSeed(7)).Search(taken, game.White, &before)

		require.True(t, game.IsLegal(taken, game.White, result.Move, &before))
		for _, stat := range result.Policy {
			require.NotEqual(t, game.Play(1, 1), stat.Move, "Ko recapture should never be expanded")
		}
	})

	t.Run("finishes a minimum budget search", func(t *testing.T) {
		board := game.NewBoard(19)
		m := NewMCTS(WithDuration(time.Millisecond), WithSeed(3))

		start := time.Now()
		move, iterations := m.Decide(board, game.White, nil)
		elapsed := time.Since(start)

		require.GreaterOrEqual(t, elapsed, MinDuration)
		require.Less(t, elapsed, 5*time.Second, "Search should stop shortly after the deadline")
		require.GreaterOrEqual(t, iterations, 0)
		require.True(t, game.IsLegal(board, game.White, move, nil))
	})

	t.Run("white benefits from komi on an empty board", func(t *testing.T) {
		m := NewMCTS(WithEpisodes(50), WithSeed(9), WithCutoff(1), WithKomi(100))

		result := m.Search(game.NewBoard(9), game.White, nil)

		for _, stat := range result.Policy {
			require.Equal(t, float64(stat.Visits), stat.Wins, "With a huge komi every playout is a White win")
		}
	})
}

// koShape is a position where Black can take a ko at (2,1).
func koShape(t *testing.T) game.Board {
	rows := game.NewBoard(9).Rows()
	for _, p := range []game.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 2}} {
		rows[p.Y][p.X] = int(game.Black)
	}
	for _, p := range []game.Point{{X: 2, Y: 0}, {X: 1, Y: 1}, {X: 3, Y: 1}, {X: 2, Y: 2}} {
		rows[p.Y][p.X] = int(game.White)
	}
	return mustBoard(t, rows)
}
