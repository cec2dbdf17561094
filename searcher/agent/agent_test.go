package agent

import (
	"testing"

	"goban/game"
	"goban/searcher"

	"github.com/stretchr/testify/require"
)

func TestEvaluationAgent(t *testing.T) {
	state := game.NewGameState(9, game.DefaultKomi)
	a := NewEvaluationAgent(searcher.NewMCTS(searcher.WithEpisodes(50), searcher.WithSeed(1), searcher.WithMetrics()))

	move, metric := a.FindMove(state)

	require.True(t, game.IsLegal(state.Board(), state.ToPlay(), move, state.Ko()))
	require.Equal(t, 50, metric.Episodes)
}

func TestTrainingAgent(t *testing.T) {
	t.Run("samples a legal move", func(t *testing.T) {
		state := game.NewGameState(9, game.DefaultKomi)
		a := NewTrainingAgent(searcher.NewMCTS(searcher.WithEpisodes(50), searcher.WithSeed(1)), 1.0, 2)

		move, _ := a.FindMove(state)

		require.True(t, game.IsLegal(state.Board(), state.ToPlay(), move, state.Ko()))
	})
}

func TestAdjustTemperature(t *testing.T) {
	policy := []searcher.MoveStat{
		{Move: game.Play(0, 0), Visits: 1},
		{Move: game.Play(1, 1), Visits: 3},
	}

	t.Run("temperature one keeps visit proportions", func(t *testing.T) {
		require.InDeltaSlice(t, []float64{0.25, 0.75}, adjustTemperature(policy, 1.0), 1e-9)
	})

	t.Run("low temperature sharpens the distribution", func(t *testing.T) {
		require.InDeltaSlice(t, []float64{0.1, 0.9}, adjustTemperature(policy, 0.5), 1e-9)
	})

	t.Run("tiny temperature picks the most visited move", func(t *testing.T) {
		wide := []searcher.MoveStat{
			{Move: game.Play(0, 0), Visits: 300},
			{Move: game.Play(1, 1), Visits: 900},
			{Move: game.Pass(), Visits: 299},
		}

		probs := adjustTemperature(wide, 0.001)

		require.InDeltaSlice(t, []float64{0, 1, 0}, probs, 1e-9)
		require.Equal(t, game.Play(1, 1), sample(wide, probs, 0.999))
	})
}

func TestSample(t *testing.T) {
	policy := []searcher.MoveStat{{Move: game.Play(0, 0)}, {Move: game.Play(1, 1)}}
	probs := []float64{0.25, 0.75}

	require.Equal(t, game.Play(0, 0), sample(policy, probs, 0.1))
	require.Equal(t, game.Play(1, 1), sample(policy, probs, 0.5))
	require.Equal(t, game.Play(1, 1), sample(policy, probs, 1.0), "Falls back to the last move")
}
