package engine

import (
	"net/http/httptest"
	"testing"
	"time"

	"goban/config"
	"goban/experiments/metrics"
	"goban/game"
	"goban/searcher"
	"goban/searcher/agent"
	"goban/server"

	"github.com/stretchr/testify/require"
)

// scriptedAgent plays its moves in order, then passes.
type scriptedAgent struct {
	moves []game.Move
}

func (a *scriptedAgent) FindMove(*game.GameState) (game.Move, metrics.SearchMetric) {
	if len(a.moves) == 0 {
		return game.Pass(), metrics.SearchMetric{}
	}
	move := a.moves[0]
	a.moves = a.moves[1:]
	return move, metrics.SearchMetric{Episodes: 1}
}

func TestLocalEngine(t *testing.T) {
	t.Run("two passes end the game", func(t *testing.T) {
		e := NewLocalEngine(9, game.DefaultKomi, &scriptedAgent{}, &scriptedAgent{})

		winner, gameMetric, moveMetrics := e.Run()

		require.Equal(t, game.White, winner, "Komi decides an empty board")
		require.Equal(t, 2, gameMetric.TotalMoves)
		require.Equal(t, int(game.Black), gameMetric.StartingPlayer)
		require.Equal(t, int(game.White), gameMetric.Winner)
		require.Equal(t, 6.5, gameMetric.WhiteScore)
		require.Len(t, moveMetrics, 2)
		require.Equal(t, int(game.Black), moveMetrics[0].Player)
		require.Equal(t, 2, moveMetrics[1].Step)
	})

	t.Run("scores the final position", func(t *testing.T) {
		black := &scriptedAgent{moves: []game.Move{game.Play(4, 4)}}
		e := NewLocalEngine(9, game.DefaultKomi, black, &scriptedAgent{})

		winner, gameMetric, _ := e.Run()

		require.Equal(t, game.Black, winner)
		require.Equal(t, 81.0, gameMetric.BlackScore)
		require.Equal(t, 3, gameMetric.TotalMoves)
	})

	t.Run("an illegal move becomes a pass", func(t *testing.T) {
		black := &scriptedAgent{moves: []game.Move{game.Play(4, 4)}}
		white := &scriptedAgent{moves: []game.Move{game.Play(4, 4)}}
		e := NewLocalEngine(9, game.DefaultKomi, black, white)

		winner, gameMetric, moveMetrics := e.Run()

		require.Equal(t, game.Black, winner)
		require.Equal(t, 3, gameMetric.TotalMoves, "Black plays, White is forced to pass, Black passes")
		require.Len(t, moveMetrics, 3)
		require.True(t, e.State.Over())
	})

	t.Run("stops at the move limit", func(t *testing.T) {
		mcts := func(seed uint64) *searcher.MCTS {
			return searcher.NewMCTS(searcher.WithEpisodes(10), searcher.WithCutoff(10), searcher.WithSeed(seed), searcher.WithMetrics())
		}
		e := NewLocalEngine(9, game.DefaultKomi, agent.NewEvaluationAgent(mcts(1)), agent.NewEvaluationAgent(mcts(2)))
		e.MaxMoves = 6

		_, gameMetric, moveMetrics := e.Run()

		require.LessOrEqual(t, gameMetric.TotalMoves, 6)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		for _, m := range moveMetrics {
			require.Equal(t, 10, m.Episodes)
		}
		board := e.State.Board()
		for _, p := range board.Occupied() {
			require.Positive(t, board.Liberties(p))
		}
	})
}

func TestRemoteAgent(t *testing.T) {
	srv := httptest.NewServer(server.New(config.Default()).Handler())
	defer srv.Close()

	t.Run("plays through the move service", func(t *testing.T) {
		remote := NewRemoteAgent(srv.URL, 50*time.Millisecond)
		state := game.NewGameState(9, game.DefaultKomi)

		move, metric := remote.FindMove(state)

		require.True(t, game.IsLegal(state.Board(), state.ToPlay(), move, state.Ko()))
		require.Positive(t, metric.Episodes)
		require.Equal(t, 9, metric.BoardSize)
	})

	t.Run("passes when the service is unreachable", func(t *testing.T) {
		remote := NewRemoteAgent("http://127.0.0.1:1", 50*time.Millisecond)

		move, _ := remote.FindMove(game.NewGameState(9, game.DefaultKomi))

		require.Equal(t, game.Pass(), move)
	})
}
