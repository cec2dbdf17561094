package agent

import (
	"goban/experiments/metrics"
	"goban/game"
	"goban/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that always plays the most visited move.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	result := a.mcts.Search(state.Board(), state.ToPlay(), state.Ko())
	return result.Move, result.Metric
}
