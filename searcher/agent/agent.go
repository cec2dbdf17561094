package agent

import (
	"goban/experiments/metrics"
	"goban/game"
)

type Agent interface {
	// FindMove returns the move to play in the given game and the metrics of the search behind it
	FindMove(state *game.GameState) (game.Move, metrics.SearchMetric)
}
