package engine

import (
	"goban/experiments/metrics"
	"goban/game"
)

// MaxMoves bounds a self-play game on a board of the given size.
func MaxMoves(size int) int {
	return 3 * size * size
}

type Engine interface {
	// Run plays a game till both players pass or MaxMoves is reached
	Run() (winner game.Color, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
