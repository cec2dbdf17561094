package agent

import (
	"math"

	"goban/experiments/metrics"
	"goban/game"
	"goban/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that samples moves in proportion
// to visits^(1/temperature), so repeated games explore different lines.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	return trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a trainingAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	result := a.mcts.Search(state.Board(), state.ToPlay(), state.Ko())
	if result.Iterations == 0 || a.temperature <= 0 {
		return result.Move, result.Metric
	}
	probs := adjustTemperature(result.Policy, a.temperature)
	return sample(result.Policy, probs, a.rng.Float64()), result.Metric
}

func adjustTemperature(policy []searcher.MoveStat, temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities. Visits are scaled by the
	// maximum first so a small temperature cannot overflow.
	exponent := 1.0 / temperature
	most := 0
	for _, stat := range policy {
		most = max(most, stat.Visits)
	}
	sum := 0.0
	adjusted := make([]float64, len(policy))
	for i, stat := range policy {
		prob := math.Pow(float64(stat.Visits)/float64(most), exponent)
		sum += prob
		adjusted[i] = prob
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(policy []searcher.MoveStat, probs []float64, sampled float64) game.Move {
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return policy[i].Move
		}
	}
	return policy[len(policy)-1].Move // Fallback in case of rounding errors
}
