package searcher

import "math"

// Hyperparameters for MCTS

const Exploration = 1.35 // UCT exploration constant C

// Rewards from the root player's perspective
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 0.0
)

type uct struct {
	numerator float64
}

// newUCT precomputes the parent term of the UCT formula for a parent visited N times.
func newUCT(c float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: c * c * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + C*sqrt(ln(N)/n) = q/n + sqrt(C^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}
