package engine

import (
	"time"

	"goban/experiments/metrics"
	"goban/game"
	"goban/searcher/agent"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*LocalEngine)(nil)

type LocalEngine struct {
	State    *game.GameState
	Agents   map[game.Color]agent.Agent
	MaxMoves int // game is scored after this many moves even without two passes
}

// NewLocalEngine sets up a game on an empty board between two agents.
func NewLocalEngine(size int, komi float64, black, white agent.Agent) *LocalEngine {
	if black == nil || white == nil {
		panic("need an agent for each color")
	}
	return &LocalEngine{
		State: game.NewGameState(size, komi),
		Agents: map[game.Color]agent.Agent{
			game.Black: black,
			game.White: white,
		},
		MaxMoves: MaxMoves(size),
	}
}

// Run executes the entire game loop until both players pass.
func (e *LocalEngine) Run() (game.Color, metrics.GameMetric, []metrics.MoveMetric) {
	size := e.State.Board().Size()
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.State.ToPlay()),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %s is starting on %dx%d", e.State.ToPlay(), size, size)

	for step := 1; !e.State.Over() && step <= e.MaxMoves; step++ {
		player := e.State.ToPlay()
		move, searchMetric := e.Agents[player].FindMove(e.State)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			SearchMetric: searchMetric,
		})

		if err := e.State.Play(move); err != nil {
			log.Warn().Err(err).Msgf("player %s returned an illegal move, forcing pass", player)
			if err := e.State.Play(game.Pass()); err != nil {
				panic(err) // pass is always legal before the game is over
			}
		}
	}

	if !e.State.Over() {
		log.Debug().Msgf("stopped after %d moves without two passes", e.MaxMoves)
	}

	score := e.State.Result()
	winner := score.Winner()
	gameMetric.Winner = int(winner)
	gameMetric.BlackScore = score.Black
	gameMetric.WhiteScore = score.White
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.State.MoveCount()

	return winner, gameMetric, moveMetrics
}
