// Package experiments plays batches of self-play games between searcher
// configurations and stores the results as CSV.
package experiments

import (
	"fmt"
	"time"

	"goban/config"
	"goban/engine"
	"goban/experiments/metrics"
	"goban/searcher"
	"goban/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// MatchUp pairs two agents; First plays Black in even numbered games.
type MatchUp struct {
	First, Second metrics.AgentConfig
}

type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps []MatchUp
}

// Budget pairs agents with growing time budgets against the baseline budget.
func Budget(cfg config.Experiment) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Duration: cfg.TimeBudget}
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: 2 * cfg.TimeBudget},
		{ID: 2, Duration: 4 * cfg.TimeBudget},
		{ID: 3, Duration: 8 * cfg.TimeBudget},
	}
	return against(baseline, "time_budget", configs)
}

// Exploration pairs agents with different UCT constants against the default constant.
func Exploration(cfg config.Experiment) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Duration: cfg.TimeBudget, Exploration: searcher.Exploration}
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: cfg.TimeBudget, Exploration: 0.5},
		{ID: 2, Duration: cfg.TimeBudget, Exploration: 1},
		{ID: 3, Duration: cfg.TimeBudget, Exploration: 2},
	}
	return against(baseline, "exploration", configs)
}

// Cutoff pairs agents with short playouts against full length playouts.
func Cutoff(cfg config.Experiment) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Duration: cfg.TimeBudget}
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: cfg.TimeBudget, Cutoff: 10},
		{ID: 2, Duration: cfg.TimeBudget, Cutoff: 40},
		{ID: 3, Duration: cfg.TimeBudget, Cutoff: 80},
	}
	return against(baseline, "cutoff", configs)
}

// Temperature pairs self-play agents that sample their moves from the visit
// distribution against the agent that always plays the most visited move.
func Temperature(cfg config.Experiment) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Duration: cfg.TimeBudget}
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: cfg.TimeBudget, Temperature: 0.25},
		{ID: 2, Duration: cfg.TimeBudget, Temperature: 0.5},
		{ID: 3, Duration: cfg.TimeBudget, Temperature: 1},
	}
	return against(baseline, "temperature", configs)
}

// Remote matches a local agent against the move service at cfg.RemoteURL with the
// same time budget.
func Remote(cfg config.Experiment) Experiment {
	local := metrics.AgentConfig{ID: 0, Duration: cfg.TimeBudget}
	remote := metrics.AgentConfig{ID: 1, Duration: cfg.TimeBudget, Remote: cfg.RemoteURL}
	return against(local, "remote", []metrics.AgentConfig{remote})
}

func against(baseline metrics.AgentConfig, name string, configs []metrics.AgentConfig) Experiment {
	matchUps := make([]MatchUp, 0, len(configs))
	for _, c := range configs {
		matchUps = append(matchUps, MatchUp{First: baseline, Second: c})
	}
	return Experiment{
		Name:     name,
		Configs:  append([]metrics.AgentConfig{baseline}, configs...),
		MatchUps: matchUps,
	}
}

// Run plays cfg.Games games per match up, at most cfg.Parallel at a time, and
// returns the directory the records were written to.
func Run(cfg config.Config, exp Experiment) (string, error) {
	games := cfg.Experiment.Games
	gameRecords := make([]metrics.GameRecord, len(exp.MatchUps)*games)
	moveMetrics := make([][]metrics.MoveMetric, len(gameRecords))

	log.Info().Msgf("starting %s experiment with %d games...", exp.Name, len(gameRecords))
	start := time.Now()

	g := errgroup.Group{}
	g.SetLimit(max(cfg.Experiment.Parallel, 1))
	for mi, matchUp := range exp.MatchUps {
		mi, matchUp := mi, matchUp
		for i := 0; i < games; i++ {
			i := i
			id := mi*games + i
			g.Go(func() error {
				black, white := matchUp.First, matchUp.Second
				if i%2 == 1 {
					black, white = white, black
				}
				seed := cfg.Experiment.Seed + uint64(2*id)
				e := engine.NewLocalEngine(
					cfg.Experiment.BoardSize,
					cfg.Search.Komi,
					newAgent(black, cfg.Search.Komi, seed),
					newAgent(white, cfg.Search.Komi, seed+1),
				)

				winner, gameMetric, moves := e.Run()
				gameRecords[id] = metrics.GameRecord{
					ID:         id + 1,
					Agent1:     black.ID,
					Agent2:     white.ID,
					GameMetric: gameMetric,
				}
				moveMetrics[id] = moves

				log.Info().Msgf("completed matchup %d of %d game %d with winner: %s",
					mi+1, len(exp.MatchUps), i+1, winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	log.Info().Msgf("completed %s experiment in %s", exp.Name, time.Since(start).Round(time.Millisecond))
	return store(cfg.Experiment.OutputDir, exp, gameRecords, moveMetrics)
}

func store(root string, exp Experiment, gameRecords []metrics.GameRecord, moveMetrics [][]metrics.MoveMetric) (string, error) {
	writer, err := metrics.NewWriter(root, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}

	moveRecords := []metrics.MoveRecord{}
	for i, moves := range moveMetrics {
		for _, mm := range moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: gameRecords[i].ID, MoveMetric: mm})
		}
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return writer.Dir(), nil
}

func newAgent(config metrics.AgentConfig, komi float64, seed uint64) agent.Agent {
	if config.Remote != "" {
		return engine.NewRemoteAgent(config.Remote, config.Duration)
	}
	mcts := createMCTS(config, komi, seed)
	if config.Temperature > 0 {
		return agent.NewTrainingAgent(mcts, config.Temperature, seed)
	}
	return agent.NewEvaluationAgent(mcts)
}

func createMCTS(config metrics.AgentConfig, komi float64, seed uint64) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithKomi(komi),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}

	return searcher.NewMCTS(options...)
}
