package searcher

import (
	"time"

	"goban/experiments/metrics"
	"goban/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	DefaultDuration = 700 * time.Millisecond
	MinDuration     = 50 * time.Millisecond
)

type Option func(mcts *MCTS)

// MCTS searches for a move with UCT and random playouts. A single MCTS owns its
// random source and must not run two searches at once; create one per goroutine.
// No tree survives between searches.
type MCTS struct {
	duration    time.Duration
	episodes    int
	cutoff      int
	komi        float64
	exploration float64
	rng         *rand.Rand
	metrics     metrics.Collector
}

// WithDuration sets the thinking time, raised to MinDuration if smaller.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = max(duration, MinDuration)
		}
	}
}

// WithEpisodes stops the search after a fixed number of completed iterations
// instead of at the deadline.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff caps the number of plies of each playout. By default the cap scales
// with the board size, see PlayoutCap.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithKomi(komi float64) Option {
	return func(m *MCTS) {
		m.komi = komi
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithSeed makes the search reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		duration:    DefaultDuration,
		komi:        game.DefaultKomi,
		exploration: Exploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// Result is the outcome of one search.
type Result struct {
	Move       game.Move  // most visited root move, or Pass
	Iterations int        // completed iterations; equals the root's visit count
	Policy     []MoveStat // root children in expansion order
	Metric     metrics.SearchMetric
}

// PlayoutCap is the default playout length for a board size.
func PlayoutCap(size int) int {
	limit := 320
	switch size {
	case 9:
		limit = 180
	case 13:
		limit = 260
	}
	return min(2*size*size, limit)
}

// Decide returns the move to play for player and the number of completed iterations.
// ko is the board before the opponent's last move, or nil.
func (m *MCTS) Decide(board game.Board, player game.Color, ko *game.Board) (game.Move, int) {
	result := m.Search(board, player, ko)
	return result.Move, result.Iterations
}

// Search runs select/expand/rollout/backup until the deadline (or the episode budget)
// and reports the root statistics.
func (m *MCTS) Search(board game.Board, player game.Color, ko *game.Board) Result {
	root := newRoot(board, player, ko)
	cutoff := m.cutoff
	if cutoff <= 0 {
		cutoff = PlayoutCap(board.Size())
	}

	m.metrics.Start(board.Size(), cutoff, m.exploration)
	start := time.Now()
	deadline := start.Add(m.duration)

	iterations, discarded := 0, 0
	for m.searching(iterations, deadline) {
		if m.simulate(root, cutoff) {
			iterations++
			m.metrics.AddEpisode()
		} else {
			discarded++
			m.metrics.AddDiscarded()
		}
	}

	result := Result{
		Move:       game.Pass(),
		Iterations: iterations,
		Policy:     root.policy(),
		Metric:     m.metrics.Complete(),
	}
	if best := root.bestChild(); best != nil {
		result.Move = best.move
	} else {
		log.Warn().Int("iterations", iterations).Msg("search expanded no moves, passing")
	}

	log.Debug().
		Int("size", board.Size()).
		Str("player", player.String()).
		Int("iterations", iterations).
		Int("discarded", discarded).
		Dur("elapsed", time.Since(start)).
		Str("move", result.Move.String()).
		Msg("search complete")
	return result
}

func (m *MCTS) searching(iterations int, deadline time.Time) bool {
	if m.episodes > 0 {
		return iterations < m.episodes
	}
	return time.Now().Before(deadline)
}

// simulate runs one iteration. It returns false, without touching any statistics,
// when the expanded move was illegal.
func (m *MCTS) simulate(root *node, cutoff int) bool {
	// Selection and expansion
	leaf := selectThenExpand(root, m.exploration, m.rng)
	if leaf == nil {
		return false
	}

	// Rollout
	final, full := rollout(m.rng, leaf.board, leaf.player, leaf.ko, leaf.passes, cutoff)
	if full {
		m.metrics.AddFullPlayout()
	}
	winner := game.AreaScore(final, m.komi).Winner()

	// Backpropagation
	backup(leaf, reward(winner, root.player))
	return true
}

// selectThenExpand descends by UCT while the current node has no untried moves,
// then expands one untried move if there is any. It returns nil when the expansion
// was illegal.
func selectThenExpand(root *node, c float64, rng *rand.Rand) *node {
	current := root
	for len(current.untriedMoves(rng)) == 0 && len(current.children) > 0 {
		current = current.selectChild(c)
	}
	if len(current.untriedMoves(rng)) == 0 { // Leaf
		return current
	}
	child, ok := current.expand(rng)
	if !ok {
		return nil
	}
	return child
}

func reward(winner, rootPlayer game.Color) float64 {
	switch winner {
	case rootPlayer:
		return Win
	case game.Empty:
		return Draw
	default:
		return Loss
	}
}

func backup(leaf *node, reward float64) {
	for n := leaf; n != nil; {
		n = n.backup(reward)
	}
}
