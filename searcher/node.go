package searcher

import (
	"math"

	"goban/game"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// node is one position in the search tree. Children are owned by their parent;
// the parent pointer is only followed during backup.
//
// Below the root, ko is the parent's board rather than the parent's parent's:
// comparing against the board three plies back would never catch an immediate ko
// recapture.
type node struct {
	parent   *node
	move     game.Move // move that led here from parent
	board    game.Board
	player   game.Color  // player to move
	ko       *game.Board // position a move from here may not recreate, or nil
	passes   int         // consecutive passes leading here
	untried  []game.Move // nil until expanded
	children []*node
	wins     float64 // sum of rewards from the root player's perspective
	visits   int
}

func newRoot(board game.Board, player game.Color, ko *game.Board) *node {
	return &node{board: board, player: player, ko: ko}
}

// untriedMoves lazily generates the candidate moves of this node.
func (n *node) untriedMoves(rng *rand.Rand) []game.Move {
	if n.untried == nil {
		n.untried = game.LegalMoves(n.board, n.player, n.ko, rng)
	}
	return n.untried
}

// selectChild returns the child with the highest UCT score; an unvisited child
// is returned immediately.
func (n *node) selectChild(c float64) *node {
	policy := newUCT(c, float64(max(n.visits, 1)))

	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		if child.visits == 0 {
			return child
		}
		if score := policy.evaluate(child.wins, float64(child.visits)); score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// expand removes a random untried move and adds the resulting child. It returns
// false when the move turns out to be illegal; the move is dropped either way.
func (n *node) expand(rng *rand.Rand) (*node, bool) {
	i := rng.Intn(len(n.untried))
	move := n.untried[i]
	n.untried = slices.Delete(n.untried, i, i+1)

	board, err := game.Apply(n.board, n.player, move, n.ko)
	if err != nil {
		return nil, false
	}

	passes := 0
	if move.IsPass {
		passes = n.passes + 1
	}
	child := &node{
		parent: n,
		move:   move,
		board:  board,
		player: n.player.Opponent(),
		ko:     &n.board,
		passes: passes,
	}
	n.children = append(n.children, child)
	return child, true
}

// backup records one visit with the given reward and returns the parent.
func (n *node) backup(reward float64) *node {
	n.visits++
	n.wins += reward
	return n.parent
}

// bestChild returns the most visited child, the first one on ties, or nil.
func (n *node) bestChild() *node {
	var best *node
	for _, child := range n.children {
		if best == nil || child.visits > best.visits {
			best = child
		}
	}
	return best
}

// MoveStat summarizes one root child after a search.
type MoveStat struct {
	Move   game.Move
	Visits int
	Wins   float64 // from the searching player's perspective
}

// WinRate returns Wins/Visits, or 0 for an unvisited move.
func (s MoveStat) WinRate() float64 {
	if s.Visits == 0 {
		return 0
	}
	return s.Wins / float64(s.Visits)
}

// policy lists the children's statistics in expansion order.
func (n *node) policy() []MoveStat {
	stats := make([]MoveStat, len(n.children))
	for i, child := range n.children {
		stats[i] = MoveStat{Move: child.move, Visits: child.visits, Wins: child.wins}
	}
	return stats
}
