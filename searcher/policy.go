package searcher

import (
	"goban/game"

	"golang.org/x/exp/rand"
)

const captureTries = 8 // capture candidates examined per rollout ply

// choose picks a rollout move for player and returns it with the resulting board.
// Captures are preferred; otherwise a uniformly random non-pass candidate is played,
// and Pass only when nothing else is legal.
func choose(rng *rand.Rand, board game.Board, player game.Color, ko *game.Board) (game.Move, game.Board) {
	captures := game.CaptureCandidates(board, player)
	rng.Shuffle(len(captures), func(i, j int) {
		captures[i], captures[j] = captures[j], captures[i]
	})
	for _, p := range captures[:min(captureTries, len(captures))] {
		move := game.Move{Point: p}
		if next, err := game.Apply(board, player, move, ko); err == nil {
			return move, next
		}
	}

	moves := game.LegalMoves(board, player, ko, rng)
	// The last entry is always Pass.
	if nonPass := moves[:len(moves)-1]; len(nonPass) > 0 {
		move := nonPass[rng.Intn(len(nonPass))]
		if next, err := game.Apply(board, player, move, ko); err == nil {
			return move, next
		}
	}

	next, _ := game.Apply(board, player, game.Pass(), ko)
	return game.Pass(), next
}

// rollout plays semi-random moves from the given position until two consecutive
// passes or cutoff plies, and returns the final position. full reports whether the
// game ended by passing rather than by the cutoff.
func rollout(rng *rand.Rand, board game.Board, player game.Color, ko *game.Board, passes, cutoff int) (final game.Board, full bool) {
	for ply := 0; ply < cutoff && passes < 2; ply++ {
		move, next := choose(rng, board, player, ko)
		prev := board
		ko = &prev
		board = next
		player = player.Opponent()
		if move.IsPass {
			passes++
		} else {
			passes = 0
		}
	}
	return board, passes >= 2
}
