package game

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

var (
	ErrOutOfBounds = errors.New("point is off the board")
	ErrOccupied    = errors.New("point is occupied")
	ErrSuicide     = errors.New("move is suicide")
	ErrKo          = errors.New("move repeats the position two plies ago")
)

// Apply plays move for player on board and returns the resulting board.
// The input board is left untouched.
//
// ko is the position two plies before the one this move produces (the board before
// the opponent's last move), or nil. A move that recreates it exactly is rejected.
// Only that single position is compared, so longer cycles are not detected.
func Apply(board Board, player Color, move Move, ko *Board) (Board, error) {
	if move.IsPass {
		return board.copy(), nil
	}

	p := move.Point
	if !board.InBounds(p) {
		return Board{}, fmt.Errorf("play %v: %w", move, ErrOutOfBounds)
	}
	if board.At(p) != Empty {
		return Board{}, fmt.Errorf("play %v: %w", move, ErrOccupied)
	}

	next := board.with(p, player)
	opponent := player.Opponent()

	// Adjacent opponent stones may belong to one group; resolve each group once.
	resolved := bitset.New(uint(len(next.cells)))
	for _, nb := range next.Neighbors(p) {
		if next.At(nb) != opponent || resolved.Test(uint(next.index(nb))) {
			continue
		}
		stones, libs := next.Group(nb)
		for _, s := range stones {
			resolved.Set(uint(next.index(s)))
		}
		if len(libs) == 0 {
			next.clear(stones)
		}
	}

	if next.Liberties(p) == 0 {
		return Board{}, fmt.Errorf("play %v: %w", move, ErrSuicide)
	}

	if ko != nil && next.Equal(*ko) {
		return Board{}, fmt.Errorf("play %v: %w", move, ErrKo)
	}

	return next, nil
}

// IsLegal reports whether Apply would accept the move.
func IsLegal(board Board, player Color, move Move, ko *Board) bool {
	_, err := Apply(board, player, move, ko)
	return err == nil
}
