package game

import "fmt"

// GameState is a game in progress: the current position plus the history needed for
// simple ko and for ending the game after two passes.
type GameState struct {
	Komi   float64
	board  Board
	ko     *Board // position before the last move; the next move may not recreate it
	toPlay Color
	passes int
	moves  int
}

// NewGameState starts a game on an empty board with Black to play.
func NewGameState(size int, komi float64) *GameState {
	return &GameState{
		Komi:   komi,
		board:  NewBoard(size),
		toPlay: Black,
	}
}

// ResumeGameState continues from an arbitrary position. ko may be nil.
func ResumeGameState(board Board, toPlay Color, ko *Board, komi float64) *GameState {
	return &GameState{
		Komi:   komi,
		board:  board,
		ko:     ko,
		toPlay: toPlay,
	}
}

func (gs *GameState) Board() Board   { return gs.board }
func (gs *GameState) ToPlay() Color  { return gs.toPlay }
func (gs *GameState) Ko() *Board     { return gs.ko }
func (gs *GameState) Passes() int    { return gs.passes }
func (gs *GameState) MoveCount() int { return gs.moves }

// Over reports whether both players passed in succession.
func (gs *GameState) Over() bool {
	return gs.passes >= 2
}

// Play applies move for the player to move.
func (gs *GameState) Play(move Move) error {
	if gs.Over() {
		return fmt.Errorf("play %v: game is over", move)
	}
	next, err := Apply(gs.board, gs.toPlay, move, gs.ko)
	if err != nil {
		return err
	}

	prev := gs.board
	gs.ko = &prev
	gs.board = next
	gs.toPlay = gs.toPlay.Opponent()
	gs.moves++
	if move.IsPass {
		gs.passes++
	} else {
		gs.passes = 0
	}
	return nil
}

// Result scores the current position.
func (gs *GameState) Result() Score {
	return AreaScore(gs.board, gs.Komi)
}

// Copy returns an independent game state. Boards are immutable and can be shared.
func (gs *GameState) Copy() *GameState {
	cp := *gs
	return &cp
}
