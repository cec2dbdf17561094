package server

import (
	"errors"
	"fmt"

	"goban/game"
)

var ErrInvalidRequest = errors.New("invalid request")

// MoveRequest asks for a move. Cells hold 0 (empty), 1 (black) or 2 (white);
// any other value is read as empty.
type MoveRequest struct {
	Size       int      `json:"size"`
	ToPlay     int      `json:"toPlay"`
	Komi       *float64 `json:"komi,omitempty"`
	ThinkingMs *int     `json:"thinking_ms,omitempty"`
	Board      [][]int  `json:"board"`
	Ko         [][]int  `json:"ko,omitempty"` // board before the opponent's last move
}

// MoveResponse carries either a point or pass=true.
type MoveResponse struct {
	X     *int `json:"x,omitempty"`
	Y     *int `json:"y,omitempty"`
	Pass  bool `json:"pass"`
	Iters int  `json:"iters"`
}

type ScoreRequest struct {
	Size  int      `json:"size"`
	Komi  *float64 `json:"komi,omitempty"`
	Board [][]int  `json:"board"`
}

type ScoreResponse struct {
	Black  float64 `json:"black"`
	White  float64 `json:"white"`
	Winner int     `json:"winner"` // 0 on a draw
}

type errorResponse struct {
	Error string `json:"error"`
}

func newMoveResponse(move game.Move, iterations int) MoveResponse {
	if move.IsPass {
		return MoveResponse{Pass: true, Iters: iterations}
	}
	x, y := move.X, move.Y
	return MoveResponse{X: &x, Y: &y, Iters: iterations}
}

// position validates the request and returns the board, the player to move and the
// ko board. A ko board of the wrong shape is dropped rather than rejected.
func (req MoveRequest) position() (game.Board, game.Color, *game.Board, error) {
	board, err := parseBoard(req.Size, req.Board)
	if err != nil {
		return game.Board{}, game.Empty, nil, err
	}
	player := game.Color(req.ToPlay)
	if req.ToPlay != int(game.Black) && req.ToPlay != int(game.White) {
		return game.Board{}, game.Empty, nil, fmt.Errorf("%w: toPlay must be 1 or 2", ErrInvalidRequest)
	}

	var ko *game.Board
	if req.Ko != nil {
		if k, err := parseBoard(req.Size, req.Ko); err == nil {
			ko = &k
		}
	}
	return board, player, ko, nil
}

func parseBoard(size int, rows [][]int) (game.Board, error) {
	if !game.ValidSize(size) {
		return game.Board{}, fmt.Errorf("%w: size must be 9, 13 or 19", ErrInvalidRequest)
	}
	if len(rows) != size {
		return game.Board{}, fmt.Errorf("%w: board has %d rows, want %d", ErrInvalidRequest, len(rows), size)
	}
	board, err := game.FromRows(rows)
	if err != nil {
		return game.Board{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return board, nil
}
