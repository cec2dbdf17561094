package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"goban/experiments/metrics"
	"goban/game"
	"goban/server"

	"github.com/rs/zerolog/log"
)

// RemoteAgent asks a running move service for its moves, so a local searcher can
// be matched against a deployed one.
type RemoteAgent struct {
	URL        string // service root, e.g. http://127.0.0.1:8000
	ThinkingMs int
	Client     *http.Client
}

func NewRemoteAgent(url string, thinking time.Duration) *RemoteAgent {
	return &RemoteAgent{
		URL:        url,
		ThinkingMs: int(thinking.Milliseconds()),
		Client:     &http.Client{Timeout: thinking + 10*time.Second},
	}
}

// FindMove implements agent.Agent. Transport failures are reported as a pass, and
// the returned metrics only carry the iteration count and round trip time.
func (a *RemoteAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	start := time.Now()
	resp, err := a.requestMove(state)
	metric := metrics.SearchMetric{
		BoardSize: state.Board().Size(),
		Duration:  time.Since(start),
	}
	if err != nil {
		log.Warn().Err(err).Msg("remote agent failed, passing")
		return game.Pass(), metric
	}

	metric.Episodes = resp.Iters
	if resp.Pass || resp.X == nil || resp.Y == nil {
		return game.Pass(), metric
	}
	return game.Play(*resp.X, *resp.Y), metric
}

func (a *RemoteAgent) requestMove(state *game.GameState) (*server.MoveResponse, error) {
	komi := state.Komi
	payload := server.MoveRequest{
		Size:       state.Board().Size(),
		ToPlay:     int(state.ToPlay()),
		Komi:       &komi,
		ThinkingMs: &a.ThinkingMs,
		Board:      state.Board().Rows(),
	}
	if ko := state.Ko(); ko != nil {
		payload.Ko = ko.Rows()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode move request: %w", err)
	}
	resp, err := a.Client.Post(a.URL+"/api/move", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to request move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("move service returned status %d: %s", resp.StatusCode, out)
	}

	var move server.MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&move); err != nil {
		return nil, fmt.Errorf("failed to decode move response: %w", err)
	}
	return &move, nil
}
