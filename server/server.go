// Package server exposes the searcher over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"goban/config"
	"goban/game"
	"goban/searcher"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

type Server struct {
	cfg    config.Config
	router chi.Router
	seed   atomic.Uint64 // next search seed
}

func New(cfg config.Config) *Server {
	s := &Server{cfg: cfg}
	s.seed.Store(uint64(time.Now().UnixNano()))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(middleware.SetHeader("Cache-Control", "no-store"))

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/api/move", s.handleMove)
	r.Post("/api/score", s.handleScore)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is cancelled, then shuts down
// within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("move service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down move service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	board, player, ko, err := req.position()
	if err != nil {
		writeError(w, err)
		return
	}

	komi := s.cfg.Search.Komi
	if req.Komi != nil {
		komi = *req.Komi
	}
	thinking := s.cfg.Search.ThinkingMs
	if req.ThinkingMs != nil {
		thinking = min(*req.ThinkingMs, s.cfg.Search.MaxMs)
	}

	mcts := searcher.NewMCTS(
		searcher.WithDuration(max(time.Duration(thinking)*time.Millisecond, searcher.MinDuration)),
		searcher.WithKomi(komi),
		searcher.WithExploration(s.cfg.Search.Exploration),
		searcher.WithSeed(s.seed.Add(1)),
	)
	move, iterations := mcts.Decide(board, player, ko)

	hlog.FromRequest(r).Debug().
		Int("size", board.Size()).
		Str("player", player.String()).
		Bool("ko", ko != nil).
		Int("thinking_ms", thinking).
		Int("iterations", iterations).
		Str("move", move.String()).
		Msg("move chosen")
	writeJSON(w, http.StatusOK, newMoveResponse(move, iterations))
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	board, err := parseBoard(req.Size, req.Board)
	if err != nil {
		writeError(w, err)
		return
	}

	komi := s.cfg.Search.Komi
	if req.Komi != nil {
		komi = *req.Komi
	}
	score := game.AreaScore(board, komi)
	writeJSON(w, http.StatusOK, ScoreResponse{
		Black:  score.Black,
		White:  score.White,
		Winner: int(score.Winner()),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrInvalidRequest) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
