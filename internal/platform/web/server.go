// Package web serves a read-only JSON leaderboard next to the SSH server.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ScoreStore is the subset of *storage.Store the leaderboard reads.
type ScoreStore interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	Run(runID string) (*storage.ScoreEntry, error)
	Stats(gameID string) (*storage.GameStats, error)
}

// Mode is a registered game mode.
type Mode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Score is one leaderboard row.
type Score struct {
	Rank      int       `json:"rank,omitempty"`
	RunID     string    `json:"run_id"`
	Game      string    `json:"game"`
	Player    string    `json:"player,omitempty"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats summarizes a mode.
type Stats struct {
	Game       string     `json:"game"`
	Runs       int        `json:"runs"`
	HighScore  int        `json:"high_score"`
	BestLevel  int        `json:"best_level"`
	AvgScore   float64    `json:"avg_score"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Server is the leaderboard HTTP server.
type Server struct {
	addr   string
	store  ScoreStore
	logger *log.Logger
	router *mux.Router
}

// NewServer builds the router. logger may be nil.
func NewServer(addr string, store ScoreStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		addr:   addr,
		store:  store,
		logger: logger.WithPrefix("http"),
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/modes", s.handleModes).Methods(http.MethodGet)
	api.HandleFunc("/modes/{game}/scores", s.handleScores).Methods(http.MethodGet)
	api.HandleFunc("/modes/{game}/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/runs/{run}", s.handleRun).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting leaderboard", "address", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"took", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	modes := make([]Mode, len(games))
	for i, g := range games {
		modes[i] = Mode{ID: g.ID, Title: g.Title}
	}
	writeJSON(w, http.StatusOK, modes)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	game, ok := s.mode(w, r)
	if !ok {
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
		limit = min(n, maxLimit)
	}

	entries, err := s.store.TopScores(game, limit)
	if err != nil {
		s.internalError(w, "top scores", err)
		return
	}

	scores := make([]Score, len(entries))
	for i, e := range entries {
		scores[i] = toScore(e)
		scores[i].Rank = i + 1
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	game, ok := s.mode(w, r)
	if !ok {
		return
	}

	st, err := s.store.Stats(game)
	if err != nil {
		s.internalError(w, "stats", err)
		return
	}

	out := Stats{
		Game:      st.GameID,
		Runs:      st.Runs,
		HighScore: st.HighScore,
		BestLevel: st.BestLevel,
		AvgScore:  st.AvgScore,
	}
	if !st.LastPlayed.IsZero() {
		out.LastPlayed = &st.LastPlayed
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["run"]
	entry, err := s.store.Run(runID)
	if errors.Is(err, storage.ErrInvalidRunID) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, "run", err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, toScore(*entry))
}

// mode extracts the {game} variable and rejects unregistered modes.
func (s *Server) mode(w http.ResponseWriter, r *http.Request) (string, bool) {
	game := mux.Vars(r)["game"]
	if !registry.Exists(game) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown mode %q", game))
		return "", false
	}
	return game, true
}

func (s *Server) internalError(w http.ResponseWriter, what string, err error) {
	s.logger.Error("query failed", "query", what, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func toScore(e storage.ScoreEntry) Score {
	return Score{
		RunID:     e.RunID,
		Game:      e.GameID,
		Player:    e.Player,
		Score:     e.Score,
		Level:     e.Level,
		CreatedAt: e.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // The client may have gone away
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
