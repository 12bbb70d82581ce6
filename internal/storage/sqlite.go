// Package storage keeps finished runs in SQLite.
// It uses the pure-Go modernc.org/sqlite driver, so no CGO is needed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store is a handle on the score database.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished run.
type ScoreEntry struct {
	RunID     string
	GameID    string
	Player    string
	Score     int
	Level     int
	CreatedAt time.Time
}

// GameStats aggregates every run of one mode.
type GameStats struct {
	GameID     string
	Runs       int
	HighScore  int
	BestLevel  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens the database at dbPath, creating parent
// directories and the schema as needed. A leading ~ expands to the
// user's home directory.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run and returns its generated run ID.
func (s *Store) SaveScore(gameID, player string, score, level int) (string, error) {
	runID := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (run_id, game_id, player, score, level) VALUES (?, ?, ?, ?, ?)",
		runID, gameID, player, score, level,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save score: %w", err)
	}
	return runID, nil
}

// ErrInvalidRunID is returned by Run when the ID is not a UUID.
var ErrInvalidRunID = errors.New("storage: invalid run id")

// Run looks up a single run. It returns nil when the run does not exist.
func (s *Store) Run(runID string) (*ScoreEntry, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidRunID, runID, err)
	}

	row := s.db.QueryRow(
		`SELECT run_id, game_id, player, score, level, created_at FROM runs WHERE run_id = ?`,
		runID,
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &e, nil
}

// TopScores returns the best runs of a mode, highest score first.
// Ties go to the higher level, then the earlier run.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT run_id, game_id, player, score, level, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, level DESC, created_at ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// PlayerScores returns a player's runs across all modes, best first.
func (s *Store) PlayerScores(player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT run_id, game_id, player, score, level, created_at
		 FROM runs
		 WHERE player = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		player, limit,
	)
}

// HighScore returns the best score of a mode, or 0 when it was never played.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE game_id = ?", gameID).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes every run of a mode.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats aggregates the runs of one mode.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var last sql.NullString

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0),
		        COALESCE(AVG(score), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.HighScore, &stats.BestLevel, &stats.AvgScore, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if last.Valid {
		stats.LastPlayed = parseTime(last.String)
	}
	return stats, nil
}

func (s *Store) query(q string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (ScoreEntry, error) {
	var e ScoreEntry
	var createdAt any
	if err := sc.Scan(&e.RunID, &e.GameID, &e.Player, &e.Score, &e.Level, &createdAt); err != nil {
		return ScoreEntry{}, err
	}

	// The driver hands back either time.Time or the raw text.
	switch v := createdAt.(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		e.CreatedAt = parseTime(v)
	}
	return e, nil
}

func parseTime(v string) time.Time {
	if t, err := time.Parse(sqliteTimeLayout, v); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	return time.Time{}
}
