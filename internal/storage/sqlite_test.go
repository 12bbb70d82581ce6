package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRun(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.SaveScore("invaders", "alice", 4120, 3)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Fatalf("Run ID %q is not a UUID: %v", runID, err)
	}

	run, err := store.Run(runID)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run == nil {
		t.Fatal("Run() returned nil for a saved run")
	}
	if run.GameID != "invaders" || run.Player != "alice" || run.Score != 4120 || run.Level != 3 {
		t.Errorf("Run() = %+v", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	missing, err := store.Run(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("Unknown run should return nil, nil; got %v, %v", missing, err)
	}

	if _, err := store.Run("not-a-uuid"); !errors.Is(err, ErrInvalidRunID) {
		t.Errorf("Malformed run ID should fail with ErrInvalidRunID, got %v", err)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		game  string
		score int
		level int
	}{
		{"invaders", 100, 1},
		{"invaders", 300, 2},
		{"invaders", 300, 4},
		{"invaders", 50, 1},
		{"invaders_classic", 900, 5},
	}
	for _, s := range saves {
		if _, err := store.SaveScore(s.game, "bob", s.score, s.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("invaders", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	expected := []struct{ score, level int }{{300, 4}, {300, 2}, {100, 1}}
	for i, want := range expected {
		if scores[i].Score != want.score || scores[i].Level != want.level {
			t.Errorf("scores[%d] = %d/L%d, expected %d/L%d", i, scores[i].Score, scores[i].Level, want.score, want.level)
		}
	}

	classic, err := store.TopScores("invaders_classic", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(classic) != 1 {
		t.Errorf("Expected 1 classic score, got %d", len(classic))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("invaders")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for an unplayed mode, got %d", high)
	}

	store.SaveScore("invaders", "", 100, 1)
	store.SaveScore("invaders", "", 300, 2)
	store.SaveScore("invaders_classic", "", 700, 2)

	if high, _ = store.HighScore("invaders"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.ClearScores("invaders"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("invaders", 10); len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("invaders_classic", 10); len(scores) != 1 {
		t.Error("Clearing one mode should not affect another")
	}
}

func TestStorePlayerScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("invaders", "carol", 200, 2)
	store.SaveScore("invaders_classic", "carol", 500, 3)
	store.SaveScore("invaders", "dave", 900, 6)

	scores, err := store.PlayerScores("carol", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 runs for carol, got %d", len(scores))
	}
	if scores[0].GameID != "invaders_classic" || scores[0].Score != 500 {
		t.Errorf("Best run = %+v", scores[0])
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("invaders")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Empty stats = %+v", empty)
	}

	store.SaveScore("invaders", "", 100, 1)
	store.SaveScore("invaders", "", 300, 4)

	stats, err := store.Stats("invaders")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 300 || stats.BestLevel != 4 || stats.AvgScore != 200 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}
