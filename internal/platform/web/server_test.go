package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	_ "github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(NewServer(":0", store, log.New(io.Discard)))
	t.Cleanup(srv.Close)
	return srv, store
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, expected %d", url, resp.StatusCode, wantStatus)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
	}
}

func TestModes(t *testing.T) {
	srv, _ := newTestServer(t)

	var modes []Mode
	getJSON(t, srv.URL+"/api/modes", http.StatusOK, &modes)

	found := map[string]string{}
	for _, m := range modes {
		found[m.ID] = m.Title
	}
	if found["invaders"] != "Invaders" || found["invaders_classic"] != "Invaders (Classic)" {
		t.Errorf("Modes = %+v", modes)
	}
}

func TestScores(t *testing.T) {
	srv, store := newTestServer(t)
	for i, score := range []int{120, 900, 40} {
		if _, err := store.SaveScore("invaders", "pilot", score, i+1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	var scores []Score
	getJSON(t, srv.URL+"/api/modes/invaders/scores?limit=2", http.StatusOK, &scores)
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if scores[0].Rank != 1 || scores[0].Score != 900 || scores[0].Level != 2 || scores[0].Player != "pilot" {
		t.Errorf("Top score = %+v", scores[0])
	}

	var run Score
	getJSON(t, srv.URL+"/api/runs/"+scores[0].RunID, http.StatusOK, &run)
	if run.Score != 900 || run.Game != "invaders" {
		t.Errorf("Run = %+v", run)
	}

	var stats Stats
	getJSON(t, srv.URL+"/api/modes/invaders/stats", http.StatusOK, &stats)
	if stats.Runs != 3 || stats.HighScore != 900 || stats.BestLevel != 3 || stats.LastPlayed == nil {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"unknown mode", "/api/modes/pong/scores", http.StatusNotFound},
		{"unknown mode stats", "/api/modes/pong/stats", http.StatusNotFound},
		{"bad limit", "/api/modes/invaders/scores?limit=-3", http.StatusBadRequest},
		{"malformed run", "/api/runs/abc", http.StatusBadRequest},
		{"missing run", "/api/runs/9b2f4b0e-6a4e-4b8e-9d55-0d7c1b9f2a11", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var body errorBody
			getJSON(t, srv.URL+tc.path, tc.status, &body)
			if body.Error == "" {
				t.Error("Error body should carry a message")
			}
		})
	}
}

func TestRunStoreFailure(t *testing.T) {
	srv, store := newTestServer(t)
	store.Close()

	var body errorBody
	getJSON(t, srv.URL+"/api/runs/9b2f4b0e-6a4e-4b8e-9d55-0d7c1b9f2a11", http.StatusInternalServerError, &body)
	if body.Error != "internal error" {
		t.Errorf("Error body = %q, expected internal error", body.Error)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	var body map[string]string
	getJSON(t, srv.URL+"/healthz", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Errorf("Health = %v", body)
	}
}
