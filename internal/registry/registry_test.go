package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

type stubGame struct{ id string }

func (s stubGame) ID() string                           { return s.id }
func (s stubGame) Title() string                        { return strings.ToUpper(s.id) }
func (s stubGame) Reset(core.RuntimeConfig)             {}
func (s stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s stubGame) Render(*core.Screen)                  {}
func (s stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", func() Game { return stubGame{id: "test_b"} })
	Register("test_a", func() Game { return stubGame{id: "test_a"} })

	if !Exists("test_a") || Exists("test_missing") {
		t.Fatal("Exists reported the wrong registrations")
	}

	g, err := Create("test_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "test_a" {
		t.Errorf("Created game ID = %q", g.ID())
	}

	ids := IDs()
	ia, ib := -1, -1
	for i, id := range ids {
		switch id {
		case "test_a":
			ia = i
		case "test_b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("IDs should be sorted, got %v", ids)
	}

	for _, info := range List() {
		if info.ID == "test_b" && info.Title != "TEST_B" {
			t.Errorf("Title = %q, expected TEST_B", info.Title)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("nope")
	if err == nil || !strings.Contains(err.Error(), `unknown game "nope"`) {
		t.Errorf("Create(nope) error = %v", err)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty id", " "},
		{"duplicate", "test_dup"},
	}
	Register("test_dup", func() Game { return stubGame{id: "test_dup"} })

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register should panic")
				}
			}()
			Register(tc.id, func() Game { return stubGame{id: tc.id} })
		})
	}
}
