// Package registry maps game mode IDs to factories.
// Modes register themselves from init(), so the CLI and the SSH server can
// list and start them without importing each one by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Game is what the platform drives each frame.
// Implementations hold no terminal state; the platform maps keys to
// actions, owns the frame timer and paints the screen buffer.
type Game interface {
	// ID is the stable identifier used on the command line and in the
	// score table (e.g. "invaders_classic").
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh run with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new window size
// without restarting the run.
type Resizer interface {
	Resize(width, height int)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a mode. It panics on an empty or duplicate ID.
func Register(id string, f Factory) {
	if strings.TrimSpace(id) == "" {
		panic("registry: empty game id")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, ok := entries[id]; ok {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered mode sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// IDs returns the registered mode IDs in sorted order.
func IDs() []string {
	infos := List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}

// Create builds a new instance of the mode.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q (available: %s)", id, strings.Join(IDs(), ", "))
	}
	return e.factory(), nil
}

// Exists reports whether the mode is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
