package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
	StateTooSmall GameStateType = "paused_small_window"
)

// GameMode selects the power-up pool.
type GameMode int

const (
	ModeStandard GameMode = iota // All effects
	ModeClassic                  // The early five-effect pool
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Options overrides how a game is built. Zero values pick defaults.
type Options struct {
	Clock  core.Clock             // Defaults to the system clock
	Config *config.InvadersConfig // Skips config file loading when set
}

// Game wraps the engine with lives, score, level progression and the
// refresh gate. Input is applied on every Step; the simulation only runs
// once per refresh interval.
type Game struct {
	mode GameMode
	opts Options

	engine     *Engine
	cfg        config.InvadersConfig
	difficulty *config.DifficultyManager
	clock      core.Clock
	runtime    core.RuntimeConfig

	score      int
	lives      int
	maxLives   int
	lastUpdate time.Time
	tick       uint64 // Simulation steps run

	state    GameStateType
	quit     bool
	tooSmall bool
}

// New creates a standard invaders game.
func New() *Game {
	return &Game{mode: ModeStandard}
}

// NewClassic creates an invaders game with the classic power-up pool.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

// NewWithOptions creates a game with an injected clock or config.
func NewWithOptions(mode GameMode, opts Options) *Game {
	return &Game{mode: mode, opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return "invaders_classic"
	}
	return "invaders"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Invaders (Classic)"
	}
	return "Invaders"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	var cfg config.InvadersConfig
	if g.opts.Config != nil {
		cfg = *g.opts.Config
	} else {
		loaded, err := config.LoadInvaders(configPath)
		if err != nil {
			loaded = config.DefaultInvadersConfig()
		}
		if difficultyPreset != "" {
			config.ApplyInvadersPreset(&loaded, difficultyPreset)
		}
		cfg = loaded
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.clock = g.opts.Clock
	if g.clock == nil {
		g.clock = core.SystemClock{}
	}

	g.engine = NewEngine(cfg, g.clock, runtime.Seed)
	if g.mode == ModeClassic {
		g.engine.SetPool(ClassicEffects)
	}

	g.score = 0
	g.lives = cfg.Player.Lives
	g.maxLives = cfg.Player.Lives
	g.tick = 0
	g.quit = false
	g.lastUpdate = g.clock.Now()
	g.state = StatePlaying

	g.tooSmall = !g.fits(runtime.ScreenW, runtime.ScreenH)
}

// Resize records a new window size and keeps the current run going.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height

	wasSmall := g.tooSmall
	g.tooSmall = !g.fits(width, height)
	if wasSmall && !g.tooSmall && g.clock != nil {
		g.lastUpdate = g.clock.Now()
	}
}

// fits reports whether the field and its HUD line fit in the window.
func (g *Game) fits(width, height int) bool {
	return width >= g.cfg.Field.Width && height >= g.cfg.Field.Height+1
}

// Engine exposes the simulation for tests and tooling.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Lives returns the remaining spare ships.
func (g *Game) Lives() int {
	return g.lives
}

// Step applies one frame of input and runs the simulation when the
// refresh interval has elapsed.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		g.quit = true
		g.state = StateGameOver
		return core.StepResult{State: g.State()}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.state == StateGameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePaused:
			g.state = StatePlaying
			g.lastUpdate = g.clock.Now()
		case StatePlaying:
			g.state = StatePaused
		}
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	if len(g.engine.Enemies()) == 0 {
		g.engine.LevelUp()
		if g.lives < g.maxLives {
			g.lives++
		}
	}

	if in.Has(core.ActionFire) {
		g.engine.Fire()
	}
	if in.Has(core.ActionLeft) {
		g.engine.MovePlayer(core.DirLeft)
	} else if in.Has(core.ActionRight) {
		g.engine.MovePlayer(core.DirRight)
	}

	now := g.clock.Now()
	if now.Sub(g.lastUpdate) >= g.cfg.Timing.Refresh {
		g.simulate()
		g.lastUpdate = now
	}

	if g.lives < 0 {
		g.state = StateGameOver
	}
	return core.StepResult{State: g.State()}
}

// simulate runs one refresh tick of the engine.
func (g *Game) simulate() {
	g.tick++

	wave := g.engine.Level()
	g.engine.SetSpawnRates(
		g.difficulty.PowerProbability(g.cfg.Spawn.PowerProbability, g.score, wave),
		g.difficulty.FireProbability(g.cfg.Spawn.FireProbability, g.score, wave),
	)

	g.engine.Generate()
	if g.engine.Advance() {
		g.loseShip()
		g.engine.RestartWave()
	}
	if g.engine.Resolve() {
		g.loseShip()
	}
	g.score += g.engine.TakeScore()
}

func (g *Game) loseShip() {
	g.lives--
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	level := 0
	if g.engine != nil {
		level = g.engine.Level()
	}
	return core.GameState{
		Score:    g.score,
		Level:    level,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
		Quit:     g.quit,
	}
}

// Register the games with the registry
func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
	registry.Register("invaders_classic", func() registry.Game {
		return NewClassic()
	})
}
