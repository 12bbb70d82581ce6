package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// ScoreSaver persists finished runs. *storage.Store satisfies it.
type ScoreSaver interface {
	SaveScore(gameID, player string, score, level int) (string, error)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel drives one game mode: it collects key presses into an input
// frame, steps the game on every tick and saves the score once per run.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	saver  ScoreSaver
	player string
	config core.RuntimeConfig

	keys  GameKeyMap
	help  help.Model
	input core.InputFrame
	state core.GameState

	lastRunID  string
	scoreSaved bool
	quitting   bool
	backToMenu bool
	standalone bool // Back quits the program when there is no menu
}

// NewGameModel creates a model for the game. A zero seed picks one from the clock.
func NewGameModel(game registry.Game, saver ScoreSaver, player string, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		saver:  saver,
		player: player,
		config: cfg,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		input:  core.NewInputFrame(),
	}
}

// Init starts the game and the frame timer.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles key, resize and tick messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		//nolint:errcheck // Best-effort, the game keeps running
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.game.Step(core.FrameOf(core.ActionQuit))
		m.state = m.game.State()
		m.saveScore()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.state.GameOver || m.state.Paused {
			m.saveScore()
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
	default:
		m.input.Set(action)
	}
	return m, nil
}

// handleResize rebuilds the screen buffer. Games that implement
// registry.Resizer keep their run; others save it and restart.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		m.state = m.game.State()
		return m, nil
	}

	if !m.state.GameOver {
		m.saveScore()
		m.game.Reset(m.config)
		m.state = m.game.State()
		m.scoreSaved = false
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.input.Has(core.ActionRestart) && m.state.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.state = m.game.State()
		m.scoreSaved = false
		m.lastRunID = ""
		m.input.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()

	if m.state.GameOver {
		m.saveScore()
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScore stores the current run once. Empty runs are not recorded.
func (m *GameModel) saveScore() {
	if m.scoreSaved || m.saver == nil || m.state.Score <= 0 {
		return
	}
	m.scoreSaved = true

	runID, err := m.saver.SaveScore(m.game.ID(), m.player, m.state.Score, m.state.Level)
	if err == nil {
		m.lastRunID = runID
	}
}

func (m *GameModel) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game, with the key help under it while paused or over.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.state.Paused || m.state.GameOver {
		out += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState { return m.state }

// LastRunID is the stored run ID of the last saved score.
func (m GameModel) LastRunID() string { return m.lastRunID }

// IsQuitting reports whether the player quit the program.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the player asked to return to the menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// Run plays a game in the local terminal until the player quits.
func Run(game registry.Game, store *storage.Store, player string, cfg core.RuntimeConfig) error {
	var saver ScoreSaver
	if store != nil {
		saver = store
	}

	model := NewGameModel(game, saver, player, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
