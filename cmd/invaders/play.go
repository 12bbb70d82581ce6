package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in this terminal",
	Long: `Start a local game. The mode defaults to "invaders"; "invaders_classic"
limits power-ups to the original five.

Controls:
  Left/Right, A/D  - Move
  Space/Up/W       - Fire
  P                - Pause
  R                - Restart (after game over)
  Esc              - Leave (while paused or after game over)
  Q/Ctrl+C         - Quit

Difficulty presets:
  easy    - 5 ships, slower enemy fire, longer power-ups
  normal  - Default config
  hard    - 2 ships, heavy fire, rare power-ups
  fixed   - No progression across waves

Examples:
  invaders play
  invaders play invaders_classic
  invaders play --difficulty hard
  invaders play --config ./my-invaders.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom invaders config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name stored with your scores")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "invaders"
	if len(args) == 1 {
		gameID = args[0]
	}

	if flagDifficulty != "" {
		if config.ParsePreset(flagDifficulty) == "" {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
			os.Exit(1)
		}
	}
	if _, err := config.LoadInvaders(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	invaders.SetConfigPath(flagConfig)
	invaders.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'invaders list' to see available modes.")
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, flagPlayer, cfg)
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
