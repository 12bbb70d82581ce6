package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagLimit       int
	flagScoresTUI   bool
	flagScoresOwner string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the best runs of a mode (default "invaders").

Examples:
  invaders scores
  invaders scores invaders_classic --limit 20
  invaders scores --player alice
  invaders scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().StringVar(&flagScoresOwner, "player", "", "Only show this player's runs (all modes)")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "invaders"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'invaders list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var scores []storage.ScoreEntry
	title := gameID
	if flagScoresOwner != "" {
		scores, err = store.PlayerScores(flagScoresOwner, flagLimit)
		title = flagScoresOwner
	} else {
		scores, err = store.TopScores(gameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n\n", title)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("\nPlay 'invaders play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-16s  %-14s  %-8s  %-3s  %s\n", "Rank", "Mode", "Player", "Score", "Lvl", "Date")
	fmt.Printf("  %-4s  %-16s  %-14s  %-8s  %-3s  %s\n", "----", "----", "------", "-----", "---", "----")
	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-16s  %-14s  %-8d  %-3d  %s\n",
			i+1, e.GameID, player, e.Score, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagScoresOwner == "" {
		if stats, err := store.Stats(gameID); err == nil {
			fmt.Printf("\n%d runs, best %d, average %.0f\n", stats.Runs, stats.HighScore, stats.AvgScore)
		}
	}
}
