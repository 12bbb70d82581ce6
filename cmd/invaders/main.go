// invaders is a terminal space shooter with power-ups that bend the rules.
//
// Usage:
//
//	invaders play [mode]      - Play locally (default mode: invaders)
//	invaders serve            - Host SSH play and an optional HTTP leaderboard
//	invaders scores [mode]    - Show high scores
//	invaders list             - List game modes
//	invaders effects          - List power-ups
//	invaders config           - Print the default config
//
// Global flags:
//
//	--fps <rate>    - Frame rate of the terminal loop (default: 60)
//	--seed <value>  - RNG seed for reproducible runs
//	--db <path>     - Scores database (default: ~/.arcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

var (
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Terminal invaders with rule-bending power-ups",
	Long: `Invaders is a terminal shooter: hold off a descending formation,
and shoot the power-ups to change the rules for ten seconds.

Examples:
  invaders play
  invaders play invaders_classic --difficulty easy
  invaders serve --ssh :2222 --http :8080
  invaders scores --limit 20
  invaders effects`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate of the terminal loop")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	rootCmd.AddCommand(playCmd, serveCmd, scoresCmd, listCmd, effectsCmd, configCmd)
}
