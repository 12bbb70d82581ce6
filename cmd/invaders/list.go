package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes",
	Run:   runList,
}

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "List power-ups and what they do",
	Long: `Every power-up shows up on the field as its glyph. Shoot it to
trigger the effect; most last ten seconds, the immediate ones fire once.`,
	Run: runEffects,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	width := 2
	for _, g := range games {
		width = max(width, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", width, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", width, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", width, g.ID, g.Title)
	}
	fmt.Println("\nRun 'invaders play <id>' to play a mode.")
}

func runEffects(_ *cobra.Command, _ []string) {
	bold := lipgloss.NewStyle().Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	classic := make(map[invaders.Effect]bool, len(invaders.ClassicEffects))
	for _, e := range invaders.ClassicEffects {
		classic[e] = true
	}

	for _, e := range invaders.AllEffects() {
		glyph := tui.ColorStyle(e.Color()).Bold(true).Render(string(e.Glyph()))
		tags := ""
		if e.Immediate() {
			tags += " [instant]"
		}
		if classic[e] {
			tags += " [classic]"
		}
		fmt.Printf(" %s  %s%s\n    %s\n", glyph, bold.Render(fmt.Sprintf("%-12s", e.String())), dim.Render(tags), e.Description())
	}
}
