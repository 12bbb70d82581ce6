package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// palette maps screen colors to terminal color codes (ANSI 16 + 256 extras).
var palette = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var styles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	out := make(map[core.Color]lipgloss.Style, len(palette)+1)
	out[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range palette {
		out[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return out
}

// ColorStyle returns the lipgloss style for a screen color.
func ColorStyle(c core.Color) lipgloss.Style {
	if s, ok := styles[c]; ok {
		return s
	}
	return styles[core.ColorDefault]
}

// RenderScreen turns a screen buffer into styled terminal output.
// Adjacent cells sharing a color are emitted as one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		current := s.GetCell(0, y).Color
		run.Reset()
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				sb.WriteString(ColorStyle(current).Render(run.String()))
				run.Reset()
				current = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			sb.WriteString(ColorStyle(current).Render(run.String()))
		}
	}
	return sb.String()
}
