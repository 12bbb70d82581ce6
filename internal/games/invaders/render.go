package invaders

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Render draws the current game state to the screen.
// The field is centered; the active effects are listed under it.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.cfg.Field.Width, g.cfg.Field.Height+1)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	field := g.engine.Field()
	offX := (dst.Width() - field.Width) / 2
	offY := (dst.Height() - field.Height - 1) / 2

	dst.DrawBox(core.NewRect(offX, offY, field.Width, field.Height))
	g.renderHUD(dst, offX, offY)

	for _, s := range g.engine.Sprites() {
		if field.OutOfBounds(s.Pos) {
			continue
		}
		dst.SetColored(offX+s.Pos.Col, offY+s.Pos.Row, s.Glyph, s.Color)
	}

	g.renderFooter(dst, offX, offY+field.Height)
	g.renderOverlay(dst)
}

// renderHUD draws score, level and ships on the first row inside the border.
func (g *Game) renderHUD(dst *core.Screen, offX, offY int) {
	width := g.engine.Field().Width
	dst.DrawText(offX+1, offY+1, fmt.Sprintf("SCORE: %d", g.score))

	level := fmt.Sprintf("LVL %d", g.engine.Level())
	dst.DrawTextCentered(offY+1, level)

	ships := "LAST"
	color := core.ColorBrightRed
	if g.lives > 0 {
		ships = strings.Repeat("♥", g.lives)
		color = core.ColorRed
	}
	text := "SHIPS: " + ships
	dst.DrawTextColored(offX+width-1-len([]rune(text)), offY+1, text, color)
}

// renderFooter lists active effects, truncated to the field width.
func (g *Game) renderFooter(dst *core.Screen, offX, y int) {
	text := FooterText(g.engine.ActiveEffects(), g.engine.Field().Width)
	dst.DrawTextColored(offX, y, text, core.ColorGray)
}

// FooterText joins effect names with their seconds left, ending with "..."
// when they do not fit.
func FooterText(effects []ActiveEffect, width int) string {
	if len(effects) == 0 || width <= 0 {
		return ""
	}
	names := make([]string, len(effects))
	for i, a := range effects {
		secs := (a.Left + time.Second - 1) / time.Second
		names[i] = fmt.Sprintf("%s %ds", a.Effect, secs)
	}
	text := "POWERS: " + strings.Join(names, " ")
	if len(text) <= width {
		return text
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	return text[:width-3] + "..."
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  R to restart", g.score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
