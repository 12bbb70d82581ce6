package invaders

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// PowerUp is a stationary pickup activated by shooting it.
type PowerUp struct {
	Pos    core.Position
	Effect Effect
}

// NewPowerUp creates a power-up. It panics if the effect has no glyph,
// which can only happen if the enumeration grows without the table.
func NewPowerUp(pos core.Position, e Effect) *PowerUp {
	if e.Glyph() == 0 {
		panic(fmt.Sprintf("invaders: effect %d has no glyph", int(e)))
	}
	return &PowerUp{Pos: pos, Effect: e}
}

// Glyph returns the rune drawn for the power-up.
func (p *PowerUp) Glyph() rune {
	return p.Effect.Glyph()
}

// Color returns the color tag of the power-up.
func (p *PowerUp) Color() core.Color {
	return p.Effect.Color()
}
