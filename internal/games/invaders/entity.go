package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// Visual characters for rendering
const (
	GlyphPlayer   = 'A'
	GlyphEnemy    = 'W'
	GlyphBullet   = '|'
	GlyphLaser    = '!'
	GlyphUltra    = '¦'
	GlyphShield   = '#'
	GlyphObstacle = '='
	GlyphFollower = '^'
	GlyphBossL    = '<'
	GlyphBossR    = '>'
)

// Entity colors
const (
	ColorPlayer     = core.ColorBrightGreen
	ColorAlly       = core.ColorBrightCyan
	ColorEnemy      = core.ColorBrightWhite
	ColorControlled = core.ColorGreen
	ColorNumb       = core.ColorBlue
	ColorBullet     = core.ColorBrightYellow
	ColorLaser      = core.ColorBrightRed
	ColorTurned     = core.ColorMagenta
	ColorUltra      = core.ColorBrightMagenta
	ColorShield     = core.ColorBrightBlue
	ColorObstacle   = core.ColorOrange
	ColorFollower   = core.ColorGreen
	ColorBoss       = core.ColorRed
)

// Projectile is a shot travelling one cell per tick in a fixed direction.
type Projectile struct {
	Pos       core.Position
	Dir       core.Direction
	Glyph     rune
	Color     core.Color
	Explosive bool // Bursts into a stray projectile when consumed
	Turned    bool // Enemy shot that hunts its own formation
}

// Advance moves the projectile one cell along its direction.
func (p *Projectile) Advance() {
	p.Pos = core.Advance(p.Pos, p.Dir)
}

// Shooter is any entity that owns projectiles: the ship, an enemy, the xerox ally.
type Shooter struct {
	Pos         core.Position
	Glyph       rune
	Color       core.Color
	Projectiles []*Projectile // Oldest first
	Controlled  bool          // Mind-controlled, fights for the player
	Numb        bool          // Frozen in place
	Revert      bool          // Shots fly in the opposite direction
}

// NewShooter creates a shooter with no projectiles.
func NewShooter(pos core.Position, glyph rune, color core.Color) *Shooter {
	return &Shooter{Pos: pos, Glyph: glyph, Color: color}
}

// Shoot fires a projectile from the shooter's own cell.
func (s *Shooter) Shoot(dir core.Direction, explosive bool, glyph rune, color core.Color) *Projectile {
	return s.ShootFrom(s.Pos, dir, explosive, glyph, color)
}

// ShootFrom fires a projectile owned by s from an arbitrary cell.
func (s *Shooter) ShootFrom(pos core.Position, dir core.Direction, explosive bool, glyph rune, color core.Color) *Projectile {
	if s.Revert {
		dir = dir.Opposite()
	}
	p := &Projectile{
		Pos:       pos,
		Dir:       dir,
		Glyph:     glyph,
		Color:     color,
		Explosive: explosive,
	}
	s.Projectiles = append(s.Projectiles, p)
	return p
}

// Shift moves the shooter one cell unless that would leave the field.
func (s *Shooter) Shift(dir core.Direction, field core.Field) bool {
	next := core.Advance(s.Pos, dir)
	if field.OutOfBounds(next) {
		return false
	}
	s.Pos = next
	return true
}

// MindControl turns the shooter into an ally.
func (s *Shooter) MindControl() {
	s.Controlled = true
	s.Color = ColorControlled
}

// SetNumb freezes the shooter.
func (s *Shooter) SetNumb() {
	s.Numb = true
	s.Color = ColorNumb
}

// ClearProjectiles prunes projectiles that left the playable area.
func (s *Shooter) ClearProjectiles(field core.Field) {
	s.Projectiles = removeProjectiles(s.Projectiles, func(p *Projectile) bool {
		return field.OutOfBounds(p.Pos)
	})
}

// DropProjectiles removes every projectile matching fn.
func (s *Shooter) DropProjectiles(fn func(p *Projectile) bool) int {
	before := len(s.Projectiles)
	s.Projectiles = removeProjectiles(s.Projectiles, fn)
	return before - len(s.Projectiles)
}

// HasProjectileAt reports whether one of the shooter's projectiles is on pos.
func (s *Shooter) HasProjectileAt(pos core.Position) bool {
	for _, p := range s.Projectiles {
		if p.Pos == pos {
			return true
		}
	}
	return false
}

func removeProjectiles(ps []*Projectile, drop func(p *Projectile) bool) []*Projectile {
	kept := ps[:0]
	for _, p := range ps {
		if !drop(p) {
			kept = append(kept, p)
		}
	}
	clear(ps[len(kept):])
	return kept
}

// Structure is a stationary defence with a life counter:
// a shield, an obstacle or the follower escort.
type Structure struct {
	Pos   core.Position
	Lives int
	Glyph rune
	Color core.Color
}

// Damage removes one life.
func (s *Structure) Damage() {
	if s.Lives > 0 {
		s.Lives--
	}
}

// Alive reports whether the structure has lives left.
func (s *Structure) Alive() bool {
	return s.Lives > 0
}

// Boss crosses the top playable row, occupying two cells.
type Boss struct {
	Left int // Column of the left cell
	Row  int
}

// Cells returns both occupied positions.
func (b *Boss) Cells() [2]core.Position {
	return [2]core.Position{core.Pos(b.Row, b.Left), core.Pos(b.Row, b.Left+1)}
}

// Occupies reports whether pos is one of the boss's cells.
func (b *Boss) Occupies(pos core.Position) bool {
	return pos.Row == b.Row && (pos.Col == b.Left || pos.Col == b.Left+1)
}

// Sprite is one drawable cell handed to the display surface.
type Sprite struct {
	Pos   core.Position
	Glyph rune
	Color core.Color
}
