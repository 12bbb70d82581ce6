package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Engine owns every entity of one invaders run and advances the simulation.
//
// Callers drive it with a fixed sequence per tick:
// Fire/MovePlayer on input, then Generate, Advance and Resolve.
// Gameplay failures (ship hit, formation overrun) are return values.
type Engine struct {
	field   core.Field
	cfg     config.InvadersConfig
	clock   core.Clock
	rng     *core.SimpleRNG
	effects *Registry
	pool    []Effect

	player    *Shooter
	enemies   []*Shooter
	boss      *Boss
	shields   []*Structure
	obstacles []*Structure
	follower  *Structure
	xerox     *Shooter
	powerups  []*PowerUp

	formation  Formation
	lastAttack time.Time

	powerProbability float64
	fireProbability  float64

	score int // Points earned since the last TakeScore
	level int
}

// NewEngine creates an engine with an empty field and the ship at its home row.
// Call LevelUp to spawn the first formation.
func NewEngine(cfg config.InvadersConfig, clock core.Clock, seed int64) *Engine {
	if clock == nil {
		clock = core.SystemClock{}
	}
	e := &Engine{
		field:            core.Field{Height: cfg.Field.Height, Width: cfg.Field.Width},
		cfg:              cfg,
		clock:            clock,
		rng:              core.NewSimpleRNG(seed),
		effects:          NewRegistry(clock, cfg.Effects.Duration),
		pool:             AllEffects(),
		formation:        NewFormation(),
		powerProbability: cfg.Spawn.PowerProbability,
		fireProbability:  cfg.Spawn.FireProbability,
	}
	if pool := ParseEffects(cfg.Effects.Pool); len(pool) > 0 {
		e.pool = pool
	}
	e.player = NewShooter(e.homePosition(), GlyphPlayer, ColorPlayer)
	return e
}

// SetPool restricts the effects that power-ups may carry.
func (e *Engine) SetPool(pool []Effect) {
	if len(pool) > 0 {
		e.pool = append([]Effect(nil), pool...)
	}
}

// SetSpawnRates overrides the power-up and enemy fire probabilities.
func (e *Engine) SetSpawnRates(power, fire float64) {
	e.powerProbability = power
	e.fireProbability = fire
}

// homePosition is where the ship starts: bottom playable row, center column.
func (e *Engine) homePosition() core.Position {
	return core.Pos(e.homeRow(), e.field.Width/2)
}

func (e *Engine) homeRow() int {
	return e.field.BottomRow()
}

// jumpRow is the row the ship holds while Jump is active.
func (e *Engine) jumpRow() int {
	return e.field.TopRow() + 1
}

// AttackCooldown returns the minimum delay between two player shots.
func (e *Engine) AttackCooldown() time.Duration {
	double := e.effects.IsActive(EffectDouble)
	triple := e.effects.IsActive(EffectTriple)

	cooldown := e.cfg.Player.AttackCooldown
	switch {
	case double && triple:
		cooldown = e.cfg.Player.CombinedCooldown
	case double:
		cooldown = e.cfg.Player.DoubleCooldown
	case triple:
		cooldown = e.cfg.Player.TripleCooldown
	}
	if e.effects.IsActive(EffectQuickShot) {
		cooldown /= 2
	}
	return cooldown
}

// Fire shoots from the ship if the attack cooldown elapsed.
// It reports whether anything was fired.
func (e *Engine) Fire() bool {
	now := e.clock.Now()
	if !e.lastAttack.IsZero() && now.Sub(e.lastAttack) < e.AttackCooldown() {
		return false
	}
	e.lastAttack = now

	grenade := e.effects.IsActive(EffectGrenade)
	pos := e.player.Pos

	e.player.Shoot(core.DirUp, grenade, GlyphBullet, ColorBullet)

	if e.effects.IsActive(EffectDouble) {
		col := pos.Col + 1
		if e.field.ColOutOfBounds(col) {
			col = pos.Col - 1
		}
		e.player.ShootFrom(core.Pos(pos.Row, col), core.DirUp, grenade, GlyphBullet, ColorBullet)
	}

	if e.effects.IsActive(EffectTriple) {
		ahead := pos.Row - 1
		if e.player.Revert {
			ahead = pos.Row + 1
		}
		e.player.ShootFrom(core.Pos(ahead, pos.Col+1), core.DirLeftUp, grenade, GlyphBullet, ColorBullet)
		e.player.ShootFrom(core.Pos(ahead, pos.Col-1), core.DirRightUp, grenade, GlyphBullet, ColorBullet)
	}

	if e.xerox != nil {
		e.player.ShootFrom(e.xerox.Pos, core.DirUp, false, GlyphBullet, ColorBullet)
	}
	return true
}

// MovePlayer moves the ship one column left or right.
// The move is clamped to the field, or wraps while Warp is active.
func (e *Engine) MovePlayer(dir core.Direction) {
	if !dir.IsLateral() {
		return
	}
	next := core.Advance(e.player.Pos, dir)
	if e.field.ColOutOfBounds(next.Col) {
		if !e.effects.IsActive(EffectWarp) {
			return
		}
		if dir == core.DirLeft {
			next.Col = e.field.RightCol()
		} else {
			next.Col = e.field.LeftCol()
		}
	}
	e.player.Pos = next
}

// LevelUp spawns a fresh formation and increments the level.
// The caller triggers it when no enemies remain.
func (e *Engine) LevelUp() {
	e.level++
	e.spawnFormation()
}

// RestartWave replaces the current formation with a fresh one at the same level.
func (e *Engine) RestartWave() {
	e.spawnFormation()
	e.boss = nil
}

// TakeScore returns the points earned since the last call and resets them.
func (e *Engine) TakeScore() int {
	s := e.score
	e.score = 0
	return s
}

// Field returns the playfield dimensions.
func (e *Engine) Field() core.Field { return e.field }

// Level returns the current wave number.
func (e *Engine) Level() int { return e.level }

// Player returns the ship.
func (e *Engine) Player() *Shooter { return e.player }

// Enemies returns the formation, mind-controlled allies included.
func (e *Engine) Enemies() []*Shooter { return e.enemies }

// Boss returns the boss, or nil.
func (e *Engine) Boss() *Boss { return e.boss }

// Shields returns the shield row.
func (e *Engine) Shields() []*Structure { return e.shields }

// Obstacles returns the obstacle column.
func (e *Engine) Obstacles() []*Structure { return e.obstacles }

// Follower returns the escort, or nil.
func (e *Engine) Follower() *Structure { return e.follower }

// Xerox returns the mirrored ally, or nil.
func (e *Engine) Xerox() *Shooter { return e.xerox }

// PowerUps returns the power-ups waiting on the field.
func (e *Engine) PowerUps() []*PowerUp { return e.powerups }

// Formation returns the formation direction state.
func (e *Engine) Formation() Formation { return e.formation }

// Effects returns the effect registry.
func (e *Engine) Effects() *Registry { return e.effects }

// ActiveEffect is an active effect with the time it has left.
type ActiveEffect struct {
	Effect Effect
	Left   time.Duration
}

// ActiveEffects returns the active effects and their remaining time for display.
func (e *Engine) ActiveEffects() []ActiveEffect {
	active := e.effects.Active()
	out := make([]ActiveEffect, len(active))
	for i, eff := range active {
		out[i] = ActiveEffect{Effect: eff, Left: e.effects.Remaining(eff)}
	}
	return out
}

// RNGState returns the generator state for snapshots.
func (e *Engine) RNGState() uint64 { return e.rng.State() }

// Sprites lists every drawable cell, back to front.
func (e *Engine) Sprites() []Sprite {
	sprites := make([]Sprite, 0, 64+len(e.enemies))

	for _, p := range e.powerups {
		sprites = append(sprites, Sprite{Pos: p.Pos, Glyph: p.Glyph(), Color: p.Color()})
	}
	for _, s := range e.shields {
		sprites = append(sprites, Sprite{Pos: s.Pos, Glyph: s.Glyph, Color: s.Color})
	}
	for _, s := range e.obstacles {
		sprites = append(sprites, Sprite{Pos: s.Pos, Glyph: s.Glyph, Color: s.Color})
	}
	if e.follower != nil {
		sprites = append(sprites, Sprite{Pos: e.follower.Pos, Glyph: e.follower.Glyph, Color: e.follower.Color})
	}
	for _, enemy := range e.enemies {
		sprites = appendShooter(sprites, enemy)
	}
	if e.boss != nil {
		cells := e.boss.Cells()
		sprites = append(sprites,
			Sprite{Pos: cells[0], Glyph: GlyphBossL, Color: ColorBoss},
			Sprite{Pos: cells[1], Glyph: GlyphBossR, Color: ColorBoss},
		)
	}
	if e.xerox != nil {
		sprites = append(sprites, Sprite{Pos: e.xerox.Pos, Glyph: e.xerox.Glyph, Color: e.xerox.Color})
	}
	return appendShooter(sprites, e.player)
}

func appendShooter(sprites []Sprite, s *Shooter) []Sprite {
	for _, p := range s.Projectiles {
		sprites = append(sprites, Sprite{Pos: p.Pos, Glyph: p.Glyph, Color: p.Color})
	}
	return append(sprites, Sprite{Pos: s.Pos, Glyph: s.Glyph, Color: s.Color})
}
