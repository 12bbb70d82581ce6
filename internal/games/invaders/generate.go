package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// Generate runs the per-tick spawn rolls: enemy fire, power-ups, the boss,
// and the structures kept alive by their effects.
func (e *Engine) Generate() {
	e.enemyFire()
	e.spawnPowerUp()
	e.spawnBoss()
	e.spawnObstacles()
	e.syncXerox()
}

// spawnFormation places the enemy grid at rows 2*(j+2), columns 2*i+1.
func (e *Engine) spawnFormation() {
	rows, cols := e.cfg.Formation.Rows, e.cfg.Formation.Columns
	e.enemies = make([]*Shooter, 0, rows*cols)
	for j := range rows {
		for i := range cols {
			e.enemies = append(e.enemies, NewShooter(core.Pos(2*(j+2), 2*i+1), GlyphEnemy, ColorEnemy))
		}
	}
	e.formation = NewFormation()
}

// enemyFire rolls each enemy's shot. Controlled enemies fire a player-owned
// projectile diagonally upward; hostile ones fire down, or up at their own
// ranks while Zombify is active.
func (e *Engine) enemyFire() {
	if e.effects.IsActive(EffectHijack) {
		return
	}
	zombify := e.effects.IsActive(EffectZombify)

	for _, enemy := range e.enemies {
		if !e.rng.Chance(e.fireProbability) {
			continue
		}
		switch {
		case enemy.Controlled:
			dir := core.DirLeftUp
			if e.rng.Intn(2) == 1 {
				dir = core.DirRightUp
			}
			e.player.ShootFrom(enemy.Pos, dir, false, GlyphBullet, ColorControlled)
		case enemy.Numb:
			// Frozen enemies hold fire.
		case zombify:
			p := enemy.Shoot(core.DirUp, false, GlyphLaser, ColorTurned)
			p.Turned = true
		default:
			enemy.Shoot(core.DirDown, false, GlyphLaser, ColorLaser)
		}
	}
}

// spawnPowerUp drops a random power-up on a random playable cell.
func (e *Engine) spawnPowerUp() {
	if !e.rng.Chance(e.powerProbability) || len(e.pool) == 0 {
		return
	}
	pos := core.Pos(
		e.rng.Range(e.field.TopRow(), e.field.Height-2),
		e.rng.Range(e.field.LeftCol(), e.field.Width-1),
	)
	effect := e.pool[e.rng.Intn(len(e.pool))]
	for _, p := range e.powerups {
		if p.Pos == pos {
			return
		}
	}
	e.powerups = append(e.powerups, NewPowerUp(pos, effect))
}

// spawnBoss starts a boss at the top-left if none is crossing.
func (e *Engine) spawnBoss() {
	if !e.rng.Chance(e.cfg.Spawn.BossProbability) || e.boss != nil {
		return
	}
	e.boss = &Boss{Left: e.field.LeftCol(), Row: e.field.TopRow()}
}

// spawnShields raises the shield row one row above the ship.
func (e *Engine) spawnShields() {
	n := e.cfg.Structures.Shields
	e.shields = make([]*Structure, 0, n)
	for i := 1; i <= n; i++ {
		pos := core.Pos(e.field.Height-3, 3*i-1)
		if e.field.OutOfBounds(pos) {
			break
		}
		e.shields = append(e.shields, &Structure{
			Pos:   pos,
			Lives: e.cfg.Structures.ShieldLives,
			Glyph: GlyphShield,
			Color: ColorShield,
		})
	}
}

// spawnObstacles drops the obstacle column while Obstacle is active and
// the previous column is gone.
func (e *Engine) spawnObstacles() {
	if !e.effects.IsActive(EffectObstacle) || len(e.obstacles) > 0 {
		return
	}
	for i := range e.cfg.Structures.Obstacles {
		pos := core.Pos(e.field.Height-(4+2*i), e.field.Width/2)
		if e.field.OutOfBounds(pos) {
			break
		}
		e.obstacles = append(e.obstacles, &Structure{
			Pos:   pos,
			Lives: e.cfg.Structures.ObstacleLives,
			Glyph: GlyphObstacle,
			Color: ColorObstacle,
		})
	}
}

// spawnFollower places the escort above the ship.
func (e *Engine) spawnFollower() {
	e.follower = &Structure{
		Pos:   core.Pos(e.field.Height-3, e.player.Pos.Col),
		Lives: e.cfg.Structures.FollowerLives,
		Glyph: GlyphFollower,
		Color: ColorFollower,
	}
}

// syncXerox spawns the mirrored ally while Xerox is active and removes it after.
func (e *Engine) syncXerox() {
	if !e.effects.IsActive(EffectXerox) {
		e.xerox = nil
		return
	}
	if e.xerox == nil {
		e.xerox = NewShooter(e.mirroredPosition(), GlyphPlayer, ColorAlly)
		e.xerox.MindControl()
		e.xerox.Color = ColorAlly
	}
}

// mirroredPosition reflects the ship's column across the field center.
func (e *Engine) mirroredPosition() core.Position {
	return core.Pos(e.player.Pos.Row, e.field.Width-1-e.player.Pos.Col)
}
