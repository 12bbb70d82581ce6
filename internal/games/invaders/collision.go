package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// Resolve settles every overlap of this tick and reports whether the ship
// was hit. Power-ups and structures resolve before enemy kills, and
// mind-control and numb are checked before removal.
func (e *Engine) Resolve() (playerHit bool) {
	e.blockLasers()
	e.releaseControlled()
	e.hitPowerUps()
	e.hitShields()
	e.obstacles = e.damageStructures(e.obstacles)
	e.hitFollower()
	e.hitBoss()
	e.hitEnemies()
	return e.hitPlayer()
}

// blockLasers cancels all enemy projectiles while Block is active.
func (e *Engine) blockLasers() {
	if e.effects.IsActive(EffectBlock) {
		e.clearLasers()
	}
}

func (e *Engine) clearLasers() {
	for _, enemy := range e.enemies {
		clear(enemy.Projectiles)
		enemy.Projectiles = enemy.Projectiles[:0]
	}
}

// releaseControlled removes mind-controlled enemies once Mindcontrol lapses.
func (e *Engine) releaseControlled() {
	if e.effects.IsActive(EffectMindcontrol) {
		return
	}
	e.enemies = removeShooters(e.enemies, func(s *Shooter) bool { return s.Controlled })
}

// hitPowerUps consumes every power-up under a player projectile.
// The projectile keeps flying.
func (e *Engine) hitPowerUps() {
	var taken []*PowerUp
	kept := e.powerups[:0]
	for _, p := range e.powerups {
		if e.player.HasProjectileAt(p.Pos) {
			taken = append(taken, p)
		} else {
			kept = append(kept, p)
		}
	}
	clear(e.powerups[len(kept):])
	e.powerups = kept

	for _, p := range taken {
		e.applyEffect(p)
	}
}

// applyEffect runs an immediate effect or activates a timed one.
func (e *Engine) applyEffect(p *PowerUp) {
	switch p.Effect {
	case EffectClear:
		e.clearLasers()
	case EffectUltra:
		e.ultra()
	case EffectYield:
		e.formation.Yield(e.cfg.Effects.YieldTicks)
	case EffectExplode:
		e.explode(p.Pos)
	default:
		e.effects.Activate(p.Effect)
		switch p.Effect {
		case EffectShield:
			if e.effects.IsActive(EffectShield) {
				e.spawnShields()
			}
		case EffectFollower:
			if e.effects.IsActive(EffectFollower) {
				e.spawnFollower()
			}
		}
	}
}

// ultra fills the ship's column with projectiles up to row 3,
// or down to the floor while jumping.
func (e *Engine) ultra() {
	pos := e.player.Pos
	from, to := e.jumpRow(), pos.Row
	if e.player.Revert {
		from, to = pos.Row+1, e.field.Height-1
	}
	for row := from; row < to; row++ {
		e.player.ShootFrom(core.Pos(row, pos.Col), core.DirUp, false, GlyphUltra, ColorUltra)
	}
}

// explode destroys every enemy in the square around center.
func (e *Engine) explode(center core.Position) {
	blast := core.Around(center, e.cfg.Effects.ExplodeRadius)
	e.enemies = removeShooters(e.enemies, func(s *Shooter) bool {
		if !blast.ContainsPos(s.Pos) {
			return false
		}
		if !s.Controlled {
			e.award(e.cfg.Scoring.Enemy)
		}
		return true
	})
}

// hitShields expires the shield row with its effect, then applies damage.
func (e *Engine) hitShields() {
	if !e.effects.IsActive(EffectShield) {
		clear(e.shields)
		e.shields = e.shields[:0]
		return
	}
	e.shields = e.damageStructures(e.shields)
}

// hitFollower damages the escort; destroying it ends the Follower effect.
func (e *Engine) hitFollower() {
	if e.follower == nil {
		return
	}
	if left := e.damageStructures([]*Structure{e.follower}); len(left) == 0 {
		e.follower = nil
		e.effects.ForceExpire(EffectFollower)
	}
}

// damageStructures charges one life per enemy projectile or enemy body on a
// structure's cell, removes what hit it, and returns the survivors.
func (e *Engine) damageStructures(structures []*Structure) []*Structure {
	if len(structures) == 0 {
		return structures
	}
	for _, s := range structures {
		for _, enemy := range e.enemies {
			hits := enemy.DropProjectiles(func(p *Projectile) bool {
				return p.Pos == s.Pos && !p.Turned
			})
			for range hits {
				s.Damage()
			}
		}
		e.enemies = removeShooters(e.enemies, func(enemy *Shooter) bool {
			if enemy.Controlled || enemy.Pos != s.Pos {
				return false
			}
			s.Damage()
			return true
		})
	}

	kept := structures[:0]
	for _, s := range structures {
		if s.Alive() {
			kept = append(kept, s)
		}
	}
	clear(structures[len(kept):])
	return kept
}

// hitBoss destroys the boss when a player projectile touches either cell.
func (e *Engine) hitBoss() {
	if e.boss == nil {
		return
	}
	pierce := e.effects.IsActive(EffectPierce)
	boss := e.boss
	hit := false
	e.player.DropProjectiles(func(p *Projectile) bool {
		if !boss.Occupies(p.Pos) {
			return false
		}
		hit = true
		return !pierce
	})
	if hit {
		e.boss = nil
		e.award(e.cfg.Scoring.Boss)
	}
}

// hitEnemies resolves player projectiles against the formation, then
// turned enemy shots and numbed enemies colliding with their neighbours.
func (e *Engine) hitEnemies() {
	pierce := e.effects.IsActive(EffectPierce)
	mind := e.effects.IsActive(EffectMindcontrol)
	numb := e.effects.IsActive(EffectNumb)

	dead := make(map[*Shooter]bool)
	consumed := make(map[*Projectile]bool)

	for _, p := range e.player.Projectiles {
		for _, enemy := range e.enemies {
			if dead[enemy] || enemy.Controlled || enemy.Pos != p.Pos {
				continue
			}
			switch {
			case mind:
				enemy.MindControl()
			case numb && !enemy.Numb:
				enemy.SetNumb()
			default:
				dead[enemy] = true
			}
			if !pierce {
				consumed[p] = true
				break
			}
		}
	}

	if len(consumed) > 0 {
		var bursts []core.Position
		e.player.DropProjectiles(func(p *Projectile) bool {
			if consumed[p] && p.Explosive {
				bursts = append(bursts, p.Pos)
			}
			return consumed[p]
		})
		for _, pos := range bursts {
			dir := core.Directions[e.rng.Intn(len(core.Directions))]
			e.player.ShootFrom(pos, dir, false, GlyphBullet, ColorBullet)
		}
	}

	e.hitByTurned(dead)
	e.collideNumb(dead)

	e.enemies = removeShooters(e.enemies, func(s *Shooter) bool {
		if !dead[s] {
			return false
		}
		if !s.Controlled {
			e.award(e.cfg.Scoring.Enemy)
		}
		return true
	})
}

// hitByTurned lets zombified enemy shots kill the enemies they reach.
func (e *Engine) hitByTurned(dead map[*Shooter]bool) {
	for _, owner := range e.enemies {
		owner.DropProjectiles(func(p *Projectile) bool {
			if !p.Turned {
				return false
			}
			for _, target := range e.enemies {
				if target == owner || dead[target] || target.Controlled || target.Pos != p.Pos {
					continue
				}
				dead[target] = true
				return true
			}
			return false
		})
	}
}

// collideNumb annihilates numbed enemies sharing a cell with another enemy.
func (e *Engine) collideNumb(dead map[*Shooter]bool) {
	for i, a := range e.enemies {
		if dead[a] {
			continue
		}
		for _, b := range e.enemies[i+1:] {
			if dead[b] || a.Pos != b.Pos || (!a.Numb && !b.Numb) {
				continue
			}
			dead[a] = true
			dead[b] = true
			break
		}
	}
}

// hitPlayer reports whether an enemy projectile reached the ship.
// Those projectiles are consumed; Vendetta destroys their owners even
// when Invincible prevents the hit.
func (e *Engine) hitPlayer() bool {
	pos := e.player.Pos
	vendetta := e.effects.IsActive(EffectVendetta)
	hit := false

	e.enemies = removeShooters(e.enemies, func(enemy *Shooter) bool {
		n := enemy.DropProjectiles(func(p *Projectile) bool {
			return p.Pos == pos && !p.Turned
		})
		if n == 0 {
			return false
		}
		hit = true
		if vendetta {
			if !enemy.Controlled {
				e.award(e.cfg.Scoring.Enemy)
			}
			return true
		}
		return false
	})

	return hit && !e.effects.IsActive(EffectInvincible)
}

func removeShooters(ss []*Shooter, drop func(s *Shooter) bool) []*Shooter {
	kept := ss[:0]
	for _, s := range ss {
		if !drop(s) {
			kept = append(kept, s)
		}
	}
	clear(ss[len(kept):])
	return kept
}
