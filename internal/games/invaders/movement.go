package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// Advance moves every entity one step: projectiles, the boss, the
// formation, the ship and its escorts. It reports whether the formation
// reached the row above the ship's home row.
func (e *Engine) Advance() (overrun bool) {
	e.advanceProjectiles()
	e.moveBoss()
	overrun = e.moveFormation()
	e.moveShip()
	e.trackEscorts()
	return overrun
}

// advanceProjectiles moves every projectile one cell and prunes those that
// left the field. Player shots bounce off the walls while Reflect is active.
func (e *Engine) advanceProjectiles() {
	reflect := e.effects.IsActive(EffectReflect)
	for _, p := range e.player.Projectiles {
		p.Advance()
		if reflect && e.field.OutOfBounds(p.Pos) {
			e.reflect(p)
		}
	}
	e.player.ClearProjectiles(e.field)

	for _, enemy := range e.enemies {
		for _, p := range enemy.Projectiles {
			p.Advance()
		}
		enemy.ClearProjectiles(e.field)
	}
}

// reflect mirrors p on the axis it crossed and re-advances it once.
func (e *Engine) reflect(p *Projectile) {
	if e.field.RowOutOfBounds(p.Pos.Row) {
		p.Dir = p.Dir.MirrorVertical()
	}
	if e.field.ColOutOfBounds(p.Pos.Col) {
		p.Dir = p.Dir.MirrorHorizontal()
	}
	p.Advance()
}

// moveBoss shifts the boss one column right and despawns it at the far wall.
func (e *Engine) moveBoss() {
	if e.boss == nil {
		return
	}
	e.boss.Left++
	if e.boss.Left >= e.field.RightCol() {
		e.boss = nil
	}
}

// moveFormation steps the formation state machine and moves every enemy
// that is not numbed. The grid moves as one block: when any enemy would
// leave the field the step is skipped for all of them.
func (e *Engine) moveFormation() bool {
	if len(e.enemies) == 0 {
		return false
	}

	if !e.effects.IsActive(EffectLock) {
		if left, right, ok := extremities(e.enemies); ok {
			dir := e.formation.Next(left, right, e.field)
			if (dir != core.DirDown || !e.effects.IsActive(EffectAntigravity)) && fits(e.enemies, dir, e.field) {
				for _, enemy := range e.enemies {
					if !enemy.Numb {
						enemy.Shift(dir, e.field)
					}
				}
			}
		}
	}

	return bottomRow(e.enemies) >= e.homeRow()-1
}

// moveShip applies Jump and Kamikaze to the ship's row.
func (e *Engine) moveShip() {
	jump := e.effects.IsActive(EffectJump)
	e.player.Revert = jump

	if e.effects.IsActive(EffectKamikaze) {
		e.kamikaze(jump)
		return
	}
	if jump {
		e.player.Pos.Row = e.jumpRow()
	} else {
		e.player.Pos.Row = e.homeRow()
	}
}

// kamikaze drives the ship one row toward the formation. Touching an enemy
// destroys the whole wave; either way the ship returns to its resting row.
func (e *Engine) kamikaze(jump bool) {
	rest, dir := e.homeRow(), core.DirUp
	if jump {
		rest, dir = e.jumpRow(), core.DirDown
	}

	next := core.Advance(e.player.Pos, dir)
	if e.field.OutOfBounds(next) {
		e.player.Pos.Row = rest
		return
	}
	e.player.Pos = next

	for _, enemy := range e.enemies {
		if enemy.Pos == e.player.Pos {
			e.exterminate()
			e.player.Pos.Row = rest
			return
		}
	}
}

// exterminate removes the formation, scoring every hostile enemy.
func (e *Engine) exterminate() {
	for _, enemy := range e.enemies {
		if !enemy.Controlled {
			e.award(e.cfg.Scoring.Enemy)
		}
	}
	e.enemies = e.enemies[:0]
}

// trackEscorts keeps the follower above the ship and the xerox mirrored.
func (e *Engine) trackEscorts() {
	if e.follower != nil {
		if !e.effects.IsActive(EffectFollower) {
			e.follower = nil
		} else {
			e.follower.Pos = core.Pos(e.field.Height-3, e.player.Pos.Col)
		}
	}
	if e.xerox != nil {
		e.xerox.Pos = e.mirroredPosition()
	}
}

// award adds base points scaled by the current level.
func (e *Engine) award(base int) {
	e.score += base * max(e.level, 1)
}
