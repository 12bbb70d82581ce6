package invaders

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// newTestEngine returns an engine on the default 24x40 field with all
// random spawns disabled, driven by a manual clock.
func newTestEngine(t *testing.T) (*Engine, *core.ManualClock) {
	t.Helper()
	cfg := config.DefaultInvadersConfig()
	cfg.Spawn = config.SpawnConfig{}
	clock := core.NewManualClock(core.DefaultEpoch)
	return NewEngine(cfg, clock, 42), clock
}

// tick runs the movement and resolution half of a simulation step.
func tick(e *Engine) (overrun, hit bool) {
	overrun = e.Advance()
	hit = e.Resolve()
	return overrun, hit
}

func placeEnemies(e *Engine, positions ...core.Position) {
	e.enemies = e.enemies[:0]
	for _, p := range positions {
		e.enemies = append(e.enemies, NewShooter(p, GlyphEnemy, ColorEnemy))
	}
}

func TestNewEngineLayout(t *testing.T) {
	e, _ := newTestEngine(t)

	if got := e.Player().Pos; got != core.Pos(22, 20) {
		t.Errorf("Player starts at %v, expected (22, 20)", got)
	}
	if len(e.Enemies()) != 0 || e.Level() != 0 {
		t.Error("Engine should start empty at level 0")
	}

	e.LevelUp()
	if e.Level() != 1 {
		t.Errorf("Level = %d after LevelUp, expected 1", e.Level())
	}
	if len(e.Enemies()) != 40 {
		t.Fatalf("Formation has %d enemies, expected 40", len(e.Enemies()))
	}
	first, last := e.Enemies()[0].Pos, e.Enemies()[39].Pos
	if first != core.Pos(4, 1) || last != core.Pos(10, 19) {
		t.Errorf("Formation spans %v..%v, expected (4,1)..(10,19)", first, last)
	}
}

func TestFormationRightDownLeft(t *testing.T) {
	e, _ := newTestEngine(t)
	e.LevelUp()

	for i := 0; i < 19; i++ {
		e.Advance()
		if e.Formation().Dir != core.DirRight {
			t.Fatalf("Tick %d: direction %s, expected Right", i, e.Formation().Dir)
		}
	}
	if _, right, _ := extremities(e.Enemies()); right != 38 {
		t.Fatalf("Rightmost column = %d, expected width-2", right)
	}

	e.Advance()
	if e.Formation().Dir != core.DirDown {
		t.Fatalf("Direction after touching the wall = %s, expected Down", e.Formation().Dir)
	}
	if bottomRow(e.Enemies()) != 11 {
		t.Errorf("Down step should lower the formation, bottom row = %d", bottomRow(e.Enemies()))
	}

	e.Advance()
	if e.Formation().Dir != core.DirLeft {
		t.Fatalf("Direction after Down = %s, expected Left", e.Formation().Dir)
	}
}

func TestFormationChangesOnlyThroughDown(t *testing.T) {
	e, _ := newTestEngine(t)
	e.LevelUp()

	prev := e.Formation().Dir
	for i := 0; i < 300 && len(e.Enemies()) > 0; i++ {
		if e.Advance() {
			e.RestartWave()
			prev = e.Formation().Dir
			continue
		}
		dir := e.Formation().Dir
		if dir != prev && dir != core.DirDown && prev != core.DirDown {
			t.Fatalf("Tick %d: direction changed %s -> %s without a Down step", i, prev, dir)
		}
		prev = dir
	}
}

func TestFormationOverrun(t *testing.T) {
	e, _ := newTestEngine(t)
	e.effects.Activate(EffectLock)

	placeEnemies(e, core.Pos(20, 5))
	if e.Advance() {
		t.Error("Row 20 should not overrun")
	}

	placeEnemies(e, core.Pos(21, 5))
	if !e.Advance() {
		t.Error("Row above the ship should overrun")
	}

	e.enemies[0].MindControl()
	if e.Advance() {
		t.Error("Controlled enemies should not overrun")
	}
}

func TestLockAndAntigravity(t *testing.T) {
	e, _ := newTestEngine(t)
	placeEnemies(e, core.Pos(5, 38))

	e.effects.Activate(EffectLock)
	e.Advance()
	if e.enemies[0].Pos != core.Pos(5, 38) || e.Formation().Dir != core.DirRight {
		t.Fatal("Lock should freeze the formation and its state")
	}

	e.effects.ForceExpire(EffectLock)
	e.effects.Activate(EffectAntigravity)
	e.Advance()
	if e.Formation().Dir != core.DirDown {
		t.Fatalf("Direction = %s, expected Down", e.Formation().Dir)
	}
	if e.enemies[0].Pos != core.Pos(5, 38) {
		t.Errorf("Antigravity should suppress the Down step, enemy at %v", e.enemies[0].Pos)
	}

	e.Advance()
	if e.Formation().Dir != core.DirLeft || e.enemies[0].Pos != core.Pos(5, 37) {
		t.Errorf("Formation should sweep left, dir %s pos %v", e.Formation().Dir, e.enemies[0].Pos)
	}
}

func TestNumbedEnemiesHoldPosition(t *testing.T) {
	e, _ := newTestEngine(t)
	placeEnemies(e, core.Pos(5, 10), core.Pos(7, 10))
	e.enemies[1].SetNumb()

	e.Advance()
	if e.enemies[0].Pos != core.Pos(5, 11) {
		t.Errorf("Movable enemy at %v, expected (5, 11)", e.enemies[0].Pos)
	}
	if e.enemies[1].Pos != core.Pos(7, 10) {
		t.Errorf("Numbed enemy moved to %v", e.enemies[1].Pos)
	}
}

func TestYieldKeepsFormationShape(t *testing.T) {
	e, _ := newTestEngine(t)
	e.LevelUp()
	e.formation.Yield(8)

	for i := 0; i < 8; i++ {
		e.Advance()
	}

	cells := make(map[core.Position]bool)
	for _, enemy := range e.Enemies() {
		cells[enemy.Pos] = true
	}
	if len(cells) != 40 {
		t.Fatalf("Formation holds %d distinct cells after Yield, expected 40", len(cells))
	}
	if top := e.Enemies()[0].Pos; top != core.Pos(2, 1) {
		t.Errorf("Top-left enemy at %v, expected (2, 1)", top)
	}
	if bottomRow(e.Enemies()) != 8 {
		t.Errorf("Bottom row = %d, expected 8", bottomRow(e.Enemies()))
	}
	if e.Formation().Dir != core.DirRight || e.formation.Yielding() {
		t.Errorf("Yield should end after 8 ticks, dir %s", e.Formation().Dir)
	}
}

func TestAttackCooldown(t *testing.T) {
	tests := []struct {
		name     string
		effects  []Effect
		expected time.Duration
	}{
		{"base", nil, 500 * time.Millisecond},
		{"double", []Effect{EffectDouble}, 350 * time.Millisecond},
		{"triple", []Effect{EffectTriple}, 400 * time.Millisecond},
		{"combined", []Effect{EffectDouble, EffectTriple}, 250 * time.Millisecond},
		{"quickshot", []Effect{EffectQuickShot}, 250 * time.Millisecond},
		{"quick combined", []Effect{EffectQuickShot, EffectDouble, EffectTriple}, 125 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			for _, eff := range tc.effects {
				e.effects.Activate(eff)
			}
			if got := e.AttackCooldown(); got != tc.expected {
				t.Errorf("AttackCooldown() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFireRespectsCooldown(t *testing.T) {
	e, clock := newTestEngine(t)

	if !e.Fire() {
		t.Fatal("First shot should always fire")
	}
	if e.Fire() {
		t.Error("Second shot inside the cooldown should be refused")
	}
	clock.Advance(499 * time.Millisecond)
	if e.Fire() {
		t.Error("Shot 1ms before the cooldown should be refused")
	}
	clock.Advance(time.Millisecond)
	if !e.Fire() {
		t.Error("Shot after the cooldown should fire")
	}
	if len(e.Player().Projectiles) != 2 {
		t.Errorf("Expected 2 projectiles, got %d", len(e.Player().Projectiles))
	}
}

func TestDoubleShot(t *testing.T) {
	e, clock := newTestEngine(t)
	e.effects.Activate(EffectDouble)

	if !e.Fire() {
		t.Fatal("Fire should succeed")
	}
	shots := e.Player().Projectiles
	if len(shots) != 2 {
		t.Fatalf("Double should fire 2 projectiles, got %d", len(shots))
	}
	if shots[0].Pos != core.Pos(22, 20) || shots[0].Dir != core.DirUp {
		t.Errorf("Main shot = %v %s", shots[0].Pos, shots[0].Dir)
	}
	if shots[1].Pos != core.Pos(22, 21) || shots[1].Dir != core.DirUp {
		t.Errorf("Offset shot = %v %s", shots[1].Pos, shots[1].Dir)
	}

	clock.Advance(350 * time.Millisecond)
	if !e.Fire() {
		t.Error("Double cooldown should allow a shot after 350ms")
	}

	// At the right wall the offset column flips to the left.
	e.player.Pos.Col = 38
	clock.Advance(time.Second)
	e.player.Projectiles = nil
	e.Fire()
	if got := e.Player().Projectiles[1].Pos; got != core.Pos(22, 37) {
		t.Errorf("Offset shot at the wall = %v, expected (22, 37)", got)
	}
}

func TestTripleShot(t *testing.T) {
	e, _ := newTestEngine(t)
	e.effects.Activate(EffectTriple)
	e.Fire()

	shots := e.Player().Projectiles
	if len(shots) != 3 {
		t.Fatalf("Triple should fire 3 projectiles, got %d", len(shots))
	}
	if shots[1].Pos != core.Pos(21, 21) || shots[1].Dir != core.DirLeftUp {
		t.Errorf("Left diagonal = %v %s", shots[1].Pos, shots[1].Dir)
	}
	if shots[2].Pos != core.Pos(21, 19) || shots[2].Dir != core.DirRightUp {
		t.Errorf("Right diagonal = %v %s", shots[2].Pos, shots[2].Dir)
	}
}

func TestMovePlayer(t *testing.T) {
	e, _ := newTestEngine(t)
	e.player.Pos.Col = 1

	e.MovePlayer(core.DirLeft)
	if e.Player().Pos.Col != 1 {
		t.Errorf("Move into the wall should clamp, col = %d", e.Player().Pos.Col)
	}

	e.MovePlayer(core.DirUp)
	if e.Player().Pos != core.Pos(22, 1) {
		t.Errorf("Vertical moves should be ignored, pos = %v", e.Player().Pos)
	}

	e.effects.Activate(EffectWarp)
	e.MovePlayer(core.DirLeft)
	if e.Player().Pos.Col != 38 {
		t.Errorf("Warp should wrap to the right edge, col = %d", e.Player().Pos.Col)
	}
	e.MovePlayer(core.DirRight)
	if e.Player().Pos.Col != 1 {
		t.Errorf("Warp should wrap to the left edge, col = %d", e.Player().Pos.Col)
	}
}

func TestProjectilesStayInBounds(t *testing.T) {
	e, clock := newTestEngine(t)
	e.cfg.Spawn.BossProbability = 0.05
	e.SetSpawnRates(0.3, 0.3)
	e.LevelUp()

	for i := 0; i < 400; i++ {
		if i == 100 {
			e.effects.Activate(EffectReflect)
			e.effects.Activate(EffectTriple)
		}
		clock.Advance(50 * time.Millisecond)
		e.Fire()
		e.Generate()
		if e.Advance() {
			e.RestartWave()
		}

		shooters := append([]*Shooter{e.player}, e.enemies...)
		for _, s := range shooters {
			for _, p := range s.Projectiles {
				if e.Field().OutOfBounds(p.Pos) {
					t.Fatalf("Tick %d: projectile out of bounds at %v", i, p.Pos)
				}
			}
		}

		e.Resolve()
		if len(e.Enemies()) == 0 {
			e.LevelUp()
		}
		if e.Boss() != nil && e.Field().OutOfBounds(e.Boss().Cells()[1]) {
			t.Fatalf("Tick %d: boss outside the field at %d", i, e.Boss().Left)
		}
	}
}

func TestReflectBouncesOffWalls(t *testing.T) {
	e, _ := newTestEngine(t)
	e.effects.Activate(EffectReflect)

	e.player.ShootFrom(core.Pos(2, 10), core.DirUp, false, GlyphBullet, ColorBullet)
	e.player.ShootFrom(core.Pos(2, 1), core.DirLeftUp, false, GlyphBullet, ColorBullet)
	e.Advance()

	shots := e.Player().Projectiles
	if len(shots) != 2 {
		t.Fatalf("Reflected shots should survive, got %d", len(shots))
	}
	if shots[0].Pos != core.Pos(2, 10) || shots[0].Dir != core.DirDown {
		t.Errorf("Vertical bounce = %v %s", shots[0].Pos, shots[0].Dir)
	}
	if shots[1].Pos != core.Pos(2, 1) || shots[1].Dir != core.DirRightDown {
		t.Errorf("Corner bounce = %v %s", shots[1].Pos, shots[1].Dir)
	}

	e.effects.ForceExpire(EffectReflect)
	e.player.Projectiles = nil
	e.player.ShootFrom(core.Pos(2, 10), core.DirUp, false, GlyphBullet, ColorBullet)
	e.Advance()
	if len(e.Player().Projectiles) != 0 {
		t.Error("Without Reflect the shot should be pruned")
	}
}

func TestBossCrossesAndDespawns(t *testing.T) {
	e, _ := newTestEngine(t)
	e.boss = &Boss{Left: 36, Row: 2}

	e.Advance()
	if e.Boss() == nil || e.Boss().Left != 37 {
		t.Fatal("Boss should advance one column")
	}
	e.Advance()
	if e.Boss() != nil {
		t.Error("Boss should despawn at the far wall")
	}
}

func TestKamikazeExterminates(t *testing.T) {
	e, _ := newTestEngine(t)
	e.level = 2
	e.effects.Activate(EffectLock)
	e.effects.Activate(EffectKamikaze)
	placeEnemies(e, core.Pos(20, 20), core.Pos(5, 5))

	e.Advance()
	if e.Player().Pos != core.Pos(21, 20) {
		t.Fatalf("Kamikaze should lift the ship, pos = %v", e.Player().Pos)
	}
	e.Advance()
	if len(e.Enemies()) != 0 {
		t.Errorf("Contact should destroy the wave, %d left", len(e.Enemies()))
	}
	if e.Player().Pos.Row != 22 {
		t.Errorf("Ship should return home, row = %d", e.Player().Pos.Row)
	}
	if got := e.TakeScore(); got != 2*20*2 {
		t.Errorf("Score = %d, expected %d", got, 2*20*2)
	}
}

func TestJumpFiresDown(t *testing.T) {
	e, _ := newTestEngine(t)
	e.effects.Activate(EffectJump)
	e.Advance()

	if e.Player().Pos.Row != 3 {
		t.Fatalf("Jump should hold the ship on row 3, row = %d", e.Player().Pos.Row)
	}
	e.Fire()
	if got := e.Player().Projectiles[0].Dir; got != core.DirDown {
		t.Errorf("Jumping ship should fire Down, got %s", got)
	}

	e.effects.ForceExpire(EffectJump)
	e.Advance()
	if e.Player().Pos.Row != 22 || e.Player().Revert {
		t.Error("Ship should land back home after Jump")
	}
}

func TestXeroxMirrorsShip(t *testing.T) {
	e, _ := newTestEngine(t)
	e.effects.Activate(EffectXerox)
	e.Generate()

	if e.Xerox() == nil {
		t.Fatal("Xerox should spawn while active")
	}
	if got := e.Xerox().Pos; got != core.Pos(22, 19) {
		t.Errorf("Xerox at %v, expected (22, 19)", got)
	}

	e.Fire()
	if len(e.Player().Projectiles) != 2 {
		t.Errorf("Xerox should copy the shot, %d projectiles", len(e.Player().Projectiles))
	}

	e.MovePlayer(core.DirRight)
	e.Advance()
	if got := e.Xerox().Pos.Col; got != 18 {
		t.Errorf("Xerox column = %d, expected 18", got)
	}

	e.effects.ForceExpire(EffectXerox)
	e.Generate()
	if e.Xerox() != nil {
		t.Error("Xerox should despawn after the effect lapses")
	}
}

func TestGenerateFormationFire(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetSpawnRates(0, 1)
	placeEnemies(e, core.Pos(5, 5), core.Pos(5, 7), core.Pos(5, 9))
	e.enemies[1].MindControl()
	e.enemies[2].SetNumb()

	e.Generate()
	if len(e.enemies[0].Projectiles) != 1 || e.enemies[0].Projectiles[0].Dir != core.DirDown {
		t.Error("Hostile enemy should fire down")
	}
	if len(e.enemies[1].Projectiles) != 0 || len(e.player.Projectiles) != 1 {
		t.Error("Controlled enemy should fire a player-owned shot")
	} else if d := e.player.Projectiles[0].Dir; d != core.DirLeftUp && d != core.DirRightUp {
		t.Errorf("Controlled shot direction = %s", d)
	}
	if len(e.enemies[2].Projectiles) != 0 {
		t.Error("Numbed enemy should hold fire")
	}

	e.effects.Activate(EffectHijack)
	e.Generate()
	if len(e.enemies[0].Projectiles) != 1 {
		t.Error("Hijack should suppress enemy fire")
	}
}

func TestGeneratePowerUpsAndBoss(t *testing.T) {
	e, _ := newTestEngine(t)
	e.cfg.Spawn.BossProbability = 1
	e.SetSpawnRates(1, 0)
	e.SetPool([]Effect{EffectPierce})

	for i := 0; i < 50; i++ {
		e.Generate()
	}
	if len(e.PowerUps()) == 0 {
		t.Fatal("Power-ups should spawn with probability 1")
	}
	for _, p := range e.PowerUps() {
		if p.Effect != EffectPierce {
			t.Errorf("Power-up %s outside the pool", p.Effect)
		}
		if p.Pos.Row < 2 || p.Pos.Row >= 22 || p.Pos.Col < 1 || p.Pos.Col >= 39 {
			t.Errorf("Power-up spawned at %v", p.Pos)
		}
	}
	if e.Boss() == nil || e.Boss().Left != 1 || e.Boss().Row != 2 {
		t.Errorf("Boss should spawn at (2, 1), got %+v", e.Boss())
	}
}

func TestNewPowerUpPanicsOnUnknownEffect(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewPowerUp should panic for an effect without a glyph")
		}
	}()
	NewPowerUp(core.Pos(5, 5), Effect(99))
}

func TestSprites(t *testing.T) {
	e, _ := newTestEngine(t)
	e.LevelUp()
	e.boss = &Boss{Left: 4, Row: 2}
	e.powerups = append(e.powerups, NewPowerUp(core.Pos(12, 12), EffectGrenade))
	e.Fire()

	sprites := e.Sprites()
	// 40 enemies, 2 boss cells, 1 power-up, 1 shot, the ship
	if len(sprites) != 45 {
		t.Fatalf("Sprites() returned %d, expected 45", len(sprites))
	}
	if last := sprites[len(sprites)-1]; last.Glyph != GlyphPlayer || last.Pos != e.Player().Pos {
		t.Errorf("Ship should be drawn last, got %+v", last)
	}
	if sprites[0].Glyph != 'G' {
		t.Errorf("Power-up glyph = %q, expected 'G'", sprites[0].Glyph)
	}
}
