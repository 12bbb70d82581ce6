package invaders

// Snapshot captures the game state for determinism testing and replay.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick      uint64
	Level     int
	Score     int
	Lives     int
	State     GameStateType
	PlayerRow int
	PlayerCol int
	Formation int // core.Direction of the formation

	// Each enemy is 4 ints: Row, Col, Controlled, Numb
	EnemyData []int

	// Each projectile is 3 ints: Row, Col, Direction (player shots first)
	ProjectileData []int

	// Each power-up is 3 ints: Row, Col, Effect
	PowerUpData []int

	BossLeft     int // -1 when no boss
	ShieldCount  int
	ObstacleLeft int // Sum of obstacle lives
	Effects      []Effect

	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	e := g.engine

	enemyData := make([]int, 0, len(e.enemies)*4)
	projectileData := make([]int, 0, len(e.player.Projectiles)*3)
	for _, p := range e.player.Projectiles {
		projectileData = append(projectileData, p.Pos.Row, p.Pos.Col, int(p.Dir))
	}
	for _, enemy := range e.enemies {
		enemyData = append(enemyData, enemy.Pos.Row, enemy.Pos.Col, boolInt(enemy.Controlled), boolInt(enemy.Numb))
		for _, p := range enemy.Projectiles {
			projectileData = append(projectileData, p.Pos.Row, p.Pos.Col, int(p.Dir))
		}
	}

	powerUpData := make([]int, 0, len(e.powerups)*3)
	for _, p := range e.powerups {
		powerUpData = append(powerUpData, p.Pos.Row, p.Pos.Col, int(p.Effect))
	}

	bossLeft := -1
	if e.boss != nil {
		bossLeft = e.boss.Left
	}

	obstacleLives := 0
	for _, o := range e.obstacles {
		obstacleLives += o.Lives
	}

	return Snapshot{
		Tick:           g.tick,
		Level:          e.level,
		Score:          g.score,
		Lives:          g.lives,
		State:          g.state,
		PlayerRow:      e.player.Pos.Row,
		PlayerCol:      e.player.Pos.Col,
		Formation:      int(e.formation.Dir),
		EnemyData:      enemyData,
		ProjectileData: projectileData,
		PowerUpData:    powerUpData,
		BossLeft:       bossLeft,
		ShieldCount:    len(e.shields),
		ObstacleLeft:   obstacleLives,
		Effects:        e.effects.Active(),
		RNGState:       e.rng.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Level)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives+1)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerRow)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerCol)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Formation)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BossLeft+1)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ShieldCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ObstacleLeft) //#nosec G115 -- hash computation

	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.ProjectileData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.PowerUpData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, e := range snap.Effects {
		h = h*31 + uint64(e) //#nosec G115 -- hash computation
	}
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
