package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the default invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Field: FieldConfig{
			Height: 24,
			Width:  40,
		},
		Player: PlayerConfig{
			Lives:            3,
			AttackCooldown:   500 * time.Millisecond,
			DoubleCooldown:   350 * time.Millisecond,
			TripleCooldown:   400 * time.Millisecond,
			CombinedCooldown: 250 * time.Millisecond,
		},
		Formation: FormationConfig{
			Rows:    4,
			Columns: 10,
		},
		Spawn: SpawnConfig{
			PowerProbability: 0.08,
			FireProbability:  0.05,
			BossProbability:  0.001,
		},
		Effects: EffectsConfig{
			Duration:      10 * time.Second,
			YieldTicks:    8,
			ExplodeRadius: 2,
		},
		Structures: StructuresConfig{
			Shields:       13,
			ShieldLives:   3,
			Obstacles:     3,
			ObstacleLives: 3,
			FollowerLives: 1,
		},
		Scoring: ScoringConfig{
			Enemy: 20,
			Boss:  4000,
		},
		Timing: TimingConfig{
			Refresh: 50 * time.Millisecond,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "wave",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				FireMultiplier: 1.0,
				PowerReduction: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML, printed by `invaders config`.
func DefaultYAML() []byte {
	return defaultInvadersYAML
}
