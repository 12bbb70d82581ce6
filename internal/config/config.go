// Package config provides YAML-based game configuration loading and
// difficulty management for the invaders game.
package config

import "time"

// InvadersConfig contains all configuration for the invaders game.
type InvadersConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Player     PlayerConfig     `yaml:"player"`
	Formation  FormationConfig  `yaml:"formation"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Effects    EffectsConfig    `yaml:"effects"`
	Structures StructuresConfig `yaml:"structures"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the fixed playfield size, walls included.
type FieldConfig struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

// PlayerConfig defines ship lives and fire-rate cooldowns.
type PlayerConfig struct {
	Lives            int           `yaml:"lives"`
	AttackCooldown   time.Duration `yaml:"attack_cooldown"`
	DoubleCooldown   time.Duration `yaml:"double_cooldown"`
	TripleCooldown   time.Duration `yaml:"triple_cooldown"`
	CombinedCooldown time.Duration `yaml:"combined_cooldown"`
}

// FormationConfig defines the enemy grid generated each wave.
type FormationConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// SpawnConfig defines per-tick Bernoulli probabilities.
type SpawnConfig struct {
	PowerProbability float64 `yaml:"power_probability"`
	FireProbability  float64 `yaml:"fire_probability"`
	BossProbability  float64 `yaml:"boss_probability"`
}

// EffectsConfig tunes the power-up effects.
type EffectsConfig struct {
	Duration      time.Duration `yaml:"duration"`       // How long an effect stays active
	YieldTicks    int           `yaml:"yield_ticks"`    // Ticks the formation retreats upward
	ExplodeRadius int           `yaml:"explode_radius"` // Square radius of the Explode blast
	Pool          []string      `yaml:"pool"`           // Effects that may spawn; empty = all
}

// StructuresConfig defines shields, obstacles and the follower escort.
type StructuresConfig struct {
	Shields       int `yaml:"shields"`
	ShieldLives   int `yaml:"shield_lives"`
	Obstacles     int `yaml:"obstacles"`
	ObstacleLives int `yaml:"obstacle_lives"`
	FollowerLives int `yaml:"follower_lives"`
}

// ScoringConfig defines base points, multiplied by the current level.
type ScoringConfig struct {
	Enemy int `yaml:"enemy"`
	Boss  int `yaml:"boss"`
}

// TimingConfig defines the simulation refresh interval.
type TimingConfig struct {
	Refresh time.Duration `yaml:"refresh"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "wave", or "none"
	MaxAt int    `yaml:"max_at"` // Score/wave at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	FireMultiplier float64 `yaml:"fire_multiplier"` // Added to enemy fire probability factor at max difficulty
	PowerReduction float64 `yaml:"power_reduction"` // Fraction of power-up probability removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
