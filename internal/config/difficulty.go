package config

import "math"

// DifficultyManager calculates dynamic spawn parameters based on score/wave.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/wave.
func (d *DifficultyManager) Level(score int, wave int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "wave":
		progress = float64(wave) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FireProbability returns the per-enemy fire chance for the current difficulty.
// It grows from base to base * (1 + fireMultiplier) and never exceeds 1.
func (d *DifficultyManager) FireProbability(base float64, score int, wave int) float64 {
	level := d.Level(score, wave)
	return clampF(base*(1.0+level*d.cfg.Scaling.FireMultiplier), 0.0, 1.0)
}

// PowerProbability returns the power-up spawn chance for the current difficulty.
func (d *DifficultyManager) PowerProbability(base float64, score int, wave int) float64 {
	level := d.Level(score, wave)
	reduction := clampF(level*d.cfg.Scaling.PowerReduction, 0.0, 1.0)
	return base * (1.0 - reduction)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
