package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadInvaders loads invaders configuration.
// Search order: customPath -> ~/.arcade/configs/invaders.yaml -> ./configs/invaders.yaml -> embedded default
// Fields missing from the file keep their default values. A file that is
// found but cannot be parsed or fails Validate is an error, and the
// returned config is the default one.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	// Try custom path first
	if customPath != "" {
		return loadFile(customPath)
	}

	for _, path := range searchPaths("invaders.yaml") {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return loadFile(path)
	}

	// Use embedded default YAML
	cfg := DefaultInvadersConfig()
	if err := yaml.Unmarshal(defaultInvadersYAML, &cfg); err != nil {
		return DefaultInvadersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// SearchPaths lists the config files LoadInvaders looks for when no
// custom path is given, in order.
func SearchPaths() []string {
	return searchPaths("invaders.yaml")
}

func searchPaths(filename string) []string {
	var paths []string
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		paths = append(paths, userCfgPath)
	}
	return append(paths, filepath.Join("configs", filename))
}

func loadFile(path string) (InvadersConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultInvadersConfig(), fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultInvadersConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultInvadersConfig(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultInvadersConfig(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate rejects configurations the engine cannot run with.
func (c InvadersConfig) Validate() error {
	if c.Field.Height < 8 || c.Field.Width < 8 {
		return fmt.Errorf("config: field %dx%d is too small", c.Field.Height, c.Field.Width)
	}
	if c.Formation.Rows < 1 || c.Formation.Columns < 1 {
		return fmt.Errorf("config: formation %dx%d must be at least 1x1", c.Formation.Rows, c.Formation.Columns)
	}
	if 2*(c.Formation.Rows+1) >= c.Field.Height-3 {
		return fmt.Errorf("config: %d formation rows do not fit a field of height %d", c.Formation.Rows, c.Field.Height)
	}
	if 2*c.Formation.Columns-1 > c.Field.Width-2 {
		return fmt.Errorf("config: %d formation columns do not fit a field of width %d", c.Formation.Columns, c.Field.Width)
	}
	for name, p := range map[string]float64{
		"power_probability": c.Spawn.PowerProbability,
		"fire_probability":  c.Spawn.FireProbability,
		"boss_probability":  c.Spawn.BossProbability,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("config: %s %v outside [0, 1]", name, p)
		}
	}
	if c.Player.AttackCooldown <= 0 || c.Effects.Duration <= 0 || c.Timing.Refresh <= 0 {
		return fmt.Errorf("config: cooldowns, effect duration and refresh must be positive")
	}
	return nil
}

// ApplyInvadersPreset modifies the config based on a difficulty preset.
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Spawn.FireProbability = 0.03
		cfg.Effects.Duration = 15 * time.Second
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Spawn.FireProbability = 0.08
		cfg.Spawn.PowerProbability = 0.05
	}
}
