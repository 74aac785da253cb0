package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const shooterFile = "shooter.yaml"

// LoadShooter loads the game configuration.
// Search order: customPath -> ~/.defender/configs/shooter.yaml -> ./configs/shooter.yaml -> embedded default.
// Files are decoded over the built-in defaults, so partial files only
// override the keys they mention.
func LoadShooter(customPath string) (ShooterConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultShooterConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseShooter(data)
		if err != nil {
			return DefaultShooterConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(shooterFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseShooter(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", shooterFile)); err == nil {
		if cfg, err := parseShooter(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseShooter(defaultShooterYAML)
	if err != nil {
		return DefaultShooterConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseShooter(data []byte) (ShooterConfig, error) {
	cfg := DefaultShooterConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c ShooterConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	case len(c.Ships) == 0:
		return fmt.Errorf("config: at least one ship is required")
	case c.Collision.CellSize <= 0:
		return fmt.Errorf("config: collision.cell_size must be positive")
	case c.Collision.Neighborhood < 0:
		return fmt.Errorf("config: collision.neighborhood must not be negative")
	case c.Spawn.MaxEnemies <= 0:
		return fmt.Errorf("config: spawn.max_enemies must be positive")
	case c.Loop.StallThreshold <= 0:
		return fmt.Errorf("config: loop.stall_threshold must be positive")
	}
	if _, ok := c.Enemies["basic"]; !ok {
		return fmt.Errorf("config: enemies.basic is required")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".defender", "configs", filename)
}

// ApplyShooterPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyShooterPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Scaling.SpeedMultiplier = 0
		cfg.PowerUps.DropChance = max(cfg.PowerUps.DropChance, 20)
	case DifficultyHard:
		cfg.Difficulty.Scaling.SpeedMultiplier = 0.5
		cfg.PowerUps.DropChance = min(cfg.PowerUps.DropChance, 5)
	}
}
