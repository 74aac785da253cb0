package config

import (
	"math"
	"time"
)

// DifficultyManager maps elapsed run time to the effective minutes the spawn
// director uses and to an enemy speed multiplier.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Minutes returns the effective elapsed minutes. The initial level shifts the
// clock forward by initialLevel*max_at minutes; with progression disabled the
// clock stays at that offset.
func (d *DifficultyManager) Minutes(elapsed time.Duration) float64 {
	offset := d.initialLevel * d.cfg.Progression.MaxAt
	if !d.IsEnabled() {
		return offset
	}
	return elapsed.Minutes() + offset
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(elapsed time.Duration) float64 {
	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	return clampF(d.Minutes(elapsed)/maxAt, 0.0, 1.0)
}

// Speed returns the base speed scaled by the current difficulty.
func (d *DifficultyManager) Speed(base float64, elapsed time.Duration) float64 {
	return base * (1.0 + d.Level(elapsed)*d.cfg.Scaling.SpeedMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
