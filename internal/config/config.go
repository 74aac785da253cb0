// Package config provides YAML-based configuration loading and difficulty
// management for Cosmic Defender.
//
// Speeds are world units per second and durations use Go duration strings
// ("1.2s", "500ms") in YAML.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownShip is returned when a ship archetype ID is not configured.
var ErrUnknownShip = errors.New("config: unknown ship")

// ShooterConfig contains all tunables for a run.
type ShooterConfig struct {
	World      WorldConfig           `yaml:"world"`
	Loop       LoopConfig            `yaml:"loop"`
	Player     PlayerConfig          `yaml:"player"`
	Ships      []ShipConfig          `yaml:"ships"`
	Enemies    map[string]EnemyStats `yaml:"enemies"`
	Bosses     map[string]BossConfig `yaml:"bosses"`
	Spawn      SpawnConfig           `yaml:"spawn"`
	Collision  CollisionConfig       `yaml:"collision"`
	Scoring    ScoringConfig         `yaml:"scoring"`
	PowerUps   PowerUpConfig         `yaml:"powerups"`
	Difficulty DifficultyConfig      `yaml:"difficulty"`
}

// WorldConfig defines the play area in world units.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	EscapeMargin float64 `yaml:"escape_margin"` // Enemies past Height+EscapeMargin have escaped
}

// LoopConfig defines the frame scheduler policy.
type LoopConfig struct {
	StallThreshold time.Duration `yaml:"stall_threshold"`
}

// PlayerConfig defines the parameters shared by every ship archetype.
type PlayerConfig struct {
	Width           float64        `yaml:"width"`
	Height          float64        `yaml:"height"`
	StartOffset     float64        `yaml:"start_offset"` // Distance of the ship center above the bottom edge
	ProjectileSpeed float64        `yaml:"projectile_speed"`
	ProjectileW     float64        `yaml:"projectile_width"`
	ProjectileH     float64        `yaml:"projectile_height"`
	SpreadAngle     float64        `yaml:"spread_angle"` // Radians between spread shots
	Specials        SpecialsConfig `yaml:"specials"`
}

// SpecialsConfig tunes the archetype special abilities.
type SpecialsConfig struct {
	DodgeDistance    float64       `yaml:"dodge_distance"` // Multiplied by ship speed per frame
	DodgeInvuln      time.Duration `yaml:"dodge_invulnerability"`
	FortifyDuration  time.Duration `yaml:"fortify_duration"`
	FortifyReduction float64       `yaml:"fortify_reduction"`
	SurgeDuration    time.Duration `yaml:"surge_duration"`
	SurgeMultiplier  float64       `yaml:"surge_multiplier"`
	WaveDamage       float64       `yaml:"wave_damage"`
}

// ShipConfig is one selectable player archetype.
type ShipConfig struct {
	ID              string        `yaml:"id"`
	Name            string        `yaml:"name"`
	Speed           float64       `yaml:"speed"`
	FireRate        float64       `yaml:"fire_rate"` // Shots per second
	Damage          float64       `yaml:"damage"`
	Health          float64       `yaml:"health"`
	Defense         float64       `yaml:"defense"` // Percent, 0-100
	Special         string        `yaml:"special"`
	SpecialCooldown time.Duration `yaml:"special_cooldown"`
}

// EnemyStats are the numeric parameters of one enemy kind.
type EnemyStats struct {
	Health   float64 `yaml:"health"`
	Speed    float64 `yaml:"speed"`
	Damage   float64 `yaml:"damage"`
	FireRate float64 `yaml:"fire_rate"` // Shots per second, 0 never fires
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`

	// Kind-specific, zero when unused.
	DamageFactor   float64       `yaml:"damage_factor,omitempty"`
	SwayAmplitude  float64       `yaml:"sway_amplitude,omitempty"`
	SwayFrequency  float64       `yaml:"sway_frequency,omitempty"` // Radians per second
	ShieldDuration time.Duration `yaml:"shield_duration,omitempty"`
	ShieldCooldown time.Duration `yaml:"shield_cooldown,omitempty"`
	SplitMinSize   float64       `yaml:"split_min_size,omitempty"`
	SplitOffset    float64       `yaml:"split_offset,omitempty"`
	HealthPerSize  float64       `yaml:"health_per_size,omitempty"`
}

// BossConfig holds a boss's stats and its periodic abilities keyed by name.
type BossConfig struct {
	Name      string                   `yaml:"name"`
	Stats     EnemyStats               `yaml:"stats"`
	Abilities map[string]AbilityConfig `yaml:"abilities"`
}

// AbilityConfig parameterizes one periodic boss ability.
type AbilityConfig struct {
	Interval time.Duration `yaml:"interval"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Poll     time.Duration `yaml:"poll,omitempty"` // Period of the effect's own check
	Count    int           `yaml:"count,omitempty"`
	Amount   float64       `yaml:"amount,omitempty"` // Damage, heal or pull strength
	Speed    float64       `yaml:"speed,omitempty"`
	Offset   float64       `yaml:"offset,omitempty"`
	Size     float64       `yaml:"size,omitempty"`
	Health   float64       `yaml:"health,omitempty"`
}

// SpawnConfig controls the spawn director.
type SpawnConfig struct {
	BaseInterval      time.Duration `yaml:"base_interval"`
	IntervalStep      time.Duration `yaml:"interval_step"` // Subtracted per elapsed minute
	MinInterval       time.Duration `yaml:"min_interval"`
	MaxEnemies        int           `yaml:"max_enemies"`
	Margin            float64       `yaml:"margin"`
	PlacementAttempts int           `yaml:"placement_attempts"`
	RegularY          float64       `yaml:"regular_y"`
	TierY             float64       `yaml:"tier_y"`
	Tiers             []TierConfig  `yaml:"tiers"`
	BossFirstAt       time.Duration `yaml:"boss_first_at"`
	BossInterval      time.Duration `yaml:"boss_interval"`
	BossJitter        time.Duration `yaml:"boss_jitter"`
	BossY             float64       `yaml:"boss_y"`
}

// TierConfig unlocks an enemy kind after a number of elapsed minutes.
type TierConfig struct {
	Kind         string  `yaml:"kind"`
	AfterMinutes float64 `yaml:"after_minutes"`
	Chance       float64 `yaml:"chance"` // Per-tick probability
	Size         float64 `yaml:"size,omitempty"`
}

// CollisionConfig tunes the spatial index and resolver.
type CollisionConfig struct {
	CellSize          float64 `yaml:"cell_size"`
	Neighborhood      int     `yaml:"neighborhood"`       // Cells searched around the query cell; 0 = exact cell
	FallbackThreshold int     `yaml:"fallback_threshold"` // Enemy count at or below which player checks scan all enemies
	SplashRadius      float64 `yaml:"splash_radius"`
	SplashFactor      float64 `yaml:"splash_factor"`
}

// ScoringConfig sets kill rewards.
type ScoringConfig struct {
	Regular int `yaml:"regular"`
	Boss    int `yaml:"boss"`
}

// PowerUpConfig controls pickup drops and timed effects.
type PowerUpConfig struct {
	DropChance int                      `yaml:"drop_chance"` // Percent per kill
	FallSpeed  float64                  `yaml:"fall_speed"`
	Size       float64                  `yaml:"size"`
	Weights    map[string]int           `yaml:"weights"`
	Durations  map[string]time.Duration `yaml:"durations"`
	TimeWarp   float64                  `yaml:"time_warp_factor"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "time" or "none"
	MaxAt float64 `yaml:"max_at"` // Minutes at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Empty input yields "".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.1
	case DifficultyHard:
		return 0.3
	default:
		return 0.0
	}
}

// Ship returns the archetype with the given ID.
func (c ShooterConfig) Ship(id string) (ShipConfig, error) {
	for _, s := range c.Ships {
		if s.ID == id {
			return s, nil
		}
	}
	return ShipConfig{}, fmt.Errorf("%w %q", ErrUnknownShip, id)
}
