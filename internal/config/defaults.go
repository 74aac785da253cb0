package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// Ability names understood by the simulation.
const (
	AbilityDrone       = "drone"
	AbilityLaser       = "laser"
	AbilityTeleport    = "teleport"
	AbilityBlackHole   = "black_hole"
	AbilitySwarm       = "swarm"
	AbilityMindControl = "mind_control"
	AbilityEMP         = "emp"
	AbilityWeakPoints  = "weak_points"
	AbilityRegen       = "regen"
	AbilityHoming      = "homing"
)

// DefaultShooterConfig returns the built-in configuration. The embedded
// defaults/shooter.yaml mirrors these values.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		World: WorldConfig{
			Width:        800,
			Height:       600,
			EscapeMargin: 100,
		},
		Loop: LoopConfig{
			StallThreshold: time.Second / 30,
		},
		Player: PlayerConfig{
			Width:           100,
			Height:          100,
			StartOffset:     50,
			ProjectileSpeed: 420,
			ProjectileW:     5,
			ProjectileH:     15,
			SpreadAngle:     0.1,
			Specials: SpecialsConfig{
				DodgeDistance:    30,
				DodgeInvuln:      600 * time.Millisecond,
				FortifyDuration:  8 * time.Second,
				FortifyReduction: 0.5,
				SurgeDuration:    5 * time.Second,
				SurgeMultiplier:  2,
				WaveDamage:       20,
			},
		},
		Ships: []ShipConfig{
			{ID: "speedster", Name: "Speedster", Speed: 900, FireRate: 5, Damage: 18, Health: 80, Defense: 5, Special: "dodge_roll", SpecialCooldown: 5 * time.Second},
			{ID: "tank", Name: "Tank", Speed: 360, FireRate: 2, Damage: 13, Health: 300, Defense: 30, Special: "fortify", SpecialCooldown: 15 * time.Second},
			{ID: "glass_cannon", Name: "Glass Cannon", Speed: 540, FireRate: 7, Damage: 35, Health: 60, Defense: 0, Special: "power_surge", SpecialCooldown: 12 * time.Second},
			{ID: "all_rounder", Name: "All Rounder", Speed: 540, FireRate: 4, Damage: 22, Health: 120, Defense: 15, Special: "energy_wave", SpecialCooldown: 18 * time.Second},
		},
		Enemies: map[string]EnemyStats{
			"basic":     {Health: 1, Speed: 30, Damage: 3, FireRate: 0.1, Width: 70, Height: 70},
			"speedy":    {Health: 3, Speed: 72, Damage: 2, FireRate: 0.2, Width: 70, Height: 70, SwayAmplitude: 40, SwayFrequency: 3},
			"armored":   {Health: 15, Speed: 18, Damage: 5, FireRate: 0.05, Width: 70, Height: 70, DamageFactor: 0.5},
			"splitting": {Speed: 24, Damage: 4, FireRate: 0, Width: 40, Height: 40, SplitMinSize: 20, SplitOffset: 10, HealthPerSize: 0.2},
			"shielded":  {Health: 10, Speed: 36, Damage: 4, FireRate: 0.1, Width: 70, Height: 70, ShieldDuration: 1200 * time.Millisecond, ShieldCooldown: 4 * time.Second},
		},
		Bosses: map[string]BossConfig{
			"mothership": {
				Name:  "Mothership",
				Stats: EnemyStats{Health: 200, Speed: 9, Damage: 10, FireRate: 0.3, Width: 180, Height: 180},
				Abilities: map[string]AbilityConfig{
					AbilityDrone: {Interval: 6 * time.Second, Offset: 50},
					AbilityLaser: {Interval: 25 * time.Second, Duration: 2 * time.Second, Poll: 16 * time.Millisecond, Amount: 30, Size: 20},
				},
			},
			"quantum_shifter": {
				Name:  "Quantum Shifter",
				Stats: EnemyStats{Health: 180, Speed: 48, Damage: 8, FireRate: 0.3, Width: 70, Height: 70},
				Abilities: map[string]AbilityConfig{
					AbilityTeleport:  {Interval: 10 * time.Second},
					AbilityBlackHole: {Interval: 30 * time.Second, Duration: 5 * time.Second, Poll: 16 * time.Millisecond, Amount: 0.5, Size: 60},
				},
			},
			"hive_mind": {
				Name:  "Hive Mind",
				Stats: EnemyStats{Health: 220, Speed: 15, Damage: 7, FireRate: 0.3, Width: 80, Height: 80},
				Abilities: map[string]AbilityConfig{
					AbilitySwarm:       {Interval: 7 * time.Second, Count: 3},
					AbilityMindControl: {Interval: 35 * time.Second, Duration: 5 * time.Second},
				},
			},
			"techno_titan": {
				Name:  "Techno Titan",
				Stats: EnemyStats{Health: 250, Speed: 10.8, Damage: 12, FireRate: 0.3, Width: 100, Height: 100},
				Abilities: map[string]AbilityConfig{
					AbilityEMP:        {Interval: 30 * time.Second, Duration: 10 * time.Second},
					AbilityWeakPoints: {Count: 2, Offset: 30, Size: 20, Health: 40},
				},
			},
			"cosmic_hydra": {
				Name:  "Cosmic Hydra",
				Stats: EnemyStats{Health: 230, Speed: 15, Damage: 9, FireRate: 0.3, Width: 90, Height: 90},
				Abilities: map[string]AbilityConfig{
					AbilityRegen:  {Interval: 4 * time.Second, Amount: 20},
					AbilityHoming: {Interval: 20 * time.Second, Count: 3, Amount: 15, Speed: 180},
				},
			},
		},
		Spawn: SpawnConfig{
			BaseInterval:      2 * time.Second,
			IntervalStep:      100 * time.Millisecond,
			MinInterval:       500 * time.Millisecond,
			MaxEnemies:        10,
			Margin:            50,
			PlacementAttempts: 10,
			RegularY:          -70,
			TierY:             -50,
			Tiers: []TierConfig{
				{Kind: "speedy", AfterMinutes: 1, Chance: 0.02},
				{Kind: "armored", AfterMinutes: 2, Chance: 0.01},
				{Kind: "splitting", AfterMinutes: 3, Chance: 0.005, Size: 40},
				{Kind: "shielded", AfterMinutes: 4, Chance: 0.002},
			},
			BossFirstAt:  2 * time.Minute,
			BossInterval: 120 * time.Second,
			BossJitter:   60 * time.Second,
			BossY:        -150,
		},
		Collision: CollisionConfig{
			CellSize:          70,
			Neighborhood:      1,
			FallbackThreshold: 8,
			SplashRadius:      50,
			SplashFactor:      0.5,
		},
		Scoring: ScoringConfig{
			Regular: 10,
			Boss:    100,
		},
		PowerUps: PowerUpConfig{
			DropChance: 10,
			FallSpeed:  120,
			Size:       30,
			Weights: map[string]int{
				"spread":    3,
				"piercing":  2,
				"splash":    2,
				"shield":    2,
				"time_warp": 1,
			},
			Durations: map[string]time.Duration{
				"spread":    10 * time.Second,
				"piercing":  8 * time.Second,
				"splash":    8 * time.Second,
				"time_warp": 6 * time.Second,
			},
			TimeWarp: 0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 15,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultShooterYAML
}
