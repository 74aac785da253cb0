package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseShooter(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	want := DefaultShooterConfig()
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded YAML and DefaultShooterConfig() diverge\nyaml: %+v\ncode: %+v", cfg, want)
	}
}

func TestLoadShooterCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte(`
world:
  width: 1024
spawn:
  max_enemies: 4
  base_interval: 3s
collision:
  neighborhood: 0
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadShooter(path)
	if err != nil {
		t.Fatalf("LoadShooter() failed: %v", err)
	}
	if cfg.World.Width != 1024 {
		t.Errorf("World.Width = %v, expected 1024", cfg.World.Width)
	}
	if cfg.World.Height != 600 {
		t.Errorf("unset keys should keep defaults, World.Height = %v", cfg.World.Height)
	}
	if cfg.Spawn.MaxEnemies != 4 || cfg.Spawn.BaseInterval != 3*time.Second {
		t.Errorf("spawn overrides not applied: %+v", cfg.Spawn)
	}
	if cfg.Collision.Neighborhood != 0 {
		t.Errorf("Neighborhood = %d, expected 0", cfg.Collision.Neighborhood)
	}
}

func TestLoadShooterErrors(t *testing.T) {
	if _, err := LoadShooter(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("world: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadShooter(path); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("collision:\n  cell_size: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadShooter(invalid); err == nil {
		t.Error("expected validation error for zero cell size")
	}
}

func TestShipLookup(t *testing.T) {
	cfg := DefaultShooterConfig()

	ship, err := cfg.Ship("tank")
	if err != nil {
		t.Fatalf("Ship(tank) failed: %v", err)
	}
	if ship.Health != 300 || ship.Defense != 30 {
		t.Errorf("unexpected tank stats: %+v", ship)
	}

	if _, err := cfg.Ship("ufo"); !errors.Is(err, ErrUnknownShip) {
		t.Errorf("expected ErrUnknownShip, got %v", err)
	}
}

func TestApplyShooterPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		initialLevel float64
	}{
		{"", true, 0},
		{DifficultyEasy, true, 0},
		{DifficultyNormal, true, 0.1},
		{DifficultyHard, true, 0.3},
		{DifficultyFixed, false, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultShooterConfig()
			ApplyShooterPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initialLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initialLevel)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
