// Package sim is the real-time simulation and collision engine of Cosmic
// Defender. It owns every entity of a run, advances them once per tick,
// resolves collisions through a uniform spatial grid, drives the spawn
// director and boss behaviors, and schedules timed effects on an event
// queue. It has no knowledge of terminals, audio or networks; those are
// reached through the interfaces in ports.go.
package sim

import (
	"math"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// EntityID identifies an entity for the lifetime of a run. IDs are never reused.
type EntityID uint64

// NoTarget marks a scheduled event that is not bound to any entity.
const NoTarget EntityID = 0

// Entity is the capability set shared by every simulated object.
type Entity interface {
	EntityID() EntityID
	Bounds() core.Box
}

// sanitizePos replaces non-finite coordinates with the fallback.
func sanitizePos(v, fallback float64) float64 {
	if !core.Finite(v) {
		return fallback
	}
	return v
}

// sanitizeSize clamps a dimension to a positive finite value.
func sanitizeSize(v float64) float64 {
	if !core.Finite(v) || v <= 0 {
		return 1
	}
	return v
}

// validDamage reports whether an incoming damage amount can be applied.
func validDamage(amount float64) bool {
	return amount > 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

var (
	_ Entity = (*Player)(nil)
	_ Entity = (*Enemy)(nil)
	_ Entity = (*Projectile)(nil)
	_ Entity = (*Pickup)(nil)
	_ Entity = (*Hazard)(nil)
)
