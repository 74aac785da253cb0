package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// Owner tells which side fired a projectile.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// Projectile is a shot travelling along Angle. Angle 0 points up the screen;
// positive angles turn clockwise.
type Projectile struct {
	ID     EntityID
	Owner  Owner
	X, Y   float64
	W, H   float64
	Damage float64
	Speed  float64
	Angle  float64

	Piercing bool // Survives its first hit
	Splash   bool // Damages enemies around the struck one
	Homing   bool // Re-aims at the player every tick

	hits    int
	lastHit EntityID
	removed bool
}

// EntityID implements Entity.
func (p *Projectile) EntityID() EntityID { return p.ID }

// Bounds implements Entity.
func (p *Projectile) Bounds() core.Box { return core.BoxAt(p.X, p.Y, p.W, p.H) }

// Active reports whether the projectile is still in flight.
func (p *Projectile) Active() bool { return !p.removed }

// Advance moves the projectile along its heading.
func (p *Projectile) Advance(dt time.Duration, speedScale float64) {
	d := p.Speed * speedScale * dt.Seconds()
	p.X += math.Sin(p.Angle) * d
	p.Y -= math.Cos(p.Angle) * d
	if !core.Finite(p.X) || !core.Finite(p.Y) {
		p.removed = true
	}
}

// AimAt turns the projectile toward (x, y).
func (p *Projectile) AimAt(x, y float64) {
	dx, dy := x-p.X, y-p.Y
	if dx == 0 && dy == 0 {
		return
	}
	// Angle 0 is up, so the heading is measured from -Y.
	p.Angle = math.Atan2(dx, -dy)
}

// Expired reports whether the projectile has left the play area.
func (p *Projectile) Expired(worldW, worldH float64) bool {
	return p.Y < -p.H || p.Y > worldH+p.H || p.X < -p.W || p.X > worldW+p.W
}

// registerHit records a hit on target and reports whether the projectile
// must be removed. A piercing projectile survives its first hit and never
// strikes the same target twice.
func (p *Projectile) registerHit(target EntityID) bool {
	p.hits++
	p.lastHit = target
	if p.Piercing && p.hits < 2 {
		return false
	}
	p.removed = true
	return true
}

// canHit reports whether the projectile may strike target.
func (p *Projectile) canHit(target EntityID) bool {
	return !p.removed && (p.hits == 0 || p.lastHit != target)
}
