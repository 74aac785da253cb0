package sim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/config"
	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// PowerUp is a collectable modifier.
type PowerUp int

const (
	PowerUpSpread   PowerUp = iota // Three-way shots
	PowerUpPiercing                // Shots survive one hit
	PowerUpSplash                  // Shots damage nearby enemies
	PowerUpShield                  // One shield charge
	PowerUpTimeWarp                // Enemies slowed
	powerUpCount
)

var powerUpKeys = [powerUpCount]string{"spread", "piercing", "splash", "shield", "time_warp"}

// String returns the configuration key of the power-up.
func (p PowerUp) String() string {
	if p < 0 || p >= powerUpCount {
		return "unknown"
	}
	return powerUpKeys[p]
}

// Label returns a display name.
func (p PowerUp) Label() string {
	switch p {
	case PowerUpSpread:
		return "Spread Shot"
	case PowerUpPiercing:
		return "Piercing Shot"
	case PowerUpSplash:
		return "Splash Damage"
	case PowerUpShield:
		return "Shield"
	case PowerUpTimeWarp:
		return "Time Warp"
	default:
		return "?"
	}
}

// Glyph returns the display character for a power-up.
func (p PowerUp) Glyph() rune {
	switch p {
	case PowerUpSpread:
		return 'W'
	case PowerUpPiercing:
		return 'P'
	case PowerUpSplash:
		return 'X'
	case PowerUpShield:
		return 'S'
	case PowerUpTimeWarp:
		return 'T'
	default:
		return '?'
	}
}

// Pickup is a falling power-up capsule.
type Pickup struct {
	ID      EntityID
	Kind    PowerUp
	X, Y    float64
	Size    float64
	VY      float64
	removed bool
}

// EntityID implements Entity.
func (p *Pickup) EntityID() EntityID { return p.ID }

// Bounds implements Entity.
func (p *Pickup) Bounds() core.Box { return core.BoxAt(p.X, p.Y, p.Size, p.Size) }

// Active reports whether the pickup can still be collected.
func (p *Pickup) Active() bool { return !p.removed }

// Advance moves the pickup down.
func (p *Pickup) Advance(dt time.Duration) {
	p.Y += p.VY * dt.Seconds()
}

// Effect is an active timed power-up.
type Effect struct {
	Kind     PowerUp
	Start    time.Duration
	Duration time.Duration
}

// Remaining returns how long the effect still lasts.
func (e Effect) Remaining(now time.Duration) time.Duration {
	return max(e.Start+e.Duration-now, 0)
}

// Expired reports whether the effect has run out.
func (e Effect) Expired(now time.Duration) bool {
	return now >= e.Start+e.Duration
}

// dropTable rolls drops from the configured weights.
type dropTable struct {
	chance  int
	weights [powerUpCount]int
	total   int
	fall    float64
	size    float64
}

func newDropTable(cfg config.PowerUpConfig) dropTable {
	t := dropTable{chance: cfg.DropChance, fall: cfg.FallSpeed, size: sanitizeSize(cfg.Size)}
	for i, key := range powerUpKeys {
		w := max(cfg.Weights[key], 0)
		t.weights[i] = w
		t.total += w
	}
	return t
}

// roll returns the dropped power-up, if any.
func (t dropTable) roll(rng *rand.Rand) (PowerUp, bool) {
	if t.total <= 0 || t.chance <= 0 || rng.Intn(100) >= t.chance {
		return 0, false
	}
	r := rng.Intn(t.total)
	cumulative := 0
	for i, w := range t.weights {
		cumulative += w
		if r < cumulative {
			return PowerUp(i), true
		}
	}
	return PowerUpSpread, true
}
