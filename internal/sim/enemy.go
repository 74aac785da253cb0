package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// Kind tags an enemy variant.
type Kind int

const (
	KindBasic Kind = iota
	KindSpeedy
	KindArmored
	KindSplitting
	KindShielded
	KindMothership
	KindQuantumShifter
	KindHiveMind
	KindTechnoTitan
	KindCosmicHydra
	kindCount
)

var kindNames = [kindCount]string{
	"basic", "speedy", "armored", "splitting", "shielded",
	"mothership", "quantum_shifter", "hive_mind", "techno_titan", "cosmic_hydra",
}

// BossKinds lists the boss roster in a stable order.
var BossKinds = []Kind{KindMothership, KindQuantumShifter, KindHiveMind, KindTechnoTitan, KindCosmicHydra}

// String returns the configuration key of the kind.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IsBoss reports whether the kind is one of the bosses.
func (k Kind) IsBoss() bool {
	return k >= KindMothership && k < kindCount
}

// ParseKind maps a configuration key to a kind.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Capabilities are the per-kind behavior switches, looked up instead of
// inspecting concrete types.
type Capabilities struct {
	Boss        bool
	Splits      bool // Fission on death above the minimum size
	Sways       bool // Sine-wave horizontal motion
	ShieldCycle bool // Periodic invulnerability window
	WeakPoints  bool // Body damage gated by weak points
	TwinShot    bool // Fires two parallel shots
}

func capabilitiesOf(k Kind) Capabilities {
	switch k {
	case KindSpeedy:
		return Capabilities{Sways: true}
	case KindSplitting:
		return Capabilities{Splits: true}
	case KindShielded:
		return Capabilities{ShieldCycle: true}
	case KindMothership:
		return Capabilities{Boss: true, TwinShot: true}
	case KindTechnoTitan:
		return Capabilities{Boss: true, WeakPoints: true}
	case KindQuantumShifter, KindHiveMind, KindCosmicHydra:
		return Capabilities{Boss: true}
	default:
		return Capabilities{}
	}
}

// WeakPoint is an independently damageable sub-target offset from the body center.
type WeakPoint struct {
	OffsetX   float64
	W, H      float64
	Health    float64
	Destroyed bool
}

// Enemy is the single record type for every enemy and boss variant.
type Enemy struct {
	ID   EntityID
	Kind Kind
	Name string
	Caps Capabilities

	X, Y float64
	W, H float64

	Health    float64
	MaxHealth float64
	Speed     float64
	Damage    float64
	FireRate  float64

	// DamageFactor scales incoming body damage (Armored halves it).
	DamageFactor float64
	Invulnerable bool
	shieldUntil  time.Duration

	// Splitting
	Size         float64
	splitMinSize float64
	splitOffset  float64

	// Speedy sway
	startX    float64
	swayAmp   float64
	swayFreq  float64
	swayPhase float64

	WeakPoints []WeakPoint
	Abilities  []Ability

	SpawnedAt time.Duration
	lastShot  time.Duration

	dead    bool
	removed bool
}

// EntityID implements Entity.
func (e *Enemy) EntityID() EntityID { return e.ID }

// Bounds implements Entity.
func (e *Enemy) Bounds() core.Box { return core.BoxAt(e.X, e.Y, e.W, e.H) }

// Dead reports whether the enemy's health has reached zero.
func (e *Enemy) Dead() bool { return e.dead }

// Active reports whether the enemy still takes part in the simulation.
func (e *Enemy) Active() bool { return !e.dead && !e.removed }

// WeakPointBounds returns the box of weak point i at the current position.
func (e *Enemy) WeakPointBounds(i int) core.Box {
	wp := e.WeakPoints[i]
	return core.BoxAt(e.X+wp.OffsetX, e.Y, wp.W, wp.H)
}

// WeakPointsStanding reports whether any weak point is still intact.
func (e *Enemy) WeakPointsStanding() bool {
	for _, wp := range e.WeakPoints {
		if !wp.Destroyed {
			return true
		}
	}
	return false
}

// ApplyDamage subtracts damage from the body and reports whether this call
// killed the enemy. Damage is nullified while invulnerable and while any weak
// point stands. Death is reported exactly once.
func (e *Enemy) ApplyDamage(amount float64) bool {
	if e.dead || !validDamage(amount) {
		return false
	}
	if e.Invulnerable || e.WeakPointsStanding() {
		return false
	}
	if e.DamageFactor > 0 {
		amount *= e.DamageFactor
	}
	e.Health -= amount
	if e.Health <= 0 {
		e.Health = 0
		e.dead = true
		return true
	}
	return false
}

// DamageWeakPoint damages weak point i and reports whether it was destroyed by this hit.
func (e *Enemy) DamageWeakPoint(i int, amount float64) bool {
	if i < 0 || i >= len(e.WeakPoints) || !validDamage(amount) {
		return false
	}
	wp := &e.WeakPoints[i]
	if wp.Destroyed {
		return false
	}
	wp.Health -= amount
	if wp.Health <= 0 {
		wp.Health = 0
		wp.Destroyed = true
		return true
	}
	return false
}

// Heal restores health up to the maximum.
func (e *Enemy) Heal(amount float64) {
	if e.dead || !validDamage(amount) {
		return
	}
	e.Health = math.Min(e.Health+amount, e.MaxHealth)
}

// Advance moves the enemy down the play area. speed is the effective speed
// after difficulty and time-warp scaling.
func (e *Enemy) Advance(dt time.Duration, speed float64) {
	s := dt.Seconds()
	e.Y += speed * s
	if e.Caps.Sways {
		e.swayPhase += e.swayFreq * s
		e.X = e.startX + e.swayAmp*math.Sin(e.swayPhase)
	}
	e.X = sanitizePos(e.X, e.startX)
	e.Y = sanitizePos(e.Y, 0)
}

// Expired reports whether the enemy has passed the bottom escape line.
func (e *Enemy) Expired(worldH, margin float64) bool {
	return e.Y > worldH+margin
}

// fireDue reports whether the enemy's weapon has cooled down and records the shot.
func (e *Enemy) fireDue(now time.Duration) bool {
	if e.FireRate <= 0 {
		return false
	}
	interval := time.Duration(float64(time.Second) / e.FireRate)
	if now-e.lastShot < interval {
		return false
	}
	e.lastShot = now
	return true
}
