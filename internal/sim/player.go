package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/config"
	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// Special is an archetype special ability.
type Special int

const (
	SpecialNone Special = iota
	SpecialDodgeRoll
	SpecialFortify
	SpecialPowerSurge
	SpecialEnergyWave
)

func parseSpecial(s string) Special {
	switch s {
	case "dodge_roll":
		return SpecialDodgeRoll
	case "fortify":
		return SpecialFortify
	case "power_surge":
		return SpecialPowerSurge
	case "energy_wave":
		return SpecialEnergyWave
	default:
		return SpecialNone
	}
}

// String returns a display name.
func (s Special) String() string {
	switch s {
	case SpecialDodgeRoll:
		return "Dodge Roll"
	case SpecialFortify:
		return "Fortify"
	case SpecialPowerSurge:
		return "Power Surge"
	case SpecialEnergyWave:
		return "Energy Wave"
	default:
		return "None"
	}
}

// Player is the ship controlled by the user.
type Player struct {
	ID   EntityID
	Ship string
	Name string

	X, Y float64
	W, H float64

	Speed           float64
	FireRate        float64
	Damage          float64
	MaxHealth       float64
	Defense         float64
	Special         Special
	SpecialCooldown time.Duration

	Health        float64
	ShieldCharges int
	Invulnerable  bool
	invulnUntil   time.Duration

	Effects []Effect

	LastShot    time.Duration
	LastSpecial time.Duration

	SpecialActive bool
	specialUntil  time.Duration
	fortify       float64
	damageMult    float64

	mindControlUntil time.Duration
	empUntil         time.Duration

	dead bool
}

// NewPlayer places a ship of the given archetype at (x, y).
func NewPlayer(id EntityID, ship config.ShipConfig, pc config.PlayerConfig, x, y float64) *Player {
	health := ship.Health
	if health <= 0 {
		health = 1
	}
	p := &Player{
		ID:              id,
		Ship:            ship.ID,
		Name:            ship.Name,
		X:               sanitizePos(x, 0),
		Y:               sanitizePos(y, 0),
		W:               sanitizeSize(pc.Width),
		H:               sanitizeSize(pc.Height),
		Speed:           ship.Speed,
		FireRate:        ship.FireRate,
		Damage:          ship.Damage,
		MaxHealth:       health,
		Defense:         math.Max(0, math.Min(100, ship.Defense)),
		Special:         parseSpecial(ship.Special),
		SpecialCooldown: ship.SpecialCooldown,
		Health:          health,
		damageMult:      1,
	}
	// Weapon and special are ready from the first tick.
	p.LastShot = -p.fireInterval()
	p.LastSpecial = -p.SpecialCooldown
	return p
}

// EntityID implements Entity.
func (p *Player) EntityID() EntityID { return p.ID }

// Bounds implements Entity.
func (p *Player) Bounds() core.Box { return core.BoxAt(p.X, p.Y, p.W, p.H) }

// Dead reports whether the player has been destroyed.
func (p *Player) Dead() bool { return p.dead }

// ApplyDamage applies incoming damage and reports whether this hit killed the
// player. Invulnerability nullifies the hit; otherwise a shield charge absorbs
// it and is consumed.
func (p *Player) ApplyDamage(amount float64) bool {
	if p.dead || !validDamage(amount) {
		return false
	}
	if p.Invulnerable {
		return false
	}
	if p.ShieldCharges > 0 {
		p.ShieldCharges--
		return false
	}
	mult := math.Max(0, 1-p.Defense/100-p.fortify)
	p.Health -= amount * mult
	if p.Health <= 0 {
		p.Health = 0
		p.dead = true
		return true
	}
	return false
}

// Move shifts the ship horizontally by dir (-1, 0, 1) for dt, keeping it
// inside the world. Movement is inverted while mind controlled.
func (p *Player) Move(dir float64, dt time.Duration, now time.Duration, worldW float64) {
	if p.MindControlled(now) {
		dir = -dir
	}
	p.X += dir * p.Speed * dt.Seconds()
	p.clamp(worldW)
}

// Nudge moves the ship by (dx, dy) without the input inversion. Used by
// external forces.
func (p *Player) Nudge(dx, dy, worldW, worldH float64) {
	p.X += dx
	p.Y += dy
	p.clamp(worldW)
	p.Y = core.ClampF(sanitizePos(p.Y, worldH-p.H/2), p.H/2, worldH-p.H/2)
}

func (p *Player) clamp(worldW float64) {
	p.X = sanitizePos(p.X, worldW/2)
	if worldW <= p.W {
		p.X = worldW / 2
		return
	}
	p.X = core.ClampF(p.X, p.W/2, worldW-p.W/2)
}

// MindControlled reports whether input is currently inverted.
func (p *Player) MindControlled(now time.Duration) bool {
	return now < p.mindControlUntil
}

// EMPed reports whether the special ability is disabled.
func (p *Player) EMPed(now time.Duration) bool {
	return now < p.empUntil
}

func (p *Player) fireInterval() time.Duration {
	if p.FireRate <= 0 {
		return time.Duration(math.MaxInt64 / 4)
	}
	return time.Duration(float64(time.Second) / p.FireRate)
}

// CanFire reports whether the weapon has cooled down.
func (p *Player) CanFire(now time.Duration) bool {
	return p.FireRate > 0 && now-p.LastShot >= p.fireInterval()
}

// SpecialReady reports whether the special can be triggered.
func (p *Player) SpecialReady(now time.Duration) bool {
	return p.Special != SpecialNone && !p.EMPed(now) && now-p.LastSpecial >= p.SpecialCooldown
}

// SpecialRemaining returns the remaining cooldown.
func (p *Player) SpecialRemaining(now time.Duration) time.Duration {
	return max(p.SpecialCooldown-(now-p.LastSpecial), 0)
}

// ShotDamage is the damage of one projectile including active boosts.
func (p *Player) ShotDamage() float64 {
	return p.Damage * p.damageMult
}

// HasEffect reports whether a timed power-up is active.
func (p *Player) HasEffect(kind PowerUp, now time.Duration) bool {
	for _, e := range p.Effects {
		if e.Kind == kind && !e.Expired(now) {
			return true
		}
	}
	return false
}

// AddEffect starts a timed power-up or restarts it if already active.
func (p *Player) AddEffect(kind PowerUp, now, d time.Duration) {
	for i := range p.Effects {
		if p.Effects[i].Kind == kind {
			p.Effects[i].Start = now
			p.Effects[i].Duration = d
			return
		}
	}
	p.Effects = append(p.Effects, Effect{Kind: kind, Start: now, Duration: d})
}

// ExpireEffects drops finished power-ups and returns their kinds.
func (p *Player) ExpireEffects(now time.Duration) []PowerUp {
	var expired []PowerUp
	active := p.Effects[:0]
	for _, e := range p.Effects {
		if e.Expired(now) {
			expired = append(expired, e.Kind)
			continue
		}
		active = append(active, e)
	}
	p.Effects = active
	return expired
}

// shoot creates the projectiles of one volley and records the shot time.
func (p *Player) shoot(rs *RunState) []*Projectile {
	pc := rs.cfg.Player
	angles := []float64{0}
	if p.HasEffect(PowerUpSpread, rs.Now) {
		angles = []float64{-pc.SpreadAngle, 0, pc.SpreadAngle}
	}
	piercing := p.HasEffect(PowerUpPiercing, rs.Now)
	splash := p.HasEffect(PowerUpSplash, rs.Now)

	shots := make([]*Projectile, 0, len(angles))
	for _, a := range angles {
		shots = append(shots, &Projectile{
			ID:       rs.newID(),
			Owner:    OwnerPlayer,
			X:        p.X,
			Y:        p.Y - p.H/2,
			W:        sanitizeSize(pc.ProjectileW),
			H:        sanitizeSize(pc.ProjectileH),
			Damage:   p.ShotDamage(),
			Speed:    pc.ProjectileSpeed,
			Angle:    a,
			Piercing: piercing,
			Splash:   splash,
		})
	}
	p.LastShot = rs.Now
	return shots
}

// useSpecial triggers the archetype special. Timed specials end through a
// scheduled event.
func (p *Player) useSpecial(rs *RunState) bool {
	if !p.SpecialReady(rs.Now) {
		return false
	}
	sc := rs.cfg.Player.Specials
	p.LastSpecial = rs.Now

	switch p.Special {
	case SpecialDodgeRoll:
		dir := 1.0
		if rs.rng.Intn(2) == 0 {
			dir = -1
		}
		// Distance is expressed in frames of travel at 60 fps.
		p.X += dir * p.Speed / 60 * sc.DodgeDistance
		p.clamp(rs.cfg.World.Width)
		p.makeInvulnerable(rs, sc.DodgeInvuln)
	case SpecialFortify:
		p.fortify = sc.FortifyReduction
		p.startSpecial(rs, sc.FortifyDuration)
	case SpecialPowerSurge:
		p.damageMult = sc.SurgeMultiplier
		p.startSpecial(rs, sc.SurgeDuration)
	case SpecialEnergyWave:
		for _, e := range rs.Enemies {
			if !e.Active() {
				continue
			}
			if e.ApplyDamage(sc.WaveDamage) {
				rs.killEnemy(e)
			}
		}
	}
	rs.notify.Sound(CueSpecial)
	rs.log.Debug("special used", "special", p.Special, "t", rs.Now)
	return true
}

func (p *Player) startSpecial(rs *RunState, d time.Duration) {
	p.SpecialActive = true
	p.specialUntil = rs.Now + d
	rs.Events.Schedule(Event{At: p.specialUntil, Target: p.ID, Kind: EventSpecialEnd})
}

func (p *Player) endSpecial(now time.Duration) {
	if now < p.specialUntil {
		return
	}
	p.SpecialActive = false
	p.fortify = 0
	p.damageMult = 1
}

func (p *Player) makeInvulnerable(rs *RunState, d time.Duration) {
	p.Invulnerable = true
	p.invulnUntil = max(p.invulnUntil, rs.Now+d)
	rs.Events.Schedule(Event{At: p.invulnUntil, Target: p.ID, Kind: EventInvulnerableEnd})
}

func (p *Player) endInvulnerable(now time.Duration) {
	if now < p.invulnUntil {
		return
	}
	p.Invulnerable = false
}
