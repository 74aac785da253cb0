package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/config"
)

// AbilityKind selects a periodic enemy effect.
type AbilityKind int

const (
	AbilityShield AbilityKind = iota
	AbilityDrone
	AbilityLaser
	AbilityTeleport
	AbilityBlackHole
	AbilitySwarm
	AbilityMindControl
	AbilityEMP
	AbilityRegen
	AbilityHoming
)

func parseAbility(name string) (AbilityKind, bool) {
	switch name {
	case config.AbilityDrone:
		return AbilityDrone, true
	case config.AbilityLaser:
		return AbilityLaser, true
	case config.AbilityTeleport:
		return AbilityTeleport, true
	case config.AbilityBlackHole:
		return AbilityBlackHole, true
	case config.AbilitySwarm:
		return AbilitySwarm, true
	case config.AbilityMindControl:
		return AbilityMindControl, true
	case config.AbilityEMP:
		return AbilityEMP, true
	case config.AbilityRegen:
		return AbilityRegen, true
	case config.AbilityHoming:
		return AbilityHoming, true
	default:
		return 0, false
	}
}

// Ability is one interval timer of an enemy.
type Ability struct {
	Kind     AbilityKind
	Interval time.Duration
	Last     time.Duration
	Params   config.AbilityConfig
}

// due reports whether the ability fires at now and restarts its timer.
func (a *Ability) due(now time.Duration) bool {
	if a.Interval <= 0 || now-a.Last < a.Interval {
		return false
	}
	a.Last = now
	return true
}

const (
	enemyShotSpeed float64 = 300
	enemyShotW     float64 = 5
	enemyShotH     float64 = 15
)

// runBehaviors advances every enemy's ability timers and weapon. Enemies
// created here are appended after the loop bound and wait for the next tick.
func (rs *RunState) runBehaviors() {
	n := len(rs.Enemies)
	for i := 0; i < n && !rs.GameOver; i++ {
		e := rs.Enemies[i]
		if !e.Active() {
			continue
		}
		rs.guard(e, "behavior", func() {
			for j := range e.Abilities {
				a := &e.Abilities[j]
				if a.due(rs.Now) {
					rs.perform(e, *a)
				}
			}
			if e.Active() && e.fireDue(rs.Now) {
				rs.enemyFire(e)
			}
		})
	}
}

// guard runs fn and isolates a panic to the enemy that caused it: the enemy
// is logged and removed and the tick carries on.
func (rs *RunState) guard(e *Enemy, phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			rs.log.Error("enemy update failed", "phase", phase, "id", e.ID, "kind", e.Kind, "err", fmt.Sprint(r))
			rs.removeEnemy(e)
		}
	}()
	fn()
}

func (rs *RunState) perform(e *Enemy, a Ability) {
	p := rs.Player
	switch a.Kind {
	case AbilityShield:
		e.Invulnerable = true
		e.shieldUntil = rs.Now + a.Params.Duration
		rs.Events.Schedule(Event{At: e.shieldUntil, Target: e.ID, Kind: EventShieldDown})

	case AbilityDrone:
		off := (rs.rng.Float64()*2 - 1) * a.Params.Offset
		rs.addEnemy(rs.roster.New(rs.newID(), KindBasic, e.X+off, e.Y+e.H/2, 0, rs.Now))

	case AbilityLaser:
		rs.fireLaser(e, a)

	case AbilityTeleport:
		e.X = rs.rng.Float64() * rs.cfg.World.Width
		e.startX = e.X

	case AbilityBlackHole:
		rs.openBlackHole(e, a)

	case AbilitySwarm:
		for range max(a.Params.Count, 0) {
			x := rs.rng.Float64() * rs.cfg.World.Width
			rs.addEnemy(rs.roster.New(rs.newID(), KindSpeedy, x, e.Y, 0, rs.Now))
		}
		rs.notify.Announce(e.Name+" summons a swarm!", 2*time.Second)

	case AbilityMindControl:
		p.mindControlUntil = rs.Now + a.Params.Duration
		rs.Events.Schedule(Event{At: p.mindControlUntil, Target: p.ID, Kind: EventMindControlEnd})
		rs.notify.Announce("Mind Control activated!", 2*time.Second)

	case AbilityEMP:
		p.empUntil = rs.Now + a.Params.Duration
		rs.Events.Schedule(Event{At: p.empUntil, Target: p.ID, Kind: EventEMPEnd})
		rs.notify.Announce("EMP blast! Special abilities disabled!", 2*time.Second)

	case AbilityRegen:
		e.Heal(a.Params.Amount)

	case AbilityHoming:
		for range max(a.Params.Count, 0) {
			m := &Projectile{
				ID:     rs.newID(),
				Owner:  OwnerEnemy,
				X:      e.X,
				Y:      e.Y + e.H/2,
				W:      enemyShotW,
				H:      enemyShotH,
				Damage: a.Params.Amount,
				Speed:  a.Params.Speed,
				Angle:  math.Pi,
				Homing: true,
			}
			m.AimAt(p.X, p.Y)
			rs.EnemyShots = append(rs.EnemyShots, m)
		}
		rs.notify.Announce(e.Name+" launches homing missiles!", 2*time.Second)
	}
}

// enemyFire shoots straight down; twin-shot hulls fire from both flanks.
func (rs *RunState) enemyFire(e *Enemy) {
	if e.Caps.TwinShot {
		rs.addEnemyShot(e, e.X-e.W/4, e.Y+e.H/2)
		rs.addEnemyShot(e, e.X+e.W/4, e.Y+e.H/2)
		return
	}
	rs.addEnemyShot(e, e.X, e.Y+e.H/2+enemyShotH/2)
}

func (rs *RunState) addEnemyShot(e *Enemy, x, y float64) {
	rs.EnemyShots = append(rs.EnemyShots, &Projectile{
		ID:     rs.newID(),
		Owner:  OwnerEnemy,
		X:      x,
		Y:      y,
		W:      enemyShotW,
		H:      enemyShotH,
		Damage: e.Damage,
		Speed:  enemyShotSpeed,
		Angle:  math.Pi,
	})
}
