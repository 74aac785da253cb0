package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// resolveCollisions runs the collision passes in order. Only enemies present
// when the pass starts take part; fission children join on the next tick.
// The passes stop as soon as the player dies.
func (rs *RunState) resolveCollisions() {
	passCount := len(rs.Enemies)

	rs.projectilesVsEnemies(passCount)
	if rs.GameOver {
		return
	}
	rs.enemiesVsPlayer(passCount)
	if rs.GameOver {
		return
	}
	rs.shotsVsPlayer()
	if rs.GameOver {
		return
	}
	rs.pickupsVsPlayer()
}

// reach is the grid radius used for projectile queries. Zero keeps the
// single-cell lookup; otherwise it grows so the largest body is still found.
func (rs *RunState) reach() int {
	n := rs.cfg.Collision.Neighborhood
	if n <= 0 {
		return 0
	}
	return max(n, int(math.Ceil(rs.roster.MaxHalfExtent()/rs.cfg.Collision.CellSize)))
}

func (rs *RunState) projectilesVsEnemies(passCount int) {
	reach := rs.reach()
	for _, p := range rs.Projectiles {
		if !p.Active() {
			continue
		}
		pb := p.Bounds()
		rs.scratch = rs.Grid.Query(p.X, p.Y, reach, rs.scratch)
		for _, idx := range rs.scratch {
			if idx >= passCount {
				continue
			}
			e := rs.Enemies[idx]
			if !e.Active() || !p.canHit(e.ID) {
				continue
			}
			if rs.hitWeakPoint(p, e, pb) {
				if !p.Active() {
					break
				}
				continue
			}
			if !pb.Overlaps(e.Bounds()) {
				continue
			}

			gone := p.registerHit(e.ID)
			pos := core.Box{X: e.X, Y: e.Y}
			rs.strike(e, p.Damage)
			if p.Splash {
				rs.splash(e.ID, pos, p.Damage, passCount)
			}
			if rs.GameOver {
				return
			}
			if gone {
				break
			}
		}
	}
}

// hitWeakPoint damages the first standing weak point the projectile overlaps.
func (rs *RunState) hitWeakPoint(p *Projectile, e *Enemy, pb core.Box) bool {
	if !e.WeakPointsStanding() {
		return false
	}
	for i := range e.WeakPoints {
		if e.WeakPoints[i].Destroyed || !pb.Overlaps(e.WeakPointBounds(i)) {
			continue
		}
		p.registerHit(e.ID)
		if e.DamageWeakPoint(i, p.Damage) {
			rs.notify.Sound(CueExplosion)
			if !e.WeakPointsStanding() {
				rs.notify.Announce(e.Name+"'s weak points destroyed!", 2*time.Second)
				rs.log.Info("weak points destroyed", "id", e.ID, "kind", e.Kind)
			}
		} else {
			rs.notify.Sound(CueHit)
		}
		return true
	}
	return false
}

// strike damages an enemy body and handles its death.
func (rs *RunState) strike(e *Enemy, amount float64) {
	if e.ApplyDamage(amount) {
		rs.killEnemy(e)
		return
	}
	rs.notify.Sound(CueHit)
}

// splash deals reduced damage to every other enemy near center. Deaths are
// handled but never splash again.
func (rs *RunState) splash(struck EntityID, center core.Box, amount float64, passCount int) {
	radius := rs.cfg.Collision.SplashRadius
	dmg := amount * rs.cfg.Collision.SplashFactor
	for _, o := range rs.Enemies[:passCount] {
		if o.ID == struck || !o.Active() {
			continue
		}
		if center.Dist(core.Box{X: o.X, Y: o.Y}) < radius {
			if o.ApplyDamage(dmg) {
				rs.killEnemy(o)
			}
		}
	}
}

func (rs *RunState) enemiesVsPlayer(passCount int) {
	p := rs.Player
	pb := p.Bounds()

	if rs.liveEnemies() > rs.cfg.Collision.FallbackThreshold {
		rs.scratch = rs.Grid.QueryBox(pb, rs.roster.MaxHalfExtent(), rs.scratch)
	} else {
		rs.scratch = rs.scratch[:0]
		for i := range passCount {
			rs.scratch = append(rs.scratch, i)
		}
	}

	for _, idx := range rs.scratch {
		if idx >= passCount {
			continue
		}
		e := rs.Enemies[idx]
		if !e.Active() || !pb.Overlaps(e.Bounds()) {
			continue
		}
		// Contact destroys the enemy without a reward.
		rs.removeEnemy(e)
		rs.damagePlayer(e.Damage, "collision")
		if rs.GameOver {
			return
		}
	}
}

func (rs *RunState) shotsVsPlayer() {
	pb := rs.Player.Bounds()
	for _, s := range rs.EnemyShots {
		if !s.Active() || !pb.Overlaps(s.Bounds()) {
			continue
		}
		s.removed = true
		rs.damagePlayer(s.Damage, "projectile")
		if rs.GameOver {
			return
		}
	}
}

func (rs *RunState) pickupsVsPlayer() {
	p := rs.Player
	pb := p.Bounds()
	for _, pk := range rs.Pickups {
		if !pk.Active() || !pb.Overlaps(pk.Bounds()) {
			continue
		}
		pk.removed = true
		rs.collect(pk.Kind)
	}
}

// collect activates a power-up on the player.
func (rs *RunState) collect(kind PowerUp) {
	p := rs.Player
	switch kind {
	case PowerUpShield:
		p.ShieldCharges++
	default:
		p.AddEffect(kind, rs.Now, rs.cfg.PowerUps.Durations[kind.String()])
	}
	rs.notify.Sound(CuePowerUp)
	rs.notify.Announce(kind.Label()+"!", time.Second)
	rs.log.Debug("power-up collected", "kind", kind, "t", rs.Now)
}
