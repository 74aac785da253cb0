package sim

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/cosmic-defender/internal/config"
	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// Options configures a run.
type Options struct {
	Config   config.ShooterConfig
	Ship     string // Archetype ID; empty selects the first configured ship
	Name     string // Pilot name passed to the score sink
	Seed     int64  // Zero seeds from the clock
	Logger   *log.Logger
	Notifier Notifier
	Sink     ScoreSink
}

// RunState is the whole state of one run. Every subsystem receives it
// explicitly; nothing in the package keeps global state.
type RunState struct {
	ID   string
	Name string
	Now  time.Duration // Simulated time since the run started

	Player      *Player
	Enemies     []*Enemy
	Projectiles []*Projectile // Player-owned
	EnemyShots  []*Projectile
	Pickups     []*Pickup
	Hazards     []*Hazard

	Score          int
	Kills          int
	BossesDefeated int
	GameOver       bool
	Paused         bool

	Events  EventQueue
	Grid    *SpatialGrid
	Spawner *Spawner

	cfg    config.ShooterConfig
	ship   config.ShipConfig
	roster *Roster
	diff   *config.DifficultyManager
	drops  dropTable
	rng    *rand.Rand
	seed   int64
	nextID EntityID
	live   map[EntityID]struct{}

	log    *log.Logger
	notify Notifier
	sink   ScoreSink

	scratch []int
	spanBuf []Span
	ended   bool
}

// NewRun validates the options and starts a fresh run.
func NewRun(opts Options) (*RunState, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	roster, err := NewRoster(cfg)
	if err != nil {
		return nil, err
	}

	var ship config.ShipConfig
	if opts.Ship == "" {
		ship = cfg.Ships[0]
	} else if ship, err = cfg.Ship(opts.Ship); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	rs := &RunState{
		Name:   opts.Name,
		cfg:    cfg,
		ship:   ship,
		roster: roster,
		diff:   config.NewDifficultyManager(cfg.Difficulty),
		drops:  newDropTable(cfg.PowerUps),
		seed:   opts.Seed,
		log:    opts.Logger,
		notify: opts.Notifier,
		sink:   opts.Sink,
	}
	if rs.seed == 0 {
		rs.seed = time.Now().UnixNano()
	}
	if rs.log == nil {
		rs.log = log.New(io.Discard)
	}
	if rs.notify == nil {
		rs.notify = NopNotifier{}
	}
	rs.rng = rand.New(rand.NewSource(rs.seed))
	rs.Reset()
	return rs, nil
}

// Reset drops every entity and pending effect and starts over.
func (rs *RunState) Reset() {
	rs.ID = uuid.NewString()
	rs.Now = 0
	rs.Enemies = nil
	rs.Projectiles = nil
	rs.EnemyShots = nil
	rs.Pickups = nil
	rs.Hazards = nil
	rs.Score, rs.Kills, rs.BossesDefeated = 0, 0, 0
	rs.GameOver, rs.Paused, rs.ended = false, false, false
	rs.Events.Clear()
	rs.live = make(map[EntityID]struct{})
	rs.Grid = NewSpatialGrid(rs.cfg.World.Width, rs.cfg.World.Height, rs.cfg.Collision.CellSize)
	rs.Spawner = NewSpawner(rs.cfg.Spawn, rs.roster)

	w, h := rs.cfg.World.Width, rs.cfg.World.Height
	rs.Player = NewPlayer(rs.newID(), rs.ship, rs.cfg.Player, w/2, h-rs.cfg.Player.StartOffset)
	rs.live[rs.Player.ID] = struct{}{}

	rs.notify.Music(true)
	rs.log.Info("run started", "run", rs.ID, "ship", rs.ship.ID, "seed", rs.seed)
}

// Config returns the configuration the run was built from.
func (rs *RunState) Config() config.ShooterConfig { return rs.cfg }

// Seed returns the RNG seed of the run.
func (rs *RunState) Seed() int64 { return rs.seed }

// DifficultyLevel returns the current difficulty in [0, 1].
func (rs *RunState) DifficultyLevel() float64 { return rs.diff.Level(rs.Now) }

// Active reports whether ticks should advance the simulation.
func (rs *RunState) Active() bool { return !rs.Paused && !rs.GameOver }

// TogglePause freezes or resumes the run. Pending effects keep their
// remaining time because the simulated clock stops with the run.
func (rs *RunState) TogglePause() {
	if rs.GameOver {
		return
	}
	rs.Paused = !rs.Paused
	rs.notify.Music(!rs.Paused)
}

// Result summarizes the run for the score service.
func (rs *RunState) Result() Result {
	return Result{
		RunID:   rs.ID,
		Name:    rs.Name,
		Ship:    rs.ship.ID,
		Score:   rs.Score,
		Elapsed: rs.Now,
		Kills:   rs.Kills,
		Bosses:  rs.BossesDefeated,
	}
}

// Step advances the run by dt using the input sampled for this tick.
func (rs *RunState) Step(dt time.Duration, in core.InputFrame) {
	if !rs.Active() || dt <= 0 {
		return
	}
	rs.Now += dt

	rs.applyInput(dt, in)
	rs.advance(dt)
	if rs.GameOver {
		return
	}
	rs.drainEvents()
	if rs.GameOver {
		return
	}
	rs.Grid.Rebuild(rs.Enemies)
	rs.resolveCollisions()
	if rs.GameOver {
		return
	}
	rs.spawnEnemies()
	rs.runBehaviors()
	if rs.GameOver {
		return
	}
	rs.compact()
}

func (rs *RunState) applyInput(dt time.Duration, in core.InputFrame) {
	p := rs.Player
	dir := 0.0
	if in.Has(core.ActionLeft) {
		dir--
	}
	if in.Has(core.ActionRight) {
		dir++
	}
	if dir != 0 {
		p.Move(dir, dt, rs.Now, rs.cfg.World.Width)
	}
	if in.Has(core.ActionFire) && p.CanFire(rs.Now) {
		rs.Projectiles = append(rs.Projectiles, p.shoot(rs)...)
		rs.notify.Sound(CueShoot)
	}
	if in.Has(core.ActionSpecial) {
		p.useSpecial(rs)
	}
}

func (rs *RunState) advance(dt time.Duration) {
	p := rs.Player
	for _, k := range p.ExpireEffects(rs.Now) {
		rs.log.Debug("power-up expired", "kind", k, "t", rs.Now)
	}
	warp := 1.0
	if p.HasEffect(PowerUpTimeWarp, rs.Now) {
		warp = rs.cfg.PowerUps.TimeWarp
	}
	w, h := rs.cfg.World.Width, rs.cfg.World.Height

	for _, s := range rs.Projectiles {
		s.Advance(dt, 1)
		if s.Expired(w, h) {
			s.removed = true
		}
	}

	n := len(rs.Enemies)
	for i := 0; i < n; i++ {
		e := rs.Enemies[i]
		if !e.Active() {
			continue
		}
		speed := rs.diff.Speed(e.Speed, rs.Now) * warp
		rs.guard(e, "advance", func() { e.Advance(dt, speed) })
		if e.Active() && e.Expired(h, rs.cfg.World.EscapeMargin) {
			rs.removeEnemy(e)
			rs.damagePlayer(e.Damage, "escape")
			if rs.GameOver {
				return
			}
		}
	}

	for _, s := range rs.EnemyShots {
		if s.Homing {
			s.AimAt(p.X, p.Y)
		}
		s.Advance(dt, warp)
		if s.Expired(w, h) {
			s.removed = true
		}
	}

	for _, pk := range rs.Pickups {
		pk.Advance(dt)
		if pk.Y > h+pk.Size {
			pk.removed = true
		}
	}
}

func (rs *RunState) drainEvents() {
	for {
		ev, ok := rs.Events.PopDue(rs.Now)
		if !ok {
			return
		}
		if ev.Target != NoTarget {
			if _, live := rs.live[ev.Target]; !live {
				continue
			}
		}
		rs.fire(ev)
		if rs.GameOver {
			return
		}
	}
}

func (rs *RunState) fire(ev Event) {
	p := rs.Player
	switch ev.Kind {
	case EventShieldDown:
		if e := rs.enemyByID(ev.Target); e != nil && rs.Now >= e.shieldUntil {
			e.Invulnerable = false
		}
	case EventInvulnerableEnd:
		p.endInvulnerable(rs.Now)
	case EventSpecialEnd:
		p.endSpecial(rs.Now)
	case EventMindControlEnd, EventEMPEnd:
		rs.log.Debug("effect ended", "event", ev.Kind, "t", rs.Now)
	case EventHazardPoll:
		if h := rs.hazardByID(ev.Target); h != nil {
			rs.pollHazard(h)
		}
	case EventHazardEnd:
		if h := rs.hazardByID(ev.Target); h != nil {
			rs.retireHazard(h)
		}
	}
}

func (rs *RunState) newID() EntityID {
	rs.nextID++
	return rs.nextID
}

func (rs *RunState) addEnemy(e *Enemy) {
	rs.Enemies = append(rs.Enemies, e)
	rs.live[e.ID] = struct{}{}
}

// removeEnemy takes an enemy out of play and cancels everything bound to it.
func (rs *RunState) removeEnemy(e *Enemy) {
	if e.removed {
		return
	}
	e.removed = true
	delete(rs.live, e.ID)
	rs.Events.CancelTarget(e.ID)
	for _, h := range rs.Hazards {
		if h.Source == e.ID {
			rs.retireHazard(h)
		}
	}
}

// killEnemy awards the kill, applies fission and drops, then removes the enemy.
func (rs *RunState) killEnemy(e *Enemy) {
	if e.removed {
		return
	}
	rs.Kills++
	if e.Kind.IsBoss() {
		rs.Score += rs.cfg.Scoring.Boss
		rs.BossesDefeated++
		rs.notify.Announce(e.Name+" defeated!", 3*time.Second)
		rs.log.Info("boss defeated", "kind", e.Kind, "id", e.ID, "t", rs.Now)
	} else {
		rs.Score += rs.cfg.Scoring.Regular
	}
	rs.notify.Sound(CueExplosion)

	if e.CanSplit() {
		for _, dx := range []float64{-e.splitOffset, e.splitOffset} {
			rs.addEnemy(rs.roster.New(rs.newID(), KindSplitting, e.X+dx, e.Y, e.Size/2, rs.Now))
		}
	}
	if kind, ok := rs.drops.roll(rs.rng); ok {
		rs.Pickups = append(rs.Pickups, &Pickup{
			ID:   rs.newID(),
			Kind: kind,
			X:    e.X,
			Y:    e.Y,
			Size: rs.drops.size,
			VY:   rs.drops.fall,
		})
	}
	rs.removeEnemy(e)
}

// damagePlayer applies damage and ends the run on the first lethal hit.
func (rs *RunState) damagePlayer(amount float64, source string) {
	if rs.GameOver {
		return
	}
	p := rs.Player
	before := p.Health
	died := p.ApplyDamage(amount)
	if p.Health < before {
		rs.notify.Sound(CuePlayerHit)
	}
	if died {
		rs.endRun(source)
	}
}

// endRun moves the run to game over exactly once: pending effects are
// cancelled, entities dropped and the result handed to the score sink.
func (rs *RunState) endRun(cause string) {
	if rs.ended {
		return
	}
	rs.ended = true
	rs.GameOver = true

	rs.Events.Clear()
	rs.Enemies = nil
	rs.Projectiles = nil
	rs.EnemyShots = nil
	rs.Pickups = nil
	rs.Hazards = nil
	clear(rs.live)

	rs.notify.Music(false)
	rs.notify.Sound(CueGameOver)
	rs.log.Info("game over", "run", rs.ID, "score", rs.Score, "elapsed", rs.Now, "cause", cause)
	if rs.sink != nil {
		rs.sink.Submit(rs.Result())
	}
}

// compact drops removed entities from the collections.
func (rs *RunState) compact() {
	rs.Enemies = slices.DeleteFunc(rs.Enemies, func(e *Enemy) bool { return !e.Active() })
	rs.Projectiles = slices.DeleteFunc(rs.Projectiles, func(p *Projectile) bool { return !p.Active() })
	rs.EnemyShots = slices.DeleteFunc(rs.EnemyShots, func(p *Projectile) bool { return !p.Active() })
	rs.Pickups = slices.DeleteFunc(rs.Pickups, func(p *Pickup) bool { return !p.Active() })
	rs.Hazards = slices.DeleteFunc(rs.Hazards, func(h *Hazard) bool { return !h.Active() })
}

func (rs *RunState) liveEnemies() int {
	n := 0
	for _, e := range rs.Enemies {
		if e.Active() {
			n++
		}
	}
	return n
}

func (rs *RunState) enemyByID(id EntityID) *Enemy {
	for _, e := range rs.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (rs *RunState) hazardByID(id EntityID) *Hazard {
	for _, h := range rs.Hazards {
		if h.ID == id {
			return h
		}
	}
	return nil
}
