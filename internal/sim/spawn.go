package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/config"
)

// Float64Source is the slice of *rand.Rand the placement needs.
type Float64Source interface {
	Float64() float64
}

// Span is the horizontal footprint of a live enemy.
type Span struct {
	X, W float64
}

// PlaceX picks a horizontal spawn coordinate in [margin, worldW-margin] by
// rejection sampling. A candidate is rejected when it is closer to a live
// enemy than the sum of their half-widths. After attempts tries the last
// candidate is returned anyway and ok is false.
func PlaceX(src Float64Source, spans []Span, w, worldW, margin float64, attempts int) (x float64, ok bool) {
	lo, hi := margin, worldW-margin
	if hi <= lo {
		return worldW / 2, false
	}
	attempts = max(attempts, 1)
	for range attempts {
		x = lo + src.Float64()*(hi-lo)
		if !overlapsAny(x, w, spans) {
			return x, true
		}
	}
	return x, false
}

func overlapsAny(x, w float64, spans []Span) bool {
	for _, s := range spans {
		if math.Abs(s.X-x) < (s.W+w)/2 {
			return true
		}
	}
	return false
}

// Spawner decides when, where and what enemies enter the play area.
type Spawner struct {
	cfg        config.SpawnConfig
	tiers      []tier
	lastSpawn  time.Duration
	started    bool
	nextBossAt time.Duration
}

type tier struct {
	kind Kind
	cfg  config.TierConfig
}

// NewSpawner prepares the director. Tiers naming unknown or unconfigured
// kinds are skipped.
func NewSpawner(cfg config.SpawnConfig, roster *Roster) *Spawner {
	s := &Spawner{cfg: cfg, nextBossAt: cfg.BossFirstAt}
	for _, t := range cfg.Tiers {
		k, ok := ParseKind(t.Kind)
		if !ok || k.IsBoss() || !roster.Has(k) {
			continue
		}
		s.tiers = append(s.tiers, tier{kind: k, cfg: t})
	}
	return s
}

// Interval returns the regular spawn interval after the given effective minutes.
func (s *Spawner) Interval(minutes float64) time.Duration {
	d := s.cfg.BaseInterval - time.Duration(minutes*float64(s.cfg.IntervalStep))
	return max(d, s.cfg.MinInterval)
}

// NextBossAt returns the run time at which the next boss becomes due.
func (s *Spawner) NextBossAt() time.Duration { return s.nextBossAt }

// spawnEnemies runs one director evaluation.
func (rs *RunState) spawnEnemies() {
	s := rs.Spawner
	now := rs.Now
	if !s.started {
		s.lastSpawn = now
		s.started = true
	}

	limit := rs.cfg.Spawn.MaxEnemies
	if rs.liveEnemies() >= limit {
		return
	}

	minutes := rs.diff.Minutes(now)
	if now-s.lastSpawn >= s.Interval(minutes) {
		rs.spawnAt(KindBasic, s.cfg.RegularY, 0)
		s.lastSpawn = now
	}

	for _, t := range s.tiers {
		if minutes < t.cfg.AfterMinutes || rs.rng.Float64() >= t.cfg.Chance {
			continue
		}
		if rs.liveEnemies() >= limit {
			return
		}
		rs.spawnAt(t.kind, s.cfg.TierY, t.cfg.Size)
	}

	// Bosses follow the real clock so none appears before the first mark.
	bosses := rs.roster.Bosses()
	if now >= s.nextBossAt && len(bosses) > 0 && rs.liveEnemies() < limit {
		k := bosses[rs.rng.Intn(len(bosses))]
		rs.spawnBoss(k)
		jitter := time.Duration(rs.rng.Float64() * float64(s.cfg.BossJitter))
		s.nextBossAt = now + s.cfg.BossInterval + jitter
	}
}

func (rs *RunState) spawnAt(k Kind, y, size float64) *Enemy {
	w := rs.roster.Stats(k).Width
	if k == KindSplitting && size > 0 {
		w = size
	}
	x, _ := PlaceX(rs.rng, rs.spans(), w, rs.cfg.World.Width, rs.cfg.Spawn.Margin, rs.cfg.Spawn.PlacementAttempts)
	e := rs.roster.New(rs.newID(), k, x, y, size, rs.Now)
	rs.addEnemy(e)
	return e
}

func (rs *RunState) spawnBoss(k Kind) {
	e := rs.roster.New(rs.newID(), k, rs.cfg.World.Width/2, rs.cfg.Spawn.BossY, 0, rs.Now)
	rs.addEnemy(e)
	rs.notify.Announce(e.Name+" has appeared!", 5*time.Second)
	rs.notify.Sound(CueBossWarning)
	rs.log.Info("boss spawned", "kind", k, "id", e.ID, "t", rs.Now)
}

func (rs *RunState) spans() []Span {
	rs.spanBuf = rs.spanBuf[:0]
	for _, e := range rs.Enemies {
		if e.Active() {
			rs.spanBuf = append(rs.spanBuf, Span{X: e.X, W: e.W})
		}
	}
	return rs.spanBuf
}
