package sim

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/config"
)

// kindSpec is the per-kind parameter table entry.
type kindSpec struct {
	stats      config.EnemyStats
	name       string
	abilities  []Ability
	weakPoints []WeakPoint
	ok         bool
}

// Roster turns configuration into enemy records. It is immutable after
// construction and safe to share between runs.
type Roster struct {
	specs   [kindCount]kindSpec
	bosses  []Kind
	maxHalf float64
}

// NewRoster builds the enemy parameter table. Unknown enemy or boss keys and
// unknown ability names are reported as errors.
func NewRoster(cfg config.ShooterConfig) (*Roster, error) {
	r := &Roster{}

	for key, stats := range cfg.Enemies {
		k, ok := ParseKind(key)
		if !ok || k.IsBoss() {
			return nil, fmt.Errorf("sim: unknown enemy kind %q", key)
		}
		spec := kindSpec{stats: stats, name: key, ok: true}
		if k == KindShielded && stats.ShieldDuration > 0 {
			spec.abilities = []Ability{{
				Kind:     AbilityShield,
				Interval: stats.ShieldCooldown + stats.ShieldDuration,
				Params:   config.AbilityConfig{Duration: stats.ShieldDuration},
			}}
		}
		r.specs[k] = spec
		r.track(stats.Width, stats.Height)
	}

	for key, boss := range cfg.Bosses {
		k, ok := ParseKind(key)
		if !ok || !k.IsBoss() {
			return nil, fmt.Errorf("sim: unknown boss kind %q", key)
		}
		spec := kindSpec{stats: boss.Stats, name: boss.Name, ok: true}
		if spec.name == "" {
			spec.name = key
		}

		// Map iteration order is random; keep ability order stable.
		names := make([]string, 0, len(boss.Abilities))
		for name := range boss.Abilities {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			ac := boss.Abilities[name]
			if name == config.AbilityWeakPoints {
				spec.weakPoints = weakPointLayout(ac)
				continue
			}
			ak, ok := parseAbility(name)
			if !ok {
				return nil, fmt.Errorf("sim: boss %q: unknown ability %q", key, name)
			}
			spec.abilities = append(spec.abilities, Ability{Kind: ak, Interval: ac.Interval, Params: ac})
		}
		r.specs[k] = spec
		r.bosses = append(r.bosses, k)
		r.track(boss.Stats.Width, boss.Stats.Height)
	}
	sort.Slice(r.bosses, func(i, j int) bool { return r.bosses[i] < r.bosses[j] })

	if !r.specs[KindBasic].ok {
		return nil, fmt.Errorf("sim: enemy kind %q is not configured", KindBasic)
	}
	return r, nil
}

// weakPointLayout places count weak points symmetrically around the center,
// offset apart.
func weakPointLayout(ac config.AbilityConfig) []WeakPoint {
	count := ac.Count
	if count <= 0 {
		return nil
	}
	size := sanitizeSize(ac.Size)
	wps := make([]WeakPoint, 0, count)
	for i := range count {
		off := (float64(i) - float64(count-1)/2) * 2 * ac.Offset
		wps = append(wps, WeakPoint{OffsetX: off, W: size, H: size, Health: ac.Health})
	}
	return wps
}

func (r *Roster) track(w, h float64) {
	r.maxHalf = math.Max(r.maxHalf, math.Max(w, h)/2)
}

// Has reports whether the kind is configured.
func (r *Roster) Has(k Kind) bool {
	return k >= 0 && k < kindCount && r.specs[k].ok
}

// Bosses returns the configured boss kinds.
func (r *Roster) Bosses() []Kind { return r.bosses }

// Stats returns the configured stats of a kind.
func (r *Roster) Stats(k Kind) config.EnemyStats {
	if !r.Has(k) {
		return config.EnemyStats{}
	}
	return r.specs[k].stats
}

// MaxHalfExtent is half the largest configured enemy dimension. Grid box
// queries are padded by it so large bodies centred in a neighbouring cell are
// still found.
func (r *Roster) MaxHalfExtent() float64 { return r.maxHalf }

// New builds an enemy of kind k centred at (x, y). size applies only to
// splitting enemies; zero selects the configured width. Ability timers start
// at now.
func (r *Roster) New(id EntityID, k Kind, x, y, size float64, now time.Duration) *Enemy {
	if !r.Has(k) {
		k = KindBasic
	}
	spec := r.specs[k]
	st := spec.stats

	w, h := st.Width, st.Height
	health := st.Health
	caps := capabilitiesOf(k)
	if caps.Splits {
		if size <= 0 {
			size = st.Width
		}
		w, h = size, size
		health = size * st.HealthPerSize
	}
	if health <= 0 {
		health = 1
	}

	x = sanitizePos(x, 0)
	e := &Enemy{
		ID:           id,
		Kind:         k,
		Name:         spec.name,
		Caps:         caps,
		X:            x,
		Y:            sanitizePos(y, 0),
		W:            sanitizeSize(w),
		H:            sanitizeSize(h),
		Health:       health,
		MaxHealth:    health,
		Speed:        st.Speed,
		Damage:       st.Damage,
		FireRate:     st.FireRate,
		DamageFactor: st.DamageFactor,
		Size:         size,
		splitMinSize: st.SplitMinSize,
		splitOffset:  st.SplitOffset,
		startX:       x,
		swayAmp:      st.SwayAmplitude,
		swayFreq:     st.SwayFrequency,
		SpawnedAt:    now,
		lastShot:     now,
	}

	if len(spec.abilities) > 0 {
		e.Abilities = make([]Ability, len(spec.abilities))
		copy(e.Abilities, spec.abilities)
		for i := range e.Abilities {
			e.Abilities[i].Last = now
			// The shield cycle opens with the shield up.
			if e.Abilities[i].Kind == AbilityShield {
				e.Abilities[i].Last = now - e.Abilities[i].Interval
			}
		}
	}
	if len(spec.weakPoints) > 0 {
		e.WeakPoints = make([]WeakPoint, len(spec.weakPoints))
		copy(e.WeakPoints, spec.weakPoints)
	}
	return e
}

// CanSplit reports whether the enemy fissions on death.
func (e *Enemy) CanSplit() bool {
	return e.Caps.Splits && e.Size > e.splitMinSize
}
