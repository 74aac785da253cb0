package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// HazardKind tags a timed area effect.
type HazardKind int

const (
	HazardLaser HazardKind = iota
	HazardBlackHole
)

func (k HazardKind) String() string {
	if k == HazardLaser {
		return "laser"
	}
	return "black_hole"
}

// blackHoleDeadZone is the distance under which the pull stops.
const blackHoleDeadZone = 5

// Hazard is an area effect owned by a boss. It acts on the player every Poll
// until Until and is retired early when its source is gone.
type Hazard struct {
	ID     EntityID
	Kind   HazardKind
	Source EntityID
	X, Y   float64
	W, H   float64
	Until  time.Duration
	Poll   time.Duration
	Amount float64

	removed bool
}

// EntityID implements Entity.
func (h *Hazard) EntityID() EntityID { return h.ID }

// Bounds implements Entity.
func (h *Hazard) Bounds() core.Box { return core.BoxAt(h.X, h.Y, h.W, h.H) }

// Active reports whether the hazard is still in effect.
func (h *Hazard) Active() bool { return !h.removed }

// startHazard registers a hazard and schedules its first poll and its end.
func (rs *RunState) startHazard(h *Hazard) {
	h.ID = rs.newID()
	if h.Poll <= 0 {
		h.Poll = 16 * time.Millisecond
	}
	rs.Hazards = append(rs.Hazards, h)
	rs.live[h.ID] = struct{}{}
	rs.Events.Schedule(Event{At: rs.Now, Target: h.ID, Kind: EventHazardPoll})
	rs.Events.Schedule(Event{At: h.Until, Target: h.ID, Kind: EventHazardEnd})
}

// fireLaser projects a beam straight down from the boss to the bottom edge.
// The beam stays where it was fired.
func (rs *RunState) fireLaser(src *Enemy, a Ability) {
	top := src.Y
	bottom := rs.cfg.World.Height
	if bottom <= top {
		return
	}
	rs.startHazard(&Hazard{
		Kind:   HazardLaser,
		Source: src.ID,
		X:      src.X,
		Y:      (top + bottom) / 2,
		W:      sanitizeSize(a.Params.Size),
		H:      bottom - top,
		Until:  rs.Now + a.Params.Duration,
		Poll:   a.Params.Poll,
		Amount: a.Params.Amount,
	})
	rs.notify.Announce(src.Name+" fires a laser beam!", 2*time.Second)
	rs.notify.Sound(CueLaser)
}

// openBlackHole anchors a gravity well under the boss.
func (rs *RunState) openBlackHole(src *Enemy, a Ability) {
	size := sanitizeSize(a.Params.Size)
	rs.startHazard(&Hazard{
		Kind:   HazardBlackHole,
		Source: src.ID,
		X:      src.X,
		Y:      src.Y + src.H/2,
		W:      size,
		H:      size,
		Until:  rs.Now + a.Params.Duration,
		Poll:   a.Params.Poll,
		Amount: a.Params.Amount,
	})
	rs.notify.Announce(src.Name+" creates a black hole!", 2*time.Second)
}

// pollHazard applies one hazard check and schedules the next one.
func (rs *RunState) pollHazard(h *Hazard) {
	if !h.Active() {
		return
	}
	src := rs.enemyByID(h.Source)
	if src == nil || !src.Active() {
		rs.retireHazard(h)
		return
	}
	p := rs.Player

	switch h.Kind {
	case HazardLaser:
		if h.Bounds().Overlaps(p.Bounds()) {
			rs.damagePlayer(h.Amount, "laser")
		}
	case HazardBlackHole:
		// The well follows the boss.
		h.X, h.Y = src.X, src.Y+src.H/2
		dx, dy := h.X-p.X, h.Y-p.Y
		if d := math.Hypot(dx, dy); d > blackHoleDeadZone {
			p.Nudge(dx/d*h.Amount, dy/d*h.Amount, rs.cfg.World.Width, rs.cfg.World.Height)
		}
	}

	if next := rs.Now + h.Poll; next < h.Until && !rs.GameOver {
		rs.Events.Schedule(Event{At: next, Target: h.ID, Kind: EventHazardPoll})
	}
}

func (rs *RunState) retireHazard(h *Hazard) {
	if h.removed {
		return
	}
	h.removed = true
	delete(rs.live, h.ID)
	rs.Events.CancelTarget(h.ID)
}
