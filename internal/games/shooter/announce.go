package shooter

import (
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/sim"
)

var _ sim.Notifier = (*Announcer)(nil)

// Announcer keeps the most recent announcement until it expires on the run
// clock, so banners freeze while the run is paused.
type Announcer struct {
	clock func() time.Duration
	text  string
	until time.Duration
}

// NewAnnouncer reads the current run time from clock.
func NewAnnouncer(clock func() time.Duration) *Announcer {
	return &Announcer{clock: clock}
}

// Announce implements sim.Notifier. A newer announcement replaces the
// current one.
func (a *Announcer) Announce(text string, d time.Duration) {
	now := a.clock()
	a.text = text
	a.until = now + d
}

func (a *Announcer) Music(bool)     {}
func (a *Announcer) Sound(sim.Cue) {}

// Current returns the live announcement, if any.
func (a *Announcer) Current() string {
	if a.text == "" || a.clock() >= a.until {
		return ""
	}
	return a.text
}

// Clear drops the current announcement.
func (a *Announcer) Clear() { a.text = "" }
