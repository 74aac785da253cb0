package sim

import (
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// Cue names a sound effect.
type Cue int

const (
	CueShoot Cue = iota
	CueHit
	CueExplosion
	CueSpecial
	CueLaser
	CuePowerUp
	CueBossWarning
	CuePlayerHit
	CueGameOver
)

// Notifier receives fire-and-forget presentation notifications. Calls are
// made from inside the tick and must not block.
type Notifier interface {
	Announce(text string, d time.Duration)
	Music(on bool)
	Sound(c Cue)
}

// NopNotifier ignores every notification.
type NopNotifier struct{}

func (NopNotifier) Announce(string, time.Duration) {}
func (NopNotifier) Music(bool)                     {}
func (NopNotifier) Sound(Cue)                      {}

// MultiNotifier fans notifications out to several collaborators.
type MultiNotifier []Notifier

func (m MultiNotifier) Announce(text string, d time.Duration) {
	for _, n := range m {
		n.Announce(text, d)
	}
}

func (m MultiNotifier) Music(on bool) {
	for _, n := range m {
		n.Music(on)
	}
}

func (m MultiNotifier) Sound(c Cue) {
	for _, n := range m {
		n.Sound(c)
	}
}

// Result is the outcome of a finished run handed to the score service.
type Result struct {
	RunID   string
	Name    string
	Ship    string
	Score   int
	Elapsed time.Duration
	Kills   int
	Bosses  int
}

// ScoreSink accepts a finished run. Submit must return immediately; any
// network work happens elsewhere.
type ScoreSink interface {
	Submit(r Result)
}

// Renderer draws a read-only view of a run.
type Renderer interface {
	Render(rs *RunState, dst *core.Screen)
}
