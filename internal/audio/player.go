// Package audio plays synthesized sound effects and background music for a
// run. It implements sim.Notifier; when no audio device is available it
// stays silent.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/cosmic-defender/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

var _ sim.Notifier = (*Player)(nil)

// Options configure a Player.
type Options struct {
	Volume float64 // Master gain, 0..1
	Music  bool    // Play the background theme while a run is active
	Logger *log.Logger
}

// Player mixes cues and music onto the speaker.
type Player struct {
	mu      sync.Mutex
	opts    Options
	log     *log.Logger
	mixer   *beep.Mixer
	music   *beep.Ctrl
	ready   bool
	initErr error
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// NewPlayer creates a player. Call Init before expecting sound.
func NewPlayer(opts Options) *Player {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Volume <= 0 || opts.Volume > 1 {
		opts.Volume = 0.6
	}
	return &Player{opts: opts, log: opts.Logger, mixer: &beep.Mixer{}}
}

// Init opens the speaker. A failure is logged and leaves the player silent;
// the error is returned for callers that want to report it.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready || p.initErr != nil {
		return p.initErr
	}

	// The speaker is process-wide and can only be opened once.
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond))
	})
	if speakerErr != nil {
		p.initErr = speakerErr
		p.log.Warn("audio disabled", "err", speakerErr)
		return speakerErr
	}

	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Close silences the player.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.music = nil
	p.ready = false
}

// Announce implements sim.Notifier. Announcements are visual only.
func (p *Player) Announce(string, time.Duration) {}

// Music implements sim.Notifier.
func (p *Player) Music(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || !p.opts.Music {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if on {
		if p.music == nil {
			p.music = &beep.Ctrl{Streamer: gain(NewTheme(sampleRate), p.opts.Volume)}
			p.mixer.Add(p.music)
		}
		p.music.Paused = false
		return
	}
	if p.music != nil {
		p.music.Paused = true
	}
}

// Sound implements sim.Notifier.
func (p *Player) Sound(c sim.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	s := Effect(c)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(gain(s, p.opts.Volume))
	speaker.Unlock()
}

// Effect builds the streamer for a cue, or nil for an unknown cue.
func Effect(c sim.Cue) beep.Streamer {
	r := sampleRate
	switch c {
	case sim.CueShoot:
		return gain(pulse(WaveSquare, 880, 440, 60*time.Millisecond, r), 0.15)
	case sim.CueHit:
		return gain(pulse(WaveSaw, 220, 180, 50*time.Millisecond, r), 0.2)
	case sim.CueExplosion:
		return gain(pulse(WaveNoise, 1, 1, 300*time.Millisecond, r), 0.35)
	case sim.CueSpecial:
		return gain(pulse(WaveSine, 300, 1200, 250*time.Millisecond, r), 0.3)
	case sim.CueLaser:
		return gain(pulse(WaveSaw, 1500, 600, 400*time.Millisecond, r), 0.2)
	case sim.CuePowerUp:
		return gain(beep.Seq(
			pulse(WaveSquare, 987.77, 987.77, 80*time.Millisecond, r),
			pulse(WaveSquare, 1318.51, 1318.51, 160*time.Millisecond, r),
		), 0.2)
	case sim.CueBossWarning:
		return gain(beep.Seq(
			pulse(WaveSaw, 110, 110, 250*time.Millisecond, r),
			pulse(WaveSaw, 82.41, 82.41, 250*time.Millisecond, r),
			pulse(WaveSaw, 110, 110, 250*time.Millisecond, r),
		), 0.3)
	case sim.CuePlayerHit:
		return gain(pulse(WaveSquare, 160, 80, 150*time.Millisecond, r), 0.3)
	case sim.CueGameOver:
		return gain(pulse(WaveSine, 440, 110, 900*time.Millisecond, r), 0.35)
	}
	return nil
}
