package sim

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/config"
)

// testConfig returns the defaults with drops disabled and a zero-defense
// ship first in the list.
func testConfig() config.ShooterConfig {
	cfg := config.DefaultShooterConfig()
	cfg.PowerUps.DropChance = 0
	cfg.Ships = append([]config.ShipConfig{{
		ID:              "test",
		Name:            "Test",
		Speed:           600,
		FireRate:        5,
		Damage:          10,
		Health:          100,
		Defense:         0,
		Special:         "fortify",
		SpecialCooldown: 10 * time.Second,
	}}, cfg.Ships...)
	return cfg
}

type recordingSink struct {
	results []Result
}

func (s *recordingSink) Submit(r Result) { s.results = append(s.results, r) }

type recordingNotifier struct {
	announcements []string
	sounds        []Cue
	music         []bool
}

func (n *recordingNotifier) Announce(text string, _ time.Duration) {
	n.announcements = append(n.announcements, text)
}
func (n *recordingNotifier) Music(on bool) { n.music = append(n.music, on) }
func (n *recordingNotifier) Sound(c Cue)   { n.sounds = append(n.sounds, c) }

func newTestRun(t *testing.T, cfg config.ShooterConfig) (*RunState, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	rs, err := NewRun(Options{Config: cfg, Seed: 1, Sink: sink, Name: "tester"})
	if err != nil {
		t.Fatalf("NewRun() failed: %v", err)
	}
	return rs, sink
}

// spawn places an enemy of kind k directly into the run.
func spawn(rs *RunState, k Kind, x, y float64) *Enemy {
	e := rs.roster.New(rs.newID(), k, x, y, 0, rs.Now)
	rs.addEnemy(e)
	return e
}

func countKind(enemies []*Enemy, pred func(*Enemy) bool) int {
	n := 0
	for _, e := range enemies {
		if pred(e) {
			n++
		}
	}
	return n
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
