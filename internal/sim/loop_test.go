package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

type countingStepper struct {
	active bool
	steps  []time.Duration
}

func (s *countingStepper) Active() bool { return s.active }
func (s *countingStepper) Step(dt time.Duration, _ core.InputFrame) {
	s.steps = append(s.steps, dt)
}

func TestSchedulerFrames(t *testing.T) {
	run := &countingStepper{active: true}
	s := NewScheduler(run, time.Second/30)
	t0 := time.Unix(1000, 0)
	in := core.NewInputFrame()

	tests := []struct {
		name   string
		at     time.Duration
		want   FrameKind
		steps  int
		lastDt time.Duration
	}{
		{"first frame is the baseline", 0, FrameBaseline, 0, 0},
		{"on-time frame steps", 16 * time.Millisecond, FrameStep, 1, 16 * time.Millisecond},
		{"late frame stalls", 56 * time.Millisecond, FrameStall, 1, 16 * time.Millisecond},
		{"next frame measures from the stall", 72 * time.Millisecond, FrameStep, 2, 16 * time.Millisecond},
		{"duplicate timestamp idles", 72 * time.Millisecond, FrameIdle, 2, 16 * time.Millisecond},
	}

	for _, tc := range tests {
		res := s.Frame(t0.Add(tc.at), in)
		if res.Kind != tc.want {
			t.Errorf("%s: Kind = %v, expected %v", tc.name, res.Kind, tc.want)
		}
		if len(run.steps) != tc.steps {
			t.Fatalf("%s: steps = %d, expected %d", tc.name, len(run.steps), tc.steps)
		}
		if tc.steps > 0 && run.steps[len(run.steps)-1] != tc.lastDt {
			t.Errorf("%s: dt = %v, expected %v", tc.name, run.steps[len(run.steps)-1], tc.lastDt)
		}
	}
	if s.Stats().Stalls() != 1 {
		t.Errorf("Stalls() = %d, expected 1", s.Stats().Stalls())
	}
}

func TestSchedulerIdleWhenInactive(t *testing.T) {
	run := &countingStepper{}
	s := NewScheduler(run, 0)
	t0 := time.Unix(0, 0)

	s.Frame(t0, core.InputFrame{})
	if res := s.Frame(t0.Add(16*time.Millisecond), core.InputFrame{}); res.Kind != FrameIdle {
		t.Errorf("Kind = %v, expected idle", res.Kind)
	}
	if len(run.steps) != 0 {
		t.Error("inactive run must not step")
	}
}

func TestSchedulerRestart(t *testing.T) {
	run := &countingStepper{active: true}
	s := NewScheduler(run, time.Second/30)
	t0 := time.Unix(0, 0)

	s.Frame(t0, core.InputFrame{})
	s.Restart()
	if res := s.Frame(t0.Add(10*time.Second), core.InputFrame{}); res.Kind != FrameBaseline {
		t.Errorf("Kind = %v after Restart, expected baseline", res.Kind)
	}
	if res := s.Frame(t0.Add(10*time.Second+20*time.Millisecond), core.InputFrame{}); res.Kind != FrameStep {
		t.Errorf("Kind = %v, expected step", res.Kind)
	}
}

func TestSchedulerDrivesRun(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	s := NewScheduler(rs, rs.Config().Loop.StallThreshold)
	t0 := time.Unix(0, 0)

	s.Frame(t0, core.InputFrame{})
	s.Frame(t0.Add(16*time.Millisecond), core.InputFrame{})
	s.Frame(t0.Add(100*time.Millisecond), core.InputFrame{})
	if rs.Now != 16*time.Millisecond {
		t.Errorf("Now = %v, expected 16ms (stalled frame skipped)", rs.Now)
	}

	rs.TogglePause()
	s.Frame(t0.Add(116*time.Millisecond), core.InputFrame{})
	if rs.Now != 16*time.Millisecond {
		t.Errorf("Now = %v, paused run must not advance", rs.Now)
	}
}
