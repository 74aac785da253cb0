package sim

import (
	"time"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// Stepper is the simulation driven by the scheduler.
type Stepper interface {
	Active() bool
	Step(dt time.Duration, in core.InputFrame)
}

// FrameKind reports what a host frame did.
type FrameKind int

const (
	FrameBaseline FrameKind = iota // First frame, timestamp recorded only
	FrameStall                     // Too late, step skipped
	FrameIdle                      // Run paused or over
	FrameStep                      // One step executed
)

func (k FrameKind) String() string {
	switch k {
	case FrameBaseline:
		return "baseline"
	case FrameStall:
		return "stall"
	case FrameIdle:
		return "idle"
	default:
		return "step"
	}
}

// FrameResult describes one host frame.
type FrameResult struct {
	Kind    FrameKind
	Elapsed time.Duration
}

// Scheduler turns host frame callbacks into simulation steps. A frame that
// arrives later than the stall threshold is dropped instead of being caught
// up.
type Scheduler struct {
	run       Stepper
	threshold time.Duration
	last      time.Time
	started   bool
	stats     FrameStats
}

// NewScheduler drives run, skipping frames slower than threshold.
func NewScheduler(run Stepper, threshold time.Duration) *Scheduler {
	if threshold <= 0 {
		threshold = time.Second / 30
	}
	return &Scheduler{run: run, threshold: threshold}
}

// Frame handles one host callback at wall-clock time now. The timestamp is
// always recorded; at most one step runs.
func (s *Scheduler) Frame(now time.Time, in core.InputFrame) FrameResult {
	if !s.started {
		s.started = true
		s.last = now
		return FrameResult{Kind: FrameBaseline}
	}
	elapsed := now.Sub(s.last)
	s.last = now

	if elapsed > s.threshold {
		s.stats.Record(now, true)
		return FrameResult{Kind: FrameStall, Elapsed: elapsed}
	}
	s.stats.Record(now, false)
	if !s.run.Active() || elapsed <= 0 {
		return FrameResult{Kind: FrameIdle, Elapsed: elapsed}
	}
	s.run.Step(elapsed, in)
	return FrameResult{Kind: FrameStep, Elapsed: elapsed}
}

// Restart forgets the last timestamp so the next frame is a new baseline.
func (s *Scheduler) Restart() {
	s.started = false
}

// Stats returns the frame counters.
func (s *Scheduler) Stats() *FrameStats { return &s.stats }
