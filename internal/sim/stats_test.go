package sim

import (
	"testing"
	"time"
)

func TestFrameStats(t *testing.T) {
	var s FrameStats
	t0 := time.Unix(0, 0)

	if avg, low := s.Average(); avg != 0 || low != 0 {
		t.Errorf("empty Average() = (%v, %d)", avg, low)
	}

	// 60 frames in the first second, 30 in the next.
	for i := range 60 {
		s.Record(t0.Add(time.Duration(i)*time.Second/60), false)
	}
	s.Record(t0.Add(time.Second), true)
	if s.FPS() != 61 {
		t.Errorf("FPS() = %d, expected 61", s.FPS())
	}
	for i := 1; i < 30; i++ {
		s.Record(t0.Add(time.Second+time.Duration(i)*time.Second/30), false)
	}
	s.Record(t0.Add(2*time.Second), false)
	if s.FPS() != 30 {
		t.Errorf("FPS() = %d, expected 30", s.FPS())
	}

	avg, low := s.Average()
	if avg != 45.5 || low != 30 {
		t.Errorf("Average() = (%v, %d), expected (45.5, 30)", avg, low)
	}
	if s.Stalls() != 1 {
		t.Errorf("Stalls() = %d, expected 1", s.Stalls())
	}
}

func TestFrameStatsHistoryBounded(t *testing.T) {
	var s FrameStats
	t0 := time.Unix(0, 0)
	for i := range 200 {
		s.Record(t0.Add(time.Duration(i)*time.Second), false)
	}
	if len(s.history) != fpsHistoryLen {
		t.Errorf("history = %d samples, expected %d", len(s.history), fpsHistoryLen)
	}
}
