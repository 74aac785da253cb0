package sim

import "time"

const fpsHistoryLen = 60

// FrameStats counts host frames per second and keeps the last minute of
// samples.
type FrameStats struct {
	frames  int
	stalls  int
	since   time.Time
	fps     int
	history []int
}

// Record counts one frame at now.
func (s *FrameStats) Record(now time.Time, stalled bool) {
	if s.since.IsZero() {
		s.since = now
	}
	s.frames++
	if stalled {
		s.stalls++
	}
	if now.Sub(s.since) < time.Second {
		return
	}
	s.fps = s.frames
	s.history = append(s.history, s.fps)
	if len(s.history) > fpsHistoryLen {
		s.history = s.history[1:]
	}
	s.frames = 0
	s.since = now
}

// FPS returns the frame count of the last complete second.
func (s *FrameStats) FPS() int { return s.fps }

// Stalls returns how many frames were skipped by the stall policy.
func (s *FrameStats) Stalls() int { return s.stalls }

// Average returns the mean and minimum of the recorded samples.
func (s *FrameStats) Average() (avg float64, lowest int) {
	if len(s.history) == 0 {
		return 0, 0
	}
	sum := 0
	lowest = s.history[0]
	for _, v := range s.history {
		sum += v
		lowest = min(lowest, v)
	}
	return float64(sum) / float64(len(s.history)), lowest
}
