package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator with an optional linear pitch sweep.
type tone struct {
	from, to float64
	wave     Wave
	rate     beep.SampleRate
	total    int
	pos      int
	phase    float64
	rng      *rand.Rand
}

// Tone returns a streamer that plays wave for d, sweeping from one
// frequency to another.
func Tone(wave Wave, from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{
		from:  from,
		to:    to,
		wave:  wave,
		rate:  rate,
		total: rate.N(d),
		rng:   rand.New(rand.NewSource(int64(from*1000) + int64(d))),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		freq := t.from + (t.to-t.from)*float64(t.pos)/float64(t.total)
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// shape applies a linear attack and release to a stream of known length.
type shape struct {
	s                      beep.Streamer
	attack, release, total int
	pos                    int
}

// Shape fades s in over attack and out over the final release of d.
func Shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &shape{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *shape) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			gain = math.Max(float64(left)/float64(e.release), 0)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *shape) Err() error { return e.s.Err() }

// gain scales s linearly. Zero or less is silence.
func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// pulse is a short shaped tone.
func pulse(wave Wave, from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return Shape(Tone(wave, from, to, d, rate), d, 5*time.Millisecond, d/2, rate)
}

// Theme is a looping bass line with a kick on every beat.
type Theme struct {
	rate  beep.SampleRate
	beat  int
	notes []float64
	pos   int
}

// NewTheme creates the background music loop.
func NewTheme(rate beep.SampleRate) *Theme {
	return &Theme{
		rate:  rate,
		beat:  rate.N(400 * time.Millisecond),
		notes: []float64{55, 55, 65.41, 49},
	}
}

func (m *Theme) Stream(samples [][2]float64) (int, bool) {
	kickLen := m.rate.N(90 * time.Millisecond)
	for i := range samples {
		in := m.pos % m.beat
		note := m.notes[(m.pos/m.beat/4)%len(m.notes)]
		t := float64(m.pos) / float64(m.rate)

		v := 0.12 * math.Sin(2*math.Pi*note*t)
		if in < kickLen {
			env := 1 - float64(in)/float64(kickLen)
			kt := float64(in) / float64(m.rate)
			v += 0.35 * env * math.Sin(2*math.Pi*50*(1+2*env)*kt)
		}
		samples[i][0] = v
		samples[i][1] = v
		m.pos++
	}
	return len(samples), true
}

func (m *Theme) Err() error { return nil }
