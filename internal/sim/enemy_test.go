package sim

import (
	"math"
	"testing"
	"time"
)

func TestEnemyApplyDamage(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())

	tests := []struct {
		name   string
		kind   Kind
		hits   []float64
		health float64
		deaths int
		invuln bool
	}{
		{"basic dies on first hit", KindBasic, []float64{10}, 0, 1, false},
		{"armored halves damage", KindArmored, []float64{10}, 10, 0, false},
		{"invalid amounts ignored", KindArmored, []float64{math.NaN(), -5, math.Inf(1), 0}, 15, 0, false},
		{"death reported once", KindSpeedy, []float64{2, 2, 2, 2}, 0, 1, false},
		{"invulnerable takes nothing", KindShielded, []float64{50}, 10, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := rs.roster.New(rs.newID(), tc.kind, 100, 100, 0, 0)
			e.Invulnerable = tc.invuln
			deaths := 0
			prev := e.Health
			for _, h := range tc.hits {
				if e.ApplyDamage(h) {
					deaths++
				}
				if e.Health > prev {
					t.Fatalf("health increased from %v to %v", prev, e.Health)
				}
				prev = e.Health
			}
			if e.Health != tc.health {
				t.Errorf("Health = %v, expected %v", e.Health, tc.health)
			}
			if deaths != tc.deaths {
				t.Errorf("deaths = %d, expected %d", deaths, tc.deaths)
			}
		})
	}
}

func TestWeakPointsGateBodyDamage(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	e := rs.roster.New(rs.newID(), KindTechnoTitan, 400, 100, 0, 0)

	if len(e.WeakPoints) != 2 {
		t.Fatalf("expected 2 weak points, got %d", len(e.WeakPoints))
	}
	if e.WeakPoints[0].OffsetX != -30 || e.WeakPoints[1].OffsetX != 30 {
		t.Errorf("unexpected weak point offsets: %+v", e.WeakPoints)
	}

	if e.ApplyDamage(1000) {
		t.Fatal("body damage must be rejected while weak points stand")
	}
	if e.Health != e.MaxHealth {
		t.Errorf("Health = %v, expected %v", e.Health, e.MaxHealth)
	}

	if !e.DamageWeakPoint(0, 40) {
		t.Error("weak point 0 should be destroyed")
	}
	if e.DamageWeakPoint(0, 40) {
		t.Error("destroyed weak point cannot be destroyed again")
	}
	e.ApplyDamage(10)
	if e.Health != e.MaxHealth {
		t.Error("one standing weak point still gates damage")
	}

	e.DamageWeakPoint(1, 100)
	e.ApplyDamage(10)
	if e.Health != e.MaxHealth-10 {
		t.Errorf("Health = %v, expected %v after weak points fell", e.Health, e.MaxHealth-10)
	}
}

func TestSplittingHealthBySize(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())

	big := rs.roster.New(rs.newID(), KindSplitting, 100, 100, 40, 0)
	small := rs.roster.New(rs.newID(), KindSplitting, 100, 100, 20, 0)
	if big.Health != 8 || small.Health != 4 {
		t.Errorf("health = %v/%v, expected 8/4", big.Health, small.Health)
	}
	if !big.CanSplit() {
		t.Error("size 40 should split")
	}
	if small.CanSplit() {
		t.Error("size 20 should not split")
	}
	if big.W != 40 || small.W != 20 {
		t.Errorf("widths = %v/%v", big.W, small.W)
	}
}

func TestEnemySway(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	e := rs.roster.New(rs.newID(), KindSpeedy, 300, 0, 0, 0)

	minX, maxX := e.X, e.X
	for range 200 {
		e.Advance(16*time.Millisecond, e.Speed)
		minX = math.Min(minX, e.X)
		maxX = math.Max(maxX, e.X)
	}
	if maxX-minX < 70 || maxX > 340.0001 || minX < 259.9999 {
		t.Errorf("sway range [%v, %v] should span about 300±40", minX, maxX)
	}
	if e.Y <= 0 {
		t.Error("enemy should move down")
	}
}

func TestEnemyExpired(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	e := rs.roster.New(rs.newID(), KindBasic, 100, 699, 0, 0)
	if e.Expired(600, 100) {
		t.Error("enemy at 699 has not escaped yet")
	}
	e.Y = 701
	if !e.Expired(600, 100) {
		t.Error("enemy at 701 should have escaped")
	}
}

func TestRosterSanitizesInput(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	e := rs.roster.New(rs.newID(), KindBasic, math.NaN(), math.Inf(-1), 0, 0)
	if !e.Bounds().Overlaps(e.Bounds()) {
		t.Error("sanitized enemy should have a usable box")
	}
	if math.IsNaN(e.X) || math.IsInf(e.Y, 0) {
		t.Errorf("position not sanitized: (%v, %v)", e.X, e.Y)
	}
}
