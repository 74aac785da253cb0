package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping boxes", BoxAt(0, 0, 10, 10), BoxAt(5, 5, 10, 10), true},
		{"separated horizontally", BoxAt(0, 0, 10, 10), BoxAt(20, 0, 10, 10), false},
		{"separated vertically", BoxAt(0, 0, 10, 10), BoxAt(0, 20, 10, 10), false},
		{"touching edges", BoxAt(0, 0, 10, 10), BoxAt(10, 0, 10, 10), false},
		{"touching corners", BoxAt(0, 0, 10, 10), BoxAt(10, 10, 10, 10), false},
		{"contained", BoxAt(0, 0, 40, 40), BoxAt(3, 3, 5, 5), true},
		{"overlap on x only", BoxAt(0, 0, 10, 10), BoxAt(2, 30, 10, 10), false},
		{"tiny overlap", BoxAt(0, 0, 10, 10), BoxAt(9.99, 0, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := BoxAt(100, 50, 20, 10)
	if b.Left() != 90 || b.Right() != 110 {
		t.Errorf("horizontal edges = (%v, %v), expected (90, 110)", b.Left(), b.Right())
	}
	if b.Top() != 45 || b.Bottom() != 55 {
		t.Errorf("vertical edges = (%v, %v), expected (45, 55)", b.Top(), b.Bottom())
	}
	if !b.Contains(100, 50) {
		t.Error("box should contain its center")
	}
	if b.Contains(90, 50) {
		t.Error("edge point should not be strictly inside")
	}
}

func TestBoxDist(t *testing.T) {
	a := BoxAt(0, 0, 1, 1)
	b := BoxAt(3, 4, 1, 1)
	if d := a.Dist(b); d != 5 {
		t.Errorf("Dist() = %v, expected 5", d)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"left of rect", 5, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 {
		t.Error("Clamp below range")
	}
	if Clamp(15, 0, 10) != 10 {
		t.Error("Clamp above range")
	}
	if Clamp(7, 0, 10) != 7 {
		t.Error("Clamp inside range")
	}
	if ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF above range")
	}
}

func TestFinite(t *testing.T) {
	if !Finite(1.5) {
		t.Error("1.5 should be finite")
	}
	if Finite(math.NaN()) || Finite(math.Inf(1)) || Finite(math.Inf(-1)) {
		t.Error("NaN and Inf should not be finite")
	}
}
