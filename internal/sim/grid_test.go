package sim

import (
	"math"
	"slices"
	"testing"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

func TestGridDims(t *testing.T) {
	g := NewSpatialGrid(800, 600, 70)
	cols, rows := g.Dims()
	if cols != 12 || rows != 9 {
		t.Errorf("Dims() = (%d, %d), expected (12, 9)", cols, rows)
	}
}

func TestGridCellOf(t *testing.T) {
	g := NewSpatialGrid(800, 600, 70)

	tests := []struct {
		name   string
		x, y   float64
		want   int
		wantOK bool
	}{
		{"origin", 0, 0, 0, true},
		{"second column", 70, 0, 1, true},
		{"second row", 0, 70, 12, true},
		{"last cell", 799, 599, 8*12 + 11, true},
		{"above the top", 100, -1, 0, false},
		{"left of the grid", -0.5, 100, 0, false},
		{"past the right edge", 840, 100, 0, false},
		{"past the bottom", 100, 630, 0, false},
		{"nan", math.NaN(), 100, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := g.CellOf(tc.x, tc.y)
			if ok != tc.wantOK || (ok && got != tc.want) {
				t.Errorf("CellOf(%v, %v) = (%d, %v), expected (%d, %v)", tc.x, tc.y, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestGridQuery(t *testing.T) {
	g := NewSpatialGrid(800, 600, 70)
	g.Insert(0, 105, 105) // cell (1,1)
	g.Insert(1, 175, 105) // cell (2,1)
	g.Insert(2, 110, 120) // cell (1,1)
	g.Insert(3, 400, 400)
	if g.Insert(4, 100, -50) {
		t.Error("off-grid insert should be rejected")
	}

	got := g.Query(100, 100, 0, nil)
	if !slices.Equal(got, []int{0, 2}) {
		t.Errorf("Query radius 0 = %v, expected [0 2]", got)
	}
	got = g.Query(100, 100, 1, got)
	if !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("Query radius 1 = %v, expected [0 1 2]", got)
	}
	if got := g.Query(-10, 100, 3, nil); len(got) != 0 {
		t.Errorf("off-grid query = %v, expected nothing", got)
	}
}

func TestGridQueryBox(t *testing.T) {
	g := NewSpatialGrid(800, 600, 70)
	g.Insert(0, 35, 35)
	g.Insert(1, 245, 35)
	g.Insert(2, 35, 245)

	b := core.BoxAt(60, 60, 40, 40) // spans cells 0..1 both ways
	if got := g.QueryBox(b, 0, nil); !slices.Equal(got, []int{0}) {
		t.Errorf("QueryBox() = %v, expected [0]", got)
	}
	if got := g.QueryBox(b, 150, nil); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("padded QueryBox() = %v, expected [0 1 2]", got)
	}
	if got := g.QueryBox(core.BoxAt(-500, -500, 10, 10), 0, nil); len(got) != 0 {
		t.Errorf("off-grid QueryBox() = %v", got)
	}
}

func TestGridRebuildSkipsInactive(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	a := spawn(rs, KindBasic, 100, 100)
	spawn(rs, KindBasic, 100, 100)
	rs.removeEnemy(a)

	rs.Grid.Rebuild(rs.Enemies)
	if got := rs.Grid.Query(100, 100, 0, nil); !slices.Equal(got, []int{1}) {
		t.Errorf("Query() = %v, expected [1]", got)
	}

	rs.Grid.Clear()
	if got := rs.Grid.Query(100, 100, 1, nil); len(got) != 0 {
		t.Errorf("Query() after Clear = %v", got)
	}
}
