package sim

import (
	"math"
	"slices"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// SpatialGrid is a uniform grid over the play area. Each cell lists the
// indices of the entities whose center falls inside it. Indices refer to the
// slice the grid was built from.
type SpatialGrid struct {
	cellSize   float64
	cols, rows int
	cells      [][]int
}

// NewSpatialGrid covers a width x height area with square cells.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cellSize = sanitizeSize(cellSize)
	cols := max(int(math.Ceil(sanitizeSize(width)/cellSize)), 1)
	rows := max(int(math.Ceil(sanitizeSize(height)/cellSize)), 1)
	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int, cols*rows),
	}
}

// Dims returns the grid size in cells.
func (g *SpatialGrid) Dims() (cols, rows int) { return g.cols, g.rows }

// Clear empties every cell, keeping the backing arrays.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// CellOf maps a point to its cell. Points outside the grid have no cell.
func (g *SpatialGrid) CellOf(x, y float64) (int, bool) {
	if !core.Finite(x) || !core.Finite(y) || x < 0 || y < 0 {
		return 0, false
	}
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)
	if col >= g.cols || row >= g.rows {
		return 0, false
	}
	return row*g.cols + col, true
}

// Insert adds index i at point (x, y) and reports whether it was placed.
func (g *SpatialGrid) Insert(i int, x, y float64) bool {
	c, ok := g.CellOf(x, y)
	if !ok {
		return false
	}
	g.cells[c] = append(g.cells[c], i)
	return true
}

// Rebuild clears the grid and inserts every active enemy.
func (g *SpatialGrid) Rebuild(enemies []*Enemy) {
	g.Clear()
	for i, e := range enemies {
		if e.Active() {
			g.Insert(i, e.X, e.Y)
		}
	}
}

// Query appends to out the indices in the cell containing (x, y) and in the
// cells up to radius cells away. Results are sorted ascending. A point
// outside the grid yields nothing.
func (g *SpatialGrid) Query(x, y float64, radius int, out []int) []int {
	out = out[:0]
	c, ok := g.CellOf(x, y)
	if !ok {
		return out
	}
	col, row := c%g.cols, c/g.cols
	radius = max(radius, 0)
	for r := max(row-radius, 0); r <= min(row+radius, g.rows-1); r++ {
		for cc := max(col-radius, 0); cc <= min(col+radius, g.cols-1); cc++ {
			out = append(out, g.cells[r*g.cols+cc]...)
		}
	}
	slices.Sort(out)
	return out
}

// QueryBox appends to out the indices in every cell overlapped by b grown by
// pad on each side. Results are sorted ascending.
func (g *SpatialGrid) QueryBox(b core.Box, pad float64, out []int) []int {
	out = out[:0]
	left := int(math.Floor((b.Left() - pad) / g.cellSize))
	right := int(math.Floor((b.Right() + pad) / g.cellSize))
	top := int(math.Floor((b.Top() - pad) / g.cellSize))
	bottom := int(math.Floor((b.Bottom() + pad) / g.cellSize))
	if right < 0 || bottom < 0 || left >= g.cols || top >= g.rows {
		return out
	}
	for r := max(top, 0); r <= min(bottom, g.rows-1); r++ {
		for c := max(left, 0); c <= min(right, g.cols-1); c++ {
			out = append(out, g.cells[r*g.cols+c]...)
		}
	}
	slices.Sort(out)
	return out
}
