// Package core provides the shared geometry, input and screen types used by
// the simulation and by the terminal front end. It has no dependency on
// Bubble Tea so simulation code stays pure and testable.
package core

import "math"

// Box is an axis-aligned bounding box in world units, centered on (X, Y).
type Box struct {
	X, Y float64 // Center
	W, H float64
}

// BoxAt creates a box centered on (x, y).
func BoxAt(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.X - b.W/2 }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W/2 }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Y - b.H/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H/2 }

// Overlaps reports whether two boxes overlap on both axes.
// Touching edges do not count as overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Left() < o.Right() && b.Right() > o.Left() &&
		b.Top() < o.Bottom() && b.Bottom() > o.Top()
}

// Contains returns true if the point lies strictly inside the box.
func (b Box) Contains(x, y float64) bool {
	return x > b.Left() && x < b.Right() && y > b.Top() && y < b.Bottom()
}

// Dist returns the distance between the centers of two boxes.
func (b Box) Dist(o Box) float64 {
	return math.Hypot(b.X-o.X, b.Y-o.Y)
}

// Rect is an integer rectangle in screen cells, anchored at its top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts an integer to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
