// Package core provides fundamental types and utilities for the terminal
// front end. It contains no external dependencies (especially no Bubble Tea)
// so board drawing and effects stay pure and testable.
package core

// Rect represents an axis-aligned area of the screen, used for cell hit
// testing and modal layout.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Scale shrinks the rectangle around its center by factor t in [0, 1].
// The result is never smaller than 1x1.
func (r Rect) Scale(t float64) Rect {
	t = ClampF(t, 0, 1)
	w := Max(1, int(float64(r.W)*t+0.5))
	h := Max(1, int(float64(r.H)*t+0.5))
	cx, cy := r.Center()
	return NewRect(cx-w/2, cy-h/2, w, h)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// EaseInQuart starts slow and accelerates, for the result modal scale-in.
func EaseInQuart(t float64) float64 {
	t = ClampF(t, 0, 1)
	return t * t * t * t
}
