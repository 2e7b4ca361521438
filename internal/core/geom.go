// Package core provides fundamental types and utilities for the tile game.
// It contains no external dependencies (especially no Bubble Tea or Ebiten)
// to keep game logic pure and testable.
package core

import (
	"fmt"
	"math"
)

// World is a point in world space: game-logic units, origin at the world
// center, +Y pointing up.
type World struct {
	X, Y float64
}

// W is a convenience constructor for World.
func W(x, y float64) World {
	return World{X: x, Y: y}
}

// Add returns the point offset by (dx, dy).
func (p World) Add(dx, dy float64) World {
	return World{X: p.X + dx, Y: p.Y + dy}
}

// String returns the point formatted like the debug HUD prints it.
func (p World) String() string {
	return fmt.Sprintf("(%+0.2f, %+0.2f)", p.X, p.Y)
}

// Norm is a point in normalized space. The configured view extent maps
// to [-1, 1] on both axes regardless of the output surface size.
type Norm struct {
	X, Y float64
}

// Pixel is a point in pixel space: origin at the top-left of the output
// surface, +Y pointing down.
type Pixel struct {
	X, Y int
}

// String returns a string representation of the pixel.
func (p Pixel) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Size is a width and height in world units.
type Size struct {
	W, H float64
}

// FRect is an axis-aligned rectangle with float center and size, meant for
// world space where integer rectangles lose the center of odd-sized shapes.
type FRect struct {
	Center World
	W, H   float64
}

// NewFRect creates a rectangle centered at c. Negative sizes clamp to zero.
func NewFRect(c World, w, h float64) FRect {
	inf := math.Inf(1)
	return FRect{Center: c, W: ClampF(w, 0, inf), H: ClampF(h, 0, inf)}
}

// Left returns the x-coordinate of the left edge.
func (r FRect) Left() float64 { return r.Center.X - r.W/2 }

// Right returns the x-coordinate of the right edge.
func (r FRect) Right() float64 { return r.Center.X + r.W/2 }

// Top returns the y-coordinate of the top edge (+Y is up).
func (r FRect) Top() float64 { return r.Center.Y + r.H/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (r FRect) Bottom() float64 { return r.Center.Y - r.H/2 }

// TopLeft returns the top-left corner.
func (r FRect) TopLeft() World { return World{r.Left(), r.Top()} }

// TopRight returns the top-right corner.
func (r FRect) TopRight() World { return World{r.Right(), r.Top()} }

// BottomRight returns the bottom-right corner.
func (r FRect) BottomRight() World { return World{r.Right(), r.Bottom()} }

// BottomLeft returns the bottom-left corner.
func (r FRect) BottomLeft() World { return World{r.Left(), r.Bottom()} }

// SetTopLeft moves the rectangle so that its top-left corner is p.
func (r *FRect) SetTopLeft(p World) {
	r.Center = World{p.X + r.W/2, p.Y - r.H/2}
}

// SetTopRight moves the rectangle so that its top-right corner is p.
func (r *FRect) SetTopRight(p World) {
	r.Center = World{p.X - r.W/2, p.Y - r.H/2}
}

// SetBottomRight moves the rectangle so that its bottom-right corner is p.
func (r *FRect) SetBottomRight(p World) {
	r.Center = World{p.X - r.W/2, p.Y + r.H/2}
}

// SetBottomLeft moves the rectangle so that its bottom-left corner is p.
func (r *FRect) SetBottomLeft(p World) {
	r.Center = World{p.X + r.W/2, p.Y + r.H/2}
}

// Vertices returns the four corners in fixed winding order:
// top-left, top-right, bottom-right, bottom-left.
func (r FRect) Vertices() []World {
	return []World{r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft()}
}

// Overlaps returns true if the rectangles share interior area.
// Touching edges do not count.
func (r FRect) Overlaps(other FRect) bool {
	return r.Right() > other.Left() &&
		r.Left() < other.Right() &&
		r.Top() > other.Bottom() &&
		r.Bottom() < other.Top()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
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

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
