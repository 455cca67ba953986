package bastion

import (
	"math"
	"math/rand/v2"
)

// Vec2 is a 2D vector used for positions, velocities, offsets, and sizes
// throughout the API. Methods are value-returning; Vec2 is a plain value
// type with no ownership implications.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dist returns the Euclidean distance between v and o. Always non-negative.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Sqrt(v.DistSqr(o))
}

// DistSqr returns the squared Euclidean distance between v and o.
// Cheaper than Dist when only comparing magnitudes.
func (v Vec2) DistSqr(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// DistX returns the absolute difference between the X components.
func (v Vec2) DistX(o Vec2) float64 {
	return math.Abs(v.X - o.X)
}

// DistY returns the absolute difference between the Y components.
func (v Vec2) DistY(o Vec2) float64 {
	return math.Abs(v.Y - o.Y)
}

// DirectionalDistX returns o.X - v.X. Negative when o is left of v.
func (v Vec2) DirectionalDistX(o Vec2) float64 {
	return o.X - v.X
}

// DirectionalDistY returns o.Y - v.Y. Negative when o is above v.
func (v Vec2) DirectionalDistY(o Vec2) float64 {
	return o.Y - v.Y
}

// Midpoint returns the midpoint between v and o, rounded to whole pixels.
func (v Vec2) Midpoint(o Vec2) Vec2 {
	return Vec2{
		X: math.Round((v.X + o.X) / 2),
		Y: math.Round((v.Y + o.Y) / 2),
	}
}

// AsRect builds a Rect anchored at v with the given dimensions.
func (v Vec2) AsRect(width, height float64) Rect {
	return Rect{v.X, v.Y, width, height}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Size is a viewport extent in pixels.
type Size struct {
	Width, Height float64
}

// --- Anchor presets ---
//
// Each anchor returns the position a box of the given bounds should take to
// sit at the named point of the viewport.

// TopLeft corresponds to (0, 0).
func TopLeft(Rect, Size) Vec2 {
	return Vec2{}
}

// TopCenter centers the box horizontally along the top edge.
func TopCenter(box Rect, viewport Size) Vec2 {
	return Vec2{viewport.Width/2 - box.Width/2, 0}
}

// TopRight aligns the box with the top-right corner.
func TopRight(box Rect, viewport Size) Vec2 {
	return Vec2{viewport.Width - box.Width, 0}
}

// Center centers the box in the viewport.
func Center(box Rect, viewport Size) Vec2 {
	return Vec2{viewport.Width/2 - box.Width/2, viewport.Height/2 - box.Height/2}
}

// CenterLeft centers the box vertically along the left edge.
func CenterLeft(box Rect, viewport Size) Vec2 {
	return Vec2{0, viewport.Height/2 - box.Height/2}
}

// CenterRight centers the box vertically along the right edge.
func CenterRight(box Rect, viewport Size) Vec2 {
	return Vec2{viewport.Width - box.Width, viewport.Height/2 - box.Height/2}
}

// BottomLeft aligns the box with the bottom-left corner.
func BottomLeft(box Rect, viewport Size) Vec2 {
	return Vec2{0, viewport.Height - box.Height}
}

// BottomCenter centers the box horizontally along the bottom edge.
func BottomCenter(box Rect, viewport Size) Vec2 {
	return Vec2{viewport.Width/2 - box.Width/2, viewport.Height - box.Height}
}

// BottomRight aligns the box with the bottom-right corner.
func BottomRight(box Rect, viewport Size) Vec2 {
	return Vec2{viewport.Width - box.Width, viewport.Height - box.Height}
}

// RandomWithin returns a uniformly random position keeping the box fully
// inside the viewport.
func RandomWithin(box Rect, viewport Size) Vec2 {
	return Vec2{
		X: rand.Float64() * (viewport.Width - box.Width),
		Y: rand.Float64() * (viewport.Height - box.Height),
	}
}

// AboveCentered returns the position for top that places it directly above
// bottom, horizontally centered on it. Used for health bars and other
// attached UI.
func AboveCentered(top, bottom Rect) Vec2 {
	return Vec2{
		X: bottom.X + bottom.Width/2 - top.Width/2,
		Y: bottom.Y - top.Height,
	}
}

// TravelVelocity computes a per-tick velocity from origin toward target at
// the given maximum speed. The speed is split between the axes in proportion
// to the relative absolute distances on each axis, so diagonal travel is
// Manhattan-budgeted rather than normalized. When origin and target
// coincide the zero vector is returned.
func TravelVelocity(origin, target Vec2, maxSpeed float64) Vec2 {
	dx := origin.DirectionalDistX(target)
	dy := origin.DirectionalDistY(target)
	total := math.Abs(dx) + math.Abs(dy)
	if total == 0 {
		return Vec2{}
	}
	ratio := math.Abs(dx) / total
	vx := ratio * maxSpeed
	vy := (1 - ratio) * maxSpeed
	if dx < 0 {
		vx = -vx
	}
	if dy < 0 {
		vy = -vy
	}
	return Vec2{vx, vy}
}
