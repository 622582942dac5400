// Package geom provides the planar primitives shared by the circuit model,
// the renderer and the raster surface.
package geom

import "math"

// Point is a 2D coordinate. Board-space points are in millimeters,
// canvas-space points are in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by s
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the cross product of p and q
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Len returns the Euclidean length of p
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between p and q
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Unit returns p scaled to length 1, or the zero point if p has no length
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Bounds is an axis-aligned rectangle in board space.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EmptyBounds returns bounds that any call to Expand will overwrite
func EmptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether no point has been added to the bounds
func (b Bounds) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Width returns MaxX-MinX
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns MaxY-MinY
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// Center returns the center point of the bounds
func (b Bounds) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Expand grows the bounds to include p
func (b *Bounds) Expand(p Point) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// ExpandBy grows the bounds to include a circle of radius r around p
func (b *Bounds) ExpandBy(p Point, r float64) {
	b.Expand(Point{X: p.X - r, Y: p.Y - r})
	b.Expand(Point{X: p.X + r, Y: p.Y + r})
}

// Pad returns the bounds grown by margin on every side
func (b Bounds) Pad(margin float64) Bounds {
	return Bounds{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// Contains reports whether p lies inside the bounds (edges inclusive)
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}
