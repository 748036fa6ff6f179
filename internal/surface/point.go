// Package surface implements the raster drawing surface: an RGBA image with
// anti-aliased stroke primitives and whole-surface snapshot/restore.
package surface

import "math"

// Point is a position in surface pixels, relative to the surface's top-left corner.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

func (p Point) add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) scale(k float64) Point { return Point{p.X * k, p.Y * k} }
