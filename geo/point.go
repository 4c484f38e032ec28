// Package geo is the geometry kernel: points, polylines, bounding
// boxes, rotation and bezier interpolation. It generalizes the
// teacher's vec package (float32, SVG-oriented) to float64 geographic
// coordinates, since stations carry real-world positions rather than
// hand-authored compass-grid layouts.
package geo

import (
	"fmt"
	"math"

	"github.com/linegrid/octilayout/internal/xmath"
)

// Point is a 2D point or direction vector.
type Point struct {
	X, Y float64
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Mul(m float64) Point {
	return Point{p.X * m, p.Y * m}
}
func (p Point) Div(d float64) Point {
	return Point{p.X / d, p.Y / d}
}

// Length returns the Euclidean length of p treated as a vector.
func (p Point) Length() float64 {
	return xmath.Hypot(p.X, p.Y)
}

// Normalized returns p scaled to unit length; the zero vector maps to itself.
func (p Point) Normalized() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return p.Div(l)
}

// Dot returns the dot product of p and o.
func (p Point) Dot(o Point) float64 {
	return p.X*o.X + p.Y*o.Y
}

func (p Point) Neg() Point { return Point{-p.X, -p.Y} }

// Min returns the component-wise minimum of p and o.
func (p Point) Min(o Point) Point {
	return Point{minF(p.X, o.X), minF(p.Y, o.Y)}
}

// Max returns the component-wise maximum of p and o.
func (p Point) Max(o Point) Point {
	return Point{maxF(p.X, o.X), maxF(p.Y, o.Y)}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Dist returns the Euclidean distance between p and o.
func (p Point) Dist(o Point) float64 {
	return p.Sub(o).Length()
}

// Lerp linearly interpolates between p and o by t.
func (p Point) Lerp(o Point, t float64) Point {
	return p.Mul(1 - t).Add(o.Mul(t))
}

// Rotate rotates p counterclockwise around the origin by angle (radians).
func (p Point) Rotate(angle float64) Point {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Point{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
	}
}

// RotateAround rotates p counterclockwise around center by angle (radians).
func (p Point) RotateAround(center Point, angle float64) Point {
	return p.Sub(center).Rotate(angle).Add(center)
}

// AngleTo returns the angle in degrees (0 = +X axis, increasing
// counterclockwise) from p to o.
func (p Point) AngleTo(o Point) float64 {
	d := o.Sub(p)
	return xmath.NormalizeAngle(math.Atan2(d.Y, d.X) * 180 / math.Pi)
}

// ApproxEq reports whether p and o are within eps of each other per axis.
func (p Point) ApproxEq(o Point, eps float64) bool {
	if p == o {
		return true
	}
	return xmath.ApproxEq(p.X, o.X, eps) && xmath.ApproxEq(p.Y, o.Y, eps)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
