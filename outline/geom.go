package outline

import (
	"math"
)

// Point is a position in font units, y pointing up.
type Point struct {
	X, Y float64
}

// Pt is a shortcut for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Len is the euclidean length of p as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Cross is the z-component of the cross product of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// --- Rect ------------------------------------------------------------------

// Rect is an axis-aligned rectangle. The zero Rect is empty.
type Rect struct {
	XMin, YMin, XMax, YMax float64
	nonEmpty               bool
}

// RectOf returns the smallest Rect containing all points pts.
func RectOf(pts ...Point) Rect {
	var r Rect
	for _, p := range pts {
		r = r.Extend(p)
	}
	return r
}

// Empty reports whether no point has been added to r.
func (r Rect) Empty() bool {
	return !r.nonEmpty
}

// Width of r.
func (r Rect) Width() float64 {
	return r.XMax - r.XMin
}

// Height of r.
func (r Rect) Height() float64 {
	return r.YMax - r.YMin
}

// Extend returns the smallest Rect containing r and p.
func (r Rect) Extend(p Point) Rect {
	if !r.nonEmpty {
		return Rect{XMin: p.X, YMin: p.Y, XMax: p.X, YMax: p.Y, nonEmpty: true}
	}
	r.XMin = math.Min(r.XMin, p.X)
	r.YMin = math.Min(r.YMin, p.Y)
	r.XMax = math.Max(r.XMax, p.X)
	r.YMax = math.Max(r.YMax, p.Y)
	return r
}

// Union returns the smallest Rect containing r and other.
func (r Rect) Union(other Rect) Rect {
	if other.Empty() {
		return r
	}
	if r.Empty() {
		return other
	}
	return r.Extend(Point{other.XMin, other.YMin}).Extend(Point{other.XMax, other.YMax})
}

// --- Matrix ----------------------------------------------------------------

// Matrix is an affine transformation
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// The layout follows the PostScript/FontForge convention [A B C D E F].
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transformation.
var Identity = Matrix{A: 1, D: 1}

// Scale returns a matrix scaling by sx horizontally and sy vertically.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Translate returns a matrix moving by (dx, dy).
func Translate(dx, dy float64) Matrix {
	return Matrix{A: 1, D: 1, E: dx, F: dy}
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Then returns the transformation applying m first, then n.
func (m Matrix) Then(n Matrix) Matrix {
	return Matrix{
		A: n.A*m.A + n.C*m.B,
		B: n.B*m.A + n.D*m.B,
		C: n.A*m.C + n.C*m.D,
		D: n.B*m.C + n.D*m.D,
		E: n.A*m.E + n.C*m.F + n.E,
		F: n.B*m.E + n.D*m.F + n.F,
	}
}
