package outline

import (
	"math"
)

// QuadBez is a quadratic Bézier curve with start P0, control P1 and end P2.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	bbox := RectOf(q.P0, q.P2)
	// B'(t) = 2[(P1-P0) + t(P2-2P1+P0)] = 0  ⇒  t = (P0-P1) / (P0-2P1+P2)
	d0 := q.P1.Sub(q.P0)
	dd := q.P2.Sub(q.P1).Sub(d0)
	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			bbox = bbox.Extend(q.Eval(t))
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			bbox = bbox.Extend(q.Eval(t))
		}
	}
	return bbox
}

// signedArea is the area between the curve and its chord, positive if the
// curve bulges to the right of the direction of travel in a y-up system
// (i.e., it adds to a counter-clockwise contour).
func (q QuadBez) signedArea() float64 {
	return q.P1.Sub(q.P0).Cross(q.P2.Sub(q.P0)) / 3
}

// CubicBez is a cubic Bézier curve with start P0, controls P1, P2 and end P3.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t
	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)
	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// maxQuadDepth limits recursive subdivision; 2^8 quads per cubic are plenty
// for any tolerance above 1/1000 unit.
const maxQuadDepth = 8

// ToQuads approximates c by a sequence of quadratic curves, each within
// distance tol of the cubic. The quads join with tangent continuity.
func (c CubicBez) ToQuads(tol float64) []QuadBez {
	return c.appendQuads(nil, tol, 0)
}

func (c CubicBez) appendQuads(quads []QuadBez, tol float64, depth int) []QuadBez {
	if depth >= maxQuadDepth || c.quadError() <= tol {
		return append(quads, c.singleQuad())
	}
	a, b := c.Subdivide()
	quads = a.appendQuads(quads, tol, depth+1)
	return b.appendQuads(quads, tol, depth+1)
}

// singleQuad is the quadratic with control point (3(P1+P2) - P0 - P3) / 4.
func (c CubicBez) singleQuad() QuadBez {
	ctrl := c.P1.Add(c.P2).Mul(3).Sub(c.P0).Sub(c.P3).Mul(0.25)
	return QuadBez{P0: c.P0, P1: ctrl, P2: c.P3}
}

// quadError bounds the distance between c and its single quad approximation:
// √3/36 · |P3 - 3P2 + 3P1 - P0|.
func (c CubicBez) quadError() float64 {
	d := c.P3.Sub(c.P2.Mul(3)).Add(c.P1.Mul(3)).Sub(c.P0)
	return math.Sqrt(3) / 36 * d.Len()
}
