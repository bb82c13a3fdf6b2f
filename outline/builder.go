package outline

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// DefaultTolerance is the maximum distance, in font units, between a cubic
// curve and its quadratic approximation.
const DefaultTolerance = 1.0

// Builder collects path operations into TrueType contours. Cubic curves are
// approximated by quadratic ones.
type Builder struct {
	tolerance float64
	contours  Contours
	current   Contour
	last      Point
}

// NewBuilder creates a builder approximating cubics within tolerance tol.
// A tolerance ≤ 0 selects DefaultTolerance.
func NewBuilder(tol float64) *Builder {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	return &Builder{tolerance: tol}
}

// MoveTo starts a new contour at p, closing any open one.
func (b *Builder) MoveTo(p Point) {
	b.Close()
	b.current = Contour{{Point: p, On: true}}
	b.last = p
}

// LineTo adds a straight segment to p.
func (b *Builder) LineTo(p Point) {
	b.ensureOpen()
	b.current = append(b.current, Node{Point: p, On: true})
	b.last = p
}

// QuadTo adds a quadratic curve with control point c ending in p.
func (b *Builder) QuadTo(c, p Point) {
	b.ensureOpen()
	b.current = append(b.current, Node{Point: c}, Node{Point: p, On: true})
	b.last = p
}

// CubeTo adds a cubic curve with control points c1, c2 ending in p.
func (b *Builder) CubeTo(c1, c2, p Point) {
	b.ensureOpen()
	cubic := CubicBez{P0: b.last, P1: c1, P2: c2, P3: p}
	for _, q := range cubic.ToQuads(b.tolerance) {
		b.current = append(b.current, Node{Point: q.P1}, Node{Point: q.P2, On: true})
	}
	b.last = p
}

// Close finishes the current contour. A final node equal to the first node is
// dropped, as contours close implicitly. Contours with less than two nodes
// are discarded.
func (b *Builder) Close() {
	c := b.current
	b.current = nil
	if len(c) > 1 && c[len(c)-1].On && c[len(c)-1].Point == c[0].Point {
		c = c[:len(c)-1]
	}
	if len(c) < 2 {
		return
	}
	b.contours = append(b.contours, c)
}

// Contours closes the current contour and returns all contours built so far.
func (b *Builder) Contours() Contours {
	b.Close()
	return b.contours
}

func (b *Builder) ensureOpen() {
	if b.current == nil {
		b.current = Contour{{Point: b.last, On: true}}
	}
}

// FromSegments converts an outline loaded by golang.org/x/image/font/sfnt into
// contours. Segments must have been loaded at ppem = units per em, so that one
// font unit equals 1/64 in 26.6 fixed point; sfnt's y axis points down and is
// flipped here.
func FromSegments(segs sfnt.Segments, tol float64) Contours {
	b := NewBuilder(tol)
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.MoveTo(fromFixed(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.LineTo(fromFixed(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.QuadTo(fromFixed(seg.Args[0]), fromFixed(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.CubeTo(fromFixed(seg.Args[0]), fromFixed(seg.Args[1]), fromFixed(seg.Args[2]))
		}
	}
	return b.Contours()
}

func fromFixed(p fixed.Point26_6) Point {
	return Point{X: float64(p.X) / 64, Y: -float64(p.Y) / 64}
}
