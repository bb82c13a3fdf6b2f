package outline

import (
	"iter"
)

// Node is a point of a TrueType-style contour. Nodes which are not on the
// curve are quadratic control points. Two consecutive off-curve nodes imply
// an on-curve node at their midpoint.
type Node struct {
	Point
	On bool
}

// Contour is a closed sequence of nodes. The closing segment from the last
// node back to the first is implicit.
type Contour []Node

// Contours is the outline of a glyph.
type Contours []Contour

// Segment is either a line (Line==true, Q.P1 unused) or a quadratic curve.
type Segment struct {
	Q    QuadBez
	Line bool
}

// Segments iterates over the lines and quadratic curves of c, resolving
// implied on-curve points.
func (c Contour) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		n := len(c)
		if n < 2 {
			return
		}
		// find an on-curve start; if none exists, start at an implied midpoint
		start := -1
		for i, node := range c {
			if node.On {
				start = i
				break
			}
		}
		var p0 Point
		if start < 0 {
			p0 = c[n-1].Lerp(c[0].Point, 0.5)
			start = 0
		} else {
			p0 = c[start].Point
			start++
		}
		var ctrl *Point
		for k := 0; k < n; k++ {
			node := c[(start+k)%n]
			if node.On {
				var s Segment
				if ctrl == nil {
					s = Segment{Q: QuadBez{P0: p0, P1: p0, P2: node.Point}, Line: true}
				} else {
					s = Segment{Q: QuadBez{P0: p0, P1: *ctrl, P2: node.Point}}
				}
				if !yield(s) {
					return
				}
				p0, ctrl = node.Point, nil
				continue
			}
			if ctrl != nil {
				mid := ctrl.Lerp(node.Point, 0.5)
				if !yield(Segment{Q: QuadBez{P0: p0, P1: *ctrl, P2: mid}}) {
					return
				}
				p0 = mid
			}
			pt := node.Point
			ctrl = &pt
		}
		if ctrl != nil { // close over a trailing control point
			end := c[0].Point
			if !c[0].On {
				end = ctrl.Lerp(c[0].Point, 0.5)
			}
			yield(Segment{Q: QuadBez{P0: p0, P1: *ctrl, P2: end}})
		}
	}
}

// Bounds returns the tight bounding box of the contour's curves.
func (c Contour) Bounds() Rect {
	var r Rect
	for s := range c.Segments() {
		if s.Line {
			r = r.Extend(s.Q.P0).Extend(s.Q.P2)
		} else {
			r = r.Union(s.Q.BoundingBox())
		}
	}
	if r.Empty() && len(c) == 1 {
		r = r.Extend(c[0].Point)
	}
	return r
}

// Area returns the signed area enclosed by c: positive for counter-clockwise
// contours in a y-up coordinate system.
func (c Contour) Area() float64 {
	a := 0.0
	for s := range c.Segments() {
		a += s.Q.P0.Cross(s.Q.P2) / 2
		if !s.Line {
			a += s.Q.signedArea()
		}
	}
	return a
}

// Reverse returns c with its direction of travel reversed. The first node
// stays in place.
func (c Contour) Reverse() Contour {
	if len(c) == 0 {
		return nil
	}
	r := make(Contour, 0, len(c))
	r = append(r, c[0])
	for i := len(c) - 1; i > 0; i-- {
		r = append(r, c[i])
	}
	return r
}

// Transform returns a copy of c with every node transformed by m.
func (c Contour) Transform(m Matrix) Contour {
	r := make(Contour, len(c))
	for i, node := range c {
		r[i] = Node{Point: m.Apply(node.Point), On: node.On}
	}
	return r
}

// Bounds returns the tight bounding box of all contours.
func (cs Contours) Bounds() Rect {
	var r Rect
	for _, c := range cs {
		r = r.Union(c.Bounds())
	}
	return r
}

// Area returns the sum of the signed areas of all contours.
func (cs Contours) Area() float64 {
	a := 0.0
	for _, c := range cs {
		a += c.Area()
	}
	return a
}

// Transform returns a copy of cs with every node transformed by m.
func (cs Contours) Transform(m Matrix) Contours {
	if cs == nil {
		return nil
	}
	r := make(Contours, len(cs))
	for i, c := range cs {
		r[i] = c.Transform(m)
	}
	return r
}

// Reverse reverses the direction of every contour.
func (cs Contours) Reverse() Contours {
	if cs == nil {
		return nil
	}
	r := make(Contours, len(cs))
	for i, c := range cs {
		r[i] = c.Reverse()
	}
	return r
}

// Clone returns a deep copy of cs.
func (cs Contours) Clone() Contours {
	return cs.Transform(Identity)
}

// NumPoints returns the total number of nodes.
func (cs Contours) NumPoints() int {
	n := 0
	for _, c := range cs {
		n += len(c)
	}
	return n
}

// Orientation classifies the winding direction of a whole outline.
type Orientation int8

const (
	// OrientationNone is reported for empty or degenerate outlines.
	OrientationNone Orientation = iota
	// OrientationTrueType: outer contours run clockwise (y-up).
	OrientationTrueType
	// OrientationPostScript: outer contours run counter-clockwise (y-up).
	OrientationPostScript
)

func (o Orientation) String() string {
	switch o {
	case OrientationTrueType:
		return "TrueType"
	case OrientationPostScript:
		return "PostScript"
	}
	return "none"
}

// Orientation returns the global winding direction of cs, derived from the
// sign of the total area.
func (cs Contours) Orientation() Orientation {
	a := cs.Area()
	switch {
	case a < 0:
		return OrientationTrueType
	case a > 0:
		return OrientationPostScript
	}
	return OrientationNone
}
