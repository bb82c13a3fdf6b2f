package outline

import (
	"math"
)

// Embolden thickens the strokes of an outline by moving every node along the
// bisector of its adjacent edges. xstrength and ystrength give the total
// growth of a stem, half of it applied to each side. Nodes of collapsing
// segments are shifted less, so thin features do not flip over.
//
// The algorithm follows FreeType's FT_Outline_EmboldenXY, without the
// translation FreeType adds to keep the origin at the left edge.
func (cs Contours) Embolden(xstrength, ystrength float64) Contours {
	orientation := cs.Orientation()
	r := cs.Clone()
	if orientation == OrientationNone {
		return r
	}
	xstrength /= 2
	ystrength /= 2
	if xstrength == 0 && ystrength == 0 {
		return r
	}
	tt := orientation == OrientationTrueType
	for _, c := range r {
		emboldenContour(c, xstrength, ystrength, tt)
	}
	tracer().Debugf("emboldened %d contours by (%.1f,%.1f)", len(r), 2*xstrength, 2*ystrength)
	return r
}

// emboldenContour works on c in place. Counter j cycles through the nodes;
// counter i advances only when nodes are moved; anchor k marks the first
// moved node.
func emboldenContour(c Contour, xs, ys float64, tt bool) {
	last := len(c) - 1
	if last < 1 {
		return
	}
	next := func(j int) int {
		if j < last {
			return j + 1
		}
		return 0
	}
	var in, out, anchor Point
	var lIn, lOut, lAnchor float64
	k := -1
	i := last
	for j := 0; j != i && i != k; j = next(j) {
		if j != k {
			out = c[j].Sub(c[i].Point)
			lOut = out.Len()
			if lOut == 0 {
				continue
			}
			out = out.Mul(1 / lOut)
		} else {
			out, lOut = anchor, lAnchor
		}
		if lIn != 0 {
			if k < 0 {
				k, anchor, lAnchor = i, in, lIn
			}
			shift := Point{}
			d := in.X*out.X + in.Y*out.Y
			// shift only if turn is less than ~160 degrees
			if d > -0.9375 {
				d += 1
				shift = Point{X: in.Y + out.Y, Y: in.X + out.X}
				q := out.X*in.Y - out.Y*in.X
				if tt {
					shift.X = -shift.X
					q = -q
				} else {
					shift.Y = -shift.Y
				}
				l := math.Min(lIn, lOut)
				// non-strict inequalities avoid divide-by-zero when q == l == 0
				if xs*q <= l*d {
					shift.X = shift.X * xs / d
				} else {
					shift.X = shift.X * l / q
				}
				if ys*q <= l*d {
					shift.Y = shift.Y * ys / d
				} else {
					shift.Y = shift.Y * l / q
				}
			}
			for ; i != j; i = next(i) {
				c[i].Point = c[i].Add(shift)
			}
		} else {
			i = j
		}
		in, lIn = out, lOut
	}
}

// FitInto maps cs linearly so that its bounding box becomes box. Axes on
// which cs has no extent are only translated.
func (cs Contours) FitInto(box Rect) Contours {
	cur := cs.Bounds()
	if cur.Empty() || box.Empty() {
		return cs.Clone()
	}
	sx, sy := 1.0, 1.0
	if w := cur.Width(); w != 0 {
		sx = box.Width() / w
	}
	if h := cur.Height(); h != 0 {
		sy = box.Height() / h
	}
	m := Translate(-cur.XMin, -cur.YMin).Then(Scale(sx, sy)).Then(Translate(box.XMin, box.YMin))
	return cs.Transform(m)
}
