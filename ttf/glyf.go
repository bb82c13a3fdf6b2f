package ttf

import (
	"fmt"
	"math"

	"github.com/npillmayer/comicmono/fontedit"
)

// Flags of simple glyph points.
const (
	flagOnCurve = 0x01
	flagXShort  = 0x02
	flagYShort  = 0x04
	flagRepeat  = 0x08
	flagXSame   = 0x10 // for short x: positive
	flagYSame   = 0x20 // for short y: positive
)

// glyphData is an encoded simple glyph together with the values other tables
// need to know about it.
type glyphData struct {
	data                   []byte
	xMin, yMin, xMax, yMax int
	points, contours       int
}

func (gd glyphData) empty() bool {
	return gd.contours == 0
}

// maxCoord keeps deltas between coordinates within int16.
const maxCoord = 16383

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

type gpoint struct {
	x, y int
	on   bool
}

// encodeGlyph encodes the outline of g as a simple TrueType glyph, without
// instructions. Coordinates are rounded to integer font units.
func encodeGlyph(g *fontedit.Glyph) (glyphData, error) {
	var gd glyphData
	var pts []gpoint
	var endPts []int
	for _, c := range g.Outline {
		if len(c) == 0 {
			continue
		}
		for _, n := range c {
			x, y := otRound(n.X), otRound(n.Y)
			if abs(x) > maxCoord || abs(y) > maxCoord {
				return gd, fmt.Errorf("glyph %s: coordinate (%d,%d) out of range", g.Name, x, y)
			}
			pts = append(pts, gpoint{x: x, y: y, on: n.On})
		}
		endPts = append(endPts, len(pts)-1)
	}
	if len(pts) == 0 {
		return gd, nil
	}
	if len(pts) > math.MaxUint16 || len(endPts) > math.MaxInt16 {
		return gd, fmt.Errorf("glyph %s: too many points", g.Name)
	}
	gd.points, gd.contours = len(pts), len(endPts)
	gd.xMin, gd.yMin, gd.xMax, gd.yMax = pts[0].x, pts[0].y, pts[0].x, pts[0].y
	for _, p := range pts[1:] {
		gd.xMin, gd.xMax = min(gd.xMin, p.x), max(gd.xMax, p.x)
		gd.yMin, gd.yMax = min(gd.yMin, p.y), max(gd.yMax, p.y)
	}
	var b buffer
	b.i16(int16(gd.contours))
	b.i16(int16(gd.xMin))
	b.i16(int16(gd.yMin))
	b.i16(int16(gd.xMax))
	b.i16(int16(gd.yMax))
	for _, e := range endPts {
		b.u16(uint16(e))
	}
	b.u16(0) // instructionLength
	flags, xs, ys := encodePoints(pts)
	b.bytes(compressFlags(flags))
	b.bytes(xs)
	b.bytes(ys)
	gd.data = b
	return gd, nil
}

// encodePoints computes point flags and the delta-encoded coordinate arrays.
func encodePoints(pts []gpoint) (flags []byte, xs, ys buffer) {
	flags = make([]byte, len(pts))
	px, py := 0, 0
	for i, p := range pts {
		var f byte
		if p.on {
			f |= flagOnCurve
		}
		f |= deltaFlag(p.x-px, flagXShort, flagXSame, &xs)
		f |= deltaFlag(p.y-py, flagYShort, flagYSame, &ys)
		flags[i] = f
		px, py = p.x, p.y
	}
	return
}

func deltaFlag(d int, short, same byte, out *buffer) byte {
	switch {
	case d == 0:
		return same
	case d > 0 && d < 256:
		out.u8(uint8(d))
		return short | same
	case d < 0 && d > -256:
		out.u8(uint8(-d))
		return short
	}
	out.i16(int16(d))
	return 0
}

// compressFlags merges runs of equal flags using the repeat flag.
func compressFlags(flags []byte) []byte {
	out := make([]byte, 0, len(flags))
	for i := 0; i < len(flags); {
		j := i + 1
		for j < len(flags) && flags[j] == flags[i] && j-i <= 255 {
			j++
		}
		if n := j - i; n > 2 {
			out = append(out, flags[i]|flagRepeat, byte(n-1))
		} else {
			out = append(out, flags[i:j]...)
		}
		i = j
	}
	return out
}

// glyfAndLoca assembles table glyf and a long format table loca.
func glyfAndLoca(glyphs []glyphData) (glyf, loca buffer) {
	for _, gd := range glyphs {
		loca.u32(uint32(len(glyf)))
		glyf.bytes(gd.data)
		glyf.pad(4)
	}
	loca.u32(uint32(len(glyf)))
	return
}
