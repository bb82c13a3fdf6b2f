package build

import (
	"github.com/npillmayer/comicmono/fontedit"
	"github.com/npillmayer/comicmono/ucd"
)

// WidthReport counts the glyphs touched by NormalizeWidths.
type WidthReport struct {
	Adjusted     int // width changed to the target
	Unchanged    int // width already at the target
	SkippedMarks int // combining marks (Mn, Mc, Me)
	SkippedEmpty int // zero width glyphs
}

// NormalizeWidths sets the advance width of every spacing glyph to target.
// The left side bearing absorbs half of the difference, rounded down; the
// right side bearing takes the rest. Glyphs with zero width and combining
// marks are left alone.
func NormalizeWidths(f *fontedit.Font, target int) WidthReport {
	var rep WidthReport
	for _, g := range f.Glyphs {
		if g.Width <= 0 {
			rep.SkippedEmpty++
			continue
		}
		if ucd.IsMark(g.Code) {
			rep.SkippedMarks++
			continue
		}
		if g.Width == target {
			rep.Unchanged++
			continue
		}
		delta := target - g.Width
		g.SetLSB(g.LSB() + float64(floorDiv(delta, 2)))
		// the outline has moved: RSB shrank by the shift just applied
		g.SetRSB(g.RSB() + float64(target-g.Width))
		g.Width = target
		rep.Adjusted++
	}
	tracer().Infof("normalized widths to %d: %d adjusted, %d unchanged, %d marks, %d empty",
		target, rep.Adjusted, rep.Unchanged, rep.SkippedMarks, rep.SkippedEmpty)
	return rep
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
