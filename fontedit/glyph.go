package fontedit

import (
	"math"

	"github.com/npillmayer/comicmono/outline"
)

// NoCode is the code point of glyphs not mapped from any character.
const NoCode rune = -1

// Glyph is a single glyph of a font.
type Glyph struct {
	Name     string           // glyph name, as found in 'post' or the CFF charset
	Code     rune             // primary code point, or NoCode
	AltCodes []rune           // further code points mapped to the glyph
	Width    int              // advance width
	Outline  outline.Contours // in TrueType orientation
}

// Codes returns all code points mapping to g, primary code first.
func (g *Glyph) Codes() []rune {
	if g.Code == NoCode {
		return nil
	}
	return append([]rune{g.Code}, g.AltCodes...)
}

// Bounds is the bounding box of the glyph's ink. It is empty for glyphs
// without an outline.
func (g *Glyph) Bounds() outline.Rect {
	return g.Outline.Bounds()
}

// LSB is the left side bearing: the distance between the origin and the
// left edge of the ink. Empty glyphs have a left side bearing of 0.
func (g *Glyph) LSB() float64 {
	b := g.Bounds()
	if b.Empty() {
		return 0
	}
	return b.XMin
}

// RSB is the right side bearing: the distance between the right edge of the
// ink and the advance width.
func (g *Glyph) RSB() float64 {
	b := g.Bounds()
	if b.Empty() {
		return float64(g.Width)
	}
	return float64(g.Width) - b.XMax
}

// SetLSB moves the outline horizontally so that its left side bearing becomes
// lsb. The advance width is not changed.
func (g *Glyph) SetLSB(lsb float64) {
	b := g.Bounds()
	if b.Empty() {
		return
	}
	g.Outline = g.Outline.Transform(outline.Translate(lsb-b.XMin, 0))
}

// SetRSB changes the advance width so that the right side bearing becomes rsb.
// The outline is not moved.
func (g *Glyph) SetRSB(rsb float64) {
	xmax := 0.0
	if b := g.Bounds(); !b.Empty() {
		xmax = b.XMax
	}
	g.Width = int(math.Round(xmax + rsb))
}

// Transform applies m to the outline. The advance width is scaled by the
// horizontal scale factor of m.
func (g *Glyph) Transform(m outline.Matrix) {
	g.Outline = g.Outline.Transform(m)
	g.Width = int(math.Round(float64(g.Width) * m.A))
}

// CounterType selects how emboldening treats the bounding box of a glyph.
type CounterType int8

const (
	// SquishCounters keeps the bounding box of a glyph; counters get smaller.
	SquishCounters CounterType = iota
	// RetainCounters keeps the counters; the glyph gets wider by the stroke.
	RetainCounters
)

func (ct CounterType) String() string {
	if ct == RetainCounters {
		return "retain"
	}
	return "squish"
}

// ChangeWeight thickens (stroke > 0) or thins (stroke < 0) every stem of the
// glyph by stroke font units.
func (g *Glyph) ChangeWeight(stroke float64, counters CounterType) {
	if len(g.Outline) == 0 || stroke == 0 {
		return
	}
	box := g.Bounds()
	bold := g.Outline.Embolden(stroke, stroke)
	switch counters {
	case SquishCounters:
		bold = bold.FitInto(box)
	case RetainCounters:
		nb := bold.Bounds()
		bold = bold.Transform(outline.Translate(box.XMin-nb.XMin, 0))
		if g.Width > 0 {
			g.Width += int(math.Round(stroke))
		}
	}
	g.Outline = bold
}
