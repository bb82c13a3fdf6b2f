package otquery

import (
	"github.com/npillmayer/comicmono/ot"
	"golang.org/x/image/font/sfnt"
)

// FontMetrics collects the global metrics of a font from tables hhea, OS/2
// and head. If hhea has neither ascender nor descender, the typographic
// values of OS/2 are used.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if otf == nil {
		return metrics
	}
	if hhea := otf.HHea; hhea != nil {
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax)
	}
	if os2 := otf.OS2; os2 != nil {
		metrics.TypoAscent = sfnt.Units(os2.TypoAscender)
		metrics.TypoDescent = sfnt.Units(os2.TypoDescender)
		metrics.TypoLineGap = sfnt.Units(os2.TypoLineGap)
		metrics.WinAscent = sfnt.Units(os2.WinAscent)
		metrics.WinDescent = sfnt.Units(os2.WinDescent)
		metrics.XHeight = sfnt.Units(os2.XHeight)
		metrics.CapHeight = sfnt.Units(os2.CapHeight)
		if metrics.Ascent == 0 && metrics.Descent == 0 {
			tracer().Debugf("hhea has no vertical metrics, using OS/2")
			metrics.Ascent = metrics.TypoAscent
			metrics.Descent = metrics.TypoDescent
		}
	}
	if otf.Head != nil {
		metrics.UnitsPerEm = sfnt.Units(otf.Head.UnitsPerEm)
	}
	return metrics
}

// IsFixedPitch reports whether all glyphs with a non-zero advance share the
// same advance width, as recorded in table 'hmtx'.
func IsFixedPitch(otf *ot.Font) bool {
	if otf == nil || otf.HMtx == nil {
		return false
	}
	width := uint16(0)
	for g := 0; g < otf.NumGlyphs(); g++ {
		aw, _, ok := otf.HMtx.HMetrics(ot.GlyphIndex(g))
		if !ok || aw == 0 {
			continue
		}
		if width == 0 {
			width = aw
		} else if aw != width {
			return false
		}
	}
	return width != 0
}

// --- Glyphs ----------------------------------------------------------------

// GlyphIndex returns the glyph a code-point maps to, or 0 ('.notdef') for
// code-points the font does not support.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	if otf == nil {
		return 0
	}
	return otf.CMap.Lookup(codepoint)
}

// CodePointForGlyph returns the lowest code-point mapping to glyph gid, or 0.
// It scans the character map and should not be used in loops over glyphs;
// see ot.CMapTable.CodePoints for that.
func CodePointForGlyph(otf *ot.Font, gid ot.GlyphIndex) rune {
	if otf == nil || gid == 0 {
		return 0
	}
	return otf.CMap.GlyphIndexMap.ReverseLookup(gid)
}

// GlyphMetrics returns the metrics of glyph gid as stored in the font.
// The bounding box is the one recorded in table 'glyf', thus fonts with CFF
// outlines get an empty box and no right side bearing. For glyphs without
// contours the box is empty, too.
func GlyphMetrics(otf *ot.Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	var gm GlyphMetricsInfo
	if otf == nil {
		return gm
	}
	if aw, lsb, ok := otf.HMtx.HMetrics(gid); ok {
		gm.Advance, gm.LSB = sfnt.Units(aw), sfnt.Units(lsb)
	}
	if b, ok := glyphData(otf, gid); ok && len(b) >= 10 {
		f := fields{b: b}
		gm.Contours = int(f.i16())
		gm.BBox.MinX = sfnt.Units(f.i16())
		gm.BBox.MinY = sfnt.Units(f.i16())
		gm.BBox.MaxX = sfnt.Units(f.i16())
		gm.BBox.MaxY = sfnt.Units(f.i16())
	}
	if !gm.BBox.IsEmpty() {
		gm.RSB = gm.Advance - gm.LSB - gm.BBox.Dx()
	}
	return gm
}

// glyphData returns the bytes of glyph gid within table 'glyf'. Empty glyphs
// yield (nil, false).
func glyphData(otf *ot.Font, gid ot.GlyphIndex) ([]byte, bool) {
	glyf, loca := otf.Table(ot.T("glyf")), otf.Table(ot.T("loca"))
	if glyf == nil || loca == nil || otf.Head == nil || int(gid) >= otf.NumGlyphs() {
		return nil, false
	}
	lb := loca.Binary()
	var from, to int
	if otf.Head.IndexToLocFormat == 1 {
		if len(lb) < 4*(int(gid)+2) {
			return nil, false
		}
		from, to = int(u32(lb[4*int(gid):])), int(u32(lb[4*(int(gid)+1):]))
	} else {
		if len(lb) < 2*(int(gid)+2) {
			return nil, false
		}
		from, to = 2*int(u16(lb[2*int(gid):])), 2*int(u16(lb[2*(int(gid)+1):]))
	}
	gb := glyf.Binary()
	if from >= to || to > len(gb) {
		return nil, false
	}
	return gb[from:to], true
}
