package otquery

import "golang.org/x/image/font/sfnt"

// FontMetricsInfo holds the global metrics of a font, in font units.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units
	Ascent, Descent sfnt.Units // hhea, descent is negative
	MaxAdvance      sfnt.Units // hhea advanceWidthMax
	LineGap         sfnt.Units // typographic line gap from 'hhea'
	TypoAscent      sfnt.Units // OS/2 typographic values
	TypoDescent     sfnt.Units
	TypoLineGap     sfnt.Units
	WinAscent       sfnt.Units // OS/2 clipping values, both positive
	WinDescent      sfnt.Units
	XHeight         sfnt.Units // 0 for OS/2 versions < 2
	CapHeight       sfnt.Units // 0 for OS/2 versions < 2
}

// GlyphMetricsInfo holds the horizontal metrics and the control box of a glyph.
type GlyphMetricsInfo struct {
	Advance  sfnt.Units
	LSB, RSB sfnt.Units
	BBox     BoundingBox
	Contours int         // number of contours, -1 for composite glyphs
}

// BoundingBox is an axis-aligned rectangle in font units.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// IsEmpty is true for boxes without area.
func (box BoundingBox) IsEmpty() bool {
	return box.Dx() == 0 || box.Dy() == 0
}

func (box BoundingBox) Dx() sfnt.Units { return box.MaxX - box.MinX }

func (box BoundingBox) Dy() sfnt.Units { return box.MaxY - box.MinY }
