package ot

import (
	"fmt"
	"slices"
)

// Font represents the table structure of an SFNT font file.
// It gives typed access to the tables needed to read global and per-glyph
// metrics and the character map. Outlines are not interpreted here; clients
// use golang.org/x/image/font/sfnt for those.
//
// Required tables are never nil for a font returned by Parse. Optional
// tables are nil if they are missing or could not be interpreted.
type Font struct {
	Header *FontHeader
	CMap   *CMapTable // required
	Head   *HeadTable // required
	HHea   *HHeaTable // required
	HMtx   *HMtxTable // required
	MaxP   *MaxPTable // required
	Name   *NameTable
	OS2    *OS2Table
	Post   *PostTable
	tables map[Tag]Table
	issues issues
}

// FontHeader is the start of the table directory of a font.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the FontType. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// IsCFF reports whether the font carries PostScript (CFF) outlines.
func (h FontHeader) IsCFF() bool {
	return h.FontType == 0x4f54544f
}

// Table returns the table for a given tag, or nil. Every table of the font
// is available, tables which are not interpreted as a *RawTable:
//
//	os2, ok := otf.Table(ot.T("OS/2")).(*ot.OS2Table)
func (otf *Font) Table(tag Tag) Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns the tags of all tables contained in the font, sorted.
func (otf *Font) TableTags() []Tag {
	tags := make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// NumGlyphs returns the glyph count from table maxp, or 0.
func (otf *Font) NumGlyphs() int {
	if otf == nil || otf.MaxP == nil {
		return 0
	}
	return otf.MaxP.NumGlyphs
}

// UnitsPerEm returns the design units per em from table head, or 0.
func (otf *Font) UnitsPerEm() int {
	if otf == nil || otf.Head == nil {
		return 0
	}
	return int(otf.Head.UnitsPerEm)
}

// Issues returns the problems found while parsing the font which are at
// least as severe as threshold. Issues(SeverityWarning) returns all of them.
func (otf *Font) Issues(threshold Severity) []*FontError {
	var r []*FontError
	for _, e := range otf.issues {
		if e.Severity <= threshold {
			r = append(r, e)
		}
	}
	return r
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the OpenType specification as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from the first 4 bytes of b. Shorter slices are
// padded with blanks.
func MakeTag(b []byte) Tag {
	var t [4]byte
	copy(t[:], "    ")
	copy(t[:], b)
	return Tag(u32(t[:]))
}

// T returns a Tag from a (4-letter) string, e.g. T("cmap").
// Shorter strings are padded with blanks, longer ones are cut.
func T(t string) Tag {
	return MakeTag([]byte(t))
}

func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// --- Table -----------------------------------------------------------------

// Table is one of the tables of an SFNT font.
//
// Tables interpreted by this package are 'cmap', 'head', 'hhea', 'hmtx',
// 'maxp', 'name', 'OS/2' and 'post'. Outline tables ('glyf', 'loca',
// 'CFF ') and all others are kept as raw tables.
type Table interface {
	Tag() Tag
	Extent() (offset, size uint32) // location within the font's binary data
	Binary() []byte                // view into the font data, read-only
}

// tableBase is the common part of all tables.
type tableBase struct {
	data   binarySegm
	tag    Tag
	offset uint32
	size   uint32
}

func makeTableBase(tag Tag, b binarySegm, offset, size uint32) tableBase {
	return tableBase{data: b, tag: tag, offset: offset, size: size}
}

// Tag returns the 4-letter name of a table.
func (tb *tableBase) Tag() Tag {
	return tb.tag
}

// Extent returns offset and byte size of this table within the font.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.size
}

// Binary returns the bytes of this table. It is a view into the font data
// and must not be modified.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

// RawTable is a table this package does not interpret.
type RawTable struct {
	tableBase
}

func newRawTable(tag Tag, b binarySegm, offset, size uint32) *RawTable {
	return &RawTable{makeTableBase(tag, b, offset, size)}
}

// --- Concrete tables -------------------------------------------------------

// HeadTable gives global information about the font.
type HeadTable struct {
	tableBase
	FontRevision     uint32 // 16.16 fixed
	Flags            uint16
	UnitsPerEm       uint16 // values 16 … 16384 are valid
	XMin, YMin       int16  // bounding box of all glyphs
	XMax, YMax       int16
	MacStyle         uint16
	IndexToLocFormat uint16 // 0 for short loca offsets, 1 for long ones
}

// MaxPTable holds the number of glyphs in the font. Memory requirements of
// version 1.0 tables are not decoded here; see otquery.MaxPInfo.
type MaxPTable struct {
	tableBase
	NumGlyphs int
}

// HHeaTable contains information for horizontal layout.
type HHeaTable struct {
	tableBase
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	NumberOfHMetrics    int
}

// OS2Table contains the metrics of table 'OS/2' which are relevant for
// re-generating a font: weight class, vertical metrics for the different
// rendering backends, and the x-/cap-height of version 2+ tables.
// Fields of newer table versions are zero if the table is older.
type OS2Table struct {
	tableBase
	Version            uint16
	XAvgCharWidth      int16
	WeightClass        uint16
	WidthClass         uint16
	FsType             uint16
	YStrikeoutSize     int16
	YStrikeoutPosition int16
	Panose             [10]byte
	VendorID           Tag
	FsSelection        uint16
	TypoAscender       int16
	TypoDescender      int16
	TypoLineGap        int16
	WinAscent          uint16
	WinDescent         uint16
	XHeight            int16 // version ≥ 2
	CapHeight          int16 // version ≥ 2
}

// PostTable contains additional information needed to use TrueType or OpenType
// fonts on PostScript printers.
type PostTable struct {
	tableBase
	Version            uint32 // 16.16 fixed
	ItalicAngle        int32  // 16.16 fixed
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       bool
}

// NameTable holds the raw name records of table 'name'. String values are
// not decoded; see package otquery for that.
type NameTable struct {
	tableBase
	Records []NameRecord
}

// NameRecord is a single entry of table 'name'. Value is a view into the
// font's string storage.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      []byte
}

// HMtxTable holds the advance width and left side bearing of every glyph.
//
// In the font, the first NumberOfHMetrics glyphs (a value from table 'hhea')
// have a long record of both values. The glyphs after them store a left side
// bearing only and share the advance of the last long record. A monospaced
// font may thus get along with a single long record.
type HMtxTable struct {
	tableBase
	NumberOfHMetrics int
	advances         []uint16
	lsbs             []int16
}

// decode reads the metrics of numGlyphs glyphs.
func (t *HMtxTable) decode(numGlyphs, numberOfHMetrics int) error {
	if numberOfHMetrics < 1 || numberOfHMetrics > numGlyphs {
		return fmt.Errorf("numberOfHMetrics %d out of range 1…%d", numberOfHMetrics, numGlyphs)
	}
	if need := 4*numberOfHMetrics + 2*(numGlyphs-numberOfHMetrics); need > len(t.data) {
		return fmt.Errorf("need %d bytes, have %d", need, len(t.data))
	}
	t.advances = make([]uint16, numGlyphs)
	t.lsbs = make([]int16, numGlyphs)
	for g := range numGlyphs {
		if g < numberOfHMetrics {
			t.advances[g] = t.data.U16(4 * g)
			t.lsbs[g] = int16(t.data.U16(4*g + 2))
			continue
		}
		t.advances[g] = t.advances[numberOfHMetrics-1]
		t.lsbs[g] = int16(t.data.U16(4*numberOfHMetrics + 2*(g-numberOfHMetrics)))
	}
	t.NumberOfHMetrics = numberOfHMetrics
	return nil
}

// GlyphCount returns the number of glyphs with metrics.
func (t *HMtxTable) GlyphCount() int {
	if t == nil {
		return 0
	}
	return len(t.advances)
}

// HMetrics returns the advance width and left side bearing for a glyph.
func (t *HMtxTable) HMetrics(g GlyphIndex) (advance uint16, lsb int16, ok bool) {
	if t == nil || int(g) >= len(t.advances) {
		return 0, 0, false
	}
	return t.advances[g], t.lsbs[g], true
}
