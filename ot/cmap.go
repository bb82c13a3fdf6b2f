package ot

import (
	"fmt"
	"iter"
	"slices"
)

// CMapTable represents an OpenType cmap table, i.e. the table to receive glyphs
// from code-points.
//
// See https://docs.microsoft.com/de-de/typography/opentype/spec/cmap
//
// A cmap table may contain more than one lookup table, but we will only
// instantiate the most appropriate one.
type CMapTable struct {
	tableBase
	GlyphIndexMap CMapGlyphIndex
	NumGlyphs     int // from maxp, used to validate lookups
}

func newCMapTable(tag Tag, b binarySegm, offset, size uint32) *CMapTable {
	return &CMapTable{tableBase: makeTableBase(tag, b, offset, size)}
}

// Lookup returns the glyph for code-point r, or 0 ('.notdef').
// Glyph IDs beyond the glyph count of the font are mapped to 0 as well.
func (t *CMapTable) Lookup(r rune) GlyphIndex {
	if t == nil || t.GlyphIndexMap == nil {
		return 0
	}
	g := t.GlyphIndexMap.Lookup(r)
	if t.NumGlyphs > 0 && int(g) >= t.NumGlyphs {
		return 0
	}
	return g
}

// All iterates over every (code-point, glyph) pair of the character map, in
// ascending code-point order. Pairs mapping to glyph 0 are left out.
func (t *CMapTable) All() iter.Seq2[rune, GlyphIndex] {
	return func(yield func(rune, GlyphIndex) bool) {
		if t == nil || t.GlyphIndexMap == nil {
			return
		}
		for r, g := range t.GlyphIndexMap.All() {
			if g == 0 || (t.NumGlyphs > 0 && int(g) >= t.NumGlyphs) {
				continue
			}
			if !yield(r, g) {
				return
			}
		}
	}
}

// CodePoints returns, for every glyph, the list of code-points mapping to it.
// The lists are sorted ascending.
func (t *CMapTable) CodePoints() map[GlyphIndex][]rune {
	m := make(map[GlyphIndex][]rune)
	for r, g := range t.All() {
		m[g] = append(m[g], r)
	}
	for _, rs := range m {
		slices.Sort(rs)
	}
	return m
}

// platformEncodingWidth returns the number of bytes per character assumed by
// the given Platform ID and Platform Specific ID.
//
// Old fonts, from when Unicode meant the Basic Multilingual Plane (BMP),
// assume that 2 bytes per character is sufficient.
//
// Recent fonts naturally support the full range of Unicode code points, which
// can take up to 4 bytes per character.
func platformEncodingWidth(pid, psid uint16) int {
	switch pid {
	case 0: // Unicode platform
		switch psid {
		case 3: // Unicode BMB
			return 2
		case 4, 10: // Unicode full  (include 10 from FontForge bug)
			return 4
		}
	case 3: // Windows platform
		switch psid {
		case 1: // Unicode BMP
			return 2
		case 10: // Unicode full
			return 4
		}
	}
	return 0 // width 0 will never get selected
}

// We only support the following plaform/encoding/format combinations:
//
//	0 (Unicode)  3    4   Unicode BMB
//	0 (Unicode)  4    12  Unicode full  (10 from FontForge, error)
//	3 (Win)      1    4   Unicode BMP
//	3 (Win)      10   12  Unicode full
//
// Note that FontForge may generate a bogus Platform Specific ID (value 10)
// for the Unicode Platform ID (value 0). See
// https://github.com/fontforge/fontforge/issues/2728
func supportedCmapFormat(format, pid, psid uint16) bool {
	tracer().Debugf("checking supported cmap format (%d | %d | %d)", pid, psid, format)
	return (pid == 0 && psid == 3 && format == 4) ||
		(pid == 0 && (psid == 4 || psid == 10) && format == 12) ||
		(pid == 3 && psid == 1 && format == 4) ||
		(pid == 3 && psid == 10 && format == 12)
}

type encodingRecord struct {
	platformId uint16
	encodingId uint16
	subtable   binarySegm
	format     uint16
	width      int // encoding width in bytes
}

// Dispatcher to create the correct implementation of a CMapGlyphIndex from a given format.
func makeGlyphIndex(which encodingRecord) (CMapGlyphIndex, error) {
	switch which.format {
	case 4:
		return makeGlyphIndexFormat4(which.subtable)
	case 12:
		return makeGlyphIndexFormat12(which.subtable)
	}
	return nil, fmt.Errorf("%w: cmap format %d", ErrUnsupported, which.format)
}

// CMapGlyphIndex represents a CMap table index to receive a glyph index from
// a code-point.
type CMapGlyphIndex interface {
	Lookup(rune) GlyphIndex           // central activiy of CMap
	ReverseLookup(GlyphIndex) rune    // this is non-standard, but helps with tests
	All() iter.Seq2[rune, GlyphIndex] // every mapped code-point, ascending
}

// Format 4: Segment mapping to delta values
// This is the standard character-to-glyph-index mapping subtable for fonts that support
// only Unicode Basic Multilingual Plane characters (U+0000 to U+FFFF).
type format4GlyphIndex struct {
	entries  []cmapEntry16
	glyphIds binarySegm
}

// Format 4 holds four parallel arrays to describe the segments (one segment for
// each contiguous range of codes).
type cmapEntry16 struct {
	end, start, delta, offset uint16
}

func (f4 format4GlyphIndex) Lookup(r rune) GlyphIndex {
	if r < 0 || r > 0xffff { // format 4 is for BMP code-points only
		return 0
	}
	c := uint16(r)
	N := len(f4.entries)
	for i, j := 0, N; i < j; {
		h := i + (j-i)/2
		entry := &f4.entries[h]
		if c < entry.start {
			j = h
		} else if entry.end < c {
			i = h + 1
		} else {
			return f4.glyph(h, c)
		}
	}
	return 0
}

// glyph resolves code c within segment h.
func (f4 format4GlyphIndex) glyph(h int, c uint16) GlyphIndex {
	entry := &f4.entries[h]
	if entry.offset == 0 {
		return GlyphIndex(c + entry.delta)
	}
	// idRangeOffset is relative to its own slot in the offsets array. We have
	// sliced the arrays apart, so compute a clean index into the glyph ID array.
	deltaToEndOfEntries := (len(f4.entries) - h) * 2
	index := (int(entry.offset)-deltaToEndOfEntries)/2 + int(c-entry.start)
	glyphInx := f4.glyphIds.U16(2 * index)
	if glyphInx > 0 {
		glyphInx += entry.delta
	}
	return GlyphIndex(glyphInx)
}

func (f4 format4GlyphIndex) All() iter.Seq2[rune, GlyphIndex] {
	return func(yield func(rune, GlyphIndex) bool) {
		for h := range f4.entries {
			entry := f4.entries[h]
			if entry.end < entry.start {
				continue
			}
			for c := uint32(entry.start); c <= uint32(entry.end); c++ {
				if c == 0xffff {
					break
				}
				g := f4.glyph(h, uint16(c))
				if g == 0 {
					continue
				}
				if !yield(rune(c), g) {
					return
				}
			}
		}
	}
}

// ReverseLookup retrieves a code-point for a given glyph. The Cmap tables do not
// support this operation, thus this operation is inefficient.
func (f4 format4GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	for r, g := range f4.All() {
		if g == gid {
			return r
		}
	}
	return 0
}

// makeGlyphIndexFormat4 decodes a segment mapping subtable. After a header of
// seven words, four parallel arrays of segCount words describe the segments:
// end codes, a reserved pad word, start codes, deltas and range offsets.
// Glyph IDs referenced by range offsets follow.
func makeGlyphIndexFormat4(b binarySegm) (CMapGlyphIndex, error) {
	const headerSize = 14
	if len(b) < headerSize {
		return nil, fmt.Errorf("%w: cmap format 4 header", ErrTruncated)
	}
	length, segX2 := int(b.U16(2)), int(b.U16(6))
	if segX2&1 != 0 {
		return nil, fmt.Errorf("%w: cmap format 4 segCountX2 is odd (%d)", ErrMalformed, segX2)
	}
	if length > len(b) || headerSize+4*segX2+2 > length {
		return nil, fmt.Errorf("%w: cmap format 4 length %d", ErrTruncated, length)
	}
	arrays := b[headerSize:length]
	starts := segX2 + 2
	deltas := starts + segX2
	offsets := deltas + segX2
	entries := make([]cmapEntry16, segX2/2)
	for i := range entries {
		entries[i] = cmapEntry16{
			end:    arrays.U16(2 * i),
			start:  arrays.U16(starts + 2*i),
			delta:  arrays.U16(deltas + 2*i),
			offset: arrays.U16(offsets + 2*i),
		}
	}
	tracer().Debugf("cmap format 4 with %d segments", len(entries))
	return format4GlyphIndex{
		entries:  entries,
		glyphIds: arrays[offsets+segX2:],
	}, nil
}

type cmapEntry32 struct {
	start, end, delta uint32
}

// Each sequential map group record specifies a character range and the starting glyph ID
// mapped from the first character. Glyph IDs for subsequent characters follow in sequence.
type format12GlyphIndex struct {
	entries []cmapEntry32
}

func (f12 format12GlyphIndex) Lookup(r rune) GlyphIndex {
	if r < 0 {
		return 0
	}
	c := uint32(r)
	for i, j := 0, len(f12.entries); i < j; {
		h := i + (j-i)/2
		entry := &f12.entries[h]
		if c < entry.start {
			j = h
		} else if entry.end < c {
			i = h + 1
		} else {
			return GlyphIndex(c - entry.start + entry.delta)
		}
	}
	return 0
}

func (f12 format12GlyphIndex) All() iter.Seq2[rune, GlyphIndex] {
	return func(yield func(rune, GlyphIndex) bool) {
		for _, entry := range f12.entries {
			if entry.end < entry.start || entry.end > 0x10ffff {
				continue
			}
			for c := entry.start; c <= entry.end; c++ {
				g := GlyphIndex(c - entry.start + entry.delta)
				if g == 0 {
					continue
				}
				if !yield(rune(c), g) {
					return
				}
			}
		}
	}
}

// ReverseLookup retrieves a code-point for a given glyph. The Cmap tables do not
// support this operation, thus this operation is inefficient.
func (f12 format12GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	for r, g := range f12.All() {
		if g == gid {
			return r
		}
	}
	return 0
}

// makeGlyphIndexFormat12 decodes a segmented coverage subtable, the mapping
// for fonts with characters beyond the BMP. Each group is a record of three
// uint32: first and last code of a range, and the glyph of the first code.
func makeGlyphIndexFormat12(b binarySegm) (CMapGlyphIndex, error) {
	const headerSize, groupSize = 16, 12
	if len(b) < headerSize {
		return nil, fmt.Errorf("%w: cmap format 12 header", ErrTruncated)
	}
	length, count := uint64(b.U32(4)), uint64(b.U32(12))
	if length > uint64(len(b)) || headerSize+groupSize*count > length {
		return nil, fmt.Errorf("%w: cmap format 12 with %d groups in %d bytes", ErrTruncated, count, length)
	}
	groups := b[headerSize:length]
	entries := make([]cmapEntry32, count)
	for i := range entries {
		g := groups.record(i, groupSize)
		entries[i] = cmapEntry32{start: g.U32(0), end: g.U32(4), delta: g.U32(8)}
	}
	return format12GlyphIndex{entries: entries}, nil
}
