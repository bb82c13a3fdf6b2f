package ot

import (
	"fmt"
)

// Limits for counts read from a font. Untrusted fonts may claim counts which
// would make us allocate far too much memory.
const (
	MaxTableCount   = 256  // table records in the table directory
	MaxNameRecCount = 4096 // records in table 'name'
)

// RequiredTables are the tables needed to interpret a font's metrics and
// character map. 'name', 'OS/2' and 'post' are mandatory for OpenType fonts
// as well, but Parse treats them as optional.
var RequiredTables = []string{
	"cmap", "head", "hhea", "hmtx", "maxp",
}

// Parse parses an SFNT font (TrueType or OpenType with CFF outlines) from a
// byte slice.
// The Font returned keeps referencing font, which must not be modified
// while the Font is in use.
//
// A non-nil error is a *FontError of severity SeverityCritical. Less severe
// problems are available from Font.Issues.
func Parse(font []byte) (*Font, error) {
	var is issues
	src := binarySegm(font)
	if len(src) < 12 {
		return nil, is.fail(0, "Header", ErrNotSFNT, 0, "%d bytes", len(src))
	}
	h := FontHeader{FontType: src.U32(0), TableCount: src.U16(4)}
	tracer().Debugf("font type %x, %d tables", h.FontType, h.TableCount)
	switch h.FontType {
	case 0x00010000, 0x4f54544f, 0x74727565: // TrueType, 'OTTO', 'true'
	default:
		return nil, is.fail(0, "Header", ErrNotSFNT, 0, "font type %08x", h.FontType)
	}
	if h.TableCount > MaxTableCount {
		return nil, is.fail(0, "Header", ErrMalformed, 4, "%d tables", h.TableCount)
	}
	// 16 byte table records follow the header, sorted by tag
	records, ok := src.sub(12, 16*uint64(h.TableCount))
	if !ok {
		return nil, is.fail(0, "TableRecords", ErrTruncated, 12, "%d records", h.TableCount)
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table, h.TableCount)}
	var prev Tag
	for i := range int(h.TableCount) {
		rec := records.record(i, 16)
		tag := Tag(rec.U32(0))
		if i > 0 && tag <= prev {
			return nil, is.fail(0, "TableRecords", ErrMalformed, uint32(12+16*i), "table order at %s", tag)
		}
		prev = tag
		off, size := rec.U32(8), rec.U32(12)
		if off&3 != 0 {
			return nil, is.fail(tag, "Offset", ErrMalformed, off, "not on a 4 byte boundary")
		}
		data, ok := src.sub(uint64(off), uint64(size))
		if !ok {
			return nil, is.fail(tag, "Size", ErrTruncated, off,
				"[%d:%d] exceeds font size %d", off, uint64(off)+uint64(size), len(src))
		}
		t, err := parseTable(tag, data, off, size, &is)
		if err != nil {
			return nil, err
		}
		otf.tables[tag] = t
	}
	if err := link(otf, &is); err != nil {
		return nil, err
	}
	otf.issues = is
	return otf, nil
}

// link checks the presence of the required tables, sets the typed table
// fields of otf and decodes the parts of tables which depend on others.
func link(otf *Font, is *issues) error {
	for _, name := range RequiredTables {
		if otf.tables[T(name)] == nil {
			return is.fail(T(name), "", ErrMissing, 0, "required table")
		}
	}
	for _, name := range []string{"name", "OS/2", "post"} {
		if otf.tables[T(name)] == nil {
			is.warn(T(name), ErrMissing, 0, "optional table")
		}
	}
	otf.CMap, _ = otf.tables[T("cmap")].(*CMapTable)
	otf.Head, _ = otf.tables[T("head")].(*HeadTable)
	otf.HHea, _ = otf.tables[T("hhea")].(*HHeaTable)
	otf.HMtx, _ = otf.tables[T("hmtx")].(*HMtxTable)
	otf.MaxP, _ = otf.tables[T("maxp")].(*MaxPTable)
	otf.Name, _ = otf.tables[T("name")].(*NameTable)
	otf.OS2, _ = otf.tables[T("OS/2")].(*OS2Table)
	otf.Post, _ = otf.tables[T("post")].(*PostTable)
	numGlyphs := otf.MaxP.NumGlyphs
	otf.CMap.NumGlyphs = numGlyphs
	if err := otf.HMtx.decode(numGlyphs, otf.HHea.NumberOfHMetrics); err != nil {
		return is.fail(T("hmtx"), "", ErrMalformed, otf.HMtx.offset, "%v", err)
	}
	if upem := otf.Head.UnitsPerEm; upem < 16 || upem > 16384 {
		is.add(SeverityMajor, T("head"), "UnitsPerEm", ErrMalformed, otf.Head.offset, "value %d", upem)
	}
	return nil
}

// parseTable interprets the table data b. Decoders of required tables fail
// with a critical issue; those of optional tables fall back to a raw table
// and record a warning.
func parseTable(tag Tag, b binarySegm, offset, size uint32, is *issues) (Table, error) {
	base := makeTableBase(tag, b, offset, size)
	short := func(need int) bool { return len(b) < need }
	switch tag {
	case T("cmap"):
		return parseCMap(base, is)
	case T("head"):
		if short(54) {
			return nil, is.fail(tag, "", ErrTruncated, offset, "%d bytes, need 54", size)
		}
		return parseHead(base), nil
	case T("hhea"):
		if short(36) {
			return nil, is.fail(tag, "", ErrTruncated, offset, "%d bytes, need 36", size)
		}
		return parseHHea(base), nil
	case T("maxp"):
		if short(6) {
			return nil, is.fail(tag, "", ErrTruncated, offset, "%d bytes, need 6", size)
		}
		return &MaxPTable{tableBase: base, NumGlyphs: int(b.U16(4))}, nil
	case T("hmtx"):
		// decoded by link, as it depends on 'hhea' and 'maxp'
		return &HMtxTable{tableBase: base}, nil
	case T("OS/2"):
		if short(78) {
			is.warn(tag, ErrTruncated, offset, "%d bytes, need 78", size)
			break
		}
		return parseOS2(base), nil
	case T("post"):
		if short(32) {
			is.warn(tag, ErrTruncated, offset, "%d bytes, need 32", size)
			break
		}
		return parsePost(base), nil
	case T("name"):
		if t := parseName(base, is); t != nil {
			return t, nil
		}
	case T("glyf"), T("loca"), T("CFF "):
		// outlines are read by golang.org/x/image/font/sfnt
	default:
		tracer().Debugf("table %s will not be interpreted", tag)
	}
	return newRawTable(tag, b, offset, size), nil
}

func parseHead(base tableBase) *HeadTable {
	b := base.data
	return &HeadTable{
		tableBase:        base,
		FontRevision:     b.U32(4),
		Flags:            b.U16(16),
		UnitsPerEm:       b.U16(18),
		XMin:             b.I16(36),
		YMin:             b.I16(38),
		XMax:             b.I16(40),
		YMax:             b.I16(42),
		MacStyle:         b.U16(44),
		IndexToLocFormat: b.U16(50),
	}
}

func parseHHea(base tableBase) *HHeaTable {
	b := base.data
	return &HHeaTable{
		tableBase:           base,
		Ascender:            b.I16(4),
		Descender:           b.I16(6),
		LineGap:             b.I16(8),
		AdvanceWidthMax:     b.U16(10),
		MinLeftSideBearing:  b.I16(12),
		MinRightSideBearing: b.I16(14),
		XMaxExtent:          b.I16(16),
		CaretSlopeRise:      b.I16(18),
		CaretSlopeRun:       b.I16(20),
		CaretOffset:         b.I16(22),
		NumberOfHMetrics:    int(b.U16(34)),
	}
}

// parseOS2 reads the 78 bytes common to all versions of table OS/2, plus
// x-height and cap-height for version 2 and later.
func parseOS2(base tableBase) *OS2Table {
	b := base.data
	t := &OS2Table{
		tableBase:          base,
		Version:            b.U16(0),
		XAvgCharWidth:      b.I16(2),
		WeightClass:        b.U16(4),
		WidthClass:         b.U16(6),
		FsType:             b.U16(8),
		YStrikeoutSize:     b.I16(26),
		YStrikeoutPosition: b.I16(28),
		VendorID:           Tag(b.U32(58)),
		FsSelection:        b.U16(62),
		TypoAscender:       b.I16(68),
		TypoDescender:      b.I16(70),
		TypoLineGap:        b.I16(72),
		WinAscent:          b.U16(74),
		WinDescent:         b.U16(76),
	}
	copy(t.Panose[:], b[32:42])
	if t.Version >= 2 && len(b) >= 90 {
		t.XHeight = b.I16(86)
		t.CapHeight = b.I16(88)
	}
	return t
}

// parsePost reads the header of table post. Glyph names of version 2.0
// tables are not decoded.
func parsePost(base tableBase) *PostTable {
	b := base.data
	return &PostTable{
		tableBase:          base,
		Version:            b.U32(0),
		ItalicAngle:        int32(b.U32(4)),
		UnderlinePosition:  b.I16(8),
		UnderlineThickness: b.I16(10),
		IsFixedPitch:       b.U32(12) != 0,
	}
}

// parseName returns nil if the record array is unusable. Single records
// pointing outside of the string storage are dropped.
func parseName(base tableBase, is *issues) *NameTable {
	b, tag := base.data, base.tag
	if len(b) < 6 {
		is.warn(tag, ErrTruncated, base.offset, "%d bytes", len(b))
		return nil
	}
	count, storage := int(b.U16(2)), int(b.U16(4))
	if count > MaxNameRecCount {
		is.warn(tag, ErrMalformed, base.offset, "%d records", count)
		return nil
	}
	if storage > len(b) || 6+12*count > len(b) {
		is.warn(tag, ErrTruncated, base.offset, "%d records, storage at %d", count, storage)
		return nil
	}
	tracer().Debugf("name table has %d records", count)
	pool := b[storage:]
	t := &NameTable{tableBase: base, Records: make([]NameRecord, 0, count)}
	for i := range count {
		rec := b[6:].record(i, 12)
		value, ok := pool.sub(uint64(rec.U16(10)), uint64(rec.U16(8)))
		if !ok {
			is.warn(tag, ErrMalformed, base.offset, "record %d out of bounds", i)
			continue
		}
		t.Records = append(t.Records, NameRecord{
			PlatformID: rec.U16(0),
			EncodingID: rec.U16(2),
			LanguageID: rec.U16(4),
			NameID:     rec.U16(6),
			Value:      value,
		})
	}
	return t
}

// parseCMap selects the Unicode subtable with the widest encoding among the
// ones supported. A font having both a 16 bit (format 4) and a 32 bit
// (format 12) Unicode subtable should use the 32 bit one.
func parseCMap(base tableBase, is *issues) (Table, error) {
	b, tag := base.data, base.tag
	n := int(b.U16(2))
	tracer().Debugf("font cmap has %d sub-tables in %d bytes", n, len(b))
	const headerSize, recordSize = 4, 8
	if len(b) < headerSize+recordSize*n {
		return nil, is.fail(tag, "", ErrTruncated, base.offset, "%d encoding records in %d bytes", n, len(b))
	}
	var enc encodingRecord
	for i := range n {
		rec := b[headerSize:].record(i, recordSize)
		pid, psid := rec.U16(0), rec.U16(2)
		width := platformEncodingWidth(pid, psid)
		if width <= enc.width {
			continue
		}
		suboffset := rec.U32(4)
		if uint64(suboffset) >= uint64(len(b)) {
			is.warn(tag, ErrMalformed, base.offset,
				"sub-table %d (platform %d, encoding %d) out of bounds", i, pid, psid)
			continue
		}
		subtable := b[suboffset:]
		if format := subtable.U16(0); supportedCmapFormat(format, pid, psid) {
			enc = encodingRecord{
				platformId: pid,
				encodingId: psid,
				subtable:   subtable,
				format:     format,
				width:      width,
			}
		}
	}
	if enc.width == 0 {
		return nil, is.fail(tag, "", ErrUnsupported, base.offset, "no Unicode sub-table of format 4 or 12")
	}
	index, err := makeGlyphIndex(enc)
	if err != nil {
		return nil, is.fail(tag, fmt.Sprintf("format %d", enc.format), ErrMalformed, base.offset, "%v", err)
	}
	t := newCMapTable(tag, b, base.offset, base.size)
	t.GlyphIndexMap = index
	return t, nil
}
