package ttf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/comicmono/fontedit"
)

// now is the clock used for the timestamps in table head.
var now = time.Now

// seconds between 1904-01-01 and 1970-01-01
const macEpochOffset = 2082844800

const headMagic = 0x5F0F3CF5

// checksumAdjustmentOffset is the offset of head.checksumAdjustment.
const checksumAdjustmentOffset = 8

func isBold(f *fontedit.Font) bool {
	return f.Weight == "Bold" || f.OS2.WeightClass >= 700
}

// fontRevision parses the leading "major.minor" of a version string as a
// 16.16 fixed value. "0.1.1" yields 0.1.
func fontRevision(version string) int32 {
	parts := strings.SplitN(strings.TrimSpace(version), ".", 3)
	digits := func(s string) string {
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return s[:i]
	}
	v := digits(parts[0])
	if v == "" {
		return 1 << 16
	}
	if len(parts) > 1 {
		if minor := digits(parts[1]); minor != "" {
			v += "." + minor
		}
	}
	r, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 1 << 16
	}
	return int32(otRound(r * 65536))
}

func (e *encoder) head() buffer {
	f := e.f
	var b buffer
	b.u16(1) // majorVersion
	b.u16(0) // minorVersion
	b.i32(fontRevision(f.Version))
	b.u32(0) // checksumAdjustment, set after assembly
	b.u32(headMagic)
	b.u16(0x000B) // baseline at y=0, lsb at x=0, integer ppem
	b.u16(uint16(e.upem))
	ts := uint64(now().Unix() + macEpochOffset)
	b.u64(ts) // created
	b.u64(ts) // modified
	b.i16(int16(e.xMin))
	b.i16(int16(e.yMin))
	b.i16(int16(e.xMax))
	b.i16(int16(e.yMax))
	var macStyle uint16
	if isBold(f) {
		macStyle |= 0x01
	}
	if f.ItalicAngle != 0 {
		macStyle |= 0x02
	}
	b.u16(macStyle)
	b.u16(8) // lowestRecPPEM
	b.i16(2) // fontDirectionHint
	b.i16(1) // indexToLocFormat: long offsets
	b.i16(0) // glyphDataFormat
	return b
}

func (e *encoder) hhea() buffer {
	f := e.f
	asc, desc := f.Metrics.HHea()
	advMax, minLSB, minRSB, maxExtent := 0, 0, 0, 0
	first := true
	for i, g := range f.Glyphs {
		advMax = max(advMax, g.Width)
		gd := e.glyphs[i]
		if gd.empty() {
			continue
		}
		lsb, rsb, ext := gd.xMin, g.Width-gd.xMax, gd.xMax
		if first {
			minLSB, minRSB, maxExtent, first = lsb, rsb, ext, false
			continue
		}
		minLSB, minRSB, maxExtent = min(minLSB, lsb), min(minRSB, rsb), max(maxExtent, ext)
	}
	rise, run := 1, 0
	if f.ItalicAngle != 0 {
		rise, run = 1000, otRound(-1000*math.Tan(f.ItalicAngle*math.Pi/180))
	}
	var b buffer
	b.u16(1) // majorVersion
	b.u16(0) // minorVersion
	b.i16(int16(asc))
	b.i16(int16(desc))
	b.i16(int16(f.Metrics.HHeaLineGap))
	b.u16(uint16(advMax))
	b.i16(int16(minLSB))
	b.i16(int16(minRSB))
	b.i16(int16(maxExtent))
	b.i16(int16(rise))
	b.i16(int16(run))
	b.i16(0) // caretOffset
	for range 4 {
		b.i16(0) // reserved
	}
	b.i16(0) // metricDataFormat
	b.u16(uint16(e.numHMetrics))
	return b
}

// hmtx writes long metrics up to the last change of advance width, followed
// by left side bearings only.
func (e *encoder) hmtx() buffer {
	var b buffer
	for i, g := range e.f.Glyphs {
		if i < e.numHMetrics {
			b.u16(uint16(g.Width))
		}
		b.i16(int16(e.glyphs[i].xMin))
	}
	return b
}

func numberOfHMetrics(glyphs []*fontedit.Glyph) int {
	n := len(glyphs)
	for n > 1 && glyphs[n-1].Width == glyphs[n-2].Width {
		n--
	}
	return n
}

func (e *encoder) maxp() buffer {
	maxPoints, maxContours := 0, 0
	for _, gd := range e.glyphs {
		maxPoints, maxContours = max(maxPoints, gd.points), max(maxContours, gd.contours)
	}
	var b buffer
	b.u32(0x00010000)
	b.u16(uint16(len(e.glyphs)))
	b.u16(uint16(maxPoints))
	b.u16(uint16(maxContours))
	b.u16(0) // maxCompositePoints
	b.u16(0) // maxCompositeContours
	b.u16(2) // maxZones
	for range 8 {
		b.u16(0) // twilight points, storage, defs, stack, instructions, components
	}
	return b
}

// unicodeRanges are the OS/2 ulUnicodeRange bits we know of.
var unicodeRanges = []struct {
	bit      int
	from, to rune
}{
	{0, 0x0000, 0x007F},     // Basic Latin
	{1, 0x0080, 0x00FF},     // Latin-1 Supplement
	{2, 0x0100, 0x017F},     // Latin Extended-A
	{3, 0x0180, 0x024F},     // Latin Extended-B
	{4, 0x0250, 0x02AF},     // IPA Extensions
	{5, 0x02B0, 0x02FF},     // Spacing Modifier Letters
	{6, 0x0300, 0x036F},     // Combining Diacritical Marks
	{7, 0x0370, 0x03FF},     // Greek and Coptic
	{9, 0x0400, 0x04FF},     // Cyrillic
	{29, 0x1E00, 0x1EFF},    // Latin Extended Additional
	{31, 0x2000, 0x206F},    // General Punctuation
	{32, 0x2070, 0x209F},    // Superscripts And Subscripts
	{33, 0x20A0, 0x20CF},    // Currency Symbols
	{35, 0x2100, 0x214F},    // Letterlike Symbols
	{36, 0x2150, 0x218F},    // Number Forms
	{37, 0x2190, 0x21FF},    // Arrows
	{38, 0x2200, 0x22FF},    // Mathematical Operators
	{39, 0x2300, 0x23FF},    // Miscellaneous Technical
	{43, 0x2500, 0x257F},    // Box Drawing
	{44, 0x2580, 0x259F},    // Block Elements
	{45, 0x25A0, 0x25FF},    // Geometric Shapes
	{46, 0x2600, 0x26FF},    // Miscellaneous Symbols
	{47, 0x2700, 0x27BF},    // Dingbats
	{60, 0xE000, 0xF8FF},    // Private Use Area
	{57, 0x10000, 0x10FFFF}, // Non-Plane 0
}

func (e *encoder) os2() buffer {
	f := e.f
	var ranges [4]uint32
	first, last := rune(0xFFFF), rune(0)
	latin := false
	for _, m := range e.maps {
		for _, ur := range unicodeRanges {
			if m.code >= ur.from && m.code <= ur.to {
				ranges[ur.bit/32] |= 1 << (ur.bit % 32)
			}
		}
		first, last = min(first, m.code), max(last, m.code)
		latin = latin || (m.code >= 0x20 && m.code <= 0xFF)
	}
	if len(e.maps) == 0 {
		first = 0
	}
	sumW, nW := 0, 0
	for _, g := range f.Glyphs {
		if g.Width > 0 {
			sumW += g.Width
			nW++
		}
	}
	avgW := 0
	if nW > 0 {
		avgW = otRound(float64(sumW) / float64(nW))
	}
	weight := f.OS2.WeightClass
	if weight == 0 {
		weight = 400
	}
	width := f.OS2.WidthClass
	if width == 0 {
		width = 5
	}
	var sel uint16
	switch {
	case isBold(f) && f.ItalicAngle != 0:
		sel = 0x21
	case isBold(f):
		sel = 0x20
	case f.ItalicAngle != 0:
		sel = 0x01
	default:
		sel = 0x40
	}
	sel |= f.OS2.FsSelection & 0x80 // USE_TYPO_METRICS
	xHeight, capHeight := e.glyphTop('x', f.OS2.XHeight), e.glyphTop('H', f.OS2.CapHeight)
	strikeSize := f.UnderlineThickness
	if strikeSize <= 0 {
		strikeSize = otRound(float64(e.upem) * 0.05)
	}
	strikePos := xHeight / 2
	if strikePos <= 0 {
		strikePos = otRound(float64(e.upem) * 0.22)
	}
	vendor := f.OS2.VendorID
	if strings.TrimSpace(vendor) == "" {
		vendor = "NONE"
	}
	em := float64(e.upem)
	var b buffer
	b.u16(4) // version
	b.i16(int16(avgW))
	b.u16(weight)
	b.u16(width)
	b.u16(f.OS2.FsType)
	b.i16(int16(otRound(em * 0.65))) // ySubscriptXSize
	b.i16(int16(otRound(em * 0.60))) // ySubscriptYSize
	b.i16(0)                         // ySubscriptXOffset
	b.i16(int16(otRound(em * 0.075)))
	b.i16(int16(otRound(em * 0.65))) // ySuperscriptXSize
	b.i16(int16(otRound(em * 0.60))) // ySuperscriptYSize
	b.i16(0)                         // ySuperscriptXOffset
	b.i16(int16(otRound(em * 0.35)))
	b.i16(int16(strikeSize))
	b.i16(int16(strikePos))
	b.i16(0) // sFamilyClass
	b.bytes(f.OS2.Panose[:])
	for _, r := range ranges {
		b.u32(r)
	}
	b.tag(vendor)
	b.u16(sel)
	b.u16(uint16(min(first, 0xFFFF)))
	b.u16(uint16(min(last, 0xFFFF)))
	typoAsc, typoDesc := f.Metrics.Typo()
	winAsc, winDesc := f.Metrics.Win()
	b.i16(int16(typoAsc))
	b.i16(int16(typoDesc))
	b.i16(int16(f.Metrics.OS2TypoLineGap))
	b.u16(uint16(winAsc))
	b.u16(uint16(winDesc))
	var codepages uint32
	if latin {
		codepages |= 1 // Latin 1
	}
	b.u32(codepages)
	b.u32(0)
	b.i16(int16(xHeight))
	b.i16(int16(capHeight))
	b.u16(0)  // usDefaultChar
	b.u16(32) // usBreakChar
	b.u16(0)  // usMaxContext
	return b
}

// glyphTop returns the rounded top of the glyph for r, or fallback if the
// font has no ink for r.
func (e *encoder) glyphTop(r rune, fallback int) int {
	for i, g := range e.f.Glyphs {
		if g.Code == r && !e.glyphs[i].empty() {
			return e.glyphs[i].yMax
		}
	}
	return fallback
}

func (e *encoder) post() (buffer, error) {
	f := e.f
	var b buffer
	b.u32(0x00020000)
	b.i32(int32(otRound(f.ItalicAngle * 65536)))
	b.i16(int16(f.UnderlinePosition))
	b.i16(int16(f.UnderlineThickness))
	if f.IsFixedPitch() {
		b.u32(1)
	} else {
		b.u32(0)
	}
	b.u32(0) // minMemType42
	b.u32(0) // maxMemType42
	b.u32(0) // minMemType1
	b.u32(0) // maxMemType1
	b.u16(uint16(len(f.Glyphs)))
	var custom buffer
	customIndex := make(map[string]uint16)
	for _, g := range f.Glyphs {
		if i, ok := macGlyphIndex[g.Name]; ok {
			b.u16(i)
			continue
		}
		i, ok := customIndex[g.Name]
		if !ok {
			if len(g.Name) > 255 {
				return nil, fmt.Errorf("glyph name %q too long", g.Name)
			}
			i = uint16(len(macGlyphNames) + len(customIndex))
			customIndex[g.Name] = i
			custom.u8(uint8(len(g.Name)))
			custom.bytes([]byte(g.Name))
		}
		b.u16(i)
	}
	b.bytes(custom)
	return b, nil
}
