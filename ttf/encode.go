package ttf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/npillmayer/comicmono/fontedit"
)

// Limits checked before encoding.
const (
	MinUnitsPerEm = 16
	MaxUnitsPerEm = 16384
	MaxGlyphs     = 0xFFFF
)

// ErrEmptyFont is returned for fonts without glyphs.
var ErrEmptyFont = errors.New("font has no glyphs")

type encoder struct {
	f                      *fontedit.Font
	upem                   int
	glyphs                 []glyphData
	maps                   []mapping
	xMin, yMin, xMax, yMax int // font bounding box
	numHMetrics            int
}

// Encode writes f as a TrueType font: an SFNT file with glyf outlines and the
// tables cmap, head, hhea, hmtx, loca, maxp, name, OS/2 and post. Hinting
// instructions and layout tables are not written.
func Encode(f *fontedit.Font) ([]byte, error) {
	e, err := newEncoder(f)
	if err != nil {
		return nil, err
	}
	glyf, loca := glyfAndLoca(e.glyphs)
	cmap, err := encodeCMap(e.maps)
	if err != nil {
		return nil, err
	}
	name, err := encodeName(f)
	if err != nil {
		return nil, err
	}
	post, err := e.post()
	if err != nil {
		return nil, err
	}
	tables := map[string]buffer{
		"OS/2": e.os2(),
		"cmap": cmap,
		"glyf": glyf,
		"head": e.head(),
		"hhea": e.hhea(),
		"hmtx": e.hmtx(),
		"loca": loca,
		"maxp": e.maxp(),
		"name": name,
		"post": post,
	}
	b := assemble(tables)
	tracer().Infof("encoded %s: %d glyphs, %d bytes", f.FontName, len(f.Glyphs), len(b))
	return b, nil
}

// WriteFile encodes f and writes it to path.
func WriteFile(f *fontedit.Font, path string) error {
	b, err := Encode(f)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, b, 0o644)
}

func newEncoder(f *fontedit.Font) (*encoder, error) {
	if len(f.Glyphs) == 0 {
		return nil, ErrEmptyFont
	}
	if len(f.Glyphs) > MaxGlyphs {
		return nil, fmt.Errorf("font has %d glyphs, maximum is %d", len(f.Glyphs), MaxGlyphs)
	}
	e := &encoder{f: f, upem: f.UnitsPerEm()}
	if e.upem < MinUnitsPerEm || e.upem > MaxUnitsPerEm {
		return nil, fmt.Errorf("units per em %d out of range %d…%d", e.upem, MinUnitsPerEm, MaxUnitsPerEm)
	}
	e.glyphs = make([]glyphData, len(f.Glyphs))
	seen := make(map[rune]bool)
	first := true
	for i, g := range f.Glyphs {
		if g.Width < 0 || g.Width > 0xFFFF {
			return nil, fmt.Errorf("glyph %s: advance width %d out of range", g.Name, g.Width)
		}
		gd, err := encodeGlyph(g)
		if err != nil {
			return nil, err
		}
		e.glyphs[i] = gd
		if !gd.empty() {
			if first {
				e.xMin, e.yMin, e.xMax, e.yMax, first = gd.xMin, gd.yMin, gd.xMax, gd.yMax, false
			} else {
				e.xMin, e.yMin = min(e.xMin, gd.xMin), min(e.yMin, gd.yMin)
				e.xMax, e.yMax = max(e.xMax, gd.xMax), max(e.yMax, gd.yMax)
			}
		}
		if i == 0 {
			continue // .notdef is never mapped
		}
		for _, r := range g.Codes() {
			if r < 0 || r > 0x10FFFF || seen[r] {
				tracer().Debugf("glyph %s: skipping code point %U", g.Name, r)
				continue
			}
			seen[r] = true
			e.maps = append(e.maps, mapping{code: r, gid: uint16(i)})
		}
	}
	sort.Slice(e.maps, func(i, j int) bool { return e.maps[i].code < e.maps[j].code })
	e.numHMetrics = numberOfHMetrics(f.Glyphs)
	return e, nil
}

// assemble writes the table directory and the tables, sorted by tag, and
// sets head.checksumAdjustment.
func assemble(tables map[string]buffer) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	n := len(tags)
	var b buffer
	b.u32(0x00010000)
	b.u16(uint16(n))
	sr, sel, shift := searchParams(n, 16)
	b.u16(sr)
	b.u16(sel)
	b.u16(shift)
	offset := 12 + 16*n
	headOffset := 0
	for _, tag := range tags {
		t := tables[tag]
		b.tag(tag)
		b.u32(checksum(t))
		b.u32(uint32(offset))
		b.u32(uint32(len(t)))
		if tag == "head" {
			headOffset = offset
		}
		offset += (len(t) + 3) &^ 3
	}
	for _, tag := range tags {
		b.bytes(tables[tag])
		b.pad(4)
	}
	binary.BigEndian.PutUint32(b[headOffset+checksumAdjustmentOffset:], 0xB1B0AFBA-checksum(b))
	return b
}
