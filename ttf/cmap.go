package ttf

import (
	"fmt"
	"sort"
)

type mapping struct {
	code rune
	gid  uint16
}

// cmapGroup is a run of consecutive code points mapped to consecutive glyphs.
type cmapGroup struct {
	start, end rune
	gid        uint16 // glyph of start
}

// groups collapses sorted mappings into runs.
func groups(mappings []mapping) []cmapGroup {
	var gs []cmapGroup
	for _, m := range mappings {
		if n := len(gs); n > 0 {
			last := &gs[n-1]
			if m.code == last.end+1 && int(m.gid) == int(last.gid)+int(m.code-last.start) {
				last.end = m.code
				continue
			}
		}
		gs = append(gs, cmapGroup{start: m.code, end: m.code, gid: m.gid})
	}
	return gs
}

// encodeCMap writes a cmap table with a format 4 subtable for the BMP and, if
// any code point lies beyond the BMP, a format 12 subtable.
func encodeCMap(mappings []mapping) (buffer, error) {
	sort.Slice(mappings, func(i, j int) bool { return mappings[i].code < mappings[j].code })
	var bmp []mapping
	for _, m := range mappings {
		if m.code <= 0xFFFF {
			bmp = append(bmp, m)
		}
	}
	fmt4, err := cmapFormat4(bmp)
	if err != nil {
		return nil, err
	}
	var fmt12 buffer
	full := len(bmp) < len(mappings)
	if full {
		fmt12 = cmapFormat12(mappings)
	}
	type record struct {
		platform, encoding uint16
		full               bool
	}
	records := []record{{0, 3, false}, {3, 1, false}}
	if full {
		records = []record{{0, 3, false}, {0, 4, true}, {3, 1, false}, {3, 10, true}}
	}
	var b buffer
	b.u16(0) // version
	b.u16(uint16(len(records)))
	off4 := 4 + 8*len(records)
	off12 := off4 + len(fmt4)
	for _, r := range records {
		b.u16(r.platform)
		b.u16(r.encoding)
		if r.full {
			b.u32(uint32(off12))
		} else {
			b.u32(uint32(off4))
		}
	}
	b.bytes(fmt4)
	b.bytes(fmt12)
	return b, nil
}

func cmapFormat4(bmp []mapping) (buffer, error) {
	gs := groups(bmp)
	gs = append(gs, cmapGroup{start: 0xFFFF, end: 0xFFFF, gid: 0}) // required final segment
	if n := len(gs); n > 1 && gs[n-2].end == 0xFFFF {
		gs = gs[:n-1]
	}
	segCount := len(gs)
	length := 16 + 8*segCount
	if length > 0xFFFF {
		return nil, fmt.Errorf("cmap format 4: %d segments exceed the subtable size", segCount)
	}
	var b buffer
	b.u16(4)
	b.u16(uint16(length))
	b.u16(0) // language
	b.u16(uint16(2 * segCount))
	sr, sel, shift := searchParams(segCount, 2)
	b.u16(sr)
	b.u16(sel)
	b.u16(shift)
	for _, g := range gs {
		b.u16(uint16(g.end))
	}
	b.u16(0) // reservedPad
	for _, g := range gs {
		b.u16(uint16(g.start))
	}
	for _, g := range gs {
		b.u16(g.gid - uint16(g.start))
	}
	for range gs {
		b.u16(0) // idRangeOffset
	}
	return b, nil
}

func cmapFormat12(mappings []mapping) buffer {
	gs := groups(mappings)
	var b buffer
	b.u16(12)
	b.u16(0) // reserved
	b.u32(uint32(16 + 12*len(gs)))
	b.u32(0) // language
	b.u32(uint32(len(gs)))
	for _, g := range gs {
		b.u32(uint32(g.start))
		b.u32(uint32(g.end))
		b.u32(uint32(g.gid))
	}
	return b
}
