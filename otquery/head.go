package otquery

import (
	"fmt"

	"github.com/npillmayer/comicmono/ot"
)

// HeadTableInfo holds every field of table 'head', including those ot.HeadTable
// leaves out: the checksum adjustment and the time stamps.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32 // 16.16 fixed
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64 // seconds since 1904-01-01
	Modified           int64
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

// HeadMagicNumber is the value of field magicNumber in every valid 'head' table.
const HeadMagicNumber = 0x5F0F3CF5

// HeadInfo decodes table 'head'. It returns false if the font has no head
// table, which cannot happen for fonts returned by ot.Parse.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	if otf == nil || otf.Head == nil {
		return HeadTableInfo{}, false
	}
	// ot.Parse has checked for the full 54 bytes
	f := fields{b: otf.Head.Binary()}
	return HeadTableInfo{
		MajorVersion:       f.u16(),
		MinorVersion:       f.u16(),
		FontRevision:       f.u32(),
		CheckSumAdjustment: f.u32(),
		MagicNumber:        f.u32(),
		Flags:              f.u16(),
		UnitsPerEm:         f.u16(),
		Created:            f.i64(),
		Modified:           f.i64(),
		XMin:               f.i16(),
		YMin:               f.i16(),
		XMax:               f.i16(),
		YMax:               f.i16(),
		MacStyle:           f.u16(),
		LowestRecPPEM:      f.u16(),
		FontDirectionHint:  f.i16(),
		IndexToLocFormat:   f.i16(),
		GlyphDataFormat:    f.i16(),
	}, true
}

// Revision formats the font revision with three decimals, e.g. "1.000".
func (info HeadTableInfo) Revision() string {
	return fmt.Sprintf("%.3f", float64(int32(info.FontRevision))/65536)
}

// IsBold reports whether bit 0 of macStyle is set.
func (info HeadTableInfo) IsBold() bool {
	return info.MacStyle&1 != 0
}
