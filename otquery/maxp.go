package otquery

import (
	"github.com/npillmayer/comicmono/ot"
)

// MaxPTableInfo holds the contents of table 'maxp'. Fonts with CFF outlines
// carry a version 0.5 table, which has the glyph count only. Version 1.0
// tables add the memory limits of the TrueType instruction interpreter.
type MaxPTableInfo struct {
	VersionFixed       uint32
	NumGlyphs          uint16
	HasExtendedProfile bool // version 1.0

	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

// MaxPInfo decodes table 'maxp'. The limits are left zero if the table is a
// version 0.5 table or too short for version 1.0.
func MaxPInfo(otf *ot.Font) (MaxPTableInfo, bool) {
	if otf == nil || otf.MaxP == nil {
		return MaxPTableInfo{}, false
	}
	f := fields{b: otf.MaxP.Binary()}
	info := MaxPTableInfo{VersionFixed: f.u32(), NumGlyphs: f.u16()}
	if info.VersionFixed != 0x00010000 || len(f.b) < 32 {
		return info, true
	}
	info.HasExtendedProfile = true
	for _, field := range []*uint16{
		&info.MaxPoints, &info.MaxContours,
		&info.MaxCompositePoints, &info.MaxCompositeContours,
		&info.MaxZones, &info.MaxTwilightPoints,
		&info.MaxStorage, &info.MaxFunctionDefs, &info.MaxInstructionDefs,
		&info.MaxStackElements, &info.MaxSizeOfInstructions,
		&info.MaxComponentElements, &info.MaxComponentDepth,
	} {
		*field = f.u16()
	}
	return info, true
}
