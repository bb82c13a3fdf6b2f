package build

import (
	"github.com/npillmayer/comicmono/fontedit"
	"golang.org/x/image/font/sfnt"
)

// Relabel drops all name records of f and names it after id.
func Relabel(f *fontedit.Font, id Identity) {
	f.SFNTNames = make(map[sfnt.NameID]string)
	f.FamilyName = id.FamilyName
	f.Version = id.Version
	f.Comment = id.Comment
	f.Copyright = id.Copyright
	f.FontName = id.FontName
	f.FullName = id.FullName
}

// SynthesizeBold turns f into its bold variant: the names change to the ones
// of id and all stems get thicker by stroke units, keeping glyph bounds.
func SynthesizeBold(f *fontedit.Font, id Identity, stroke float64) {
	f.FontName = id.FontName
	f.FullName = id.FullName
	f.Weight = "Bold"
	f.OS2.WeightClass = 700
	f.ChangeWeight(stroke, fontedit.SquishCounters)
	tracer().Infof("synthesized %s with stroke %.0f", f.FullName, stroke)
}
