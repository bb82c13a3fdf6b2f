package fontedit

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/comicmono"
	"github.com/npillmayer/comicmono/ot"
	"github.com/npillmayer/comicmono/otquery"
	"github.com/npillmayer/comicmono/outline"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrNoCapHeight is returned by CapHeight for fonts which have neither flat
// topped capital letters nor a cap height in table OS/2.
var ErrNoCapHeight = errors.New("font has no measurable cap height")

// Font is an editable font.
type Font struct {
	FontName   string                 // PostScript name, e.g. "ComicMono-Bold"
	FamilyName string                 // e.g. "Comic Mono"
	FullName   string                 // e.g. "Comic Mono Bold"
	Weight     string                 // e.g. "Regular", "Bold"
	Version    string                 // without a "Version " prefix
	Copyright  string                 //
	Comment    string                 // written as the font's description
	SFNTNames  map[sfnt.NameID]string // further name records, keyed by name ID
	Metrics    VerticalMetrics
	OS2        OS2Info
	Glyphs     []*Glyph // glyph 0 is '.notdef'
	//
	ItalicAngle        float64 // degrees, counter-clockwise from vertical
	UnderlinePosition  int
	UnderlineThickness int
	//
	Source string // file path the font has been loaded from, if any
}

// OS2Info holds values of table OS/2 which are not part of the vertical metrics.
type OS2Info struct {
	WeightClass uint16
	WidthClass  uint16
	FsType      uint16
	FsSelection uint16
	VendorID    string // 4 characters
	Panose      [10]byte
	XHeight     int
	CapHeight   int
}

// UnitsPerEm returns the em size of f, i.e. the sum of ascent and descent.
func (f *Font) UnitsPerEm() int {
	return f.Metrics.Ascent + f.Metrics.Descent
}

// Glyph returns the glyph mapped from code point r, or nil.
func (f *Font) Glyph(r rune) *Glyph {
	if r == NoCode {
		return nil
	}
	for _, g := range f.Glyphs {
		if g.Code == r {
			return g
		}
		for _, c := range g.AltCodes {
			if c == r {
				return g
			}
		}
	}
	return nil
}

// GlyphByName returns the glyph with name n, or nil.
func (f *Font) GlyphByName(n string) *Glyph {
	for _, g := range f.Glyphs {
		if g.Name == n {
			return g
		}
	}
	return nil
}

// Transform applies m to all glyphs. Vertical metrics are not changed.
func (f *Font) Transform(m outline.Matrix) {
	for _, g := range f.Glyphs {
		g.Transform(m)
	}
	f.OS2.XHeight = int(float64(f.OS2.XHeight)*m.D + 0.5)
	f.OS2.CapHeight = int(float64(f.OS2.CapHeight)*m.D + 0.5)
}

// Scale scales all glyphs uniformly by s.
func (f *Font) Scale(s float64) {
	tracer().Debugf("scaling %d glyphs of %s by %.4f", len(f.Glyphs), f.FontName, s)
	f.Transform(outline.Scale(s, s))
}

// ChangeWeight changes the stem width of all glyphs by stroke font units.
func (f *Font) ChangeWeight(stroke float64, counters CounterType) {
	tracer().Debugf("changing weight of %s by %.1f (%s counters)", f.FontName, stroke, counters)
	for _, g := range f.Glyphs {
		g.ChangeWeight(stroke, counters)
	}
}

// flatCapitals are capital letters with a flat top at cap height.
var flatCapitals = []rune("HIEFLTZKNM")

// CapHeight measures the height of capital letters, as the mean top of the
// flat topped capitals present in f. If f contains none of them, the cap
// height stored in table OS/2 is used.
func (f *Font) CapHeight() (float64, error) {
	sum, n := 0.0, 0
	for _, r := range flatCapitals {
		g := f.Glyph(r)
		if g == nil || len(g.Outline) == 0 {
			continue
		}
		sum += g.Bounds().YMax
		n++
	}
	if n > 0 {
		return sum / float64(n), nil
	}
	if f.OS2.CapHeight > 0 {
		return float64(f.OS2.CapHeight), nil
	}
	return 0, ErrNoCapHeight
}

// IsFixedPitch is true if all glyphs with a non-zero advance have the same
// advance width.
func (f *Font) IsFixedPitch() bool {
	w := 0
	for _, g := range f.Glyphs {
		if g.Width == 0 {
			continue
		}
		if w == 0 {
			w = g.Width
		} else if g.Width != w {
			return false
		}
	}
	return w != 0
}

// --- Loading ---------------------------------------------------------------

// Open loads an OpenType font file (TTF or OTF) into an editable font.
func Open(path string) (*Font, error) {
	sf, err := comicmono.LoadOpenTypeFont(path)
	if err != nil {
		return nil, err
	}
	f, err := FromScalableFont(sf)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	f.Source = path
	return f, nil
}

// FromScalableFont creates an editable font from a loaded font.
func FromScalableFont(sf *comicmono.ScalableFont) (*Font, error) {
	otf, err := ot.Parse(sf.Binary)
	if err != nil {
		return nil, err
	}
	if otf.Head == nil || otf.HMtx == nil {
		return nil, errors.New("font lacks tables head or hmtx")
	}
	for _, issue := range otf.Issues(ot.SeverityWarning) {
		tracer().Debugf("%s: %v", issue.Severity, issue)
	}
	f := &Font{SFNTNames: make(map[sfnt.NameID]string)}
	f.readNames(otf)
	f.readMetrics(otf)
	if err = f.readGlyphs(sf, otf); err != nil {
		return nil, err
	}
	tracer().Infof("loaded font %s with %d glyphs, em=%d", f.FontName, len(f.Glyphs), f.UnitsPerEm())
	return f, nil
}

func (f *Font) readNames(otf *ot.Font) {
	for id, value := range otquery.NamesRange(otf) {
		if _, ok := f.SFNTNames[id]; !ok {
			f.SFNTNames[id] = value
		}
	}
	names := otquery.NameInfo(otf)
	f.FontName = names["postscript"]
	f.FamilyName = names["family"]
	f.FullName = names["full"]
	f.Copyright = names["copyright"]
	f.Comment = names["description"]
	f.Version = strings.TrimSpace(strings.TrimPrefix(names["version"], "Version"))
	if f.FullName == "" {
		f.FullName = f.FamilyName
	}
	if f.FontName == "" {
		f.FontName = strings.ReplaceAll(f.FullName, " ", "")
	}
}

func (f *Font) readMetrics(otf *ot.Font) {
	upem := int(otf.Head.UnitsPerEm)
	m := otquery.FontMetrics(otf)
	vm := VerticalMetrics{
		HHeaAscent:     int(m.Ascent),
		HHeaDescent:    int(m.Descent),
		HHeaLineGap:    int(m.LineGap),
		OS2TypoAscent:  int(m.TypoAscent),
		OS2TypoDescent: int(m.TypoDescent),
		OS2TypoLineGap: int(m.TypoLineGap),
		OS2WinAscent:   int(m.WinAscent),
		OS2WinDescent:  int(m.WinDescent),
	}
	vm.Ascent, vm.Descent = emSquare(upem, vm.HHeaAscent, vm.HHeaDescent)
	f.Metrics = vm
	f.OS2 = OS2Info{WeightClass: 400, WidthClass: 5}
	if os2 := otf.OS2; os2 != nil {
		f.OS2 = OS2Info{
			WeightClass: os2.WeightClass,
			WidthClass:  os2.WidthClass,
			FsType:      os2.FsType,
			FsSelection: os2.FsSelection,
			VendorID:    os2.VendorID.String(),
			Panose:      os2.Panose,
			XHeight:     int(os2.XHeight),
			CapHeight:   int(os2.CapHeight),
		}
	}
	f.Weight = weightName(f.OS2.WeightClass)
	if post := otf.Post; post != nil {
		f.ItalicAngle = float64(post.ItalicAngle) / 65536
		f.UnderlinePosition = int(post.UnderlinePosition)
		f.UnderlineThickness = int(post.UnderlineThickness)
	}
	tracer().Debugf("vertical metrics: %s", vm)
}

func (f *Font) readGlyphs(sf *comicmono.ScalableFont, otf *ot.Font) error {
	var buf sfnt.Buffer
	n := sf.SFNT.NumGlyphs()
	upem := int(otf.Head.UnitsPerEm)
	cff := otf.Header.IsCFF()
	codes := otf.CMap.CodePoints()
	names := glyphNames(sf, n)
	f.Glyphs = make([]*Glyph, n)
	for gid := 0; gid < n; gid++ {
		g := &Glyph{Name: names[gid], Code: NoCode}
		if cps := codes[ot.GlyphIndex(gid)]; len(cps) > 0 {
			g.Code, g.AltCodes = cps[0], cps[1:]
		}
		if aw, _, ok := otf.HMtx.HMetrics(ot.GlyphIndex(gid)); ok {
			g.Width = int(aw)
		}
		segs, err := sf.SFNT.LoadGlyph(&buf, sfnt.GlyphIndex(gid), fixed.I(upem), nil)
		if err != nil {
			return fmt.Errorf("glyph %s: %w", g.Name, err)
		}
		g.Outline = outline.FromSegments(segs, outline.DefaultTolerance)
		if cff {
			g.Outline = g.Outline.Reverse()
		}
		f.Glyphs[gid] = g
	}
	return nil
}

// glyphNames returns the names of the first n glyphs of sf. Package sfnt
// reads names from table post only, while fonts with CFF outlines usually
// keep them in the CFF charset. These are read with go-text.
// Glyphs without a name are called "glyph<ID>".
func glyphNames(sf *comicmono.ScalableFont, n int) []string {
	var buf sfnt.Buffer
	names := make([]string, n)
	missing := 0
	for gid := range n {
		if name, err := sf.SFNT.GlyphName(&buf, sfnt.GlyphIndex(gid)); err == nil {
			names[gid] = name
		}
		if names[gid] == "" {
			missing++
		}
	}
	if missing > 0 {
		tracer().Debugf("%d glyphs without a name in table post", missing)
		if face, err := font.ParseTTF(bytes.NewReader(sf.Binary)); err != nil {
			tracer().Errorf("cannot read glyph names: %v", err)
		} else {
			for gid, name := range names {
				if name == "" {
					names[gid] = face.GlyphName(font.GID(gid))
				}
			}
		}
	}
	for gid, name := range names {
		if name == "" {
			names[gid] = fmt.Sprintf("glyph%d", gid)
		}
	}
	return names
}

// weightName maps an OS/2 weight class to a weight name.
func weightName(class uint16) string {
	switch {
	case class == 0:
		return "Regular"
	case class <= 150:
		return "Thin"
	case class <= 250:
		return "ExtraLight"
	case class <= 350:
		return "Light"
	case class <= 450:
		return "Regular"
	case class <= 550:
		return "Medium"
	case class <= 650:
		return "SemiBold"
	case class <= 750:
		return "Bold"
	case class <= 850:
		return "ExtraBold"
	}
	return "Black"
}
