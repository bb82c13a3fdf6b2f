package ttf

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/comicmono"
	"github.com/npillmayer/comicmono/fontedit"
	"github.com/npillmayer/comicmono/ot"
	"github.com/npillmayer/comicmono/otquery"
	"github.com/npillmayer/comicmono/outline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func loadFont(t *testing.T, b []byte) *fontedit.Font {
	t.Helper()
	sf, err := comicmono.ParseOpenTypeFont(b)
	require.NoError(t, err)
	f, err := fontedit.FromScalableFont(sf)
	require.NoError(t, err)
	return f
}

func TestRoundTripOwnReader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ttf")
	defer teardown()
	//
	f := loadFont(t, goregular.TTF)
	b, err := Encode(f)
	require.NoError(t, err)
	otf, err := ot.Parse(b)
	require.NoError(t, err)
	assert.Empty(t, otf.Issues(ot.SeverityMajor))
	assert.Equal(t, len(f.Glyphs), otf.NumGlyphs())
	assert.Equal(t, f.UnitsPerEm(), int(otf.Head.UnitsPerEm))
	for gid, g := range f.Glyphs {
		aw, lsb, ok := otf.HMtx.HMetrics(ot.GlyphIndex(gid))
		require.True(t, ok)
		assert.Equal(t, g.Width, int(aw), "advance of glyph %s", g.Name)
		if len(g.Outline) > 0 {
			gm := otquery.GlyphMetrics(otf, ot.GlyphIndex(gid))
			assert.Equal(t, int(gm.BBox.MinX), int(lsb), "lsb of glyph %s", g.Name)
		}
		for _, r := range g.Codes() {
			assert.Equal(t, ot.GlyphIndex(gid), otf.CMap.Lookup(r), "code point %U", r)
		}
	}
	names := otquery.NameInfo(otf)
	assert.Equal(t, f.FamilyName, names["family"])
	assert.Equal(t, f.FullName, names["full"])
	assert.Equal(t, f.FontName, names["postscript"])
	assert.Equal(t, "Version "+f.Version, names["version"])
	head, ok := otquery.HeadInfo(otf)
	require.True(t, ok)
	assert.Equal(t, uint32(otquery.HeadMagicNumber), head.MagicNumber)
	assert.False(t, head.IsBold())
	m := otquery.FontMetrics(otf)
	asc, desc := f.Metrics.HHea()
	assert.Equal(t, asc, int(m.Ascent))
	assert.Equal(t, desc, int(m.Descent))
	winAsc, _ := f.Metrics.Win()
	_, typoDesc := f.Metrics.Typo()
	assert.Equal(t, winAsc, int(m.WinAscent))
	assert.Equal(t, typoDesc, int(m.TypoDescent))
	assert.Greater(t, int(m.CapHeight), 0)
}

func TestChecksums(t *testing.T) {
	b, err := Encode(loadFont(t, gomono.TTF))
	require.NoError(t, err)
	assert.Equal(t, uint32(0xB1B0AFBA), checksum(b), "checksum of the whole font")
	otf, err := ot.Parse(b)
	require.NoError(t, err)
	assert.True(t, otquery.IsFixedPitch(otf))
	require.NotNil(t, otf.Post)
	assert.True(t, otf.Post.IsFixedPitch)
}

func TestRoundTripSFNT(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ttf")
	defer teardown()
	//
	f := loadFont(t, goregular.TTF)
	b, err := Encode(f)
	require.NoError(t, err)
	sf, err := comicmono.ParseOpenTypeFont(b)
	require.NoError(t, err)
	assert.Equal(t, f.FullName, sf.Fontname)
	g, err := fontedit.FromScalableFont(sf)
	require.NoError(t, err)
	require.Equal(t, len(f.Glyphs), len(g.Glyphs))
	for i, orig := range f.Glyphs {
		again := g.Glyphs[i]
		assert.Equal(t, orig.Name, again.Name)
		assert.Equal(t, orig.Width, again.Width)
		assert.Equal(t, orig.Codes(), again.Codes())
		if len(orig.Outline) == 0 {
			assert.Empty(t, again.Outline)
			continue
		}
		ob, ab := orig.Bounds(), again.Bounds()
		assert.InDelta(t, ob.XMin, ab.XMin, 1, "glyph %s", orig.Name)
		assert.InDelta(t, ob.YMax, ab.YMax, 1, "glyph %s", orig.Name)
		assert.Equal(t, orig.Outline.Orientation(), again.Outline.Orientation(),
			"glyph %s keeps its contour direction", orig.Name)
	}
	var buf sfnt.Buffer
	name, err := sf.SFNT.Name(&buf, sfnt.NameIDSubfamily)
	require.NoError(t, err)
	assert.Equal(t, "Regular", name)
}

func TestRoundTripGoText(t *testing.T) {
	f := loadFont(t, gomono.TTF)
	b, err := Encode(f)
	require.NoError(t, err)
	face, err := font.ParseTTF(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, f.UnitsPerEm(), int(face.Upem()))
	for _, r := range "Hello, World! 0123" {
		g := f.Glyph(r)
		require.NotNil(t, g)
		gid, ok := face.NominalGlyph(r)
		require.True(t, ok, "code point %q", r)
		assert.Equal(t, float32(g.Width), face.HorizontalAdvance(gid))
	}
}

func square(x0, y0, x1, y1 float64) outline.Contours {
	return outline.Contours{{
		{Point: outline.Pt(x0, y0), On: true},
		{Point: outline.Pt(x0, y1), On: true},
		{Point: outline.Pt(x1, y1), On: true},
		{Point: outline.Pt(x1, y0), On: true},
	}}
}

func syntheticFont() *fontedit.Font {
	return &fontedit.Font{
		FontName:   "Synthetic-Bold",
		FamilyName: "Synthetic",
		FullName:   "Synthetic Bold",
		Weight:     "Bold",
		Version:    "0.1.1",
		Comment:    "test font",
		Metrics: fontedit.VerticalMetrics{
			Ascent: 800, Descent: 200,
			HHeaAscent: 900, HHeaDescent: -250,
			OS2TypoAscent: 800, OS2TypoDescent: -200, OS2TypoLineGap: 100,
			OS2WinAscent: 900, OS2WinDescent: 250,
		},
		Glyphs: []*fontedit.Glyph{
			{Name: ".notdef", Code: fontedit.NoCode, Width: 500, Outline: square(50, 0, 450, 700)},
			{Name: "space", Code: ' ', AltCodes: []rune{0xA0}, Width: 500},
			{Name: "A", Code: 'A', Width: 500, Outline: square(20.4, 0, 479.6, 700)},
			{Name: "B", Code: 'B', Width: 500, Outline: square(40, 0, 460, 700)},
			{Name: "uni1F600", Code: 0x1F600, Width: 500, Outline: square(10, -100, 490, 600)},
		},
	}
}

func TestSyntheticFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.ttf")
	defer teardown()
	//
	f := syntheticFont()
	b, err := Encode(f)
	require.NoError(t, err)
	otf, err := ot.Parse(b)
	require.NoError(t, err)
	assert.Equal(t, ot.GlyphIndex(4), otf.CMap.Lookup(0x1F600), "format 12 subtable")
	assert.Equal(t, ot.GlyphIndex(1), otf.CMap.Lookup(0xA0))
	assert.Equal(t, ot.GlyphIndex(0), otf.CMap.Lookup('C'))
	head, ok := otquery.HeadInfo(otf)
	require.True(t, ok)
	assert.True(t, head.IsBold())
	assert.Equal(t, "0.100", head.Revision())
	assert.Equal(t, int16(10), head.XMin)
	assert.Equal(t, int16(-100), head.YMin)
	gm := otquery.GlyphMetrics(otf, 2)
	assert.Equal(t, 20, int(gm.BBox.MinX), "coordinates are rounded")
	assert.Equal(t, 480, int(gm.BBox.MaxX))
	assert.Equal(t, 1, gm.Contours)
	require.NotNil(t, otf.OS2)
	assert.Equal(t, uint16(0x20), otf.OS2.FsSelection&0x61)
	assert.Equal(t, 1, int(otf.HHea.NumberOfHMetrics), "monospaced hmtx is compressed")
	assert.Equal(t, 900, int(otf.HHea.Ascender))
	names := otquery.NameInfo(otf)
	assert.Equal(t, "Bold", names["subfamily"])
	assert.Equal(t, "Synthetic Bold: 0.1.1", names["unique"])
	assert.Equal(t, "test font", names["description"])
	//
	sf, err := sfnt.Parse(b)
	require.NoError(t, err)
	var buf sfnt.Buffer
	gname, err := sf.GlyphName(&buf, 4)
	require.NoError(t, err)
	assert.Equal(t, "uni1F600", gname)
	gname, err = sf.GlyphName(&buf, 2)
	require.NoError(t, err)
	assert.Equal(t, "A", gname)
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(&fontedit.Font{Metrics: fontedit.VerticalMetrics{Ascent: 800, Descent: 200}})
	assert.ErrorIs(t, err, ErrEmptyFont)
	//
	f := syntheticFont()
	f.Metrics.Ascent = 5
	f.Metrics.Descent = 5
	_, err = Encode(f)
	assert.Error(t, err)
	//
	f = syntheticFont()
	f.Glyphs[2].Outline = square(0, 0, 40000, 100)
	_, err = Encode(f)
	assert.Error(t, err)
	//
	f = syntheticFont()
	f.Glyphs[3].Width = -1
	_, err = Encode(f)
	assert.Error(t, err)
}

func TestPointEncoding(t *testing.T) {
	flags := compressFlags([]byte{1, 1, 1, 1, 0x37, 0x37})
	assert.Equal(t, []byte{1 | flagRepeat, 3, 0x37, 0x37}, flags)
	long := make([]byte, 300)
	flags = compressFlags(long)
	assert.Equal(t, []byte{flagRepeat, 255, flagRepeat, 43}, flags)
	//
	fl, xs, ys := encodePoints([]gpoint{{0, 0, true}, {100, 0, true}, {100, -300, false}})
	assert.Equal(t, []byte{flagOnCurve | flagXSame | flagYSame, flagOnCurve | flagXShort | flagXSame | flagYSame, flagXSame}, fl)
	assert.Equal(t, []byte{100}, []byte(xs))
	assert.Equal(t, []byte{0xFE, 0xD4}, []byte(ys))
}

func TestSearchParams(t *testing.T) {
	sr, sel, shift := searchParams(10, 16)
	assert.Equal(t, uint16(128), sr)
	assert.Equal(t, uint16(3), sel)
	assert.Equal(t, uint16(32), shift)
	assert.Equal(t, int32(1<<16), fontRevision("1.0"))
	assert.Equal(t, int32(math.Round(0.1*65536)), fontRevision("0.1.1"))
	assert.Equal(t, int32(1<<16), fontRevision("beta"))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synthetic.ttf")
	require.NoError(t, WriteFile(syntheticFont(), path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	_, err = fontedit.Open(path)
	assert.NoError(t, err)
}
