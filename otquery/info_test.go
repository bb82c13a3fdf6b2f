package otquery

import (
	"testing"

	"github.com/npillmayer/comicmono/ot"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	otf  *ot.Font
	mono *ot.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.opentype").SetTraceLevel(tracing.LevelError)
	env.otf = loadGoFont(env.T(), goregular.TTF)
	env.mono = loadGoFont(env.T(), gomono.TTF)
	tracing.Select("font.opentype").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	fti := FontType(env.otf)
	env.Equal("TrueType", fti, "expected font type of test font to be TrueType")
	env.Equal("", FontType(nil))
}

func (env *InfoTestEnviron) TestGeneralInfo() {
	info := NameInfo(env.otf)
	env.T().Logf("info = %v", info)
	fam, ok := info["family"]
	env.Require().True(ok, "font familiy identifier not found in font info")
	env.Equal("Go", fam, "expected font family name 'Go'")
	env.Contains(info["full"], "Go", "expected full name to contain family")
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'head'")

	headTable, isHead := env.otf.Table(ot.T("head")).(*ot.HeadTable)
	env.Require().True(isHead, "expected parsed HeadTable")

	env.Equal(headTable.Flags, h.Flags, "expected matching Flags")
	env.Equal(headTable.UnitsPerEm, h.UnitsPerEm, "expected matching UnitsPerEm")
	env.Equal(int16(headTable.IndexToLocFormat), h.IndexToLocFormat, "expected matching IndexToLocFormat")
	env.Equal(uint32(HeadMagicNumber), h.MagicNumber, "expected OpenType head magic number")
	env.False(h.IsBold(), "Go Regular is not bold")
	env.NotEmpty(h.Revision())
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'maxp'")

	maxpTable, isMaxP := env.otf.Table(ot.T("maxp")).(*ot.MaxPTable)
	env.Require().True(isMaxP, "expected parsed MaxPTable")

	env.Equal(uint16(maxpTable.NumGlyphs), m.NumGlyphs, "expected matching numGlyphs")
	env.NotZero(m.VersionFixed, "expected maxp version to be set")
	env.True(m.HasExtendedProfile, "TrueType fonts carry maxp version 1.0")
	env.NotZero(m.MaxPoints)
}

func (env *InfoTestEnviron) TestTableTags() {
	tags := TableTags(env.otf)
	env.T().Logf("test font tables: %v", tags)
	for _, reqt := range []string{"cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "name", "post"} {
		env.Contains(tags, reqt, "expected test font to contain required table %s", reqt)
	}
}

func (env *InfoTestEnviron) TestReverseLookup() {
	g := GlyphIndex(env.otf, 'A')
	env.NotZero(g)
	r := CodePointForGlyph(env.otf, g)
	env.Equal('A', r, "expected code-point to be %#U, is %#U", 'A', r)
	env.Equal(rune(0), CodePointForGlyph(env.otf, 0))
}

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.otf)
	env.Equal(env.otf.UnitsPerEm(), int(m.UnitsPerEm))
	env.Positive(int(m.Ascent))
	env.Negative(int(m.Descent))
	env.Positive(int(m.WinAscent))
}

func (env *InfoTestEnviron) TestGlyphMetrics() {
	g := GlyphIndex(env.otf, 'H')
	gm := GlyphMetrics(env.otf, g)
	env.Positive(int(gm.Advance))
	env.False(gm.BBox.IsEmpty(), "'H' has ink")
	env.Equal(gm.LSB, gm.BBox.MinX, "TrueType fonts keep lsb == xMin")
	env.Equal(gm.Advance-gm.BBox.MaxX, gm.RSB)
	env.Positive(gm.Contours)
	space := GlyphMetrics(env.otf, GlyphIndex(env.otf, ' '))
	env.True(space.BBox.IsEmpty(), "space has no ink")
	env.Zero(int(space.RSB))
}

func (env *InfoTestEnviron) TestFixedPitch() {
	env.False(IsFixedPitch(env.otf), "Go Regular is proportional")
	env.True(IsFixedPitch(env.mono), "Go Mono is monospaced")
}

// --- Helpers ----------------------------------------------------------

func loadGoFont(t *testing.T, data []byte) *ot.Font {
	otf, err := ot.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	return otf
}

func TestDecodeName(t *testing.T) {
	tests := []struct {
		rec  ot.NameRecord
		want string
		ok   bool
	}{
		{ot.NameRecord{PlatformID: PlatformWindows, EncodingID: 1, Value: []byte{0, 'G', 0, 'o'}}, "Go", true},
		{ot.NameRecord{PlatformID: PlatformUnicode, EncodingID: 3, Value: []byte{0, 'G', 0, 'o'}}, "Go", true},
		{ot.NameRecord{PlatformID: PlatformMacintosh, Value: []byte{'C', 0x8a}}, "Cä", true},
		{ot.NameRecord{PlatformID: PlatformWindows, EncodingID: 2, Value: []byte{0x82, 0xa0}}, "", false},
		{ot.NameRecord{PlatformID: PlatformWindows, EncodingID: 1}, "", false},
	}
	for i, tt := range tests {
		s, ok := decodeName(tt.rec)
		if s != tt.want || ok != tt.ok {
			t.Errorf("record %d: decoded to (%q, %v), want (%q, %v)", i, s, ok, tt.want, tt.ok)
		}
	}
}
