package build

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	td "github.com/go-text/typesetting-utils/harfbuzz"
	"github.com/npillmayer/comicmono"
	"github.com/npillmayer/comicmono/fontedit"
	"github.com/npillmayer/comicmono/ot"
	"github.com/npillmayer/comicmono/outline"
	"github.com/npillmayer/comicmono/ucd"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func loadFont(t *testing.T, b []byte) *fontedit.Font {
	t.Helper()
	sf, err := comicmono.ParseOpenTypeFont(b)
	require.NoError(t, err)
	f, err := fontedit.FromScalableFont(sf)
	require.NoError(t, err)
	return f
}

func bar(x0, x1 float64) outline.Contours {
	return outline.Contours{{
		{Point: outline.Pt(x0, 0), On: true},
		{Point: outline.Pt(x0, 700), On: true},
		{Point: outline.Pt(x1, 700), On: true},
		{Point: outline.Pt(x1, 0), On: true},
	}}
}

func assertAdopted(t *testing.T, ref, got fontedit.VerticalMetrics) {
	t.Helper()
	want, have := ref.Fields(), got.Fields()
	for _, name := range fontedit.AdoptedFieldNames {
		assert.Equal(t, want[name], have[name], "metric %s", name)
	}
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 5, floorDiv(10, 2))
	assert.Equal(t, 4, floorDiv(9, 2))
	assert.Equal(t, -5, floorDiv(-9, 2))
	assert.Equal(t, -5, floorDiv(-10, 2))
	assert.Equal(t, 0, floorDiv(0, 2))
	assert.Equal(t, -1, floorDiv(-1, 2))
}

func TestBearingSplit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comicmono.build")
	defer teardown()
	//
	f := &fontedit.Font{Glyphs: []*fontedit.Glyph{
		{Name: "a500", Code: 'a', Width: 500, Outline: bar(50, 450)},
		{Name: "b501", Code: 'b', Width: 501, Outline: bar(50, 450)},
		{Name: "c519", Code: 'c', Width: 519, Outline: bar(50, 450)},
		{Name: "acutecomb", Code: 0x0301, Width: 300, Outline: bar(-250, -50)},
		{Name: "zero", Code: 0x200B, Width: 0},
		{Name: "d510", Code: 'd', Width: 510, Outline: bar(60, 450)},
		{Name: "space", Code: ' ', Width: 480},
	}}
	rep := NormalizeWidths(f, 510)
	assert.Equal(t, WidthReport{Adjusted: 4, Unchanged: 1, SkippedMarks: 1, SkippedEmpty: 1}, rep)
	split := []struct {
		lsb, rsb float64
	}{
		{55, 55}, // 500: +5/+5
		{54, 56}, // 501: +4/+5
		{45, 65}, // 519: -5/-4
	}
	for i, exp := range split {
		g := f.Glyphs[i]
		assert.Equal(t, 510, g.Width, "glyph %s", g.Name)
		assert.InDelta(t, exp.lsb, g.LSB(), 1e-9, "LSB of glyph %s", g.Name)
		assert.InDelta(t, exp.rsb, g.RSB(), 1e-9, "RSB of glyph %s", g.Name)
	}
	assert.Equal(t, 300, f.Glyphs[3].Width, "marks keep their width")
	assert.Equal(t, 0, f.Glyphs[4].Width)
	assert.Equal(t, 60.0, f.Glyphs[5].LSB())
	assert.Equal(t, 510, f.Glyphs[6].Width)
	//
	again := NormalizeWidths(f, 510)
	assert.Equal(t, 0, again.Adjusted, "normalization must be idempotent")
	assert.Equal(t, 5, again.Unchanged)
}

func TestNormalizeGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comicmono.build")
	defer teardown()
	//
	f := loadFont(t, goregular.TTF)
	orig := make([]int, len(f.Glyphs))
	for i, g := range f.Glyphs {
		orig[i] = g.Width
	}
	NormalizeWidths(f, 510)
	for i, g := range f.Glyphs {
		switch {
		case orig[i] <= 0 || ucd.IsMark(g.Code):
			assert.Equal(t, orig[i], g.Width, "glyph %s must be skipped", g.Name)
		default:
			assert.Equal(t, 510, g.Width, "glyph %s", g.Name)
		}
	}
}

func TestAdjustVerticalMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comicmono.build")
	defer teardown()
	//
	src, ref := loadFont(t, goregular.TTF), loadFont(t, gomono.TTF)
	src.Metrics.OS2TypoLineGap = ref.Metrics.OS2TypoLineGap + 123
	lineGap := src.Metrics.OS2TypoLineGap
	srcCap, err := src.CapHeight()
	require.NoError(t, err)
	refCap, err := ref.CapHeight()
	require.NoError(t, err)
	scale, err := AdjustVerticalMetrics(src, ref, 0.875)
	require.NoError(t, err)
	assert.InDelta(t, refCap/srcCap, scale, 1e-9)
	assertAdopted(t, ref.Metrics, src.Metrics)
	assert.Equal(t, lineGap, src.Metrics.OS2TypoLineGap, "typo line gap is not adopted")
	assert.Equal(t, ref.UnitsPerEm(), src.UnitsPerEm(), "em size follows the metrics")
	capHeight, err := src.CapHeight()
	require.NoError(t, err)
	assert.InDelta(t, refCap*0.875, capHeight, 1e-6)
	//
	empty := &fontedit.Font{FontName: "empty"}
	_, err = AdjustVerticalMetrics(empty, ref, 0.875)
	assert.ErrorIs(t, err, ErrNoCapHeight)
}

func TestRelabel(t *testing.T) {
	f := loadFont(t, goregular.TTF)
	require.NotEmpty(t, f.SFNTNames)
	cfg := DefaultConfig()
	Relabel(f, cfg.Regular)
	assert.Empty(t, f.SFNTNames)
	assert.Equal(t, "Comic Mono", f.FamilyName)
	assert.Equal(t, "ComicMono", f.FontName)
	assert.Equal(t, "Comic Mono", f.FullName)
	assert.Equal(t, "0.1.1", f.Version)
	assert.Equal(t, cfg.Regular.Comment, f.Comment)
	assert.Equal(t, cfg.Regular.Copyright, f.Copyright)
	//
	h := f.Glyph('H')
	area := math.Abs(h.Outline.Area())
	SynthesizeBold(f, cfg.Bold, cfg.BoldStroke)
	assert.Equal(t, "ComicMono-Bold", f.FontName)
	assert.Equal(t, "Comic Mono Bold", f.FullName)
	assert.Equal(t, "Bold", f.Weight)
	assert.Equal(t, "Comic Mono", f.FamilyName)
	assert.Greater(t, math.Abs(h.Outline.Area()), area)
}

func TestConfigFrom(t *testing.T) {
	c, err := ConfigFrom(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
	assert.Equal(t, filepath.Join("vendor", "comic-shanns.otf"), c.Source)
	assert.Equal(t, 510, c.Width)
	assert.Equal(t, 0.875, c.Cosmetic)
	assert.Equal(t, 32.0, c.BoldStroke)
	//
	c, err = ConfigFrom(testconfig.Conf{
		KeyVendor: "/fonts",
		KeyOutDir: "/tmp/out",
		KeyWidth:  "600",
		KeyScale:  "0.9",
		KeyVerify: "true",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/fonts", "Cousine-Regular.ttf"), c.Reference)
	assert.Equal(t, "/tmp/out", c.OutDir)
	assert.Equal(t, 600, c.Width)
	assert.Equal(t, 0.9, c.Cosmetic)
	assert.True(t, c.Verify)
	//
	_, err = ConfigFrom(testconfig.Conf{KeyWidth: "wide"})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comicmono.build")
	defer teardown()
	//
	vendor, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(vendor, "comic-shanns.otf"), goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(vendor, "Cousine-Regular.ttf"), gomono.TTF, 0o644))
	cfg, err := ConfigFrom(testconfig.Conf{
		KeyVendor: vendor,
		KeyOutDir: out,
		KeyVerify: "true",
	})
	require.NoError(t, err)
	rep, err := Run(cfg)
	require.NoError(t, err)
	require.Len(t, rep.Outputs, 2)
	assert.Greater(t, rep.Widths.Adjusted, 0)
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "exactly two fonts are written")
	//
	regular, err := fontedit.Open(filepath.Join(out, RegularFile))
	require.NoError(t, err)
	bold, err := fontedit.Open(filepath.Join(out, BoldFile))
	require.NoError(t, err)
	assert.Equal(t, "ComicMono", regular.FontName)
	assert.Equal(t, "Comic Mono", regular.FullName)
	assert.Equal(t, "Comic Mono", regular.FamilyName)
	assert.Equal(t, "0.1.1", regular.Version)
	assert.Equal(t, "ComicMono-Bold", bold.FontName)
	assert.Equal(t, "Bold", bold.Weight)
	ref := loadFont(t, gomono.TTF)
	assertAdopted(t, ref.Metrics, regular.Metrics)
	h := regular.Glyph('H')
	require.NotNil(t, h)
	for _, g := range regular.Glyphs {
		if g.Width > 0 && !ucd.IsMark(g.Code) {
			assert.Equal(t, h.Width, g.Width, "glyph %s", g.Name)
		}
	}
	assert.NoError(t, Verify(filepath.Join(out, RegularFile), filepath.Join(out, BoldFile)))
}

func TestRunCFFSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comicmono.build")
	defer teardown()
	//
	otf, err := td.Files.ReadFile("fonts/SourceSansPro-Regular.otf")
	require.NoError(t, err)
	vendor, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(vendor, "comic-shanns.otf"), otf, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(vendor, "Cousine-Regular.ttf"), gomono.TTF, 0o644))
	cfg, err := ConfigFrom(testconfig.Conf{
		KeyVendor: vendor,
		KeyOutDir: out,
		KeyVerify: "true",
	})
	require.NoError(t, err)
	rep, err := Run(cfg)
	require.NoError(t, err)
	assert.Greater(t, rep.Widths.Adjusted, 0)
	assert.Greater(t, rep.CapScale, 1.0, "CFF source has a smaller em than the reference")
	//
	src := loadFont(t, otf)
	regular, err := fontedit.Open(filepath.Join(out, RegularFile))
	require.NoError(t, err)
	require.Len(t, regular.Glyphs, len(src.Glyphs))
	for i, g := range regular.Glyphs {
		assert.Equal(t, src.Glyphs[i].Name, g.Name, "glyph names survive the conversion")
	}
	h := regular.Glyph('H')
	require.NotNil(t, h)
	for _, r := range "AHOgx" {
		g := regular.Glyph(r)
		require.NotNil(t, g, "glyph for %q", r)
		assert.Equal(t, string(r), g.Name)
		assert.Equal(t, outline.OrientationTrueType, g.Outline.Orientation(), "glyph %s", g.Name)
		assert.Equal(t, h.Width, g.Width)
	}
	assertAdopted(t, loadFont(t, gomono.TTF).Metrics, regular.Metrics)
	assert.Equal(t, src.Metrics.OS2TypoLineGap, regular.Metrics.OS2TypoLineGap)
}

func TestRunMissingInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = filepath.Join(t.TempDir(), "missing.otf")
	_, err := Run(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.otf")
}

func TestVerifyRejectsBrokenFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "comicmono.build")
	defer teardown()
	//
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ttf")
	require.NoError(t, os.WriteFile(good, goregular.TTF, 0o644))
	broken := filepath.Join(dir, "broken.ttf")
	require.NoError(t, os.WriteFile(broken, []byte("this is not a font file"), 0o644))
	err := Verify(good, broken)
	assert.ErrorIs(t, err, ot.ErrNotSFNT)
	empty := filepath.Join(dir, "empty.ttf")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	assert.ErrorIs(t, Verify(good, empty), ErrEmptyFont)
}
