package build

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/comicmono/fontedit"
	"github.com/npillmayer/comicmono/ot"
	"github.com/npillmayer/comicmono/ttf"
)

var (
	// ErrNoCapHeight is returned if the cap height of an input font cannot be
	// determined.
	ErrNoCapHeight = fontedit.ErrNoCapHeight
	// ErrEmptyFont is returned for fonts without glyphs.
	ErrEmptyFont = ttf.ErrEmptyFont
)

// Report summarizes a build.
type Report struct {
	Widths   WidthReport
	CapScale float64  // scale factor matching the cap heights
	Outputs  []string // paths of the generated fonts
}

// LoadInputs opens the source and the reference font.
func LoadInputs(cfg Config) (src, ref *fontedit.Font, err error) {
	if src, err = fontedit.Open(cfg.Source); err != nil {
		return nil, nil, err
	}
	if len(src.Glyphs) == 0 {
		return nil, nil, fmt.Errorf("font %s: %w", cfg.Source, ErrEmptyFont)
	}
	if ref, err = fontedit.Open(cfg.Reference); err != nil {
		return nil, nil, err
	}
	return src, ref, nil
}

// Emit writes f as a TrueType font to path.
func Emit(f *fontedit.Font, path string) error {
	if err := ttf.WriteFile(f, path); err != nil {
		return err
	}
	tracer().Infof("wrote %s (%s)", path, f.FullName)
	return nil
}

// Run builds the regular and the bold font. The first error aborts the
// build; files written up to then are left in place.
func Run(cfg Config) (*Report, error) {
	src, ref, err := LoadInputs(cfg)
	if err != nil {
		return nil, err
	}
	rep := &Report{}
	rep.Widths = NormalizeWidths(src, cfg.Width)
	if rep.CapScale, err = AdjustVerticalMetrics(src, ref, cfg.Cosmetic); err != nil {
		return rep, err
	}
	Relabel(src, cfg.Regular)
	regular := filepath.Join(cfg.OutDir, RegularFile)
	if err = Emit(src, regular); err != nil {
		return rep, err
	}
	rep.Outputs = append(rep.Outputs, regular)
	SynthesizeBold(src, cfg.Bold, cfg.BoldStroke)
	bold := filepath.Join(cfg.OutDir, BoldFile)
	if err = Emit(src, bold); err != nil {
		return rep, err
	}
	rep.Outputs = append(rep.Outputs, bold)
	if cfg.Verify {
		if err = Verify(regular, bold); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// stemGlyphs have at least two stems. Glyphs with a single stem, like 'I',
// keep their ink when counters are squished.
const stemGlyphs = "HNmn"

// Verify checks a pair of generated fonts. Both must parse without major
// issues, with our own reader and with go-text. They must map the same
// characters with the same advances, and the bold variant must have more
// ink than the regular one.
func Verify(regularPath, boldPath string) error {
	regular, err := verifyFile(regularPath)
	if err != nil {
		return err
	}
	bold, err := verifyFile(boldPath)
	if err != nil {
		return err
	}
	if len(regular.Glyphs) != len(bold.Glyphs) {
		return fmt.Errorf("glyph count differs: %d vs. %d", len(regular.Glyphs), len(bold.Glyphs))
	}
	for i, g := range regular.Glyphs {
		b := bold.Glyphs[i]
		if g.Width != b.Width || !slices.Equal(g.Codes(), b.Codes()) {
			return fmt.Errorf("glyph %s differs between regular and bold", g.Name)
		}
	}
	checked := 0
	for _, r := range stemGlyphs {
		g, b := regular.Glyph(r), bold.Glyph(r)
		if g == nil || b == nil || len(g.Outline) == 0 {
			continue
		}
		checked++
		if math.Abs(b.Outline.Area()) <= math.Abs(g.Outline.Area()) {
			return fmt.Errorf("glyph %q of %s is not bolder than regular", r, boldPath)
		}
	}
	tracer().Infof("verified %s and %s, %d stem glyphs", regularPath, boldPath, checked)
	return nil
}

func verifyFile(path string) (*fontedit.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("font %s: %w", path, ErrEmptyFont)
	}
	otf, err := ot.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	if issues := otf.Issues(ot.SeverityMajor); len(issues) > 0 {
		return nil, fmt.Errorf("font %s: %w", path, issues[0])
	}
	f, err := fontedit.Open(path)
	if err != nil {
		return nil, err
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font %s: go-text: %w", path, err)
	}
	if int(face.Upem()) != f.UnitsPerEm() {
		return nil, fmt.Errorf("font %s: units per em %d vs. %d", path, face.Upem(), f.UnitsPerEm())
	}
	for _, g := range f.Glyphs {
		for _, r := range g.Codes() {
			gid, ok := face.NominalGlyph(r)
			if !ok {
				return nil, fmt.Errorf("font %s: %U not mapped", path, r)
			}
			if adv := face.HorizontalAdvance(gid); int(adv) != g.Width {
				return nil, fmt.Errorf("font %s: advance of %U is %v, expected %d", path, r, adv, g.Width)
			}
		}
	}
	return f, nil
}
