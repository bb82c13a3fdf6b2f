package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/comicmono/fontedit"
	"github.com/npillmayer/comicmono/otquery"
	"github.com/npillmayer/comicmono/ucd"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/pterm/pterm"
)

// parseCodePoint accepts a single character or a code point in notation
// U+XXXX.
func parseCodePoint(arg string) (rune, error) {
	if arg == "" {
		return 0, errors.New("glyph requires a character argument")
	}
	if len(arg) > 2 && strings.EqualFold(arg[:2], "U+") {
		n, err := strconv.ParseUint(arg[2:], 16, 32)
		if err != nil || !ucd.IsCodePoint(rune(n)) {
			return 0, fmt.Errorf("not a code point: %s", arg)
		}
		return rune(n), nil
	}
	r, size := utf8.DecodeRuneInString(arg)
	if r == utf8.RuneError || size != len(arg) {
		return 0, fmt.Errorf("expected a single character: %q", arg)
	}
	return r, nil
}

// cellWidth is the number of terminal cells text occupies, summed over its
// grapheme clusters.
func cellWidth(text string) int {
	grapheme.SetupGraphemeClasses()
	splitter := segment.NewSegmenter(grapheme.NewBreaker(1))
	splitter.Init(strings.NewReader(text))
	w := 0
	for splitter.Next() {
		w += uax11.Width(splitter.Bytes(), uax11.LatinContext)
	}
	return w
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	r, err := parseCodePoint(op.arg)
	if err != nil {
		return err, false
	}
	data, err := glyphRows(intp, r)
	if err != nil {
		return err, false
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// glyphRows compares the editable model of the glyph for r with the raw
// table values.
func glyphRows(intp *Intp, r rune) ([][]string, error) {
	g := intp.font.Glyph(r)
	if g == nil {
		return nil, fmt.Errorf("no glyph for %U", r)
	}
	gid := otquery.GlyphIndex(intp.otf, r)
	m := otquery.GlyphMetrics(intp.otf, gid)
	box := g.Bounds()
	data := [][]string{
		{"Property", "Value"},
		{"code point", fmt.Sprintf("%U %s", r, ucd.Category(r))},
		{"glyph", fmt.Sprintf("%d %s", gid, g.Name)},
		{"advance", fmt.Sprintf("%d (hmtx %d)", g.Width, m.Advance)},
		{"side bearings", fmt.Sprintf("%.1f / %.1f", g.LSB(), g.RSB())},
		{"contours", fmt.Sprintf("%d, %d points", len(g.Outline), g.Outline.NumPoints())},
		{"terminal cells", strconv.Itoa(cellWidth(string(r)))},
	}
	if !box.Empty() {
		data = append(data, []string{"bounds", fmt.Sprintf("(%.0f,%.0f)-(%.0f,%.0f)",
			box.XMin, box.YMin, box.XMax, box.YMax)})
	}
	return data, nil
}

// cellsOp compares the terminal width of a text with its advance in the font.
func cellsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	if op.noArg() {
		return errors.New("cells requires a text argument"), false
	}
	advance := 0
	for _, r := range op.arg {
		g := intp.font.Glyph(r)
		if g == nil && len(intp.font.Glyphs) > 0 {
			g = intp.font.Glyphs[0] // .notdef
		}
		if g != nil {
			advance += g.Width
		}
	}
	pterm.Printf("%q occupies %d cells, advance %d units\n", op.arg, cellWidth(op.arg), advance)
	return nil, false
}

func metricsOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	fields := intp.font.Metrics.Fields()
	data := [][]string{{"Metric", "Value"}}
	for _, name := range fontedit.MetricsFieldNames {
		data = append(data, []string{name, strconv.Itoa(fields[name])})
	}
	if capHeight, err := intp.font.CapHeight(); err == nil {
		data = append(data, []string{"cap height", fmt.Sprintf("%.1f", capHeight)})
	}
	data = append(data, []string{"units per em", strconv.Itoa(intp.font.UnitsPerEm())})
	if head, ok := otquery.HeadInfo(intp.otf); ok {
		data = append(data, []string{"revision", head.Revision()})
		data = append(data, []string{"bold", strconv.FormatBool(head.IsBold())})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func namesOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	info := otquery.NameInfo(intp.otf)
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	data := [][]string{{"Name", "Value"}}
	for _, k := range keys {
		if op.noArg() || k == op.arg {
			data = append(data, []string{k, info[k]})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func tablesOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	pterm.Printf("%s font, tables: %s\n", otquery.FontType(intp.otf),
		strings.Join(otquery.TableTags(intp.otf), " "))
	if maxp, ok := otquery.MaxPInfo(intp.otf); ok {
		pterm.Printf("%d glyphs, at most %d points in %d contours\n",
			maxp.NumGlyphs, maxp.MaxPoints, maxp.MaxContours)
	}
	return nil, false
}

// monoOp lists the advance widths of all spacing glyphs. A monospaced font
// has exactly one.
func monoOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	hist := advances(intp.font)
	widths := make([]int, 0, len(hist))
	for w := range hist {
		widths = append(widths, w)
	}
	slices.Sort(widths)
	data := [][]string{{"Advance", "Glyphs"}}
	for _, w := range widths {
		data = append(data, []string{strconv.Itoa(w), strconv.Itoa(hist[w])})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if len(widths) == 1 {
		pterm.Info.Printf("font is monospaced, advance %d\n", widths[0])
	}
	return nil, false
}

// advances counts glyphs per advance width. Combining marks and glyphs
// without advance are not counted.
func advances(f *fontedit.Font) map[int]int {
	hist := make(map[int]int)
	for _, g := range f.Glyphs {
		if g.Width <= 0 || ucd.IsMark(g.Code) {
			continue
		}
		hist[g.Width]++
	}
	return hist
}
