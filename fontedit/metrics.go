package fontedit

import "fmt"

// VerticalMetrics are the vertical metrics of a font, one field per value
// stored in the SFNT tables. Fields marked as 'add' are flags: if set, the
// corresponding value is an offset to Ascent (resp. Descent) instead of an
// absolute value. Fonts loaded from SFNT files always have absolute values.
type VerticalMetrics struct {
	Ascent            int  // ascent part of the em square
	Descent           int  // descent part of the em square, positive
	HHeaAscent        int  // hhea.ascender
	HHeaAscentAdd     bool // HHeaAscent is an offset
	HHeaDescent       int  // hhea.descender, usually negative
	HHeaDescentAdd    bool // HHeaDescent is an offset
	HHeaLineGap       int  // hhea.lineGap
	OS2TypoAscent     int  // OS/2.sTypoAscender
	OS2TypoAscentAdd  bool // OS2TypoAscent is an offset
	OS2TypoDescent    int  // OS/2.sTypoDescender, usually negative
	OS2TypoDescentAdd bool // OS2TypoDescent is an offset
	OS2TypoLineGap    int  // OS/2.sTypoLineGap
	OS2WinAscent      int  // OS/2.usWinAscent
	OS2WinAscentAdd   bool // OS2WinAscent is an offset
	OS2WinDescent     int  // OS/2.usWinDescent, positive
	OS2WinDescentAdd  bool // OS2WinDescent is an offset
}

// MetricsFieldNames lists the names of the vertical metrics fields, in the
// order of VerticalMetrics.
var MetricsFieldNames = []string{
	"ascent", "descent",
	"hhea_ascent", "hhea_ascent_add", "hhea_descent", "hhea_descent_add", "hhea_linegap",
	"os2_typoascent", "os2_typoascent_add", "os2_typodescent", "os2_typodescent_add",
	"os2_typolinegap",
	"os2_winascent", "os2_winascent_add", "os2_windescent", "os2_windescent_add",
}

// AdoptedFieldNames are the fields Adopt copies from another font: all of
// MetricsFieldNames except "os2_typolinegap".
var AdoptedFieldNames = []string{
	"ascent", "descent",
	"hhea_ascent", "hhea_ascent_add", "hhea_linegap", "hhea_descent", "hhea_descent_add",
	"os2_winascent", "os2_winascent_add", "os2_windescent", "os2_windescent_add",
	"os2_typoascent", "os2_typoascent_add", "os2_typodescent", "os2_typodescent_add",
}

// Adopt copies the fields of AdoptedFieldNames from ref. The OS/2 typo line
// gap of vm stays as it is.
func (vm *VerticalMetrics) Adopt(ref VerticalMetrics) {
	vm.Ascent, vm.Descent = ref.Ascent, ref.Descent
	vm.HHeaAscent, vm.HHeaAscentAdd = ref.HHeaAscent, ref.HHeaAscentAdd
	vm.HHeaLineGap = ref.HHeaLineGap
	vm.HHeaDescent, vm.HHeaDescentAdd = ref.HHeaDescent, ref.HHeaDescentAdd
	vm.OS2WinAscent, vm.OS2WinAscentAdd = ref.OS2WinAscent, ref.OS2WinAscentAdd
	vm.OS2WinDescent, vm.OS2WinDescentAdd = ref.OS2WinDescent, ref.OS2WinDescentAdd
	vm.OS2TypoAscent, vm.OS2TypoAscentAdd = ref.OS2TypoAscent, ref.OS2TypoAscentAdd
	vm.OS2TypoDescent, vm.OS2TypoDescentAdd = ref.OS2TypoDescent, ref.OS2TypoDescentAdd
}

// Fields returns the metrics as a map from field name to value. Flags have
// values 0 or 1.
func (vm VerticalMetrics) Fields() map[string]int {
	return map[string]int{
		"ascent":              vm.Ascent,
		"descent":             vm.Descent,
		"hhea_ascent":         vm.HHeaAscent,
		"hhea_ascent_add":     b2i(vm.HHeaAscentAdd),
		"hhea_descent":        vm.HHeaDescent,
		"hhea_descent_add":    b2i(vm.HHeaDescentAdd),
		"hhea_linegap":        vm.HHeaLineGap,
		"os2_typoascent":      vm.OS2TypoAscent,
		"os2_typoascent_add":  b2i(vm.OS2TypoAscentAdd),
		"os2_typodescent":     vm.OS2TypoDescent,
		"os2_typodescent_add": b2i(vm.OS2TypoDescentAdd),
		"os2_typolinegap":     vm.OS2TypoLineGap,
		"os2_winascent":       vm.OS2WinAscent,
		"os2_winascent_add":   b2i(vm.OS2WinAscentAdd),
		"os2_windescent":      vm.OS2WinDescent,
		"os2_windescent_add":  b2i(vm.OS2WinDescentAdd),
	}
}

// HHea returns the absolute values for hhea.ascender and hhea.descender.
func (vm VerticalMetrics) HHea() (ascender, descender int) {
	return vm.resolve(vm.HHeaAscent, vm.HHeaAscentAdd, vm.HHeaDescent, vm.HHeaDescentAdd)
}

// Typo returns the absolute values for OS/2.sTypoAscender and sTypoDescender.
func (vm VerticalMetrics) Typo() (ascender, descender int) {
	return vm.resolve(vm.OS2TypoAscent, vm.OS2TypoAscentAdd, vm.OS2TypoDescent, vm.OS2TypoDescentAdd)
}

// Win returns the absolute values for OS/2.usWinAscent and usWinDescent.
// Both are positive.
func (vm VerticalMetrics) Win() (ascent, descent int) {
	ascent, descent = vm.OS2WinAscent, vm.OS2WinDescent
	if vm.OS2WinAscentAdd {
		ascent += vm.Ascent
	}
	if vm.OS2WinDescentAdd {
		descent += vm.Descent
	}
	return
}

// descenders are negative, the em descent is not
func (vm VerticalMetrics) resolve(a int, aAdd bool, d int, dAdd bool) (int, int) {
	if aAdd {
		a += vm.Ascent
	}
	if dAdd {
		d -= vm.Descent
	}
	return a, d
}

func (vm VerticalMetrics) String() string {
	a, d := vm.HHea()
	ta, td := vm.Typo()
	wa, wd := vm.Win()
	return fmt.Sprintf("em=%d+%d hhea=%d/%d/%d typo=%d/%d/%d win=%d/%d", vm.Ascent, vm.Descent,
		a, d, vm.HHeaLineGap, ta, td, vm.OS2TypoLineGap, wa, wd)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// emSquare splits units per em into ascent and descent, in proportion to
// ascender and descender (descender given as a negative value).
func emSquare(upem, ascender, descender int) (int, int) {
	if ascender <= 0 || descender >= 0 {
		a := upem * 4 / 5
		return a, upem - a
	}
	a := ascender
	if ascender-descender != upem {
		a = int(float64(upem)*float64(ascender)/float64(ascender-descender) + 0.5)
	}
	return a, upem - a
}
