/*
Package ucd looks up the Unicode General_Category of code-points.

Categories are reported as the two-letter abbreviations of the Unicode
Character Database ("Lu", "Mn", "Zs", …). Code-points without an assigned
character report "Cn". Values which are not code-points at all (negative or
beyond U+10FFFF), such as the code of an unencoded glyph, report "".

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ucd

import (
	"unicode"
)

// MaxCodePoint is the largest valid Unicode code-point.
const MaxCodePoint = 0x10FFFF

// Unassigned is the category of code-points not assigned to a character.
const Unassigned = "Cn"

// categories lists the general categories in lookup order. Letters are most
// frequent in fonts and come first.
var categories = []struct {
	name  string
	table *unicode.RangeTable
}{
	{"Lu", unicode.Lu},
	{"Ll", unicode.Ll},
	{"Lt", unicode.Lt},
	{"Lm", unicode.Lm},
	{"Lo", unicode.Lo},
	{"Mn", unicode.Mn},
	{"Mc", unicode.Mc},
	{"Me", unicode.Me},
	{"Nd", unicode.Nd},
	{"Nl", unicode.Nl},
	{"No", unicode.No},
	{"Pc", unicode.Pc},
	{"Pd", unicode.Pd},
	{"Ps", unicode.Ps},
	{"Pe", unicode.Pe},
	{"Pi", unicode.Pi},
	{"Pf", unicode.Pf},
	{"Po", unicode.Po},
	{"Sm", unicode.Sm},
	{"Sc", unicode.Sc},
	{"Sk", unicode.Sk},
	{"So", unicode.So},
	{"Zs", unicode.Zs},
	{"Zl", unicode.Zl},
	{"Zp", unicode.Zp},
	{"Cc", unicode.Cc},
	{"Cf", unicode.Cf},
	{"Cs", unicode.Cs},
	{"Co", unicode.Co},
}

// IsCodePoint reports whether r is in the Unicode code space.
func IsCodePoint(r rune) bool {
	return r >= 0 && r <= MaxCodePoint
}

// Category returns the two-letter General_Category of r, "Cn" for unassigned
// code-points, and "" if r is not a code-point.
func Category(r rune) string {
	if !IsCodePoint(r) {
		return ""
	}
	for _, c := range categories {
		if unicode.Is(c.table, r) {
			return c.name
		}
	}
	return Unassigned
}

// IsMark reports whether r is a combining mark, i.e. of category Mn, Mc or Me.
func IsMark(r rune) bool {
	switch Category(r) {
	case "Mn", "Mc", "Me":
		return true
	}
	return false
}
