package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	switch strings.ToLower(topic) {
	case "glyph", "glyphs":
		pterm.Info.Println("glyph:<char> | glyph:U+XXXX")
		pterm.Println(`
	Prints the metrics of the glyph a character maps to: advance width as
	kept in the font model and as found in table hmtx, side bearings, the
	size of the outline and its bounding box. Side bearings are measured on
	the curves, not on the control points.

	"terminal cells" is the width of the character in a monospaced terminal,
	following Unicode UAX #11. Wide characters take two cells.
	`)
	case "cells":
		pterm.Info.Println("cells:<text>")
		pterm.Println(`
	Prints the number of terminal cells a text occupies, and the sum of the
	advance widths of its characters. Characters missing from the font count
	with the width of '.notdef'.
	`)
	case "mono":
		pterm.Info.Println("mono")
		pterm.Println(`
	Counts glyphs per advance width. Combining marks and glyphs without
	advance are excluded. A monospaced font shows a single row.
	`)
	case "metrics":
		pterm.Info.Println("metrics")
		pterm.Println(`
	Prints the vertical metrics in FontForge's notation. Fields ending in
	_add are flags: if set, hhea_ascent and hhea_descent are offsets to
	ascent and descent.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	glyph:<c>      metrics of a single glyph
	cells:<text>   terminal width and advance of a text
	metrics        vertical metrics
	names          entries of table name, or names:<key> for one of them
	tables         list of tables
	mono           histogram of advance widths
	help:<topic>   help for a command
	quit           leave fontcheck
	`)
	}
}
