/*
Package fontedit is an editable in-memory model of a font.

A Font is loaded from an OpenType file (TrueType or CFF outlines), may be
changed in place, and is written back to disk by package ttf. Glyph outlines
are held in TrueType form (see package outline); CFF outlines are converted
on load.

The model follows the terms of common font editors: a font has a PostScript
font name, a family name, a full name and a weight, and named vertical
metrics fields which control ascent and descent in the various tables of an
SFNT file. The em size of a font is the sum of ascent and descent.
Glyph names are taken from table post, or from the CFF charset for fonts
with CFF outlines.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontedit

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.edit'
func tracer() tracing.Trace {
	return tracing.Select("font.edit")
}
