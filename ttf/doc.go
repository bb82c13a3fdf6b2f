/*
Package ttf writes fonts as TrueType files.

Fonts are written with quadratic outlines in table glyf, a character map
with format 4 and 12 subtables, Windows name records, and table post
version 2 carrying the glyph names. No hinting instructions and no
OpenType layout tables are written.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ttf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.ttf'
func tracer() tracing.Trace {
	return tracing.Select("font.ttf")
}
