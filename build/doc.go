/*
Package build generates the Comic Mono fonts.

The generator loads the outline font Comic Shanns and the reference font
Cousine, then

▪︎ normalizes the advance width of every spacing glyph to 510 units,

▪︎ scales the glyphs to the cap height of the reference font and copies the
reference's vertical metrics,

▪︎ renames the font to "Comic Mono" and writes ComicMono.ttf,

▪︎ emboldens all glyphs and writes ComicMono-Bold.ttf.

Run performs all steps; the single steps are exported for tests and tools.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package build

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'comicmono.build'
func tracer() tracing.Trace {
	return tracing.Select("comicmono.build")
}
