/*
Package outline holds the geometry of glyph outlines.

Outlines are kept in TrueType form: closed contours of on-curve points and
quadratic control points, in font units with the y axis pointing up.
Outlines from CFF fonts, which use cubic curves, are converted on import
by approximating every cubic with one or more quadratic curves.

Besides bounding boxes and affine transformations, the package implements
the emboldening of outlines, as used for synthetic bold fonts.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package outline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.outline'
func tracer() tracing.Trace {
	return tracing.Select("font.outline")
}
