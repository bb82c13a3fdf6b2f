/*
Package ot provides access to the metric tables of SFNT fonts (TrueType and
OpenType/CFF).

Intended audience for this package are font tools which have to inspect or
regenerate the global and per-glyph metrics of a font: vertical metrics from
'hhea' and 'OS/2', advance widths from 'hmtx', the character map 'cmap', and the
raw records of table 'name'.

Package `ot` will not interpret glyph outlines. Outlines are available through
golang.org/x/image/font/sfnt, which handles both quadratic (glyf) and cubic (CFF)
outlines. From this point of view, `ot` is a low-level package; typed queries
are homed in the sister package otquery.

Bugs in fonts: many fonts in the wild contain entries that, strictly speaking,
infringe upon the OpenType specification. An application using them should not
fail because of recoverable errors. Package `ot` records such issues as
FontError values graded by Severity, and fails only on critical ones:
the table directory is broken, or a table needed for metrics is missing or
cannot be decoded. Callers check for the cause with errors.Is:

	otf, err := ot.Parse(data)
	if errors.Is(err, ot.ErrNotSFNT) {
		…
	}
	for _, issue := range otf.Issues(ot.SeverityMajor) {
		…
	}

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

Some code has originally been copied over from golang.org/x/image/font/sfnt/cmap.go,
as the cmap-routines are not accessible through the sfnt package's API.
I understand this to be legally okay as long as the Go license information
stays intact.

	Copyright 2017 The Go Authors. All rights reserved.
	Use of this source code is governed by a BSD-style
	license that can be found in the LICENSE file.

The license file mentioned can be found in file GO-LICENSE at the root folder
of this module.
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
