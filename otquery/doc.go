/*
Package otquery queries information from an OpenType font parsed by package ot.

Queries decode the raw bytes of the tables and return typed views, for
example HeadInfo for table 'head' or FontMetrics for the vertical metrics
spread over 'hhea' and 'OS/2'.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/comicmono/ot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// FontType returns the outline flavour of a font: "TrueType" for glyf-based
// fonts, "OpenType" for fonts with CFF outlines, or "" if otf is nil.
func FontType(otf *ot.Font) string {
	if otf == nil || otf.Header == nil {
		return ""
	}
	if otf.Header.IsCFF() {
		return "OpenType"
	}
	return "TrueType"
}

// TableTags returns the tags of all tables contained in the font, sorted
// by tag value.
func TableTags(otf *ot.Font) []string {
	if otf == nil {
		return nil
	}
	tags := otf.TableTags()
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.String()
	}
	return names
}
