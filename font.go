/*
Package comicmono derives the monospaced font "Comic Mono" from the Comic
Shanns outline font, using the vertical metrics of Cousine as a reference.

The work is split into small packages:

▪︎ ot and otquery read the metric tables of SFNT fonts.

▪︎ outline holds glyph geometry: contours, curve conversion, emboldening.

▪︎ fontedit is an editable in-memory font, loaded from TTF or OTF files.

▪︎ ttf writes fontedit fonts as TrueType files.

▪︎ build is the generator pipeline; cmd/comicmono runs it.

This package is for loading scalable fonts. A "scalable font" is a font, i.e.
a variant of a typeface with a certain weight, slant, etc. An example is
"Comic Mono Bold".

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

Comic Mono:
https://github.com/dtinth/comic-mono-font

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package comicmono

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'comicmono'
func tracer() tracing.Trace {
	return tracing.Select("comicmono")
}

// ScalableFont is a font file held in memory, TrueType (glyf outlines) or
// OpenType with CFF outlines. Binary is the file's content; it is shared
// with SFNT and with any ot.Font parsed from it and must not be modified.
type ScalableFont struct {
	Fontname string // full name from table name, may be empty
	Filepath string // empty for fonts parsed from memory
	Binary   []byte
	SFNT     *sfnt.Font // not safe for concurrent glyph loading
}

// LoadOpenTypeFont reads and parses a TTF or OTF file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	data, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	sf, err := ParseOpenTypeFont(data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", fontfile, err)
	}
	sf.Filepath = fontfile
	return sf, nil
}

// ParseOpenTypeFont parses TTF or OTF data. Fonts without a full name fall
// back to their PostScript name.
func ParseOpenTypeFont(data []byte) (*ScalableFont, error) {
	container, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	sf := &ScalableFont{Binary: data, SFNT: container}
	for _, id := range []sfnt.NameID{sfnt.NameIDFull, sfnt.NameIDPostScript} {
		if name, err := container.Name(nil, id); err == nil && name != "" {
			sf.Fontname = name
			break
		}
	}
	tracer().Debugf("parsed font %q with %d glyphs", sf.Fontname, container.NumGlyphs())
	return sf, nil
}
