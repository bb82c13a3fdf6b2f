package otquery

import (
	"iter"

	"github.com/npillmayer/comicmono/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Platforms of name records.
const (
	PlatformUnicode   = 0
	PlatformMacintosh = 1
	PlatformWindows   = 3
)

// nameDecoder returns the text encoding of a name record, or nil if records
// of this platform and encoding are not decoded. Windows symbol fonts
// (encoding 0) store UTF-16 as well.
func nameDecoder(platform, enc uint16) encoding.Encoding {
	switch {
	case platform == PlatformUnicode,
		platform == PlatformWindows && (enc == 0 || enc == 1 || enc == 10):
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case platform == PlatformMacintosh && enc == 0:
		return charmap.Macintosh
	}
	return nil
}

// NamesRange iterates over the decoded strings of table 'name'. Unicode and
// Windows records come first, Macintosh records last, each group in record
// order. Records with undecodable or empty strings are skipped, as are
// records of encodings other than Unicode and Mac Roman.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		records := nameRecords(otf)
		for _, mac := range []bool{false, true} {
			for _, rec := range records {
				if (rec.PlatformID == PlatformMacintosh) != mac {
					continue
				}
				if s, ok := decodeName(rec); ok && !yield(sfnt.NameID(rec.NameID), s) {
					return
				}
			}
		}
	}
}

func nameRecords(otf *ot.Font) []ot.NameRecord {
	if otf == nil || otf.Name == nil {
		return nil
	}
	return otf.Name.Records
}

func decodeName(rec ot.NameRecord) (string, bool) {
	enc := nameDecoder(rec.PlatformID, rec.EncodingID)
	if enc == nil {
		return "", false
	}
	s, err := enc.NewDecoder().Bytes(rec.Value)
	if err != nil {
		tracer().Debugf("name %d (platform %d): %v", rec.NameID, rec.PlatformID, err)
		return "", false
	}
	return string(s), len(s) > 0
}

// NameInfo collects the common entries of table 'name' into a map, keyed
// "copyright", "family", "subfamily", "unique", "full", "version",
// "postscript", "description", "typo-family" and "typo-subfamily".
// The first string NamesRange yields for a name ID wins.
func NameInfo(otf *ot.Font) map[string]string {
	info := make(map[string]string)
	for id, value := range NamesRange(otf) {
		if key, ok := nameKeys[id]; ok {
			if _, seen := info[key]; !seen {
				info[key] = value
			}
		}
	}
	return info
}

var nameKeys = map[sfnt.NameID]string{
	sfnt.NameIDCopyright:            "copyright",
	sfnt.NameIDFamily:               "family",
	sfnt.NameIDSubfamily:            "subfamily",
	sfnt.NameIDUniqueIdentifier:     "unique",
	sfnt.NameIDFull:                 "full",
	sfnt.NameIDVersion:              "version",
	sfnt.NameIDPostScript:           "postscript",
	sfnt.NameIDDescription:          "description",
	sfnt.NameIDTypographicFamily:    "typo-family",
	sfnt.NameIDTypographicSubfamily: "typo-subfamily",
}
