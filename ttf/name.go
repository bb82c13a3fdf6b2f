package ttf

import (
	"fmt"
	"sort"

	"github.com/npillmayer/comicmono/fontedit"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

// Windows platform, Unicode BMP encoding, language en-US.
const (
	platformWindows = 3
	encodingUnicode = 1
	languageEnUS    = 0x409
)

// Subfamily returns the style name of f: "Regular", "Bold", "Italic" or
// "Bold Italic".
func Subfamily(f *fontedit.Font) string {
	switch bold, italic := isBold(f), f.ItalicAngle != 0; {
	case bold && italic:
		return "Bold Italic"
	case bold:
		return "Bold"
	case italic:
		return "Italic"
	}
	return "Regular"
}

// NameRecords returns the strings of table 'name' for f, keyed by name ID.
// Entries of f.SFNTNames take precedence over the values derived from the
// font's names.
func NameRecords(f *fontedit.Font) map[sfnt.NameID]string {
	names := map[sfnt.NameID]string{
		sfnt.NameIDFamily:           f.FamilyName,
		sfnt.NameIDSubfamily:        Subfamily(f),
		sfnt.NameIDUniqueIdentifier: fmt.Sprintf("%s: %s", f.FullName, f.Version),
		sfnt.NameIDFull:             f.FullName,
		sfnt.NameIDVersion:          "Version " + f.Version,
		sfnt.NameIDPostScript:       f.FontName,
	}
	if f.Copyright != "" {
		names[sfnt.NameIDCopyright] = f.Copyright
	}
	if f.Comment != "" {
		names[sfnt.NameIDDescription] = f.Comment
	}
	for id, s := range f.SFNTNames {
		names[id] = s
	}
	for id, s := range names {
		if s == "" {
			delete(names, id)
		}
	}
	return names
}

func encodeName(f *fontedit.Font) (buffer, error) {
	names := NameRecords(f)
	ids := make([]sfnt.NameID, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	var storage buffer
	var b buffer
	b.u16(0) // format
	b.u16(uint16(len(ids)))
	b.u16(uint16(6 + 12*len(ids)))
	for _, id := range ids {
		s, err := enc.Bytes([]byte(names[id]))
		if err != nil {
			return nil, fmt.Errorf("name %d: %w", id, err)
		}
		if len(storage)+len(s) > 0xFFFF {
			return nil, fmt.Errorf("name table overflow at name %d", id)
		}
		b.u16(platformWindows)
		b.u16(encodingUnicode)
		b.u16(languageEnUS)
		b.u16(uint16(id))
		b.u16(uint16(len(s)))
		b.u16(uint16(len(storage)))
		storage.bytes(s)
	}
	b.bytes(storage)
	return b, nil
}
