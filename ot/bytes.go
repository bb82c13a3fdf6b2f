package ot

// binarySegm is a window onto a font's binary data. All multi-byte values in
// SFNT fonts are big-endian.
//
// Accessors do not fail: reading beyond the end of a segment yields 0. Parse
// checks the sizes of table structures before decoding them.
type binarySegm []byte

func u16(b []byte) uint16 {
	_ = b[1]
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// U16 returns the uint16 at byte offset i.
func (b binarySegm) U16(i int) uint16 {
	if i < 0 || i+2 > len(b) {
		return 0
	}
	return u16(b[i:])
}

// I16 returns the int16 at byte offset i.
func (b binarySegm) I16(i int) int16 {
	return int16(b.U16(i))
}

// U32 returns the uint32 at byte offset i.
func (b binarySegm) U32(i int) uint32 {
	if i < 0 || i+4 > len(b) {
		return 0
	}
	return u32(b[i:])
}

// sub returns the n bytes starting at offset, sharing memory with b.
// Offsets are computed in 64 bit to be safe from overflow with untrusted
// 32 bit values.
func (b binarySegm) sub(offset, n uint64) (binarySegm, bool) {
	if offset > uint64(len(b)) || n > uint64(len(b))-offset {
		return nil, false
	}
	return b[offset : offset+n], true
}

// record returns entry i of an array of equal-sized records, or nil.
func (b binarySegm) record(i, size int) binarySegm {
	if i < 0 {
		return nil
	}
	r, _ := b.sub(uint64(i)*uint64(size), uint64(size))
	return r
}
