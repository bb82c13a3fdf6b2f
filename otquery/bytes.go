package otquery

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// fields reads consecutive big-endian values from table data. Callers check
// the table size up front.
type fields struct {
	b   []byte
	pos int
}

func (f *fields) u16() uint16 {
	v := u16(f.b[f.pos:])
	f.pos += 2
	return v
}

func (f *fields) i16() int16 {
	return int16(f.u16())
}

func (f *fields) u32() uint32 {
	v := u32(f.b[f.pos:])
	f.pos += 4
	return v
}

func (f *fields) i64() int64 {
	hi := f.u32()
	return int64(uint64(hi)<<32 | uint64(f.u32()))
}
