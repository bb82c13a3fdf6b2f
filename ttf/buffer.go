package ttf

import (
	"encoding/binary"
	"math"
)

// buffer accumulates big-endian binary data.
type buffer []byte

func (b *buffer) u8(v uint8)   { *b = append(*b, v) }
func (b *buffer) u16(v uint16) { *b = binary.BigEndian.AppendUint16(*b, v) }
func (b *buffer) i16(v int16)  { b.u16(uint16(v)) }
func (b *buffer) u32(v uint32) { *b = binary.BigEndian.AppendUint32(*b, v) }
func (b *buffer) i32(v int32)  { b.u32(uint32(v)) }
func (b *buffer) u64(v uint64) { *b = binary.BigEndian.AppendUint64(*b, v) }

func (b *buffer) tag(t string) {
	*b = append(*b, (t + "    ")[:4]...)
}

func (b *buffer) bytes(p []byte) { *b = append(*b, p...) }

// pad appends zero bytes up to a multiple of n.
func (b *buffer) pad(n int) {
	for len(*b)%n != 0 {
		*b = append(*b, 0)
	}
}

// checksum is the sum of the big-endian uint32 words of data. A trailing
// partial word is padded with zeros.
func checksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var last [4]byte
		copy(last[:], data)
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

// otRound rounds half-way values up, as font tools do.
func otRound(x float64) int {
	return int(math.Floor(x + 0.5))
}

// searchParams computes the binary search hints found in the headers of the
// table directory and of cmap format 4 subtables, for n entries of size
// unitSize.
func searchParams(n, unitSize int) (searchRange, entrySelector, rangeShift uint16) {
	if n == 0 {
		return 0, 0, 0
	}
	sel := 0
	for 1<<(sel+1) <= n {
		sel++
	}
	sr := (1 << sel) * unitSize
	return uint16(sr), uint16(sel), uint16(n*unitSize - sr)
}
