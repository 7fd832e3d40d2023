package cmpres

import "encoding/binary"

// minStoredSize is the smallest blob that can hold a pass header.
const minStoredSize = 4

// SizeField returns the little-endian 32-bit value at the start of a stored
// archive entry. For a single-pass blob its low byte is the pass type and
// the upper 24 bits are the declared output length.
func SizeField(src []byte) (uint32, bool) {
	if len(src) < 4 {
		return 0, false
	}

	return binary.LittleEndian.Uint32(src), true
}

// DetectCompression decides whether an archive entry is compressed, given
// the entry's declared total-size field and the size actually stored.
// It returns the pass type and output size the field implies.
func DetectCompression(sizeField uint32, storedSize int) (PassType, int, bool) {
	if int64(sizeField) == int64(storedSize) {
		return 0, 0, false
	}

	typ := PassType(sizeField & PassCountMask)
	decompSize := int(sizeField >> 8)
	if !typ.valid() {
		return typ, decompSize, false
	}
	if decompSize == 0 || storedSize < minStoredSize {
		return typ, decompSize, false
	}

	return typ, decompSize, true
}
