package cmpres

// Container and pass format constants.
const (
	MultiPassFlag = 0x80 // Bit 7 of byte 0: passes count follows instead of a type byte.
	PassCountMask = 0x7F // Low bits of byte 0 holding the passes count.

	MaxEscapes   = 10   // RLE escape array capacity.
	NoSeqFlag    = 0x80 // Bit 7 of the RLE escLen byte: skip the sequence stage.
	EscCountMask = 0x7F // Low bits of the RLE escLen byte.

	MaxLevels    = 16   // Maximum Huffman code width.
	PrefixBits   = 8    // Width resolved by the direct prefix table.
	PrefixSize   = 256  // Slots in the prefix table (1 << PrefixBits).
	AlphabetSize = 256  // Maximum Huffman alphabet length.
	DeltaFlag    = 0x80 // Bit 7 of the Huffman levels byte (informational).
	LevelMask    = 0x7F // Low bits of the Huffman levels byte.
)

// PassType identifies the decoder a pass is dispatched to.
type PassType byte

// Pass types.
const (
	PassRLE     PassType = 1
	PassHuffman PassType = 2
)

func (t PassType) String() string {
	switch t {
	case PassRLE:
		return "rle"
	case PassHuffman:
		return "huffman"
	default:
		return "unknown"
	}
}

// valid reports whether t names a known decoder.
func (t PassType) valid() bool {
	return t == PassRLE || t == PassHuffman
}
