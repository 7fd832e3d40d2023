package cmpres

import "fmt"

// escapeWidth marks prefix slots whose code is wider than PrefixBits.
const escapeWidth = 0xFF

// huffTable holds the canonical code tables of a type 2 pass.
type huffTable struct {
	levels int  // Number of code widths, 1..MaxLevels.
	delta  bool // Delta flag from the levels byte; not acted on.

	leaves     [MaxLevels + 1]int // Leaf symbols per width, indexed by width.
	codeOffset [MaxLevels + 1]int // Alphabet index minus code value per width.
	totalCodes [MaxLevels + 1]int // First non-leaf code per width.

	alphabet [AlphabetSize]byte
	alphaLen int

	width  [PrefixSize]byte // Code width per 8-bit prefix, or escapeWidth.
	symbol [PrefixSize]byte // Decoded symbol per 8-bit prefix.
}

// readHuffTable reads the level counts and alphabet and builds the prefix table.
func readHuffTable(in *byteCursor) (*huffTable, error) {
	lv, err := in.ReadByte()
	if err != nil {
		return nil, err
	}

	t := &huffTable{
		levels: int(lv & LevelMask),
		delta:  lv&DeltaFlag != 0,
	}
	if t.levels < 1 || t.levels > MaxLevels {
		return nil, fmt.Errorf("%w: %d", ErrBadLevelCount, t.levels)
	}

	// Canonical assignment: the code space doubles every level and each
	// level's leaves take the lowest codes still free.
	running, index := 0, 0
	for level := 1; level <= t.levels; level++ {
		n, err := in.ReadByte()
		if err != nil {
			return nil, err
		}

		running *= 2
		t.codeOffset[level] = index - running
		running += int(n)
		index += int(n)
		if running > 1<<level {
			return nil, fmt.Errorf("%w: %d codes at width %d", ErrCodeTableOverflow, running, level)
		}

		t.leaves[level] = int(n)
		t.totalCodes[level] = running
	}

	if index > AlphabetSize {
		return nil, fmt.Errorf("%w: %d", ErrAlphabetTooLarge, index)
	}
	t.alphaLen = index
	if err := in.readN(t.alphabet[:], t.alphaLen); err != nil {
		return nil, err
	}

	t.buildPrefix()

	return t, nil
}

// buildPrefix fills the direct lookup for every code of width <= PrefixBits.
func (t *huffTable) buildPrefix() {
	for i := range t.width {
		t.width[i] = escapeWidth
	}

	maxWidth := min(t.levels, PrefixBits)

	// A lone symbol owns its whole width: every bit pattern decodes to it.
	if t.alphaLen == 1 {
		for w := 1; w <= maxWidth; w++ {
			if t.leaves[w] == 1 {
				for i := range t.width {
					t.width[i] = byte(w)
					t.symbol[i] = t.alphabet[0]
				}

				return
			}
		}
	}

	for w := 1; w <= maxWidth; w++ {
		span := 1 << (PrefixBits - w)
		first := t.totalCodes[w] - t.leaves[w]
		for code := first; code < t.totalCodes[w]; code++ {
			sym := t.alphabet[code+t.codeOffset[w]]
			for slot := code * span; slot < (code+1)*span; slot++ {
				t.width[slot] = byte(w)
				t.symbol[slot] = sym
			}
		}
	}
}

// decodeLong resolves a code wider than PrefixBits whose first bits are prefix.
func (t *huffTable) decodeLong(br *bitReader, prefix uint32) (byte, error) {
	if err := br.consume(PrefixBits); err != nil {
		return 0, err
	}

	value := int(prefix)
	for level := PrefixBits + 1; ; level++ {
		if level > MaxLevels {
			return 0, fmt.Errorf("%w: prefix 0x%02x", ErrOffsetTableExhausted, prefix)
		}

		bit := br.peek(1)
		if err := br.consume(1); err != nil {
			return 0, err
		}
		value = value<<1 | int(bit)

		if level <= t.levels && value < t.totalCodes[level] {
			index := value + t.codeOffset[level]
			if index < 0 || index >= t.alphaLen {
				return 0, fmt.Errorf("%w: %d at width %d, alphabet %d",
					ErrAlphabetIndexOutOfRange, index, level, t.alphaLen)
			}

			return t.alphabet[index], nil
		}
	}
}

// bitReader is an MSB-first shift register over a byteCursor.
// The low n bits of reg are valid, oldest bit highest.
type bitReader struct {
	in  *byteCursor
	reg uint32
	n   uint
}

// fill pulls whole bytes until at least k bits are buffered or input ends.
func (br *bitReader) fill(k uint) {
	for br.n < k && br.in.remaining() > 0 {
		b, _ := br.in.ReadByte()
		br.reg = br.reg<<8 | uint32(b)
		br.n += 8
	}
}

// peek returns the next k bits without consuming them. Past the end of
// input the missing low bits read as zero.
func (br *bitReader) peek(k uint) uint32 {
	br.fill(k)
	mask := uint32(1)<<k - 1
	if br.n >= k {
		return (br.reg >> (br.n - k)) & mask
	}

	return (br.reg << (k - br.n)) & mask
}

// consume drops k bits; it fails if the input never held them.
func (br *bitReader) consume(k uint) error {
	if k > br.n {
		return ErrUnexpectedEOF
	}
	br.n -= k
	br.reg &= uint32(1)<<br.n - 1

	return nil
}

// decodeHuffman decodes a type 2 pass from p.in into p.out.
func decodeHuffman(p *passContext) error {
	t, err := readHuffTable(p.in)
	if err != nil {
		return err
	}

	p.log.Debug("huffman header",
		"pass", p.index,
		"levels", t.levels,
		"delta", t.delta,
		"alphabet", t.alphaLen,
	)

	br := &bitReader{in: p.in}
	br.fill(16)

	out := p.out
	for pos := 0; pos < len(out); pos++ {
		code := br.peek(PrefixBits)
		if w := t.width[code]; w != escapeWidth {
			if err := br.consume(uint(w)); err != nil {
				return err
			}
			out[pos] = t.symbol[code]
			continue
		}

		sym, err := t.decodeLong(br, code)
		if err != nil {
			return err
		}
		out[pos] = sym
	}

	return nil
}
