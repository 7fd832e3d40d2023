package cmpres

import (
	"bytes"
	"fmt"
)

// rleHeader is the sub-header of a type 1 pass.
type rleHeader struct {
	srcLen   int                // Informational source length.
	reserved byte               // Expected to be zero.
	noSeq    bool               // Sequence stage is skipped.
	escLen   int                // Number of valid entries in esc.
	esc      [MaxEscapes]byte   // Escape byte values in header order.
	lookup   [AlphabetSize]byte // Byte value -> escape role (index+1), 0 = literal.
}

// readRLEHeader reads the escape table and builds the lookup.
func readRLEHeader(in *byteCursor) (*rleHeader, error) {
	h := &rleHeader{}

	var err error
	if h.srcLen, err = in.read3ByteLength(); err != nil {
		return nil, err
	}
	if h.reserved, err = in.ReadByte(); err != nil {
		return nil, err
	}

	escLen, err := in.ReadByte()
	if err != nil {
		return nil, err
	}
	h.noSeq = escLen&NoSeqFlag != 0
	h.escLen = int(escLen & EscCountMask)
	if h.escLen > MaxEscapes {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEscapes, h.escLen, MaxEscapes)
	}
	if err := in.readN(h.esc[:], h.escLen); err != nil {
		return nil, err
	}

	// First assignment wins: a repeated value keeps its lowest index.
	for i := 0; i < h.escLen; i++ {
		if h.lookup[h.esc[i]] == 0 {
			h.lookup[h.esc[i]] = byte(i + 1)
		}
	}

	return h, nil
}

// decodeRLE decodes a type 1 pass from p.in into p.out.
func decodeRLE(p *passContext) error {
	h, err := readRLEHeader(p.in)
	if err != nil {
		return err
	}
	if h.reserved != 0 {
		p.warn(fmt.Errorf("%w: 0x%02x", ErrReservedFieldNonZero, h.reserved))
	}

	p.log.Debug("rle header",
		"pass", p.index,
		"source_len", h.srcLen,
		"escapes", h.escLen,
		"sequence_stage", !h.noSeq,
	)

	// Without a second escape there is no sequence marker to expand.
	if h.noSeq || h.escLen < 2 {
		return h.expandRuns(p.in, p.out)
	}

	mid := make([]byte, len(p.out))
	used, err := h.expandSequences(p.in, mid)
	if err != nil {
		return err
	}

	inner := newByteCursor(mid[:used])
	if err := h.expandRuns(inner, p.out); err != nil {
		return fmt.Errorf("intermediate offset %d: %w", inner.pos, err)
	}

	return nil
}

// expandSequences expands multi-byte pattern repeats into mid and returns
// the number of bytes written. A pattern is enclosed by two esc[1] bytes and
// followed by its total repeat count.
func (h *rleHeader) expandSequences(in *byteCursor, mid []byte) (int, error) {
	seq := h.esc[1]
	pos := 0
	for pos < len(mid) && in.remaining() > 0 {
		b, err := in.ReadByte()
		if err != nil {
			return pos, err
		}
		if b != seq {
			mid[pos] = b
			pos++
			continue
		}

		start := in.pos
		end := bytes.IndexByte(in.data[start:], seq)
		if end < 0 {
			return pos, fmt.Errorf("%w: opened at offset %d", ErrUnterminatedSequence, start-1)
		}
		pattern := in.data[start : start+end]
		in.pos = start + end + 1

		count, err := in.ReadByte()
		if err != nil {
			return pos, err
		}

		// The pattern is always emitted once, so a zero count acts like one.
		for i := 0; i < max(int(count), 1); i++ {
			if pos+len(pattern) > len(mid) {
				return pos, fmt.Errorf("%w: sequence of %d bytes at %d, capacity %d",
					ErrBufferOverrun, len(pattern), pos, len(mid))
			}
			pos += copy(mid[pos:], pattern)
		}
	}

	return pos, nil
}

// expandRuns expands single-byte runs from in until out is exactly full.
func (h *rleHeader) expandRuns(in *byteCursor, out []byte) error {
	pos := 0
	for pos < len(out) {
		b, err := in.ReadByte()
		if err != nil {
			return err
		}

		var count int
		switch role := h.lookup[b]; role {
		case 0:
			out[pos] = b
			pos++
			continue
		case 1:
			c, err := in.ReadByte()
			if err != nil {
				return err
			}
			count = int(c)
		case 3:
			if count, err = in.readUint16(); err != nil {
				return err
			}
		default:
			count = int(role) - 1
		}

		value, err := in.ReadByte()
		if err != nil {
			return err
		}

		if pos+count > len(out) {
			return fmt.Errorf("%w: run of %d at %d, declared %d", ErrBufferOverrun, count, pos, len(out))
		}
		for end := pos + count; pos < end; pos++ {
			out[pos] = value
		}
	}

	return nil
}
