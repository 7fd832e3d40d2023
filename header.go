package cmpres

import "fmt"

// Header describes the container prefix and the first pass header.
type Header struct {
	MultiPass       bool     // Byte 0 had bit 7 set.
	Passes          int      // Number of passes.
	FinalLengthHint int      // Informational; only present for multi-pass blobs.
	FirstType       PassType // Type of the first pass.
	FirstLength     int      // Declared output length of the first pass.
	Size            int      // Bytes read to parse the header.
}

// containerHeader is byte 0 and, for multi-pass blobs, the length hint.
type containerHeader struct {
	multi     bool
	passes    int
	hint      int
	firstType byte // Valid when !multi: byte 0 is already the first type byte.
}

// readContainer reads byte 0 and branches on its top bit.
func readContainer(in *byteCursor) (containerHeader, error) {
	var ch containerHeader

	b, err := in.ReadByte()
	if err != nil {
		return ch, fmt.Errorf("%w: empty input", ErrHeaderTruncated)
	}

	if b&MultiPassFlag == 0 {
		ch.passes = 1
		ch.firstType = b

		return ch, nil
	}

	ch.multi = true
	ch.passes = int(b & PassCountMask)
	if ch.hint, err = in.read3ByteLength(); err != nil {
		return ch, fmt.Errorf("%w: final length", ErrHeaderTruncated)
	}

	return ch, nil
}

// readPassHeader reads a pass type and declared length. When pending is
// non-nil the type byte was already consumed as byte 0 of the container.
func readPassHeader(in *byteCursor, pending *byte) (PassType, int, error) {
	var tb byte
	if pending != nil {
		tb = *pending
	} else {
		var err error
		if tb, err = in.ReadByte(); err != nil {
			return 0, 0, fmt.Errorf("%w: pass type", ErrHeaderTruncated)
		}
	}

	typ := PassType(tb)
	if !typ.valid() {
		return typ, 0, fmt.Errorf("%w: %d", ErrUnknownPassType, tb)
	}

	length, err := in.read3ByteLength()
	if err != nil {
		return typ, 0, fmt.Errorf("%w: declared length", ErrHeaderTruncated)
	}

	return typ, length, nil
}

// ReadHeader parses the container prefix and the first pass header
// without decoding any payload.
func ReadHeader(src []byte) (Header, error) {
	in := newByteCursor(src)

	ch, err := readContainer(in)
	if err != nil {
		return Header{}, &DecodeError{Pass: -1, Offset: in.pos, Err: err}
	}
	if ch.passes == 0 {
		return Header{}, &DecodeError{Pass: -1, Offset: in.pos, Err: ErrNoPasses}
	}

	h := Header{
		MultiPass:       ch.multi,
		Passes:          ch.passes,
		FinalLengthHint: ch.hint,
	}

	h.FirstType, h.FirstLength, err = readPassHeader(in, ch.pending())
	if err != nil {
		return Header{}, &DecodeError{Pass: 0, Offset: in.pos, Err: err}
	}
	h.Size = in.pos

	return h, nil
}

// pending returns the already consumed first type byte, if any.
func (ch *containerHeader) pending() *byte {
	if ch.multi {
		return nil
	}

	return &ch.firstType
}
