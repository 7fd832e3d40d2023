package cmpres

import "encoding/binary"

// byteCursor reads forward through a byte slice.
type byteCursor struct {
	data []byte // The byte slice to read from.
	pos  int    // The current position in the byte slice.
}

func newByteCursor(data []byte) *byteCursor {
	return &byteCursor{data: data}
}

// remaining returns the number of unread bytes.
func (c *byteCursor) remaining() int {
	return len(c.data) - c.pos
}

// ReadByte reads a byte from the slice.
func (c *byteCursor) ReadByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, ErrUnexpectedEOF
	}

	b := c.data[c.pos]
	c.pos++

	return b, nil
}

// readUint16 reads a little-endian 16-bit value.
func (c *byteCursor) readUint16() (int, error) {
	if c.remaining() < 2 {
		return 0, ErrUnexpectedEOF
	}

	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2

	return int(v), nil
}

// read3ByteLength reads the format's 24-bit length: a little-endian 16-bit
// remainder followed by a multiplier byte, value = word + 0x10000*byte.
func (c *byteCursor) read3ByteLength() (int, error) {
	if c.remaining() < 3 {
		return 0, ErrUnexpectedEOF
	}

	word := int(binary.LittleEndian.Uint16(c.data[c.pos:]))
	hi := int(c.data[c.pos+2])
	c.pos += 3

	return word + 0x10000*hi, nil
}

// readN copies the next n bytes into dst, which must hold at least n bytes.
func (c *byteCursor) readN(dst []byte, n int) error {
	if c.remaining() < n {
		return ErrUnexpectedEOF
	}

	copy(dst[:n], c.data[c.pos:c.pos+n])
	c.pos += n

	return nil
}
