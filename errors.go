// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/cmpres

package cmpres

import (
	"errors"
	"fmt"
)

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrHeaderTruncated         = errors.New("container header truncated")
	ErrUnexpectedEOF           = errors.New("unexpected end of input")
	ErrUnknownPassType         = errors.New("unknown pass type")
	ErrNoPasses                = errors.New("multi-pass header declares zero passes")
	ErrBufferOverrun           = errors.New("write exceeds declared output length")
	ErrTooManyEscapes          = errors.New("too many rle escape codes")
	ErrUnterminatedSequence    = errors.New("rle sequence escape is never closed")
	ErrBadLevelCount           = errors.New("huffman level count out of range")
	ErrAlphabetTooLarge        = errors.New("huffman alphabet exceeds 256 symbols")
	ErrCodeTableOverflow       = errors.New("huffman level holds more codes than its width allows")
	ErrAlphabetIndexOutOfRange = errors.New("huffman alphabet index out of range")
	ErrOffsetTableExhausted    = errors.New("huffman code not resolved within 16 levels")
	ErrReservedFieldNonZero    = errors.New("rle reserved header byte is non-zero")
	ErrNilReader               = errors.New("reader is nil")
)

// DecodeError reports a structural failure together with the pass it
// happened in and the input offset the pass had reached.
type DecodeError struct {
	Pass   int   // Zero-based pass index; -1 for the container header.
	Offset int   // Byte offset within the raw pass input.
	Err    error // Underlying sentinel, possibly wrapped with details.
}

func (e *DecodeError) Error() string {
	if e.Pass < 0 {
		return fmt.Sprintf("cmpres: header at offset %d: %v", e.Offset, e.Err)
	}

	return fmt.Sprintf("cmpres: pass %d at offset %d: %v", e.Pass, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Warning is a non-fatal condition noticed while decoding.
type Warning struct {
	Pass   int
	Offset int
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("pass %d at offset %d: %v", w.Pass, w.Offset, w.Err)
}
