package cmpres

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRLEKindOneRun(t *testing.T) {
	src := rlePass(3, 0x00, 0x81, []byte{0xFF}, []byte{0xFF, 0x03, 0x41})
	out, warnings, err := Decompress(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if !bytes.Equal(out, []byte{0x41, 0x41, 0x41}) {
		t.Fatalf("got % x", out)
	}
}

func TestRLEReservedFieldWarns(t *testing.T) {
	src := rlePass(3, 0x07, 0x81, []byte{0xFF}, []byte{0xFF, 0x03, 0x41})
	out, warnings, err := Decompress(src, nil)
	if err != nil {
		t.Fatalf("reserved byte must not be fatal: %v", err)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0].Err, ErrReservedFieldNonZero) {
		t.Fatalf("want one ErrReservedFieldNonZero warning, got %v", warnings)
	}
	if warnings[0].Pass != 0 {
		t.Fatalf("warning pass %d", warnings[0].Pass)
	}
	if !bytes.Equal(out, []byte{0x41, 0x41, 0x41}) {
		t.Fatalf("got % x", out)
	}
}

func TestRLEDuplicateEscapeKeepsLowestIndex(t *testing.T) {
	esc := []byte{0xF0, 0xF1, 0xF0}
	h, err := readRLEHeader(newByteCursor(append([]byte{0, 0, 0, 0, 0x83}, esc...)))
	if err != nil {
		t.Fatal(err)
	}
	if h.lookup[0xF0] != 1 {
		t.Fatalf("lookup[0xF0] = %d, want 1", h.lookup[0xF0])
	}
	if h.lookup[0xF1] != 2 {
		t.Fatalf("lookup[0xF1] = %d, want 2", h.lookup[0xF1])
	}

	// As role 1 the run is count 2 of 0x41; as role 3 it would overrun.
	src := rlePass(2, 0, 0x83, esc, []byte{0xF0, 0x02, 0x41})
	out, _, err := Decompress(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte{0x41, 0x41}) {
		t.Fatalf("got % x", out)
	}
}

func TestRLEWordCountRun(t *testing.T) {
	src := rlePass(256, 0, 0x83, []byte{0xF0, 0xF1, 0xF2}, []byte{0xF2, 0x00, 0x01, 0x5A})
	out, _, err := Decompress(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, bytes.Repeat([]byte{0x5A}, 256)) {
		t.Fatalf("got %d bytes, first % x", len(out), out[:min(8, len(out))])
	}
}

func TestRLEImplicitCountRuns(t *testing.T) {
	// esc[4] has role 5: four copies. esc[1] has role 2: a single copy,
	// which is how an escape value is stored literally.
	esc := []byte{0xF0, 0xF1, 0xF2, 0xF3, 0xE0}
	payload := []byte{0x41, 0xE0, 0x42, 0xF1, 0xF1, 0x43}
	src := rlePass(7, 0, 0x85, esc, payload)
	out, _, err := Decompress(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x41, 0x42, 0x42, 0x42, 0x42, 0xF1, 0x43}
	if !bytes.Equal(out, want) {
		t.Fatalf("got % x, want % x", out, want)
	}
}

func TestRLESequenceStage(t *testing.T) {
	esc := []byte{0xF0, 0xF5}
	payload := []byte{0x41, 0xF5, 0x61, 0x62, 0xF5, 0x03, 0x42}
	out, _, err := Decompress(rlePass(8, 0, 0x02, esc, payload), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "AabababB" {
		t.Fatalf("got %q", out)
	}
}

func TestRLESequenceThenRuns(t *testing.T) {
	esc := []byte{0xF0, 0xF5}
	payload := []byte{0x41, 0xF5, 0x61, 0x62, 0xF5, 0x02, 0xF0, 0x03, 0x43}
	out, _, err := Decompress(rlePass(8, 0, 0x02, esc, payload), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "AababCCC" {
		t.Fatalf("got %q", out)
	}
}

func TestRLESequenceWithoutSequenceEscape(t *testing.T) {
	// One escape only: the sequence stage passes bytes through.
	payload := []byte{0x41, 0xFF, 0x02, 0x42}
	out, _, err := Decompress(rlePass(3, 0, 0x01, []byte{0xFF}, payload), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "ABB" {
		t.Fatalf("got %q", out)
	}
}

func TestRLEUnterminatedSequence(t *testing.T) {
	esc := []byte{0xF0, 0xF5}
	_, _, err := Decompress(rlePass(5, 0, 0x02, esc, []byte{0x41, 0xF5, 0x61, 0x62}), nil)
	if !errors.Is(err, ErrUnterminatedSequence) {
		t.Fatalf("want ErrUnterminatedSequence, got %v", err)
	}

	var de *DecodeError
	if !errors.As(err, &de) || de.Pass != 0 {
		t.Fatalf("want DecodeError for pass 0, got %v", err)
	}
}

func TestRLEBufferOverrun(t *testing.T) {
	src := rlePass(3, 0, 0x81, []byte{0xFF}, []byte{0xFF, 0x05, 0x41})
	_, _, err := Decompress(src, nil)
	if !errors.Is(err, ErrBufferOverrun) {
		t.Fatalf("want ErrBufferOverrun, got %v", err)
	}
}

func TestRLESequenceOverrun(t *testing.T) {
	esc := []byte{0xF0, 0xF5}
	payload := []byte{0xF5, 0x61, 0x62, 0xF5, 0x09}
	_, _, err := Decompress(rlePass(6, 0, 0x02, esc, payload), nil)
	if !errors.Is(err, ErrBufferOverrun) {
		t.Fatalf("want ErrBufferOverrun, got %v", err)
	}
}

func TestRLETruncatedRun(t *testing.T) {
	src := rlePass(3, 0, 0x81, []byte{0xFF}, []byte{0xFF, 0x03})
	_, _, err := Decompress(src, nil)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("want ErrUnexpectedEOF, got %v", err)
	}
}

func TestRLETooManyEscapes(t *testing.T) {
	esc := bytes.Repeat([]byte{0xFE}, 11)
	_, _, err := Decompress(rlePass(1, 0, 0x8B, esc, []byte{0x00}), nil)
	if !errors.Is(err, ErrTooManyEscapes) {
		t.Fatalf("want ErrTooManyEscapes, got %v", err)
	}
}

func TestRLEZeroLength(t *testing.T) {
	out, _, err := Decompress([]byte{byte(PassRLE), 0, 0, 0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d bytes", len(out))
	}
}

func TestRLESequenceStopsWhenFull(t *testing.T) {
	esc := []byte{0xF0, 0xF5}
	out, _, err := Decompress(rlePass(3, 0, 0x02, esc, []byte{1, 2, 3, 4, 5}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte{1, 2, 3}) {
		t.Fatalf("got % x", out)
	}
}

func TestRLESequenceZeroCountEmitsOnce(t *testing.T) {
	esc := []byte{0xF0, 0xF5}
	payload := []byte{0xF5, 'a', 0xF5, 0x00, 'b'}
	out, _, err := Decompress(rlePass(2, 0, 0x02, esc, payload), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "ab" {
		t.Fatalf("got %q", out)
	}
}

func TestRLERunErrorReportsIntermediateOffset(t *testing.T) {
	// The sequence stage copies all four bytes; the run 0xF0 x9 then overruns.
	esc := []byte{0xF0, 0xF5}
	src := rlePass(4, 0, 0x02, esc, []byte{0x41, 0xF0, 0x09, 0x43})
	_, _, err := Decompress(src, nil)
	if !errors.Is(err, ErrBufferOverrun) {
		t.Fatalf("want ErrBufferOverrun, got %v", err)
	}
	if !strings.Contains(err.Error(), "intermediate offset 4") {
		t.Fatalf("message lacks intermediate offset: %v", err)
	}

	var de *DecodeError
	if !errors.As(err, &de) || de.Offset != len(src) {
		t.Fatalf("want raw offset %d, got %v", len(src), err)
	}
}
