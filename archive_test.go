package cmpres

import "testing"

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		name     string
		field    uint32
		stored   int
		wantType PassType
		wantSize int
		wantOK   bool
	}{
		{name: "raw entry", field: 1234, stored: 1234, wantOK: false},
		{name: "rle", field: 1 | 100<<8, stored: 40, wantType: PassRLE, wantSize: 100, wantOK: true},
		{name: "huffman", field: 2 | 0x012345<<8, stored: 9000, wantType: PassHuffman, wantSize: 0x012345, wantOK: true},
		{name: "multi-pass count", field: 0x82 | 500<<8, stored: 120, wantType: PassHuffman, wantSize: 500, wantOK: true},
		{name: "unknown type", field: 3 | 100<<8, stored: 40, wantType: 3, wantSize: 100, wantOK: false},
		{name: "zero size", field: 1, stored: 40, wantType: PassRLE, wantSize: 0, wantOK: false},
		{name: "too short", field: 1 | 100<<8, stored: 3, wantType: PassRLE, wantSize: 100, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, size, ok := DetectCompression(tt.field, tt.stored)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK && tt.wantSize == 0 && tt.wantType == 0 {
				return
			}
			if typ != tt.wantType || size != tt.wantSize {
				t.Fatalf("got (%v, %d), want (%v, %d)", typ, size, tt.wantType, tt.wantSize)
			}
		})
	}
}

func TestSizeFieldFromBlob(t *testing.T) {
	src := rlePass(3, 0, 0x81, []byte{0xFF}, []byte{0xFF, 0x03, 0x41})
	field, ok := SizeField(src)
	if !ok {
		t.Fatal("blob too short")
	}

	typ, size, ok := DetectCompression(field, len(src))
	if !ok || typ != PassRLE || size != 3 {
		t.Fatalf("got (%v, %d, %v)", typ, size, ok)
	}

	if _, ok := SizeField([]byte{1, 2, 3}); ok {
		t.Fatal("3 bytes cannot hold a size field")
	}
}
