/*
Package cmpres decodes the multi-pass RLE/Huffman container used to pack
resource files of a 1990s driving game.

Format: byte 0 with bit 7 set holds the passes count (low 7 bits) and is
followed by a 3-byte final-length hint; with bit 7 clear byte 0 is already
the type byte of the only pass. Each pass is a type byte (1 = RLE,
2 = Huffman), a 3-byte declared output length and the pass payload.
The output of one pass is the input of the next, starting with its own
pass header.

3-byte lengths are a little-endian 16-bit remainder followed by a
multiplier byte: value = word + 0x10000*byte.

RLE pass: 3-byte source length, reserved byte, escape count (bit 7 skips
the sequence stage), escape bytes. The sequence stage expands patterns
enclosed by the second escape byte; the run stage expands single-byte runs.

Huffman pass: levels byte, leaf counts per code width, alphabet. Codes are
canonical; widths up to 8 resolve through a 256-slot prefix table, wider
codes are extended bit by bit up to width 16.

Use Decompress(src, opts) with nil for default (all passes, no logging).
Use DecompressFromReader(r, opts) to decode a blob read from a stream.
Use ReadHeader(src) to inspect a container without decoding it.
Use DetectCompression(sizeField, storedSize) to tell compressed archive entries from raw ones.
Use NewCache(size, opts) to memoize decoded blobs.

# Examples

Decompress with default options:

	out, warnings, err := cmpres.Decompress(blob, nil)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Print(w)
	}

Stop after the first pass to look at the intermediate buffer:

	mid, _, err := cmpres.Decompress(blob, cmpres.PassLimitOptions(1))

Log per-pass diagnostics:

	opts := &cmpres.Options{Logger: slog.Default()}
	out, _, err := cmpres.Decompress(blob, opts)

Inspect an archive entry before decoding:

	field, _ := cmpres.SizeField(entry)
	if typ, size, ok := cmpres.DetectCompression(field, len(entry)); ok {
		log.Printf("compressed entry: %s pass, %d bytes", typ, size)
		out, _, err := cmpres.Decompress(entry, nil)
		if err != nil {
			return err
		}
		log.Printf("decoded %d bytes", len(out))
	}
*/
package cmpres
