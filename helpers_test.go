package cmpres

// len3 encodes n in the 3-byte remainder+multiplier length format.
func len3(n int) []byte {
	return []byte{byte(n), byte(n >> 8), byte(n >> 16)}
}

// rlePass builds a single-pass RLE blob.
func rlePass(declared int, reserved, escLen byte, esc, payload []byte) []byte {
	b := []byte{byte(PassRLE)}
	b = append(b, len3(declared)...)
	b = append(b, len3(len(payload))...)
	b = append(b, reserved, escLen)
	b = append(b, esc...)

	return append(b, payload...)
}

// huffPass builds a single-pass Huffman blob.
func huffPass(declared int, levels byte, leaves, alphabet, payload []byte) []byte {
	b := []byte{byte(PassHuffman)}
	b = append(b, len3(declared)...)
	b = append(b, levels)
	b = append(b, leaves...)
	b = append(b, alphabet...)

	return append(b, payload...)
}

// multiPass wraps a first pass (type byte included) in a multi-pass container.
func multiPass(passes, hint int, first []byte) []byte {
	b := []byte{byte(MultiPassFlag | passes)}
	b = append(b, len3(hint)...)

	return append(b, first...)
}
