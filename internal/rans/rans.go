// Package rans implements the two range-based arithmetic coders used by the
// mesh codec: a binary coder (rabs) for single-probability bitstreams
// (start-face configs) and a multi-symbol coder for entropy-coding quantized
// attribute residuals and their bit-length tags. Attribute seam bitmaps are
// not coded here: the root package writes them as raw bits.
//
// Both coders share the same renormalization discipline: encoding consumes
// its input in the reverse of decode order and buffers its output bytes in
// memory (it is never streamed incrementally), so that a decoder
// reading the payload forward reproduces symbols in the original order. This
// follows the rANS-family convention used by ryg_rans and its derivatives.
package rans

import "encoding/binary"

// stateLowerBound is the renormalization floor for the 32-bit rANS state.
// It is a multiple of 2^precision for every precision this package supports
// (up to 20 bits), which keeps the encoder's and the decoder's byte-wise
// renormalization in step; one encode step can emit more than one byte when
// the symbol's frequency is small.
const stateLowerBound = uint32(1) << 23

// headerBytes is the width of the serialized final encoder state that
// prefixes every rANS payload; the decoder reads these first, per the wire
// format's "decoder initializes state from the first 4 bytes of the
// payload" rule.
const headerBytes = 4

func putHeader(state uint32) []byte {
	var hdr [headerBytes]byte
	binary.LittleEndian.PutUint32(hdr[:], state)
	return hdr[:]
}

func readHeader(data []byte) (uint32, error) {
	if len(data) < headerBytes {
		return 0, ErrShortStream
	}
	return binary.LittleEndian.Uint32(data[:headerBytes]), nil
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
