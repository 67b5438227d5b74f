// Package symbolcoding implements the two residual entropy-coding paths
// attribute values go through after prediction and transform: length-coded
// (bit-length tagged via rANS, value bits written raw) and direct-coded
// (the value itself rANS-coded against a full frequency table).
package symbolcoding

import (
	"errors"
	"fmt"

	"github.com/go-draco/draco/internal/bio"
	"github.com/go-draco/draco/internal/rans"
)

// ErrBitLengthOverflow is returned when a value needs more than 32 bits.
var ErrBitLengthOverflow = errors.New("symbolcoding: value needs more than 32 bits")

const lengthPrecision = 12 // rANS precision for the 5-bit length alphabet

// bitLength returns ceil(log2(v+1)), i.e. the number of bits needed to
// write v (0 needs 0 bits).
func bitLength(v uint32) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

// EncodeLengthCoded writes values using the LengthCoded path: a rANS-coded
// stream of bit-lengths (5-bit alphabet, precision 12) followed by the raw
// value bits themselves, LSB-first, for every value whose length is > 0.
func EncodeLengthCoded(w *bio.ByteWriter, values []uint32) error {
	lengths := make([]uint32, len(values))
	counts := make([]uint32, 33)
	for i, v := range values {
		l := bitLength(v)
		if l > 32 {
			return fmt.Errorf("%w: value %d", ErrBitLengthOverflow, v)
		}
		lengths[i] = uint32(l)
		counts[l]++
	}
	table, err := rans.NewFreqTable(counts, lengthPrecision)
	if err != nil {
		return err
	}
	rans.WriteFreqTable(w, table)
	payload := rans.EncodeSymbols(lengths, table)
	w.WriteVarint(uint64(len(payload)))
	w.WriteBytes(payload)

	bitsBuf := bio.NewByteWriter()
	bw := bio.NewLSBWriter(bitsBuf)
	for i, v := range values {
		l := lengths[i]
		if l > 0 {
			bw.WriteBits(uint64(v), uint(l))
		}
	}
	bw.Flush()
	w.WriteVarint(uint64(bitsBuf.Len()))
	w.WriteBytes(bitsBuf.Bytes())
	return nil
}

// DecodeLengthCoded reverses EncodeLengthCoded for n values.
func DecodeLengthCoded(r *bio.ByteReader, n int) ([]uint32, error) {
	table, err := rans.ReadFreqTable(r)
	if err != nil {
		return nil, err
	}
	symLen, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	symBytes, err := r.ReadBytes(int(symLen))
	if err != nil {
		return nil, err
	}
	lengths, err := rans.DecodeSymbols(symBytes, table, n)
	if err != nil {
		return nil, err
	}

	bitsLen, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	bitsBytes, err := r.ReadBytes(int(bitsLen))
	if err != nil {
		return nil, err
	}
	br := bio.NewLSBReader(bio.NewByteReader(bitsBytes))
	values := make([]uint32, n)
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		v, err := br.ReadBits(uint(l))
		if err != nil {
			return nil, err
		}
		values[i] = uint32(v)
	}
	return values, nil
}

// precisionForBits is the fixed N -> P table DirectCoded uses to pick the
// rANS precision for a given symbol bit-width.
func precisionForBits(n int) uint {
	switch {
	case n <= 10:
		return 12
	case n <= 14:
		return 15
	case n <= 16:
		return 17
	default:
		return 20
	}
}

// EncodeDirectCoded writes values using the DirectCoded path: a bit-width
// byte (1..18), a full frequency table over [0, 2^bits), and the rANS-coded
// symbol stream.
func EncodeDirectCoded(w *bio.ByteWriter, values []uint32, bits int) error {
	if bits < 1 || bits > 18 {
		return fmt.Errorf("symbolcoding: bit width %d out of [1,18]", bits)
	}
	alphabet := 1 << uint(bits)
	counts := make([]uint32, alphabet)
	for _, v := range values {
		counts[v]++
	}
	precision := precisionForBits(bits)
	table, err := rans.NewFreqTable(counts, precision)
	if err != nil {
		return err
	}
	w.WriteU8(uint8(bits))
	rans.WriteFreqTable(w, table)
	payload := rans.EncodeSymbols(values, table)
	w.WriteVarint(uint64(len(payload)))
	w.WriteBytes(payload)
	return nil
}

// DecodeDirectCoded reverses EncodeDirectCoded for n values.
func DecodeDirectCoded(r *bio.ByteReader, n int) ([]uint32, error) {
	if _, err := r.ReadU8(); err != nil { // bits, not needed beyond the table itself
		return nil, err
	}
	table, err := rans.ReadFreqTable(r)
	if err != nil {
		return nil, err
	}
	payloadLen, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	payload, err := r.ReadBytes(int(payloadLen))
	if err != nil {
		return nil, err
	}
	return rans.DecodeSymbols(payload, table, n)
}
