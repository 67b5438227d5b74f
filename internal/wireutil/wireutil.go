// Package wireutil holds small wire-format helpers shared by the root
// package's encoder and decoder that don't belong to any single codec
// layer: float64 fields and raw (non-entropy-coded) bit vectors.
package wireutil

import (
	"math"

	"github.com/go-draco/draco/internal/bio"
)

// WriteF64 writes v as 8 raw little-endian bytes.
func WriteF64(w *bio.ByteWriter, v float64) {
	w.WriteU64(math.Float64bits(v))
}

// ReadF64 reads a value written by WriteF64.
func ReadF64(r *bio.ByteReader) (float64, error) {
	bits, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// WriteBoolBits packs bits as a varint count followed by one raw (not
// entropy-coded) bit per entry, LSB-first. Used for seam bitmaps: these are
// small and not worth a frequency table.
func WriteBoolBits(w *bio.ByteWriter, bits []bool) {
	w.WriteVarint(uint64(len(bits)))
	bw := bio.NewLSBWriter(w)
	for _, b := range bits {
		if b {
			bw.WriteBit(1)
		} else {
			bw.WriteBit(0)
		}
	}
	bw.Flush()
}

// ReadBoolBits reverses WriteBoolBits.
func ReadBoolBits(r *bio.ByteReader) ([]bool, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	out := make([]bool, n)
	br := bio.NewLSBReader(r)
	for i := range out {
		bit, err := br.ReadBit()
		if err != nil {
			return nil, err
		}
		out[i] = bit != 0
	}
	return out, nil
}
