// Package portabilize maps attribute values to fixed-width integers:
// rectangle-array quantization for general multi-component floats,
// octahedral quantization for unit-vector normals, and a raw pass-through
// for values that are already integral.
package portabilize

import (
	"fmt"
	"math"
)

// RectangleQuantizer quantizes independent components of a value over a
// fixed min/max box, per §4.8's QuantizationRectangleArray.
type RectangleQuantizer struct {
	Min      []float64
	Max      []float64
	UnitSize float64
	sizes    []uint32 // per-component quantization step count
}

// NewRectangleQuantizer computes min/max over values (each a components-long
// slice) and derives per-component quantization sizes from unitSize.
func NewRectangleQuantizer(values [][]float64, components int, unitSize float64) (*RectangleQuantizer, error) {
	if unitSize <= 0 {
		return nil, fmt.Errorf("%w: unit size must be positive", ErrBadBits)
	}
	min := make([]float64, components)
	max := make([]float64, components)
	for i := range min {
		min[i] = math.Inf(1)
		max[i] = math.Inf(-1)
	}
	for _, v := range values {
		for i := 0; i < components; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	sizes := make([]uint32, components)
	for i := 0; i < components; i++ {
		rng := max[i] - min[i]
		size := uint32(math.Ceil(rng * 1.0001 / unitSize))
		if size == 0 {
			size = 1
		}
		sizes[i] = size
	}
	return &RectangleQuantizer{Min: min, Max: max, UnitSize: unitSize, sizes: sizes}, nil
}

// Sizes returns the per-component quantization step counts.
func (q *RectangleQuantizer) Sizes() []uint32 { return q.sizes }

// NewRectangleQuantizerFromSizes rebuilds a quantizer from values written
// to the wire by the encoder (min, max, and the per-component step counts
// it derived), rather than recomputing them from a value set — the shape
// the decoder needs, since it never sees the original float values.
func NewRectangleQuantizerFromSizes(min, max []float64, unitSize float64, sizes []uint32) *RectangleQuantizer {
	return &RectangleQuantizer{Min: min, Max: max, UnitSize: unitSize, sizes: sizes}
}

// Quantize maps v to integers in [0, sizes[i]].
func (q *RectangleQuantizer) Quantize(v []float64) ([]int32, error) {
	out := make([]int32, len(v))
	for i, c := range v {
		if c < q.Min[i] || c > q.Max[i] {
			return nil, fmt.Errorf("%w: component %d value %v outside [%v,%v]", ErrOutOfRange, i, c, q.Min[i], q.Max[i])
		}
		rng := q.Max[i] - q.Min[i]
		if rng == 0 {
			out[i] = 0
			continue
		}
		out[i] = int32(math.Round((c - q.Min[i]) / rng * float64(q.sizes[i])))
	}
	return out, nil
}

// Dequantize reverses Quantize, losslessly up to the quantization step.
func (q *RectangleQuantizer) Dequantize(vq []int32) []float64 {
	out := make([]float64, len(vq))
	for i, c := range vq {
		rng := q.Max[i] - q.Min[i]
		if rng == 0 {
			out[i] = q.Min[i]
			continue
		}
		out[i] = q.Min[i] + float64(c)/float64(q.sizes[i])*rng
	}
	return out
}
