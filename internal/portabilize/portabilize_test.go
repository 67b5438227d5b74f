package portabilize

import (
	"math"
	"testing"

	"github.com/go-draco/draco/internal/bio"
)

func TestRectangleQuantizer_Roundtrip(t *testing.T) {
	values := [][]float64{
		{0, 0, 0},
		{1, 2, 3},
		{-1, 0.5, 10},
	}
	q, err := NewRectangleQuantizer(values, 3, 0.01)
	if err != nil {
		t.Fatalf("NewRectangleQuantizer: %v", err)
	}
	for _, v := range values {
		qv, err := q.Quantize(v)
		if err != nil {
			t.Fatalf("Quantize(%v): %v", v, err)
		}
		got := q.Dequantize(qv)
		for i := range v {
			if math.Abs(got[i]-v[i]) > 0.02 {
				t.Errorf("component %d: Dequantize(Quantize(%v)) = %v, want within 0.02 of original", i, v, got)
			}
		}
	}
}

func TestRectangleQuantizer_OutOfRange(t *testing.T) {
	q, err := NewRectangleQuantizer([][]float64{{0}, {1}}, 1, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := q.Quantize([]float64{5}); err == nil {
		t.Fatal("expected ErrOutOfRange")
	}
}

func TestOctahedralQuantizer_Roundtrip(t *testing.T) {
	q, err := NewOctahedralQuantizer(10)
	if err != nil {
		t.Fatalf("NewOctahedralQuantizer: %v", err)
	}
	vectors := [][3]float64{
		{0, 0, 1},
		{0, 0, -1},
		{1, 0, 0},
		{0, 1, 0},
		{0.577, 0.577, 0.577},
		{-0.577, -0.577, 0.577},
	}
	for _, v := range vectors {
		x, y := q.Quantize(v)
		got := q.Dequantize(x, y)
		dot := v[0]*got[0] + v[1]*got[1] + v[2]*got[2]
		if dot < 0.99 {
			t.Errorf("Dequantize(Quantize(%v)) = %v, cosine similarity %v too low", v, got, dot)
		}
	}
}

func TestToBits_Roundtrip(t *testing.T) {
	for _, ct := range []ComponentType{I8, U8, I16, U16, I32, U32, I64, U64} {
		w := bio.NewByteWriter()
		vals := []uint64{0, 1, 42, 255}
		WriteToBits(w, ct, vals)
		got, err := ReadToBits(bio.NewByteReader(w.Bytes()), ct, len(vals))
		if err != nil {
			t.Fatalf("ReadToBits(%v): %v", ct, err)
		}
		mask := uint64(1)<<(8*uint(ByteWidth(ct))) - 1
		if ByteWidth(ct) == 8 {
			mask = ^uint64(0)
		}
		for i, v := range vals {
			if got[i] != v&mask {
				t.Errorf("component type %v, value %d: got %d, want %d", ct, i, got[i], v&mask)
			}
		}
	}
}
