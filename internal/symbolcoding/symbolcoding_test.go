package symbolcoding

import (
	"testing"

	"github.com/go-draco/draco/internal/bio"
)

func TestLengthCoded_Roundtrip(t *testing.T) {
	values := []uint32{0, 1, 2, 3, 255, 65535, 1 << 20, 0, 0, 7}
	w := bio.NewByteWriter()
	if err := EncodeLengthCoded(w, values); err != nil {
		t.Fatalf("EncodeLengthCoded: %v", err)
	}
	got, err := DecodeLengthCoded(bio.NewByteReader(w.Bytes()), len(values))
	if err != nil {
		t.Fatalf("DecodeLengthCoded: %v", err)
	}
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("value %d: got %d, want %d", i, got[i], values[i])
		}
	}
}

func TestLengthCoded_Overflow(t *testing.T) {
	w := bio.NewByteWriter()
	err := EncodeLengthCoded(w, []uint32{1 << 31})
	if err == nil {
		t.Fatal("expected ErrBitLengthOverflow")
	}
}

func TestDirectCoded_Roundtrip(t *testing.T) {
	bits := 6
	values := []uint32{0, 1, 2, 63, 63, 10, 10, 10, 5}
	w := bio.NewByteWriter()
	if err := EncodeDirectCoded(w, values, bits); err != nil {
		t.Fatalf("EncodeDirectCoded: %v", err)
	}
	got, err := DecodeDirectCoded(bio.NewByteReader(w.Bytes()), len(values))
	if err != nil {
		t.Fatalf("DecodeDirectCoded: %v", err)
	}
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("value %d: got %d, want %d", i, got[i], values[i])
		}
	}
}

func TestBitLength(t *testing.T) {
	cases := map[uint32]int{0: 0, 1: 1, 2: 2, 3: 2, 4: 3, 255: 8, 256: 9}
	for v, want := range cases {
		if got := bitLength(v); got != want {
			t.Errorf("bitLength(%d) = %d, want %d", v, got, want)
		}
	}
}
