package rans

import (
	"testing"

	"github.com/go-draco/draco/internal/bio"
)

func TestEncodeDecodeBits_Roundtrip(t *testing.T) {
	bits := []uint32{0, 0, 1, 0, 1, 1, 1, 0, 0, 0, 1}
	payload, err := EncodeBits(bits, 200)
	if err != nil {
		t.Fatalf("EncodeBits: %v", err)
	}
	got, err := DecodeBits(payload, 200, len(bits))
	if err != nil {
		t.Fatalf("DecodeBits: %v", err)
	}
	for i := range bits {
		if got[i] != bits[i] {
			t.Errorf("bit %d: got %d, want %d", i, got[i], bits[i])
		}
	}
}

func TestEncodeBits_RejectsZeroProbability(t *testing.T) {
	if _, err := EncodeBits([]uint32{0, 1}, 0); err == nil {
		t.Fatal("expected ErrInvalidZeroProbability")
	}
}

func TestFreqTable_Roundtrip(t *testing.T) {
	counts := []uint32{10, 0, 5, 1, 20}
	table, err := NewFreqTable(counts, 12)
	if err != nil {
		t.Fatalf("NewFreqTable: %v", err)
	}
	total := uint32(0)
	for _, f := range table.Freq {
		total += f
	}
	if total != 1<<12 {
		t.Fatalf("frequencies sum to %d, want %d", total, 1<<12)
	}
	for i, c := range counts {
		if c > 0 && table.Freq[i] == 0 {
			t.Errorf("symbol %d had nonzero count but zero scaled frequency", i)
		}
	}
}

func TestEncodeDecodeSymbols_Roundtrip(t *testing.T) {
	counts := []uint32{10, 0, 5, 1, 20}
	table, err := NewFreqTable(counts, 12)
	if err != nil {
		t.Fatalf("NewFreqTable: %v", err)
	}
	symbols := []uint32{0, 2, 4, 4, 0, 3, 2, 0, 4}
	payload := EncodeSymbols(symbols, table)
	got, err := DecodeSymbols(payload, table, len(symbols))
	if err != nil {
		t.Fatalf("DecodeSymbols: %v", err)
	}
	for i := range symbols {
		if got[i] != symbols[i] {
			t.Errorf("symbol %d: got %d, want %d", i, got[i], symbols[i])
		}
	}
}

func TestFreqTable_WireRoundtrip(t *testing.T) {
	counts := []uint32{3, 3, 3, 0, 7, 7, 1}
	table, err := NewFreqTable(counts, 10)
	if err != nil {
		t.Fatalf("NewFreqTable: %v", err)
	}
	w := bio.NewByteWriter()
	WriteFreqTable(w, table)
	got, err := ReadFreqTable(bio.NewByteReader(w.Bytes()))
	if err != nil {
		t.Fatalf("ReadFreqTable: %v", err)
	}
	if got.Precision != table.Precision {
		t.Errorf("Precision = %d, want %d", got.Precision, table.Precision)
	}
	for i := range table.Freq {
		if got.Freq[i] != table.Freq[i] {
			t.Errorf("Freq[%d] = %d, want %d", i, got.Freq[i], table.Freq[i])
		}
	}
}
