// Package edgebreaker implements the CLERS connectivity codec: the
// traversal that visits every face of a manifold (or bordered-manifold)
// triangle mesh exactly once, emitting a symbol per face, plus the reverse
// (Spirale Reversi) reconstruction used by the decoder.
package edgebreaker

import mt "github.com/go-draco/draco/internal/meshtypes"

// Symbol is one letter of the CLERS alphabet.
type Symbol uint8

const (
	SymC Symbol = iota
	SymS
	SymL
	SymR
	SymE
)

// String returns the symbol's letter.
func (s Symbol) String() string {
	switch s {
	case SymC:
		return "C"
	case SymS:
		return "S"
	case SymL:
		return "L"
	case SymR:
		return "R"
	case SymE:
		return "E"
	default:
		return "?"
	}
}

// crLightSecondThird gives the (second, third) transmitted bits for the
// non-C symbols under the CrLight code. C is always a lone 0 bit; every
// other symbol starts with a 1 bit followed by these two.
var crLightSecondThird = map[Symbol][2]uint32{
	SymS: {0, 0},
	SymR: {0, 1},
	SymL: {1, 0},
	SymE: {1, 1},
}

// WriteCrLight appends sym's CrLight bit code to w, least-significant-bit
// first, per the wire format (C=0 one bit; S=001, L=011, R=101, E=111 as
// three-bit codes, transmitted LSB-first so the first bit out is always the
// low bit of the 3-bit pattern).
func WriteCrLight(w BitWriter, sym Symbol) {
	if sym == SymC {
		w.WriteBit(0)
		return
	}
	w.WriteBit(1)
	bits := crLightSecondThird[sym]
	w.WriteBit(bits[0])
	w.WriteBit(bits[1])
}

// ReadCrLight reads one CrLight-coded symbol from r.
func ReadCrLight(r BitReader) (Symbol, error) {
	first, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if first == 0 {
		return SymC, nil
	}
	b2, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	b3, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	switch {
	case b2 == 0 && b3 == 0:
		return SymS, nil
	case b2 == 0 && b3 == 1:
		return SymR, nil
	case b2 == 1 && b3 == 0:
		return SymL, nil
	default:
		return SymE, nil
	}
}

// BitWriter is the minimal write side used by WriteCrLight; satisfied by
// *bio.LSBWriter.
type BitWriter interface {
	WriteBit(bit uint32)
}

// BitReader is the minimal read side used by ReadCrLight; satisfied by
// *bio.LSBReader.
type BitReader interface {
	ReadBit() (uint32, error)
}

// TopologySplit records a handle: a later S symbol whose right branch
// rejoins a face that an earlier split already pushed onto the stack.
type TopologySplit struct {
	// SourceSymbol is the index of the S symbol that created the split.
	SourceSymbol int
	// MergeSymbol is the index of the symbol (E, L, R, or a later S) whose
	// visit discovers the rejoin.
	MergeSymbol int
	// Orientation records which side of the merge symbol's corner the
	// split face was found on.
	Orientation Orientation
}

// Orientation distinguishes which side of a merge a topology split rejoins
// from.
type Orientation uint8

const (
	OrientationLeft Orientation = iota
	OrientationRight
)

// VertexIdx, FaceIdx, CornerIdx aliases kept local for readability in this
// package's many traversal-heavy functions.
type (
	VertexIdx = mt.VertexIdx
	FaceIdx   = mt.FaceIdx
	CornerIdx = mt.CornerIdx
)
