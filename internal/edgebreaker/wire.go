package edgebreaker

import (
	"github.com/go-draco/draco/internal/bio"
	"github.com/go-draco/draco/internal/rans"
)

// WriteConnectivity serializes result onto w in the order described for the
// connectivity section: symbol/S counts, topology splits, the CrLight symbol
// payload (written in reverse of emission order so the decoder recovers
// symbols forward), and the rabs-coded start-face configuration bits.
//
// Two fields not spelled out by name in the informal wire description are
// written here regardless: a varint component count ahead of the start-face
// bits (without it a reader has no way to know how many bits the rabs
// payload below decodes to before decoding it), and a per-component symbol
// count right after it, so Decode can slice the flat symbol stream back into
// per-component spans instead of inferring component boundaries from the
// CLERS grammar's own bracket structure.
func WriteConnectivity(w *bio.ByteWriter, result *Result) error {
	w.WriteVarint(uint64(len(result.Symbols)))

	numS := 0
	for _, s := range result.Symbols {
		if s == SymS {
			numS++
		}
	}
	w.WriteVarint(uint64(numS))

	w.WriteVarint(uint64(len(result.Splits)))
	prevMerge := 0
	for _, sp := range result.Splits {
		w.WriteVarint(zigzag(int64(sp.MergeSymbol - prevMerge)))
		w.WriteVarint(zigzag(int64(sp.MergeSymbol - sp.SourceSymbol)))
		prevMerge = sp.MergeSymbol
	}
	if len(result.Splits) > 0 {
		ow := bio.NewLSBWriter(w)
		for _, sp := range result.Splits {
			bit := uint32(0)
			if sp.Orientation == OrientationRight {
				bit = 1
			}
			ow.WriteBit(bit)
		}
		ow.Flush()
	}

	symBuf := bio.NewByteWriter()
	sw := bio.NewLSBWriter(symBuf)
	for i := len(result.Symbols) - 1; i >= 0; i-- {
		WriteCrLight(sw, result.Symbols[i])
	}
	sw.Flush()
	w.WriteVarint(uint64(symBuf.Len()))
	w.WriteBytes(symBuf.Bytes())

	w.WriteVarint(uint64(len(result.StartInterior)))
	for _, n := range result.ComponentFaceCount {
		w.WriteVarint(uint64(n))
	}
	bits := make([]uint32, len(result.StartInterior))
	ones := 0
	for i, v := range result.StartInterior {
		if v {
			bits[i] = 1
			ones++
		}
	}
	p0 := startConfigZeroProb(len(bits), ones)
	payload, err := rans.EncodeBits(bits, p0)
	if err != nil {
		return err
	}
	w.WriteU8(p0)
	w.WriteVarint(uint64(len(payload)))
	w.WriteBytes(payload)
	return nil
}

// ReadConnectivity is the inverse of WriteConnectivity; it returns the
// symbol stream in true emission order (ready for Decode) and the recovered
// topology splits and start-face flags.
func ReadConnectivity(r *bio.ByteReader) (*Result, error) {
	numSymbols, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadVarint(); err != nil { // numS, not needed to reconstruct
		return nil, err
	}
	numSplits, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	splits := make([]TopologySplit, numSplits)
	prevMerge := 0
	for i := range splits {
		dMerge, err := r.ReadVarint()
		if err != nil {
			return nil, err
		}
		dSrc, err := r.ReadVarint()
		if err != nil {
			return nil, err
		}
		merge := prevMerge + int(unzigzag(dMerge))
		src := merge - int(unzigzag(dSrc))
		splits[i] = TopologySplit{SourceSymbol: src, MergeSymbol: merge}
		prevMerge = merge
	}
	if numSplits > 0 {
		or := bio.NewLSBReader(r)
		for i := range splits {
			bit, err := or.ReadBit()
			if err != nil {
				return nil, err
			}
			if bit != 0 {
				splits[i].Orientation = OrientationRight
			}
		}
	}

	symByteLen, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	symBytes, err := r.ReadBytes(int(symByteLen))
	if err != nil {
		return nil, err
	}
	symReader := bio.NewLSBReader(bio.NewByteReader(symBytes))
	wireOrder := make([]Symbol, numSymbols)
	for i := range wireOrder {
		sym, err := ReadCrLight(symReader)
		if err != nil {
			return nil, err
		}
		wireOrder[i] = sym
	}
	symbols := make([]Symbol, numSymbols)
	for i, s := range wireOrder {
		symbols[len(symbols)-1-i] = s
	}

	numComponents, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	faceCounts := make([]int, numComponents)
	for i := range faceCounts {
		n, err := r.ReadVarint()
		if err != nil {
			return nil, err
		}
		faceCounts[i] = int(n)
	}
	p0, err := r.ReadU8()
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
	bits, err := rans.DecodeBits(payload, p0, int(numComponents))
	if err != nil {
		return nil, err
	}
	startInterior := make([]bool, numComponents)
	for i, b := range bits {
		startInterior[i] = b != 0
	}

	return &Result{
		Symbols:            symbols,
		Splits:             splits,
		StartInterior:      startInterior,
		NumSplitSymbols:    len(splits),
		ComponentFaceCount: faceCounts,
	}, nil
}

func zigzag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func unzigzag(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// startConfigZeroProb picks an 8-bit empirical zero-probability for the
// start-face rabs payload, clamped away from the forbidden 0/256 endpoints.
func startConfigZeroProb(n, ones int) uint8 {
	if n == 0 {
		return 128
	}
	zeros := n - ones
	p := (zeros*256 + n/2) / n
	if p < 1 {
		p = 1
	}
	if p > 255 {
		p = 255
	}
	return uint8(p)
}
