package portabilize

import "github.com/go-draco/draco/internal/bio"

// ComponentType enumerates the attribute component types the wire format
// recognizes for the ToBits pass-through path.
type ComponentType uint8

const (
	I8 ComponentType = iota
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	F32
	F64
)

// ByteWidth returns the on-wire size of one component of t.
func ByteWidth(t ComponentType) int {
	switch t {
	case I8, U8:
		return 1
	case I16, U16:
		return 2
	case I32, U32, F32:
		return 4
	default:
		return 8
	}
}

// WriteToBits writes v's components verbatim as little-endian bytes of
// type t; no transformation is applied, matching §4.8's ToBits mode for
// attributes that are already integral (or stored at full precision).
func WriteToBits(w *bio.ByteWriter, t ComponentType, v []uint64) {
	for _, c := range v {
		switch ByteWidth(t) {
		case 1:
			w.WriteU8(uint8(c))
		case 2:
			w.WriteU16(uint16(c))
		case 4:
			w.WriteU32(uint32(c))
		default:
			w.WriteU64(c)
		}
	}
}

// ReadToBits reads n components of type t.
func ReadToBits(r *bio.ByteReader, t ComponentType, n int) ([]uint64, error) {
	out := make([]uint64, n)
	for i := range out {
		switch ByteWidth(t) {
		case 1:
			v, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			out[i] = uint64(v)
		case 2:
			v, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			out[i] = uint64(v)
		case 4:
			v, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			out[i] = uint64(v)
		default:
			v, err := r.ReadU64()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
	}
	return out, nil
}
