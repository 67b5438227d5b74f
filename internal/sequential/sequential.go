// Package sequential implements the Sequential connectivity path the
// container format's encoder_method byte reserves (value 0) alongside
// Edgebreaker (value 1). It is not driven by any traversal order: faces are
// written and read back in their original order, each as three varint
// vertex indices. The root package does not use it: Encode always writes
// the Edgebreaker method and Decode rejects method 0.
package sequential

import (
	"github.com/go-draco/draco/internal/bio"
	mt "github.com/go-draco/draco/internal/meshtypes"
)

// Encode writes faces verbatim: a varint face count followed by three
// varint vertex indices per face, in input order.
func Encode(w *bio.ByteWriter, faces [][3]mt.VertexIdx) {
	w.WriteVarint(uint64(len(faces)))
	for _, f := range faces {
		w.WriteVarint(uint64(f[0]))
		w.WriteVarint(uint64(f[1]))
		w.WriteVarint(uint64(f[2]))
	}
}

// Decode reverses Encode.
func Decode(r *bio.ByteReader) ([][3]mt.VertexIdx, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	faces := make([][3]mt.VertexIdx, n)
	for i := range faces {
		for k := 0; k < 3; k++ {
			v, err := r.ReadVarint()
			if err != nil {
				return nil, err
			}
			faces[i][k] = mt.VertexIdx(v)
		}
	}
	return faces, nil
}
