// Package predict implements the geometric prediction schemes that turn an
// attribute's already-decoded neighbor values into a guess for the value at
// a corner: no-prediction, mesh-parallelogram, mesh-normal (octahedral
// round-trip), and mesh-texture-coordinate (local 2D embedding).
package predict

import mt "github.com/go-draco/draco/internal/meshtypes"

// Table is the adjacency surface every predictor needs: face-local
// next/previous, the (possibly seam-aware) opposite corner, and the value
// index a corner resolves to. Both corner.Table (wrapped with an identity
// ValueAt) and attrcorner.Table satisfy the shape once paired with a
// ValueAt function.
type Table interface {
	Next(c mt.CornerIdx) mt.CornerIdx
	Previous(c mt.CornerIdx) mt.CornerIdx
	Opposite(c mt.CornerIdx) mt.CornerIdx
}

// ValueAt maps a corner to the value index whose data Values holds.
type ValueAt func(c mt.CornerIdx) mt.ValueIdx

// Values is the decoded-so-far (or to-be-encoded) attribute value store,
// one []int32 of length Components per value index. Predictors only ever
// read values whose index is strictly earlier in traversal order than the
// corner being predicted, which the traverser's visit order guarantees.
type Values struct {
	Data       [][]int32
	Components int
}

func (v *Values) Get(idx mt.ValueIdx) []int32 { return v.Data[idx] }

// Position is a minimal 3-component position lookup predictors that need
// local geometry (mesh-normal, texture-coordinate) read from the position
// attribute's already-quantized or floating values.
type Position interface {
	At(v mt.VertexIdx) [3]float64
}

// Predictor produces a guess for the value at corner c, given everything
// decoded so far. Implementations must be side-effect free and must
// produce byte-identical results on encode and decode.
type Predictor interface {
	Predict(t Table, values *Values, valueAt ValueAt, c mt.CornerIdx) []int32
}
