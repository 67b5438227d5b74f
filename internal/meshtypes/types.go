// Package meshtypes defines the small set of index types shared by every
// layer of the codec (corner table, traverser, attribute pipeline). Keeping
// them in a leaf package lets internal/corner, internal/edgebreaker,
// internal/traversal, internal/predict, and the root package all refer to
// the same index identity without import cycles.
package meshtypes

// VertexIdx identifies a vertex in the shared (position) index space.
type VertexIdx int32

// FaceIdx identifies a triangular face.
type FaceIdx int32

// CornerIdx identifies a (face, corner-within-face) pair, materialized as
// face*3 + cornerInFace.
type CornerIdx int32

// ValueIdx identifies a per-attribute unique value (distinct from VertexIdx
// when an attribute has a seam across some edge).
type ValueIdx int32

// Invalid is the sentinel for "no such index". Go has no clean unsigned
// max-value idiom as unobtrusive as Rust's u32::MAX, so -1 is used
// throughout and checked explicitly; this mirrors how the teacher's own
// decoder treats -1/nil as "no active tile" sentinels.
const Invalid = -1

// Face returns the face containing corner c.
func (c CornerIdx) Face() FaceIdx { return FaceIdx(int32(c) / 3) }

// LocalIndex returns c's position within its face, in [0, 3).
func (c CornerIdx) LocalIndex() int { return int(int32(c) % 3) }

// Valid reports whether c refers to an actual corner.
func (c CornerIdx) Valid() bool { return c != Invalid }

// Valid reports whether v refers to an actual vertex.
func (v VertexIdx) Valid() bool { return v != Invalid }

// Valid reports whether f refers to an actual face.
func (f FaceIdx) Valid() bool { return f != Invalid }

// CornerOf builds the corner index for (face, localIndex).
func CornerOf(face FaceIdx, localIndex int) CornerIdx {
	return CornerIdx(int32(face)*3 + int32(localIndex))
}

// Next returns the next corner within the same face (c -> c+1 mod 3).
func Next(c CornerIdx) CornerIdx {
	return CornerOf(c.Face(), (c.LocalIndex()+1)%3)
}

// Previous returns the previous corner within the same face (c -> c+2 mod 3).
func Previous(c CornerIdx) CornerIdx {
	return CornerOf(c.Face(), (c.LocalIndex()+2)%3)
}
