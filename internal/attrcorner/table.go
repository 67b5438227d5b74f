// Package attrcorner refines the shared corner table for a single
// attribute: it marks corners whose edge crosses an attribute value seam
// and overrides Opposite at those corners to Invalid, so prediction never
// walks across a discontinuity.
package attrcorner

import (
	"github.com/go-draco/draco/internal/corner"
	mt "github.com/go-draco/draco/internal/meshtypes"
)

// Table is a read-only view that layers seam information on top of a shared
// *corner.Table. It is built once (encode side, from the attribute's
// per-corner value indices) or reconstructed from a seam bitmap (decode
// side) and never mutated afterwards, so it is safe to share by reference
// across everything that predicts this attribute.
type Table struct {
	base *corner.Table
	// seam[c] is true when c's edge is a seam for this attribute: at one of
	// the edge's two endpoints, the value index seen from c's face differs
	// from the one seen from opposite(c)'s face.
	seam []bool
}

// Base returns the underlying universal corner table.
func (t *Table) Base() *corner.Table { return t.base }

// Next delegates to the base table (face-local adjacency never changes).
func (t *Table) Next(c mt.CornerIdx) mt.CornerIdx { return t.base.Next(c) }

// Previous delegates to the base table.
func (t *Table) Previous(c mt.CornerIdx) mt.CornerIdx { return t.base.Previous(c) }

// Vertex delegates to the base table.
func (t *Table) Vertex(c mt.CornerIdx) mt.VertexIdx { return t.base.Vertex(c) }

// NumFaces delegates to the base table; seams never change the face count.
func (t *Table) NumFaces() int { return t.base.NumFaces() }

// IsSeam reports whether c's edge is a seam for this attribute.
func (t *Table) IsSeam(c mt.CornerIdx) bool {
	if !c.Valid() {
		return false
	}
	return t.seam[c]
}

// Opposite returns the base table's opposite corner unless c is a seam
// corner, in which case it returns Invalid — seams behave exactly like
// mesh boundaries for this attribute's traversal and prediction.
func (t *Table) Opposite(c mt.CornerIdx) mt.CornerIdx {
	if !c.Valid() {
		return mt.Invalid
	}
	if t.seam[c] {
		return mt.Invalid
	}
	return t.base.Opposite(c)
}

// SwingRight mirrors corner.Table.SwingRight but stops at seams.
func (t *Table) SwingRight(c mt.CornerIdx) mt.CornerIdx {
	o := t.Opposite(t.Previous(c))
	if !o.Valid() {
		return mt.Invalid
	}
	return t.Previous(o)
}

// SwingLeft mirrors corner.Table.SwingLeft but stops at seams.
func (t *Table) SwingLeft(c mt.CornerIdx) mt.CornerIdx {
	o := t.Opposite(t.Next(c))
	if !o.Valid() {
		return mt.Invalid
	}
	return t.Next(o)
}

// ValueAt maps a corner to the attribute's value index. Passed in by the
// builder so this package stays attribute-type agnostic.
type ValueAt func(c mt.CornerIdx) mt.ValueIdx

// Build scans every interior edge once and marks seam corners: an edge
// (c, opposite(c)) is a seam when the attribute value seen from c's face at
// the edge's two endpoints doesn't match the value seen from the opposite
// face at the same two (mesh) vertices.
func Build(base *corner.Table, valueAt ValueAt) *Table {
	seam := make([]bool, base.NumCorners())
	for c := 0; c < base.NumCorners(); c++ {
		ci := mt.CornerIdx(c)
		o := base.Opposite(ci)
		if !o.Valid() || seam[ci] {
			continue
		}
		// The shared edge endpoints as seen from c are next(c)/previous(c);
		// from o they are next(o)/previous(o), in reversed winding.
		if valueAt(base.Next(ci)) != valueAt(base.Previous(o)) ||
			valueAt(base.Previous(ci)) != valueAt(base.Next(o)) {
			seam[ci] = true
			seam[o] = true
		}
	}
	return &Table{base: base, seam: seam}
}

// FromSeamBits reconstructs a Table from a seam bit per interior edge, read
// in the same traversal order the encoder wrote them in. visitOrder lists
// the interior corners in wire order; bits[i] tells whether visitOrder[i]
// is a seam (its opposite is marked symmetrically).
func FromSeamBits(base *corner.Table, visitOrder []mt.CornerIdx, bits []uint32) *Table {
	seam := make([]bool, base.NumCorners())
	for i, c := range visitOrder {
		if bits[i] != 0 {
			seam[c] = true
			if o := base.Opposite(c); o.Valid() {
				seam[o] = true
			}
		}
	}
	return &Table{base: base, seam: seam}
}
