// Package traversal computes the canonical corner-visit order that every
// attribute's prediction pass walks, shared bit-for-bit between encoder and
// decoder because it is a pure function of the corner table and the
// connected-component seed corners the connectivity codec produced.
package traversal

import mt "github.com/go-draco/draco/internal/meshtypes"

// Table is the subset of corner.Table (or attrcorner.Table) the traverser
// needs. Both satisfy it without adaptation.
type Table interface {
	Next(c mt.CornerIdx) mt.CornerIdx
	Previous(c mt.CornerIdx) mt.CornerIdx
	Vertex(c mt.CornerIdx) mt.VertexIdx
	NumFaces() int
}

// rightLeft is implemented by corner.Table and attrcorner.Table; kept
// separate from Table so a caller that only has next/previous/vertex (no
// swing queries) still type-checks against Table where right/left aren't
// needed, but Traverse itself always requires the full interface.
type rightLeft interface {
	Table
	SwingRight(c mt.CornerIdx) mt.CornerIdx
	SwingLeft(c mt.CornerIdx) mt.CornerIdx
}

// ValueAt maps a corner to the attribute-value index it introduces. For the
// position attribute (or any attribute sharing the universal corner table)
// this is just Vertex; attributes with seams supply their own mapping.
type ValueAt func(c mt.CornerIdx) mt.ValueIdx

// Traverse walks t starting from seeds (one seed corner per connected
// component, consumed first to last in the order given) and returns, in
// visit order, one corner per newly introduced attribute value.
func Traverse(t rightLeft, valueAt ValueAt, seeds []mt.CornerIdx) []mt.CornerIdx {
	visitedFace := make([]bool, t.NumFaces())
	visitedValue := make(map[mt.ValueIdx]bool)
	var order []mt.CornerIdx

	stack := make([]mt.CornerIdx, 0, len(seeds))
	for i := len(seeds) - 1; i >= 0; i-- {
		if seeds[i].Valid() {
			stack = append(stack, seeds[i])
		}
	}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		face := c.Face()
		if visitedFace[face] {
			continue
		}

		// Values at next(c) and previous(c) not yet introduced are visited
		// first, in that order, before c itself.
		for _, dc := range []mt.CornerIdx{t.Next(c), t.Previous(c)} {
			if dv := valueAt(dc); !visitedValue[dv] {
				visitedValue[dv] = true
				order = append(order, dc)
			}
		}

		visitedFace[face] = true
		v := valueAt(c)
		if !visitedValue[v] {
			visitedValue[v] = true
			order = append(order, c)
		}

		// Neighbor faces are entered at the corner facing the shared edge.
		rc := t.SwingRight(c)
		if rc.Valid() {
			rc = t.Next(rc)
		}
		lc := t.SwingLeft(c)
		if lc.Valid() {
			lc = t.Previous(lc)
		}
		rightDone := !rc.Valid() || visitedFace[rc.Face()]
		leftDone := !lc.Valid() || visitedFace[lc.Face()]

		switch {
		case rightDone && leftDone:
			// Closed a loop (possibly a handle); nothing further hangs off
			// this corner, so there is nothing to prune from the stack
			// beyond what naturally won't be revisited (visitedFace guards
			// every future pop of a corner in this face).
		case !rightDone && !leftDone:
			stack = append(stack, lc, rc)
		case !rightDone:
			stack = append(stack, rc)
		default:
			stack = append(stack, lc)
		}
	}

	return order
}
