package corner

import mt "github.com/go-draco/draco/internal/meshtypes"

// Holes enumerates the boundary loops of t. Each hole is a maximal cycle of
// corners whose Opposite is Invalid, walked by swinging (SwingRight steps)
// around each boundary vertex from one boundary corner to the next. Hole ids are assigned in the order
// discovered by scanning corners 0..NumCorners().
type Holes struct {
	// VertexHole[v] is the hole id containing v, or Invalid if v is not on
	// any boundary.
	VertexHole []int
	// Loops[h] is the ordered list of corners (one per boundary vertex)
	// making up hole h, walked in the traversal direction the Edgebreaker
	// encoder expects (opposite of face winding).
	Loops [][]mt.CornerIdx
}

// FindHoles scans t once and returns every boundary loop.
func FindHoles(t *Table) *Holes {
	visited := make([]bool, t.NumCorners())
	vertexHole := make([]int, t.NumVertices())
	for i := range vertexHole {
		vertexHole[i] = mt.Invalid
	}
	var loops [][]mt.CornerIdx

	for c := 0; c < t.NumCorners(); c++ {
		start := mt.CornerIdx(c)
		if visited[start] || t.Opposite(start).Valid() {
			continue
		}
		// start's edge (next(start), previous(start)) is a boundary edge;
		// walk the loop by hopping to the next boundary edge sharing
		// previous(start)'s vertex.
		hole := len(loops)
		var loop []mt.CornerIdx
		cur := start
		for {
			visited[cur] = true
			v := t.Vertex(t.Next(cur))
			if vertexHole[v] == mt.Invalid {
				vertexHole[v] = hole
			}
			loop = append(loop, cur)
			nxt := nextBoundaryCorner(t, cur)
			if !nxt.Valid() || nxt == start {
				break
			}
			cur = nxt
		}
		loops = append(loops, loop)
	}
	return &Holes{VertexHole: vertexHole, Loops: loops}
}

// nextBoundaryCorner finds the next boundary edge walking around the hole
// from c: rotate around vertex(previous(c)) in SwingRight steps until a
// corner whose edge is a boundary edge is reached, and return that corner.
func nextBoundaryCorner(t *Table, c mt.CornerIdx) mt.CornerIdx {
	pivot := t.Previous(c)
	cur := pivot
	for {
		pc := t.Previous(cur)
		o := t.Opposite(pc)
		if !o.Valid() {
			return pc
		}
		cur = t.Previous(o)
		if cur == pivot {
			return mt.Invalid
		}
	}
}
