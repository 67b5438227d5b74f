// Package corner implements the half-edge-like corner table adjacency
// structure shared by the Edgebreaker encoder/decoder, the traverser, and
// every attribute's prediction pass.
package corner

import (
	"fmt"
	"sort"

	mt "github.com/go-draco/draco/internal/meshtypes"
)

// Table is a flat, array-based half-edge structure over a triangle mesh's
// corners. Corner c's vertex is the vertex of its face not touching edge c;
// opposite(c) is the corner across that edge in the neighboring face, or
// Invalid on a boundary. Everything is indexed by plain int32 slices, never
// pointer graphs, so the structure is cheap to share by reference across
// every attribute's encoder/decoder.
type Table struct {
	// cornerVertex[c] is the vertex at corner c.
	cornerVertex []mt.VertexIdx
	// oppositeCorner[c] is the corner across c's edge, or Invalid.
	oppositeCorner []mt.CornerIdx
	numVerts       int
}

// NumCorners returns 3 * number of faces.
func (t *Table) NumCorners() int { return len(t.cornerVertex) }

// NumFaces returns the number of triangular faces.
func (t *Table) NumFaces() int { return len(t.cornerVertex) / 3 }

// NumVertices returns the number of distinct vertices referenced by faces.
func (t *Table) NumVertices() int { return t.numVerts }

// Vertex returns the vertex at corner c.
func (t *Table) Vertex(c mt.CornerIdx) mt.VertexIdx { return t.cornerVertex[c] }

// Next returns the next corner within c's face.
func (t *Table) Next(c mt.CornerIdx) mt.CornerIdx { return mt.Next(c) }

// Previous returns the previous corner within c's face.
func (t *Table) Previous(c mt.CornerIdx) mt.CornerIdx { return mt.Previous(c) }

// Opposite returns the corner across c's edge, or Invalid on a boundary.
func (t *Table) Opposite(c mt.CornerIdx) mt.CornerIdx {
	if !c.Valid() {
		return mt.Invalid
	}
	return t.oppositeCorner[c]
}

// SwingRight walks from c to the next corner sharing its vertex,
// previous(opposite(previous(c))). Returns Invalid once a boundary is hit.
func (t *Table) SwingRight(c mt.CornerIdx) mt.CornerIdx {
	o := t.Opposite(t.Previous(c))
	if !o.Valid() {
		return mt.Invalid
	}
	return t.Previous(o)
}

// SwingLeft walks from c to the previous corner sharing its vertex,
// next(opposite(next(c))). Returns Invalid once a boundary is hit.
func (t *Table) SwingLeft(c mt.CornerIdx) mt.CornerIdx {
	o := t.Opposite(t.Next(c))
	if !o.Valid() {
		return mt.Invalid
	}
	return t.Next(o)
}

// RightCorner returns the corner produced by advancing one edge to the
// right of c within the traversal (previous(opposite(previous(c)))), the
// step Edgebreaker's C rule uses.
func (t *Table) RightCorner(c mt.CornerIdx) mt.CornerIdx {
	return t.SwingRight(c)
}

// LeftCorner returns the corner produced by advancing one edge to the left
// of c (next(opposite(next(c)))).
func (t *Table) LeftCorner(c mt.CornerIdx) mt.CornerIdx {
	return t.SwingLeft(c)
}

// IsBoundaryVertex reports whether v has at least one incident corner whose
// opposite-edge is undefined (equivalently, walking SwingRight/SwingLeft
// from any incident corner terminates before returning to the start).
func (t *Table) IsBoundaryVertex(v mt.VertexIdx, anyIncidentCorner mt.CornerIdx) bool {
	c := anyIncidentCorner
	start := c
	for {
		o := t.SwingRight(c)
		if !o.Valid() {
			return true
		}
		c = o
		if c == start {
			return false
		}
	}
}

// Valence returns the number of edges incident to v, found by walking
// SwingRight from start until it returns to start (interior vertex) or hits
// a boundary, in which case the walk continues via SwingLeft from start to
// pick up the remaining fan.
func (t *Table) Valence(start mt.CornerIdx) int {
	count := 1
	c := t.SwingRight(start)
	for c.Valid() && c != start {
		count++
		c = t.SwingRight(c)
	}
	if c == start {
		return count
	}
	c = t.SwingLeft(start)
	for c.Valid() {
		count++
		c = t.SwingLeft(c)
	}
	// A boundary fan of count faces is bounded by count+1 edges.
	return count + 1
}

type directedEdge struct {
	lo, hi mt.VertexIdx
	corner mt.CornerIdx
}

// Build constructs a Table from a flat triangle list (3 vertex indices per
// face). It rejects non-manifold input (more than two faces sharing the
// same undirected edge), out-of-range vertex indices and degenerate
// triangles (a vertex index repeated within one face).
func Build(faces [][3]mt.VertexIdx, numVerts int) (*Table, error) {
	numFaces := len(faces)
	cornerVertex := make([]mt.VertexIdx, numFaces*3)
	edges := make([]directedEdge, 0, numFaces*3)

	for f, tri := range faces {
		for k := 0; k < 3; k++ {
			v := tri[k]
			if v < 0 || int(v) >= numVerts {
				return nil, fmt.Errorf("%w: vertex %d out of range [0,%d)", ErrMalformed, v, numVerts)
			}
			// cornerVertex[c] holds the vertex NOT touching edge c, i.e.
			// the vertex opposite the edge (next(c), previous(c)).
			c := mt.CornerOf(mt.FaceIdx(f), k)
			cornerVertex[c] = v
		}
		for k := 0; k < 3; k++ {
			c := mt.CornerOf(mt.FaceIdx(f), k)
			a, b := cornerVertex[mt.Next(c)], cornerVertex[mt.Previous(c)]
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			if lo == hi {
				return nil, fmt.Errorf("%w: degenerate triangle at face %d", ErrMalformed, f)
			}
			edges = append(edges, directedEdge{lo: lo, hi: hi, corner: c})
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].lo != edges[j].lo {
			return edges[i].lo < edges[j].lo
		}
		if edges[i].hi != edges[j].hi {
			return edges[i].hi < edges[j].hi
		}
		return edges[i].corner < edges[j].corner
	})

	opposite := make([]mt.CornerIdx, numFaces*3)
	for i := range opposite {
		opposite[i] = mt.Invalid
	}

	i := 0
	for i < len(edges) {
		j := i + 1
		for j < len(edges) && edges[j].lo == edges[i].lo && edges[j].hi == edges[i].hi {
			j++
		}
		run := j - i
		switch run {
		case 1:
			// Boundary edge; opposite stays Invalid.
		case 2:
			opposite[edges[i].corner] = edges[i+1].corner
			opposite[edges[i+1].corner] = edges[i].corner
		default:
			return nil, fmt.Errorf("%w: %d faces share edge (%d,%d)", ErrNonManifold, run, edges[i].lo, edges[i].hi)
		}
		i = j
	}

	return &Table{cornerVertex: cornerVertex, oppositeCorner: opposite, numVerts: numVerts}, nil
}
