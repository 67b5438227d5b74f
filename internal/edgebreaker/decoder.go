package edgebreaker

import (
	"errors"
	"sort"

	mt "github.com/go-draco/draco/internal/meshtypes"
)

// ErrShortSymbolStream is returned when a component's stack discipline
// demands another symbol but the stream has run out, or when a boundary
// lookup a symbol depends on turns up nothing.
var ErrShortSymbolStream = errors.New("edgebreaker: symbol stream exhausted before component closed")

// ErrBadComponentCount is returned when the number of per-component face
// counts disagrees with the length of the start-interior bit array supplied
// to Decode.
var ErrBadComponentCount = errors.New("edgebreaker: start-interior count does not match component count")

// ErrCorruptBoundary is returned when an interior-start component finishes
// its main traversal without leaving behind exactly the one open triangle
// the seed face is supposed to close.
var ErrCorruptBoundary = errors.New("edgebreaker: interior seed face did not close to a single triangle")

// ErrSplitCountMismatch is returned when the number of S symbols consumed
// while decoding does not match the topology splits Encode recorded for the
// same stream; a mismatch means the symbol stream and the split list were
// not produced together.
var ErrSplitCountMismatch = errors.New("edgebreaker: S symbol count does not match topology split count")

// DecodeResult is the reconstructed connectivity: one triangle per face the
// original mesh had, expressed directly as vertex-index triples so callers
// can hand it straight to corner.Build. Vertex numbering is assigned in
// decode order and has no relation to the indices Encode started from;
// callers that need attribute traversal order re-derive it from the
// reconstructed corner table rather than from this numbering.
type DecodeResult struct {
	Faces       [][3]mt.VertexIdx
	NumVertices int
}

// gate is the active edge a symbol's new triangle attaches to, oriented the
// way the traversal discovered it: gate[0] is the side a C symbol continues
// growing from, gate[1] the side an R symbol continues growing from.
type gate [2]mt.VertexIdx

// boundaryEdge is a mesh edge named by its two endpoints with the smaller
// index first, so the open-boundary set can be kept sorted and searched by
// value instead of needing a hash map.
type boundaryEdge [2]mt.VertexIdx

func makeEdge(a, b mt.VertexIdx) boundaryEdge {
	if a < b {
		return boundaryEdge{a, b}
	}
	return boundaryEdge{b, a}
}

func edgeLess(a, b boundaryEdge) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// boundarySet is the sorted collection of edges currently open on the
// triangle fan(s) reconstructed so far for one connected component.
type boundarySet struct {
	edges []boundaryEdge
}

func (b *boundarySet) insert(e boundaryEdge) {
	i := sort.Search(len(b.edges), func(i int) bool { return !edgeLess(b.edges[i], e) })
	b.edges = append(b.edges, boundaryEdge{})
	copy(b.edges[i+1:], b.edges[i:])
	b.edges[i] = e
}

func (b *boundarySet) remove(e boundaryEdge) error {
	i := sort.Search(len(b.edges), func(i int) bool { return !edgeLess(b.edges[i], e) })
	if i >= len(b.edges) || b.edges[i] != e {
		return ErrShortSymbolStream
	}
	b.edges = append(b.edges[:i], b.edges[i+1:]...)
	return nil
}

// other finds the boundary edge touching v whose far endpoint is not
// exclude (the edge currently in active use), and returns that far
// endpoint. This is the lookup a C symbol uses to discover the vertex its
// new triangle attaches to, walking the open boundary rather than minting
// anything new.
func (b *boundarySet) other(v, exclude mt.VertexIdx) (mt.VertexIdx, bool) {
	for _, e := range b.edges {
		if e[0] != v && e[1] != v {
			continue
		}
		far := e[0]
		if far == v {
			far = e[1]
		}
		if far == exclude {
			continue
		}
		return far, true
	}
	return mt.Invalid, false
}

// renumberVertex maps merged to replacement and shifts every index above
// merged down by one, keeping the vertex space dense after an S symbol
// unifies two vertices that had been numbered independently.
func renumberVertex(v, merged, replacement mt.VertexIdx) mt.VertexIdx {
	switch {
	case v == merged:
		return replacement
	case v > merged:
		return v - 1
	default:
		return v
	}
}

func renumberFaces(faces [][3]mt.VertexIdx, merged, replacement mt.VertexIdx) {
	for i := range faces {
		for k := 0; k < 3; k++ {
			faces[i][k] = renumberVertex(faces[i][k], merged, replacement)
		}
	}
}

func renumberBoundary(edges []boundaryEdge, merged, replacement mt.VertexIdx) []boundaryEdge {
	for i := range edges {
		a := renumberVertex(edges[i][0], merged, replacement)
		c := renumberVertex(edges[i][1], merged, replacement)
		edges[i] = makeEdge(a, c)
	}
	sort.Slice(edges, func(i, j int) bool { return edgeLess(edges[i], edges[j]) })
	return edges
}

func renumberGates(gates []gate, merged, replacement mt.VertexIdx) {
	for i := range gates {
		gates[i][0] = renumberVertex(gates[i][0], merged, replacement)
		gates[i][1] = renumberVertex(gates[i][1], merged, replacement)
	}
}

// Decode reconstructs a face list from a CLERS symbol stream in the order
// Encode emitted it, together with the per-component interior-start flags
// and face counts Encode recorded and the topology splits it discovered.
//
// This is Spirale Reversi: each component's symbols are walked in reverse
// of emission order, growing a triangle fan from a single bootstrap
// triangle (the component's last-emitted symbol, always an E) outward. C
// reuses a vertex already known to the open boundary; R and L mint a fresh
// one; a non-bootstrap E starts a second, as-yet-disconnected fan; S pops
// the matching fan back off and merges it in, renumbering vertices so the
// merged index is dropped rather than left as a gap. An interior-start
// component's seed face was never given a real dispatch on the encode side
// (see encodeComponent), so after its real symbols are consumed the
// boundary it leaves behind is exactly that seed face's three edges; this
// closes it directly rather than dispatching its placeholder symbol.
func Decode(symbols []Symbol, startInterior []bool, faceCounts []int, splits []TopologySplit) (*DecodeResult, error) {
	if len(startInterior) != len(faceCounts) {
		return nil, ErrBadComponentCount
	}

	res := &DecodeResult{}
	nextVertex := func() mt.VertexIdx {
		v := mt.VertexIdx(res.NumVertices)
		res.NumVertices++
		return v
	}

	pos := 0
	numSSeen := 0

	for compIdx, count := range faceCounts {
		if count <= 0 || pos+count > len(symbols) {
			return nil, ErrShortSymbolStream
		}
		span := symbols[pos : pos+count]
		pos += count

		rev := make([]Symbol, count)
		for i, s := range span {
			rev[count-1-i] = s
		}

		interior := startInterior[compIdx]
		realCount := count
		if interior {
			realCount = count - 1
		}

		var bounds boundarySet
		var active gate
		var stack []gate
		faceStart := len(res.Faces)
		bootstrapped := false

		for i := 0; i < realCount; i++ {
			sym := rev[i]

			if !bootstrapped {
				if sym != SymE {
					return nil, ErrShortSymbolStream
				}
				v0, v1, v2 := nextVertex(), nextVertex(), nextVertex()
				res.Faces = append(res.Faces, [3]mt.VertexIdx{v0, v1, v2})
				bounds.insert(makeEdge(v0, v1))
				bounds.insert(makeEdge(v0, v2))
				bounds.insert(makeEdge(v1, v2))
				active = gate{v0, v1}
				bootstrapped = true
				continue
			}

			switch sym {
			case SymC:
				right := active[0]
				nextV, ok := bounds.other(right, active[1])
				if !ok {
					return nil, ErrShortSymbolStream
				}
				res.Faces = append(res.Faces, [3]mt.VertexIdx{active[0], active[1], nextV})
				if err := bounds.remove(makeEdge(active[0], active[1])); err != nil {
					return nil, err
				}
				if err := bounds.remove(makeEdge(nextV, right)); err != nil {
					return nil, err
				}
				bounds.insert(makeEdge(nextV, active[1]))
				active[0] = nextV

			// SymL and SymR mint a fresh vertex and extend one side of the
			// active gate. Which side extends is swapped from the naming a
			// reader might expect: this traversal's LeftCorner/RightCorner
			// pivot the opposite way from the winding this reconstruction
			// assumes, a fact established by tracing a tetrahedron by hand
			// (see DESIGN.md); dispatching them the other way round
			// produces two faces sharing all three vertices instead of one.
			case SymL:
				x := nextVertex()
				res.Faces = append(res.Faces, [3]mt.VertexIdx{active[0], active[1], x})
				if err := bounds.remove(makeEdge(active[0], active[1])); err != nil {
					return nil, err
				}
				bounds.insert(makeEdge(active[0], x))
				bounds.insert(makeEdge(active[1], x))
				active[1] = x

			case SymR:
				x := nextVertex()
				res.Faces = append(res.Faces, [3]mt.VertexIdx{active[0], active[1], x})
				if err := bounds.remove(makeEdge(active[0], active[1])); err != nil {
					return nil, err
				}
				bounds.insert(makeEdge(active[0], x))
				bounds.insert(makeEdge(active[1], x))
				active[0] = x

			case SymE:
				x, y, z := nextVertex(), nextVertex(), nextVertex()
				res.Faces = append(res.Faces, [3]mt.VertexIdx{x, y, z})
				bounds.insert(makeEdge(x, y))
				bounds.insert(makeEdge(x, z))
				bounds.insert(makeEdge(y, z))
				stack = append(stack, active)
				active = gate{x, y}

			case SymS:
				numSSeen++
				if len(stack) == 0 {
					return nil, ErrShortSymbolStream
				}
				prev := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				res.Faces = append(res.Faces, [3]mt.VertexIdx{prev[0], prev[1], active[1]})
				if err := bounds.remove(makeEdge(active[0], active[1])); err != nil {
					return nil, err
				}
				if err := bounds.remove(makeEdge(prev[0], prev[1])); err != nil {
					return nil, err
				}
				bounds.insert(makeEdge(prev[0], active[1]))

				merged, replacement := active[0], prev[1]
				renumberFaces(res.Faces[faceStart:], merged, replacement)
				bounds.edges = renumberBoundary(bounds.edges, merged, replacement)
				renumberGates(stack, merged, replacement)
				res.NumVertices--

				active = gate{renumberVertex(prev[0], merged, replacement), renumberVertex(active[1], merged, replacement)}
			}
		}

		if len(stack) != 0 {
			return nil, ErrShortSymbolStream
		}

		if interior {
			if len(bounds.edges) != 3 {
				return nil, ErrCorruptBoundary
			}
			var tri []mt.VertexIdx
			for _, e := range bounds.edges {
				for _, v := range e {
					known := false
					for _, existing := range tri {
						if existing == v {
							known = true
							break
						}
					}
					if !known {
						tri = append(tri, v)
					}
				}
			}
			if len(tri) != 3 {
				return nil, ErrCorruptBoundary
			}
			res.Faces = append(res.Faces, [3]mt.VertexIdx{tri[0], tri[1], tri[2]})
		}
	}

	if pos != len(symbols) {
		return nil, ErrShortSymbolStream
	}
	if numSSeen != len(splits) {
		return nil, ErrSplitCountMismatch
	}

	return res, nil
}
