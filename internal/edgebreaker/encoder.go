package edgebreaker

import (
	"github.com/go-draco/draco/internal/corner"
	mt "github.com/go-draco/draco/internal/meshtypes"
)

// Result is the full connectivity-encode output: the CLERS symbol stream in
// emission order, the topology splits discovered while emitting it, one
// start-face-interior bit per connected component, and the corner each
// component's traversal ended on (the root encoder passes these, in
// component order, to the attribute traverser as its seeds; they are not
// written to the stream).
type Result struct {
	Symbols         []Symbol
	Splits          []TopologySplit
	StartInterior   []bool
	ComponentSeeds  []CornerIdx
	NumSplitSymbols int
	// ComponentFaceCount is the number of symbols emitted for each
	// connected component, in the same order as StartInterior. Decode
	// needs this to slice the flat Symbols stream back into per-component
	// spans without re-deriving component boundaries from the CLERS
	// grammar's own bracket structure.
	ComponentFaceCount []int
}

type encodeState struct {
	table          *corner.Table
	holes          *corner.Holes
	visitedFace    []bool
	visitedVertex  []bool
	visitedHole    []bool
	faceSplitSym   []int
	result         Result
}

// Encode runs the Standard/Edgebreaker traversal over table, visiting every
// connected component in increasing order of its lowest-indexed
// not-yet-visited face.
func Encode(table *corner.Table, holes *corner.Holes) (*Result, error) {
	st := &encodeState{
		table:         table,
		holes:         holes,
		visitedFace:   make([]bool, table.NumFaces()),
		visitedVertex: make([]bool, table.NumVertices()),
		visitedHole:   make([]bool, len(holes.Loops)),
		faceSplitSym:  make([]int, table.NumFaces()),
	}
	for i := range st.faceSplitSym {
		st.faceSplitSym[i] = mt.Invalid
	}

	for f := 0; f < table.NumFaces(); f++ {
		if st.visitedFace[f] {
			continue
		}
		st.encodeComponent(mt.FaceIdx(f))
	}
	st.result.NumSplitSymbols = len(st.result.Splits)
	return &st.result, nil
}

func (st *encodeState) onHole(v mt.VertexIdx) bool {
	return st.holes.VertexHole[v] != mt.Invalid
}

func (st *encodeState) rightFaceVisited(c mt.CornerIdx) (mt.CornerIdx, bool) {
	rc := st.table.RightCorner(c)
	if !rc.Valid() {
		return rc, true
	}
	return rc, st.visitedFace[rc.Face()]
}

func (st *encodeState) leftFaceVisited(c mt.CornerIdx) (mt.CornerIdx, bool) {
	lc := st.table.LeftCorner(c)
	if !lc.Valid() {
		return lc, true
	}
	return lc, st.visitedFace[lc.Face()]
}

func (st *encodeState) walkHoleIfUnvisited(v mt.VertexIdx) {
	h := st.holes.VertexHole[v]
	if h == mt.Invalid || st.visitedHole[h] {
		return
	}
	st.visitedHole[h] = true
	for _, bc := range st.holes.Loops[h] {
		st.visitedVertex[st.table.Vertex(st.table.Next(bc))] = true
	}
}

// recordMerge checks whether face (reached via a visited neighbor corner)
// was the source of an earlier S split; if so it records the topology
// split closing that handle.
func (st *encodeState) recordMerge(face mt.FaceIdx, orientation Orientation) {
	src := st.faceSplitSym[face]
	if src == mt.Invalid {
		return
	}
	st.result.Splits = append(st.result.Splits, TopologySplit{
		SourceSymbol: src,
		MergeSymbol:  len(st.result.Symbols), // index of the symbol about to be appended
		Orientation:  orientation,
	})
	st.faceSplitSym[face] = mt.Invalid
}

func (st *encodeState) encodeComponent(startFace mt.FaceIdx) {
	isInterior := true
	for k := 0; k < 3; k++ {
		c := mt.CornerOf(startFace, k)
		if !st.table.Opposite(c).Valid() {
			isInterior = false
		}
		if st.onHole(st.table.Vertex(c)) {
			isInterior = false
		}
	}
	st.result.StartInterior = append(st.result.StartInterior, isInterior)

	componentStart := len(st.result.Symbols)

	var entry mt.CornerIdx
	if isInterior {
		// All three vertices are pre-marked and the face itself is marked
		// visited up front, since the main spiral pivots around a single
		// vertex at a time and can never loop back onto this face on its
		// own. It still needs exactly one symbol like every other face, so
		// record a placeholder E for it now; on decode this is the one
		// component-closing face that the reconstructed boundary leaves
		// open once every other symbol has been consumed.
		for k := 0; k < 3; k++ {
			st.visitedVertex[st.table.Vertex(mt.CornerOf(startFace, k))] = true
		}
		st.visitedFace[startFace] = true
		st.result.Symbols = append(st.result.Symbols, SymE)
		c0 := mt.CornerOf(startFace, 0)
		entry = st.table.Opposite(st.table.Next(c0))
	} else {
		var holeID = mt.Invalid
		for k := 0; k < 3; k++ {
			v := st.table.Vertex(mt.CornerOf(startFace, k))
			if h := st.holes.VertexHole[v]; h != mt.Invalid {
				holeID = h
				break
			}
		}
		if holeID != mt.Invalid {
			st.visitedHole[holeID] = true
			for _, bc := range st.holes.Loops[holeID] {
				st.visitedVertex[st.table.Vertex(st.table.Next(bc))] = true
			}
		}
		for k := 0; k < 3; k++ {
			st.visitedVertex[st.table.Vertex(mt.CornerOf(startFace, k))] = true
		}
		entry = mt.CornerOf(startFace, 0)
	}

	stack := []mt.CornerIdx{entry}
	var lastCorner mt.CornerIdx

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for {
			face := c.Face()
			if st.visitedFace[face] {
				break
			}
			st.visitedFace[face] = true
			v := st.table.Vertex(c)

			if !st.visitedVertex[v] && !st.onHole(v) {
				st.result.Symbols = append(st.result.Symbols, SymC)
				st.visitedVertex[v] = true
				c = st.table.RightCorner(c)
				continue
			}

			rc, rightVisited := st.rightFaceVisited(c)
			lc, leftVisited := st.leftFaceVisited(c)

			switch {
			case rightVisited && leftVisited:
				if rc.Valid() {
					st.recordMerge(rc.Face(), OrientationRight)
				}
				if lc.Valid() {
					st.recordMerge(lc.Face(), OrientationLeft)
				}
				st.result.Symbols = append(st.result.Symbols, SymE)
				lastCorner = c
				goto closed
			case rightVisited && !leftVisited:
				if rc.Valid() {
					st.recordMerge(rc.Face(), OrientationRight)
				}
				st.result.Symbols = append(st.result.Symbols, SymR)
				c = lc
			case !rightVisited && leftVisited:
				if lc.Valid() {
					st.recordMerge(lc.Face(), OrientationLeft)
				}
				st.result.Symbols = append(st.result.Symbols, SymL)
				c = rc
			default:
				st.result.Symbols = append(st.result.Symbols, SymS)
				st.faceSplitSym[face] = len(st.result.Symbols) - 1
				stack = append(stack, rc)
				st.walkHoleIfUnvisited(v)
				c = lc
			}
		}
	closed:
	}
	st.result.ComponentSeeds = append(st.result.ComponentSeeds, lastCorner)
	st.result.ComponentFaceCount = append(st.result.ComponentFaceCount, len(st.result.Symbols)-componentStart)
}
