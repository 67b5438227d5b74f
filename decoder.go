package draco

import (
	"fmt"
	"io"
	"math"

	"github.com/go-draco/draco/internal/attrcorner"
	"github.com/go-draco/draco/internal/bio"
	"github.com/go-draco/draco/internal/corner"
	"github.com/go-draco/draco/internal/edgebreaker"
	mt "github.com/go-draco/draco/internal/meshtypes"
	"github.com/go-draco/draco/internal/portabilize"
	"github.com/go-draco/draco/internal/predict"
	"github.com/go-draco/draco/internal/symbolcoding"
	"github.com/go-draco/draco/internal/transform"
	"github.com/go-draco/draco/internal/traversal"
	"github.com/go-draco/draco/internal/wireutil"
)

func decodeMesh(r io.Reader, cfg *Config) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	br := bio.NewByteReader(data)

	m0, err := br.ReadU8()
	m1, e1 := br.ReadU8()
	m2, e2 := br.ReadU8()
	if err != nil || e1 != nil || e2 != nil || m0 != magicD || m1 != magicR || m2 != magicC {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptStream)
	}
	if _, err := br.ReadU8(); err != nil { // version major
		return nil, err
	}
	if _, err := br.ReadU8(); err != nil { // version minor
		return nil, err
	}
	if _, err := br.ReadU8(); err != nil { // encoder type
		return nil, err
	}
	method, err := br.ReadU8()
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadU8(); err != nil { // flags
		return nil, err
	}
	if method != encoderMethodEdgebreaker {
		return nil, fmt.Errorf("%w: method %d", ErrUnsupportedMethod, method)
	}

	numVertsHint, err := br.ReadVarint()
	if err != nil {
		return nil, err
	}
	if _, err := br.ReadVarint(); err != nil { // numFaces hint, recomputed from decode
		return nil, err
	}

	conn, err := edgebreaker.ReadConnectivity(br)
	if err != nil {
		return nil, wrapStage("connectivity", err)
	}
	dec, err := edgebreaker.Decode(conn.Symbols, conn.StartInterior, conn.ComponentFaceCount, conn.Splits)
	if err != nil {
		return nil, wrapStage("edgebreaker", err)
	}
	if dec.NumVertices != int(numVertsHint) {
		return nil, fmt.Errorf("%w: vertex count mismatch (%d decoded, %d recorded)", ErrCorruptStream, dec.NumVertices, numVertsHint)
	}

	base, err := corner.Build(dec.Faces, dec.NumVertices)
	if err != nil {
		return nil, wrapStage("connectivity", err)
	}

	// The encoder records each component's traversal seed as the corner it
	// ended the component on; Decode doesn't reproduce that bookkeeping
	// directly, so the seeds used here are simply every face-0 corner of
	// each reconstructed component in face order, which yields the same
	// value-introduction order because the traverser only depends on the
	// adjacency structure, not which corner within an already-visited
	// component it started from.
	seeds := componentSeeds(base)

	numFaces := len(dec.Faces)
	m := &Mesh{NumVertices: dec.NumVertices, Faces: make([][3]int32, numFaces)}
	for i, f := range dec.Faces {
		m.Faces[i] = [3]int32{int32(f[0]), int32(f[1]), int32(f[2])}
	}

	numAttrs, err := br.ReadVarint()
	if err != nil {
		return nil, err
	}
	m.Attributes = make([]Attribute, numAttrs)
	var posValues [][]float64
	for ai := 0; ai < int(numAttrs); ai++ {
		a, err := decodeAttribute(br, base, seeds, posValues)
		if err != nil {
			return nil, wrapStage(fmt.Sprintf("attribute %d", ai), err)
		}
		m.Attributes[ai] = *a
		if ai == 0 {
			posValues = a.Values
		}
	}
	return m, nil
}

// componentSeeds returns one seed corner per connected component, the
// lowest-indexed corner of each component's lowest-indexed face, visited in
// increasing face order exactly as the encoder's component loop does.
func componentSeeds(base *corner.Table) []mt.CornerIdx {
	visited := make([]bool, base.NumFaces())
	var seeds []mt.CornerIdx
	for f := 0; f < base.NumFaces(); f++ {
		if visited[f] {
			continue
		}
		seeds = append(seeds, mt.CornerOf(mt.FaceIdx(f), 0))
		markComponent(base, mt.FaceIdx(f), visited)
	}
	return seeds
}

func markComponent(base *corner.Table, start mt.FaceIdx, visited []bool) {
	stack := []mt.FaceIdx{start}
	visited[start] = true
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for k := 0; k < 3; k++ {
			c := mt.CornerOf(f, k)
			if o := base.Opposite(c); o.Valid() && !visited[o.Face()] {
				visited[o.Face()] = true
				stack = append(stack, o.Face())
			}
		}
	}
}

func decodeAttribute(r *bio.ByteReader, base *corner.Table, seeds []mt.CornerIdx, posValues [][]float64) (*Attribute, error) {
	typ, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	dom, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	comps, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	compType, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	numValues, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}

	a := &Attribute{
		Type:       AttributeType(typ),
		Domain:     Domain(dom),
		Components: int(comps),
		CompType:   ComponentType(compType),
	}

	// ToBits short-circuit mirrors the encoder's: detected the same way,
	// by re-deriving the group config the encoder would have used for this
	// attribute type, since the wire format doesn't carry the portabilize
	// mode directly (it's implied by attribute Type, as on the encode
	// side).
	gc := DefaultGroupConfig(a.Type)
	if gc.Portabilization == PortabilizeToBits {
		a.Values = make([][]float64, numValues)
		for i := range a.Values {
			v := make([]float64, a.Components)
			for k := range v {
				bits, err := r.ReadU64()
				if err != nil {
					return nil, err
				}
				v[k] = math.Float64frombits(bits)
			}
			a.Values[i] = v
		}
		return a, nil
	}

	seamBits, err := wireutil.ReadBoolBits(r)
	if err != nil {
		return nil, err
	}

	var table interface {
		Next(mt.CornerIdx) mt.CornerIdx
		Previous(mt.CornerIdx) mt.CornerIdx
		Opposite(mt.CornerIdx) mt.CornerIdx
		Vertex(mt.CornerIdx) mt.VertexIdx
		SwingRight(mt.CornerIdx) mt.CornerIdx
		SwingLeft(mt.CornerIdx) mt.CornerIdx
		NumFaces() int
	}
	var valueAt func(mt.CornerIdx) mt.ValueIdx
	cornerValue := make([]int32, base.NumCorners())

	if a.Domain == DomainCorner {
		order := interiorCorners(base)
		bitsU32 := make([]uint32, len(seamBits))
		for i, b := range seamBits {
			if b {
				bitsU32[i] = 1
			}
		}
		at := attrcorner.FromSeamBits(base, order, bitsU32)
		table = at
		// Rebuild the per-corner value indices a seam-aware traversal
		// needs by union-finding connected corners across non-seam edges;
		// equivalent to what the encoder's original CornerValue recorded.
		cv := assignSeamValues(base, at)
		valueAt = func(c mt.CornerIdx) mt.ValueIdx { return mt.ValueIdx(cv[c]) }
		copy(cornerValue, cv)
	} else {
		table = base
		valueAt = func(c mt.CornerIdx) mt.ValueIdx { return mt.ValueIdx(base.Vertex(c)) }
	}

	corners := traversal.Traverse(table, valueAt, seeds)

	switch a.Type {
	case Normal:
		vals, err := decodeNormal(r, table, base, valueAt, corners, int(numValues), gc, posValues)
		if err != nil {
			return nil, err
		}
		a.Values = vals
	case TextureCoordinate:
		vals, err := decodeRectangleAttr(r, table, valueAt, corners, int(numValues), a.Components, true, posValues)
		if err != nil {
			return nil, err
		}
		a.Values = vals
	default:
		vals, err := decodeRectangleAttr(r, table, valueAt, corners, int(numValues), a.Components, false, nil)
		if err != nil {
			return nil, err
		}
		a.Values = vals
	}
	if a.Domain == DomainCorner {
		a.CornerValue = cornerValue
	}
	return a, nil
}

// assignSeamValues assigns one value index per maximal region of corners
// connected through non-seam edges, the decode-side reconstruction of the
// per-corner value indices the encoder derived from its own attribute data.
func assignSeamValues(base *corner.Table, at *attrcorner.Table) []int32 {
	n := base.NumCorners()
	assign := make([]int32, n)
	for i := range assign {
		assign[i] = -1
	}
	next := int32(0)
	for c := 0; c < n; c++ {
		ci := mt.CornerIdx(c)
		if assign[ci] != -1 {
			continue
		}
		// Flood-fill this corner's vertex ring across non-seam edges only.
		id := next
		next++
		stack := []mt.CornerIdx{ci}
		assign[ci] = id
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range []mt.CornerIdx{at.SwingRight(cur), at.SwingLeft(cur)} {
				if nb.Valid() && assign[nb] == -1 {
					assign[nb] = id
					stack = append(stack, nb)
				}
			}
		}
	}
	return assign
}

func decodeRectangleAttr(r *bio.ByteReader, table interface {
	Next(mt.CornerIdx) mt.CornerIdx
	Previous(mt.CornerIdx) mt.CornerIdx
	Opposite(mt.CornerIdx) mt.CornerIdx
	Vertex(mt.CornerIdx) mt.VertexIdx
}, valueAt func(mt.CornerIdx) mt.ValueIdx, corners []mt.CornerIdx, numValues, components int, isTexCoord bool, posValues [][]float64) ([][]float64, error) {
	bits, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	min := make([]float64, components)
	max := make([]float64, components)
	for i := 0; i < components; i++ {
		v, err := wireutil.ReadF64(r)
		if err != nil {
			return nil, err
		}
		min[i] = v
		v, err = wireutil.ReadF64(r)
		if err != nil {
			return nil, err
		}
		max[i] = v
	}
	unitSize, err := wireutil.ReadF64(r)
	if err != nil {
		return nil, err
	}
	sizes := make([]uint32, components)
	for i := range sizes {
		s, err := r.ReadVarint()
		if err != nil {
			return nil, err
		}
		sizes[i] = uint32(s)
	}
	_ = bits
	rq := portabilize.NewRectangleQuantizerFromSizes(min, max, unitSize, sizes)

	ranges := make([]int32, components)
	for i, s := range sizes {
		ranges[i] = int32(s) + 1
	}
	tr := transform.WrappedDifference{Ranges: ranges}

	lanes, err := readResidualLanes(r, len(corners), components)
	if err != nil {
		return nil, err
	}

	quant := make([][]int32, numValues)
	values := &predict.Values{Data: make([][]int32, numValues), Components: components}
	lastValue := make([]int32, components)
	para := &predict.Parallelogram{Components: components}
	var texPos positionLookup
	if isTexCoord {
		texPos = positionLookup{values: posValues}
	}

	for i, c := range corners {
		vi := valueAt(c)
		corr := make([]int32, components)
		for k := 0; k < components; k++ {
			corr[k] = int32(lanes[k][i])
		}
		var pred []int32
		switch {
		case i == 0:
			pred = make([]int32, components)
		case isTexCoord:
			pred = texCoordPredict(table, valueAt, quant, texPos, c)
		default:
			para.LastValue = lastValue
			pred = para.Predict(table, values, valueAt, c)
		}
		orig := tr.Decode(pred, corr)
		quant[vi] = orig
		values.Data[vi] = orig
		copy(lastValue, orig)
	}

	out := make([][]float64, numValues)
	for i, q := range quant {
		out[i] = rq.Dequantize(q)
	}
	return out, nil
}

func decodeNormal(r *bio.ByteReader, table interface {
	Next(mt.CornerIdx) mt.CornerIdx
	Previous(mt.CornerIdx) mt.CornerIdx
	Opposite(mt.CornerIdx) mt.CornerIdx
	Vertex(mt.CornerIdx) mt.VertexIdx
}, base *corner.Table, valueAt func(mt.CornerIdx) mt.ValueIdx, corners []mt.CornerIdx, numValues int, gc GroupConfig, posValues [][]float64) ([][]float64, error) {
	bits, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	oq, err := portabilize.NewOctahedralQuantizer(int(bits))
	if err != nil {
		return nil, err
	}
	globalMinZ, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	globalMin := int32(unzigzag(globalMinZ))

	lanes, err := readResidualLanes(r, len(corners), 2)
	if err != nil {
		return nil, err
	}

	quant := make([][2]int32, numValues)
	pos := positionLookup{values: posValues}
	normPred := &predict.Normal{Pos: pos, OctBits: int(bits)}
	diff := transform.Difference{Components: 2}

	for i, c := range corners {
		vi := valueAt(c)
		corr := []int32{int32(lanes[0][i]), int32(lanes[1][i])}
		var pred []int32
		if i == 0 {
			pred = []int32{0, 0}
		} else {
			p, _ := normPred.PredictNormal(table, c, base.Vertex, false, false)
			pred = []int32{p[0], p[1]}
		}
		orig := diff.Decode(pred, corr, globalMin)
		quant[vi] = [2]int32{orig[0], orig[1]}
	}

	out := make([][]float64, numValues)
	for i, q := range quant {
		v := oq.Dequantize(q[0], q[1])
		out[i] = []float64{v[0], v[1], v[2]}
	}
	return out, nil
}

func readResidualLanes(r *bio.ByteReader, n, components int) ([][]uint32, error) {
	lanes := make([][]uint32, components)
	for k := 0; k < components; k++ {
		lane, err := symbolcoding.DecodeLengthCoded(r, n)
		if err != nil {
			return nil, err
		}
		lanes[k] = lane
	}
	return lanes, nil
}

func unzigzag(v uint64) int64 { return int64(v>>1) ^ -int64(v&1) }
