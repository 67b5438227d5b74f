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

// interiorCorners enumerates, once per undirected interior edge and always
// in ascending corner order, the lower of the edge's two corners — the
// canonical order both the seam-bitmap writer and reader walk, so neither
// side needs to transmit which corners the bits belong to.
func interiorCorners(base *corner.Table) []mt.CornerIdx {
	var out []mt.CornerIdx
	for c := 0; c < base.NumCorners(); c++ {
		ci := mt.CornerIdx(c)
		if o := base.Opposite(ci); o.Valid() && ci < o {
			out = append(out, ci)
		}
	}
	return out
}

func encodeMesh(w io.Writer, m *Mesh, o *Options) error {
	if len(m.Attributes) == 0 || m.Attributes[0].Type != Position {
		return fmt.Errorf("%w: attribute 0 must be Position", ErrMalformedMesh)
	}
	faces := make([][3]mt.VertexIdx, len(m.Faces))
	for i, f := range m.Faces {
		faces[i] = [3]mt.VertexIdx{mt.VertexIdx(f[0]), mt.VertexIdx(f[1]), mt.VertexIdx(f[2])}
	}
	base, err := corner.Build(faces, m.NumVertices)
	if err != nil {
		return wrapStage("connectivity", err)
	}
	holes := corner.FindHoles(base)
	conn, err := edgebreaker.Encode(base, holes)
	if err != nil {
		return wrapStage("edgebreaker", err)
	}

	bw := bio.NewByteWriter()
	bw.WriteU8(magicD)
	bw.WriteU8(magicR)
	bw.WriteU8(magicC)
	bw.WriteU8(versionMajor)
	bw.WriteU8(versionMinor)
	bw.WriteU8(encoderTypeTriangleMesh)
	bw.WriteU8(encoderMethodEdgebreaker)
	bw.WriteU8(0) // flags: no metadata block in this codec

	bw.WriteVarint(uint64(m.NumVertices))
	bw.WriteVarint(uint64(len(m.Faces)))

	if err := edgebreaker.WriteConnectivity(bw, conn); err != nil {
		return wrapStage("connectivity", err)
	}

	seeds := make([]mt.CornerIdx, len(conn.ComponentSeeds))
	copy(seeds, conn.ComponentSeeds)

	var posValues [][]float64
	bw.WriteVarint(uint64(len(m.Attributes)))
	for ai := range m.Attributes {
		a := &m.Attributes[ai]
		reconstructed, err := encodeAttribute(bw, base, seeds, a, ai, posValues, o)
		if err != nil {
			return wrapStage(fmt.Sprintf("attribute %d", ai), err)
		}
		if ai == 0 {
			// Later attributes (normals, texture coordinates) predict from
			// the position a decoder will actually see: the quantized and
			// dequantized reconstruction, not the lossless input. Using the
			// raw input here would let the encoder's prediction disagree
			// with the decoder's once quantization error accumulates.
			posValues = reconstructed
		}
	}

	_, err = w.Write(bw.Bytes())
	return err
}

func groupConfigFor(o *Options, ai int, t AttributeType) GroupConfig {
	if gc, ok := o.Groups[ai]; ok {
		return gc
	}
	return DefaultGroupConfig(t)
}

func encodeAttribute(w *bio.ByteWriter, base *corner.Table, seeds []mt.CornerIdx, a *Attribute, ai int, posValues [][]float64, o *Options) ([][]float64, error) {
	gc := groupConfigFor(o, ai, a.Type)

	w.WriteU8(uint8(a.Type))
	w.WriteU8(uint8(a.Domain))
	w.WriteU8(uint8(a.Components))
	w.WriteU8(uint8(a.CompType))
	w.WriteVarint(uint64(len(a.Values)))

	if gc.Portabilization == PortabilizeToBits {
		for _, v := range a.Values {
			for _, c := range v {
				w.WriteU64(math.Float64bits(c))
			}
		}
		return a.Values, nil
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
	valueAt := func(c mt.CornerIdx) mt.ValueIdx { return mt.ValueIdx(base.Vertex(c)) }

	if a.Domain == DomainCorner {
		cv := a.CornerValue
		seamValueAt := attrcorner.ValueAt(func(c mt.CornerIdx) mt.ValueIdx { return mt.ValueIdx(cv[c]) })
		at := attrcorner.Build(base, seamValueAt)
		order := interiorCorners(base)
		bits := make([]bool, len(order))
		for i, c := range order {
			bits[i] = at.IsSeam(c)
		}
		wireutil.WriteBoolBits(w, bits)
		table = at
		valueAt = seamValueAt
	} else {
		wireutil.WriteBoolBits(w, nil)
		table = base
	}

	corners := traversal.Traverse(table, valueAt, seeds)

	switch a.Type {
	case Normal:
		return encodeNormal(w, table, base, valueAt, corners, a, gc, posValues)
	case TextureCoordinate:
		return encodeRectangleAttr(w, table, valueAt, corners, a, gc, true, posValues)
	default:
		return encodeRectangleAttr(w, table, valueAt, corners, a, gc, false, nil)
	}
}

// encodeRectangleAttr handles the Position attribute and, optionally, a
// TextureCoordinate attribute: rectangle-array quantization, parallelogram
// or texture-coordinate prediction, and a wrapped-difference transform. It
// returns the quantized-then-dequantized values the decoder will reconstruct,
// so a later attribute's prediction (e.g. normals from positions) can be
// computed against the same geometry the decoder will see.
func encodeRectangleAttr(w *bio.ByteWriter, table interface {
	Next(mt.CornerIdx) mt.CornerIdx
	Previous(mt.CornerIdx) mt.CornerIdx
	Opposite(mt.CornerIdx) mt.CornerIdx
	Vertex(mt.CornerIdx) mt.VertexIdx
}, valueAt func(mt.CornerIdx) mt.ValueIdx, corners []mt.CornerIdx, a *Attribute, gc GroupConfig, isTexCoord bool, posValues [][]float64) ([][]float64, error) {
	bits := gc.QuantizationBits
	if bits <= 0 {
		bits = 14
	}
	rq, err := portabilize.NewRectangleQuantizer(a.Values, a.Components, rangeUnit(a.Values, a.Components, bits))
	if err != nil {
		return nil, err
	}
	w.WriteU8(uint8(bits))
	for i := 0; i < a.Components; i++ {
		wireutil.WriteF64(w, rq.Min[i])
		wireutil.WriteF64(w, rq.Max[i])
	}
	wireutil.WriteF64(w, rq.UnitSize)
	sizes := rq.Sizes()
	for _, s := range sizes {
		w.WriteVarint(uint64(s))
	}

	quant := make([][]int32, len(a.Values))
	for i, v := range a.Values {
		q, err := rq.Quantize(v)
		if err != nil {
			return nil, err
		}
		quant[i] = q
	}

	ranges := make([]int32, a.Components)
	for i, s := range sizes {
		ranges[i] = int32(s) + 1
	}
	tr := transform.WrappedDifference{Ranges: ranges}

	var texPos positionLookup
	if isTexCoord {
		texPos = positionLookup{values: posValues}
	}

	values := &predict.Values{Data: make([][]int32, len(a.Values)), Components: a.Components}
	lastValue := make([]int32, a.Components)
	para := &predict.Parallelogram{Components: a.Components}
	residuals := make([][]int32, len(corners))

	for i, c := range corners {
		vi := valueAt(c)
		orig := quant[vi]
		var pred []int32
		switch {
		case i == 0:
			pred = make([]int32, a.Components)
		case isTexCoord:
			pred = texCoordPredict(table, valueAt, quant, texPos, c)
		default:
			para.LastValue = lastValue
			pred = para.Predict(table, values, valueAt, c)
		}
		corr := tr.Encode(orig, pred)
		residuals[i] = corr
		values.Data[vi] = orig
		copy(lastValue, orig)
	}

	if err := writeResidualLanes(w, residuals, a.Components); err != nil {
		return nil, err
	}
	reconstructed := make([][]float64, len(quant))
	for i, q := range quant {
		reconstructed[i] = rq.Dequantize(q)
	}
	return reconstructed, nil
}

// texCoordPredict adapts predict.TexCoord's 3-position signature to the
// generic traversal loop: it needs c's own position plus its next/previous
// neighbors, read from the already-encoded Position attribute.
func texCoordPredict(table interface {
	Next(mt.CornerIdx) mt.CornerIdx
	Previous(mt.CornerIdx) mt.CornerIdx
	Vertex(mt.CornerIdx) mt.VertexIdx
}, valueAt func(mt.CornerIdx) mt.ValueIdx, quantUV [][]int32, pos positionLookup, c mt.CornerIdx) []int32 {
	tc := predict.TexCoord{}
	posC := pos.At(table.Vertex(c))
	posNext := pos.At(table.Vertex(table.Next(c)))
	posPrev := pos.At(table.Vertex(table.Previous(c)))
	nextIdx := valueAt(table.Next(c))
	prevIdx := valueAt(table.Previous(c))
	nextUV := [2]float64{float64(quantUV[nextIdx][0]), float64(quantUV[nextIdx][1])}
	prevUV := [2]float64{float64(quantUV[prevIdx][0]), float64(quantUV[prevIdx][1])}
	out := tc.Predict(posC, posNext, posPrev, nextUV, prevUV)
	return []int32{int32(math.Round(out[0])), int32(math.Round(out[1]))}
}

// positionLookup adapts a Position attribute's decoded float values to
// predict.Position, used by texture-coordinate prediction's local geometry.
type positionLookup struct {
	values [][]float64
}

func (p positionLookup) At(v mt.VertexIdx) [3]float64 {
	val := p.values[v]
	return [3]float64{val[0], val[1], val[2]}
}

func encodeNormal(w *bio.ByteWriter, table interface {
	Next(mt.CornerIdx) mt.CornerIdx
	Previous(mt.CornerIdx) mt.CornerIdx
	Opposite(mt.CornerIdx) mt.CornerIdx
	Vertex(mt.CornerIdx) mt.VertexIdx
}, base *corner.Table, valueAt func(mt.CornerIdx) mt.ValueIdx, corners []mt.CornerIdx, a *Attribute, gc GroupConfig, posValues [][]float64) ([][]float64, error) {
	bits := gc.QuantizationBits
	if bits <= 0 {
		bits = 8
	}
	oq, err := portabilize.NewOctahedralQuantizer(bits)
	if err != nil {
		return nil, err
	}
	w.WriteU8(uint8(bits))

	quant := make([][2]int32, len(a.Values))
	for i, v := range a.Values {
		x, y := oq.Quantize([3]float64{v[0], v[1], v[2]})
		quant[i] = [2]int32{x, y}
	}

	pos := positionLookup{values: posValues}
	normPred := &predict.Normal{Pos: pos, OctBits: bits}
	diff := transform.Difference{Components: 2}

	raw := make([][]int32, len(corners))
	for i, c := range corners {
		vi := valueAt(c)
		orig := []int32{quant[vi][0], quant[vi][1]}
		var pred []int32
		if i == 0 {
			pred = []int32{0, 0}
		} else {
			p, _ := normPred.PredictNormal(table, c, base.Vertex, false, false)
			pred = []int32{p[0], p[1]}
		}
		raw[i] = diff.Raw(orig, pred)
	}
	corr, globalMin := diff.Squeeze(raw)
	w.WriteVarint(zigzagU(int64(globalMin)))

	if err := writeResidualLanes(w, corr, 2); err != nil {
		return nil, err
	}
	reconstructed := make([][]float64, len(quant))
	for i, q := range quant {
		v := oq.Dequantize(q[0], q[1])
		reconstructed[i] = []float64{v[0], v[1], v[2]}
	}
	return reconstructed, nil
}

func writeResidualLanes(w *bio.ByteWriter, residuals [][]int32, components int) error {
	n := len(residuals)
	for k := 0; k < components; k++ {
		lane := make([]uint32, n)
		for i, r := range residuals {
			lane[i] = uint32(r[k])
		}
		if err := symbolcoding.EncodeLengthCoded(w, lane); err != nil {
			return err
		}
	}
	return nil
}

func zigzagU(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }

// rangeUnit derives a unit size from the largest per-component value range
// and the requested bit depth, the inverse of how many quantization steps
// that range is cut into.
func rangeUnit(values [][]float64, components int, bits int) float64 {
	if len(values) == 0 {
		return 1
	}
	min := make([]float64, components)
	max := make([]float64, components)
	for i := range min {
		min[i] = math.Inf(1)
		max[i] = math.Inf(-1)
	}
	for _, v := range values {
		for i := 0; i < components; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	maxRange := 0.0
	for i := 0; i < components; i++ {
		if r := max[i] - min[i]; r > maxRange {
			maxRange = r
		}
	}
	if maxRange <= 0 {
		return 1
	}
	steps := float64(int64(1)<<uint(bits) - 1)
	return maxRange / steps
}
