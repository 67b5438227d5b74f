package predict

import (
	"math"

	mt "github.com/go-draco/draco/internal/meshtypes"
)

// Normal implements §4.9's mesh-normal prediction: estimate the surface
// normal of c's face from the already-decoded positions of its three
// corners, then project it through the same octahedral map the attribute's
// portabilization uses, so the predicted value lives in the same
// (x, y) integer space as the quantized normal being predicted.
// PredictNormal negates the face normal when called with a known flip, but
// the root encoder and decoder always call it without one and write no
// orientation bits to the stream; nothing in this package fills FlipBits.
type Normal struct {
	Pos       Position
	OctBits   int
	FlipBits  []bool // one entry appended per predicted value, in order
	nextFlip  int
}

// faceNormal returns the (unnormalized) cross-product normal of the
// triangle at corner c's face, using the three vertices' positions.
func (p *Normal) faceNormal(t Table, c mt.CornerIdx, vertexAt func(mt.CornerIdx) mt.VertexIdx) [3]float64 {
	a := p.Pos.At(vertexAt(c))
	b := p.Pos.At(vertexAt(t.Next(c)))
	d := p.Pos.At(vertexAt(t.Previous(c)))
	e1 := sub(b, a)
	e2 := sub(d, a)
	n := cross(e1, e2)
	l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if l == 0 {
		return [3]float64{0, 0, 1}
	}
	return [3]float64{n[0] / l, n[1] / l, n[2] / l}
}

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// PredictNormal is the entry point used directly by the attribute pipeline
// (rather than the generic Predictor interface, since it also needs to
// know c's originating vertex and produce/consume the orientation bit). It
// returns a two-component octahedral-space prediction.
func (p *Normal) PredictNormal(t Table, c mt.CornerIdx, vertexAt func(mt.CornerIdx) mt.VertexIdx, flipKnown bool, flip bool) (pred [2]int32, usedFlip bool) {
	n := p.faceNormal(t, c, vertexAt)
	if flipKnown && flip {
		n[0], n[1], n[2] = -n[0], -n[1], -n[2]
	}
	half := float64(int32(1)<<uint(p.OctBits)-1) / 2
	ax, ay, az := math.Abs(n[0]), math.Abs(n[1]), math.Abs(n[2])
	sum := ax + ay + az
	if sum == 0 {
		sum = 1
	}
	ox, oy := n[0]/sum, n[1]/sum
	if n[2] < 0 {
		ox, oy = (1-math.Abs(oy))*signf(ox), (1-math.Abs(ox))*signf(oy)
	}
	x := int32(math.Round((ox + 1) * half))
	y := int32(math.Round((oy + 1) * half))
	return [2]int32{x, y}, flip
}

func signf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
