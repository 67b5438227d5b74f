package predict

import "gonum.org/v1/gonum/mat"

// TexCoord implements §4.9's mesh-texture-coordinate prediction: given the
// 3D positions of corner c and its two already-decoded neighbors (next,
// previous) together with their UVs, predict UV(c) as the inverse-distance
// weighted average of the two known UVs, weighted by the 3D length of the
// edge each neighbor is NOT attached to (so the neighbor whose opposite
// edge is longer — i.e. geometrically "closer" to c in the triangle's local
// embedding — pulls the prediction harder). Falls back to a plain average
// when both edges are degenerate.
type TexCoord struct{}

// Predict returns the predicted UV at c.
func (TexCoord) Predict(posC, posNext, posPrev [3]float64, nextUV, prevUV [2]float64) [2]float64 {
	e1 := mat.NewVecDense(3, []float64{posNext[0] - posC[0], posNext[1] - posC[1], posNext[2] - posC[2]})
	e2 := mat.NewVecDense(3, []float64{posPrev[0] - posC[0], posPrev[1] - posC[1], posPrev[2] - posC[2]})
	len1 := mat.Norm(e1, 2)
	len2 := mat.Norm(e2, 2)
	total := len1 + len2
	if total <= 1e-12 {
		return [2]float64{(nextUV[0] + prevUV[0]) / 2, (nextUV[1] + prevUV[1]) / 2}
	}
	wNext := len2 / total // weight next by the OTHER edge's length
	wPrev := len1 / total
	return [2]float64{
		wNext*nextUV[0] + wPrev*prevUV[0],
		wNext*nextUV[1] + wPrev*prevUV[1],
	}
}
