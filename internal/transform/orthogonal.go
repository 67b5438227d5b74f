package transform

import "math"

// Orthogonal expresses a 3D unit vector relative to a predicted unit
// vector's own orthonormal frame, as two small angles, so that a correct
// prediction needs near-zero angles regardless of where on the sphere pred
// sits. Used as an alternative to the octahedral transforms for unit
// vectors; the decoder rebuilds the frame from pred alone (pred is already
// fully known at decode time) and applies the inverse rotation.
type Orthogonal struct {
	// AngleBits is the quantization bit width applied to both angles.
	AngleBits int
}

func frame(pred [3]float64) (e1, e2 [3]float64) {
	// Any vector not parallel to pred works as a seed for Gram-Schmidt.
	seed := [3]float64{1, 0, 0}
	if math.Abs(pred[0]) > 0.9 {
		seed = [3]float64{0, 1, 0}
	}
	d := dot(seed, pred)
	e1raw := [3]float64{seed[0] - d*pred[0], seed[1] - d*pred[1], seed[2] - d*pred[2]}
	e1 = normalize(e1raw)
	e2 = cross(pred, e1)
	return e1, e2
}

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
func cross(a, b [3]float64) [3]float64 {
	return [3]float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}
func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(dot(v, v))
	if l == 0 {
		return [3]float64{1, 0, 0}
	}
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}

// Encode projects orig onto pred's frame and quantizes the two off-axis
// components as the correction, scaled by 2^AngleBits over the ±1 range
// every component of a unit vector can take.
func (t Orthogonal) Encode(orig, pred [3]float64) [2]int32 {
	e1, e2 := frame(pred)
	a := dot(orig, e1)
	b := dot(orig, e2)
	scale := float64(int32(1) << uint(t.AngleBits))
	return [2]int32{int32(math.Round(a * scale)), int32(math.Round(b * scale))}
}

// Decode rebuilds pred's frame and reconstructs a unit vector from the two
// quantized off-axis components plus the implied on-axis component.
func (t Orthogonal) Decode(pred [3]float64, corr [2]int32) [3]float64 {
	e1, e2 := frame(pred)
	scale := float64(int32(1) << uint(t.AngleBits))
	a := float64(corr[0]) / scale
	b := float64(corr[1]) / scale
	c := math.Sqrt(math.Max(0, 1-a*a-b*b))
	v := [3]float64{
		a*e1[0] + b*e2[0] + c*pred[0],
		a*e1[1] + b*e2[1] + c*pred[1],
		a*e1[2] + b*e2[2] + c*pred[2],
	}
	return normalize(v)
}
