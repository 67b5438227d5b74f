package transform

// OctahedralDifference subtracts the two octahedral-projected integer
// coordinates directly, with no reflection or rotation; it is Difference
// specialized to the always-two-component octahedral case.
type OctahedralDifference struct{}

func (OctahedralDifference) Encode(orig, pred [2]int32) [2]int32 {
	return [2]int32{orig[0] - pred[0], orig[1] - pred[1]}
}

func (OctahedralDifference) Decode(pred, corr [2]int32) [2]int32 {
	return [2]int32{pred[0] + corr[0], pred[1] + corr[1]}
}

// OctahedralReflection mirrors both points across the octahedron's fold
// before subtracting whenever the predicted normal's z component is
// negative, so the prediction and the true value land in the same folded
// half of the projection. The decoder re-derives the same flip from the
// sign of its own reconstructed pred_z, so no bit is carried on the wire
// for this transform.
type OctahedralReflection struct {
	Max int32 // 2^bits - 1
}

func (t OctahedralReflection) reflect(v [2]int32) [2]int32 {
	return [2]int32{t.Max - v[1], t.Max - v[0]}
}

func (t OctahedralReflection) Encode(orig, pred [2]int32, predZNegative bool) [2]int32 {
	o, p := orig, pred
	if predZNegative {
		o, p = t.reflect(o), t.reflect(p)
	}
	return [2]int32{o[0] - p[0], o[1] - p[1]}
}

func (t OctahedralReflection) Decode(pred, corr [2]int32, predZNegative bool) [2]int32 {
	p := pred
	if predZNegative {
		p = t.reflect(p)
	}
	v := [2]int32{p[0] + corr[0], p[1] + corr[1]}
	if predZNegative {
		v = t.reflect(v)
	}
	return v
}

// OctahedralOrthogonal rotates the octahedral coordinate system by a
// multiple of 90 degrees around the square's center so that pred lands in
// whichever quadrant is closest to the origin before subtracting, then
// records the chosen quadrant (0..3) as metadata so the decoder applies
// the identical rotation.
type OctahedralOrthogonal struct {
	Max int32
}

// rotate applies a quadrant-th 90-degree rotation around the square's
// center (Max/2, Max/2).
func (t OctahedralOrthogonal) rotate(v [2]int32, quadrant int) [2]int32 {
	cx, cy := t.Max/2, t.Max/2
	x, y := v[0]-cx, v[1]-cy
	for i := 0; i < quadrant%4; i++ {
		x, y = -y, x
	}
	return [2]int32{x + cx, y + cy}
}

// chooseQuadrant picks the rotation bringing pred closest to the origin.
func (t OctahedralOrthogonal) chooseQuadrant(pred [2]int32) int {
	best, bestDist := 0, int64(-1)
	for q := 0; q < 4; q++ {
		r := t.rotate(pred, q)
		dx, dy := int64(r[0]), int64(r[1])
		d := dx*dx + dy*dy
		if bestDist < 0 || d < bestDist {
			bestDist, best = d, q
		}
	}
	return best
}

// Encode returns the correction and the chosen quadrant (transform
// metadata).
func (t OctahedralOrthogonal) Encode(orig, pred [2]int32) (corr [2]int32, quadrant int) {
	q := t.chooseQuadrant(pred)
	op, pp := t.rotate(orig, q), t.rotate(pred, q)
	return [2]int32{op[0] - pp[0], op[1] - pp[1]}, q
}

// Decode reverses Encode given the quadrant recorded at encode time.
func (t OctahedralOrthogonal) Decode(pred, corr [2]int32, quadrant int) [2]int32 {
	pp := t.rotate(pred, quadrant)
	rotated := [2]int32{pp[0] + corr[0], pp[1] + corr[1]}
	return t.rotate(rotated, (4-quadrant%4)%4)
}
