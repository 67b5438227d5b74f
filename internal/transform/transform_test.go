package transform

import "testing"

func TestDifference_Roundtrip(t *testing.T) {
	d := Difference{Components: 2}
	raw := [][]int32{
		d.Raw([]int32{5, 5}, []int32{2, 3}),
		d.Raw([]int32{-4, 1}, []int32{0, 0}),
		d.Raw([]int32{100, 100}, []int32{99, 50}),
	}
	corr, globalMin := d.Squeeze(raw)
	preds := [][]int32{{2, 3}, {0, 0}, {99, 50}}
	origs := [][]int32{{5, 5}, {-4, 1}, {100, 100}}
	for i := range corr {
		got := d.Decode(preds[i], corr[i], globalMin)
		for k := range got {
			if got[k] != origs[i][k] {
				t.Errorf("row %d component %d: Decode = %d, want %d", i, k, got[k], origs[i][k])
			}
		}
	}
}

func TestWrappedDifference_Roundtrip(t *testing.T) {
	tr := WrappedDifference{Ranges: []int32{10, 20}}
	cases := [][2][]int32{
		{{3, 15}, {1, 2}},
		{{0, 0}, {9, 19}},
		{{9, 19}, {0, 0}},
	}
	for _, c := range cases {
		orig, pred := c[0], c[1]
		corr := tr.Encode(orig, pred)
		got := tr.Decode(pred, corr)
		for k := range got {
			if got[k] != orig[k] {
				t.Errorf("Encode/Decode(%v,%v): got %v, want %v", orig, pred, got, orig)
			}
		}
	}
}

func TestOctahedralDifference_Roundtrip(t *testing.T) {
	var d OctahedralDifference
	orig := [2]int32{10, 20}
	pred := [2]int32{8, 22}
	corr := d.Encode(orig, pred)
	if got := d.Decode(pred, corr); got != orig {
		t.Errorf("Decode(Encode(%v,%v)) = %v, want %v", orig, pred, got, orig)
	}
}

func TestOctahedralReflection_Roundtrip(t *testing.T) {
	tr := OctahedralReflection{Max: 255}
	for _, predZNeg := range []bool{false, true} {
		orig := [2]int32{100, 150}
		pred := [2]int32{90, 140}
		corr := tr.Encode(orig, pred, predZNeg)
		got := tr.Decode(pred, corr, predZNeg)
		if got != orig {
			t.Errorf("predZNegative=%v: Decode(Encode(...)) = %v, want %v", predZNeg, got, orig)
		}
	}
}

func TestOctahedralOrthogonal_Roundtrip(t *testing.T) {
	tr := OctahedralOrthogonal{Max: 255}
	orig := [2]int32{5, 250}
	pred := [2]int32{240, 10}
	corr, quadrant := tr.Encode(orig, pred)
	if got := tr.Decode(pred, corr, quadrant); got != orig {
		t.Errorf("Decode(Encode(%v,%v)) = %v, want %v", orig, pred, got, orig)
	}
}

func TestOrthogonal_Roundtrip(t *testing.T) {
	tr := Orthogonal{AngleBits: 10}
	pred := normalize([3]float64{0, 0, 1})
	orig := normalize([3]float64{0.1, 0.05, 0.99})
	corr := tr.Encode(orig, pred)
	got := tr.Decode(pred, corr)
	dot := got[0]*orig[0] + got[1]*orig[1] + got[2]*orig[2]
	if dot < 0.999 {
		t.Errorf("Decode(Encode(%v,%v)) = %v, cosine similarity %v too low", orig, pred, got, dot)
	}
}
