package predict

import (
	"testing"

	mt "github.com/go-draco/draco/internal/meshtypes"
)

type fakeTable struct {
	next, prev, opp map[mt.CornerIdx]mt.CornerIdx
}

func (f fakeTable) Next(c mt.CornerIdx) mt.CornerIdx     { return f.next[c] }
func (f fakeTable) Previous(c mt.CornerIdx) mt.CornerIdx { return f.prev[c] }
func (f fakeTable) Opposite(c mt.CornerIdx) mt.CornerIdx {
	o, ok := f.opp[c]
	if !ok {
		return mt.Invalid
	}
	return o
}

func TestNoPrediction(t *testing.T) {
	p := NoPrediction{Components: 3}
	got := p.Predict(fakeTable{}, nil, nil, 0)
	for _, v := range got {
		if v != 0 {
			t.Errorf("NoPrediction.Predict = %v, want all zero", got)
		}
	}
}

func TestParallelogram_FallsBackWithoutOpposite(t *testing.T) {
	// Corner 0 of a lone triangle: opposite is Invalid so the parallelogram
	// rule can't apply; with no LastValue either, it should predict zero.
	table := fakeTable{
		next: map[mt.CornerIdx]mt.CornerIdx{0: 1, 1: 2, 2: 0},
		prev: map[mt.CornerIdx]mt.CornerIdx{0: 2, 1: 0, 2: 1},
		opp:  map[mt.CornerIdx]mt.CornerIdx{},
	}
	values := &Values{Data: make([][]int32, 3), Components: 2}
	valueAt := func(c mt.CornerIdx) mt.ValueIdx { return mt.ValueIdx(c) }
	p := &Parallelogram{Components: 2}
	got := p.Predict(table, values, valueAt, 0)
	for _, v := range got {
		if v != 0 {
			t.Errorf("Predict with no opposite/no LastValue = %v, want zero", got)
		}
	}
}

func TestParallelogram_UsesOpposite(t *testing.T) {
	// Two triangles sharing an edge: corner 0's opposite is corner 3.
	table := fakeTable{
		next: map[mt.CornerIdx]mt.CornerIdx{0: 1, 1: 2, 2: 0, 3: 4, 4: 5, 5: 3},
		prev: map[mt.CornerIdx]mt.CornerIdx{0: 2, 1: 0, 2: 1, 3: 5, 4: 3, 5: 4},
		opp:  map[mt.CornerIdx]mt.CornerIdx{0: 3, 3: 0},
	}
	values := &Values{Data: make([][]int32, 6), Components: 1}
	values.Data[1] = []int32{10} // next(0)
	values.Data[2] = []int32{20} // previous(0)
	values.Data[3] = []int32{4}  // opposite(0)
	valueAt := func(c mt.CornerIdx) mt.ValueIdx { return mt.ValueIdx(c) }
	p := &Parallelogram{Components: 1}
	got := p.Predict(table, values, valueAt, 0)
	want := int32(10 + 20 - 4)
	if got[0] != want {
		t.Errorf("Predict = %v, want [%d]", got, want)
	}
}
