package predict

import mt "github.com/go-draco/draco/internal/meshtypes"

// NoPrediction always predicts zero. Used for the first value of each
// connected component and for attributes declared with no parent.
type NoPrediction struct {
	Components int
}

func (p NoPrediction) Predict(Table, *Values, ValueAt, mt.CornerIdx) []int32 {
	return make([]int32, p.Components)
}
