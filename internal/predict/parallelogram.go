package predict

import mt "github.com/go-draco/draco/internal/meshtypes"

// Parallelogram implements §4.9's mesh-parallelogram scheme: for a corner c
// with opposite(c) = c', predict next(c).value + previous(c).value -
// c'.value. Falls back to the previous value in traversal order (tracked by
// the caller via lastValue) when the opposite corner is missing or not yet
// decoded, and to zero if there is no previous value either.
type Parallelogram struct {
	Components int
	// LastValue is updated by the caller after every prediction to the
	// value actually assigned at c, so the next corner's fallback has
	// somewhere to read from.
	LastValue []int32
}

func (p *Parallelogram) Predict(t Table, values *Values, valueAt ValueAt, c mt.CornerIdx) []int32 {
	opp := t.Opposite(c)
	nextVal := valueAt(t.Next(c))
	prevVal := valueAt(t.Previous(c))
	if opp.Valid() && int(opp.Face()) >= 0 {
		oppIdx := valueAt(opp)
		if int(oppIdx) < len(values.Data) && values.Data[oppIdx] != nil &&
			int(nextVal) < len(values.Data) && values.Data[nextVal] != nil &&
			int(prevVal) < len(values.Data) && values.Data[prevVal] != nil {
			out := make([]int32, p.Components)
			nv, pv, ov := values.Get(nextVal), values.Get(prevVal), values.Get(oppIdx)
			for i := 0; i < p.Components; i++ {
				out[i] = nv[i] + pv[i] - ov[i]
			}
			return out
		}
	}
	if p.LastValue != nil {
		out := make([]int32, p.Components)
		copy(out, p.LastValue)
		return out
	}
	return make([]int32, p.Components)
}
