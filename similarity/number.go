package similarity

import (
	"math"

	"github.com/pckhoi/datamatch/record"
)

// Number scores two numeric values by absolute tolerance: values within
// Tolerance of each other score linearly between 1 (equal) and 0 (at or
// beyond the tolerance).
type Number struct {
	tolerance float64
}

// NewNumber returns a numeric similarity with the given tolerance.
// Non-positive tolerances degenerate into exact equality.
func NewNumber(tolerance float64) Number {
	return Number{tolerance: tolerance}
}

var _ Similarity = Number{}

// Sim implements Similarity. Non-numeric values score 0.
func (n Number) Sim(a, b record.Value) float64 {
	fa, ok := asFloat(a)
	if !ok {
		return 0
	}
	fb, ok := asFloat(b)
	if !ok {
		return 0
	}
	diff := math.Abs(fa - fb)
	if diff == 0 {
		return 1
	}
	if n.tolerance <= 0 || diff >= n.tolerance {
		return 0
	}
	return clamp(1 - diff/n.tolerance)
}

func asFloat(v record.Value) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
