package score

import (
	"github.com/pckhoi/datamatch/record"
)

// AbsoluteOption configures an Absolute scorer.
type AbsoluteOption func(*Absolute)

// WithIgnoreMissing makes an absent field a refusal (delegating to a
// parent combinator) instead of a structural error.
func WithIgnoreMissing() AbsoluteOption {
	return func(s *Absolute) {
		s.ignoreMissing = true
	}
}

// Absolute returns a fixed score when both rows carry the same non-null
// value for one designated field, and refuses otherwise. It acts as a
// veto/override and must always be wrapped in a Max or Min combinator;
// an Absolute reaching the engine unwrapped turns every refusal into a
// configuration error.
type Absolute struct {
	field         string
	score         float64
	ignoreMissing bool
}

// NewAbsolute builds an Absolute scorer on the given field.
func NewAbsolute(field string, score float64, opts ...AbsoluteOption) *Absolute {
	s := &Absolute{field: field, score: score}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Scorer = (*Absolute)(nil)

// Score implements Scorer.
func (s *Absolute) Score(a, b record.Row) (Result, error) {
	av, aok := a.Value(s.field)
	bv, bok := b.Value(s.field)
	if !aok || !bok {
		if s.ignoreMissing {
			return Refuse("field does not exist on one of the rows"), nil
		}
		return Result{}, &ErrFieldMissing{Field: s.field}
	}
	if av == nil || bv == nil {
		return Refuse("one of the values is null"), nil
	}
	if record.ValueEqual(av, bv) {
		return Of(s.score), nil
	}
	return Refuse("values are not equal"), nil
}
