package score

import (
	"github.com/pckhoi/datamatch/record"
)

// Max evaluates children in order and returns the maximum of all
// non-refusing results. It refuses only when every child refused.
type Max struct {
	children []Scorer
}

// NewMax combines scorers, keeping the highest non-refused score.
func NewMax(children ...Scorer) *Max {
	return &Max{children: children}
}

var _ Scorer = (*Max)(nil)

// Score implements Scorer.
func (s *Max) Score(a, b record.Row) (Result, error) {
	best := Refuse("all children refused to score")
	for _, c := range s.children {
		res, err := c.Score(a, b)
		if err != nil {
			return Result{}, err
		}
		if res.Refused() {
			continue
		}
		if best.Refused() || res.Score() > best.Score() {
			best = res
		}
	}
	return best, nil
}

// Min is the Max combinator's mirror: it returns the minimum of all
// non-refusing children and refuses only when every child refused.
type Min struct {
	children []Scorer
}

// NewMin combines scorers, keeping the lowest non-refused score.
func NewMin(children ...Scorer) *Min {
	return &Min{children: children}
}

var _ Scorer = (*Min)(nil)

// Score implements Scorer.
func (s *Min) Score(a, b record.Row) (Result, error) {
	worst := Refuse("all children refused to score")
	for _, c := range s.children {
		res, err := c.Score(a, b)
		if err != nil {
			return Result{}, err
		}
		if res.Refused() {
			continue
		}
		if worst.Refused() || res.Score() < worst.Score() {
			worst = res
		}
	}
	return worst, nil
}

// Alter wraps a scorer and transforms its score for pairs known to share
// an external linking attribute: when both row keys have a recorded
// grouping value and those values are equal, the wrapped score is passed
// through the transform. Use it to boost or to penalize such pairs.
type Alter struct {
	inner     Scorer
	values    map[record.Key]record.Value
	transform func(float64) float64
}

// NewAlter builds an Alter scorer around inner.
func NewAlter(inner Scorer, values map[record.Key]record.Value, transform func(float64) float64) *Alter {
	return &Alter{inner: inner, values: values, transform: transform}
}

var _ Scorer = (*Alter)(nil)

// Score implements Scorer.
func (s *Alter) Score(a, b record.Row) (Result, error) {
	res, err := s.inner.Score(a, b)
	if err != nil || res.Refused() {
		return res, err
	}
	av, aok := s.values[a.Key()]
	bv, bok := s.values[b.Key()]
	if aok && bok && record.ValueEqual(av, bv) {
		return Of(s.transform(res.Score())), nil
	}
	return res, nil
}
