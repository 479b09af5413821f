// Package score implements the scorer pipeline: components that turn a
// pair of rows into a single similarity value in [0, 1].
//
// A scorer may also refuse a pair ("I cannot judge this; ask someone
// else"). Refusal is not an error: it is a Result variant that combining
// scorers such as Max and Min handle by skipping the refusing child.
// Errors are reserved for structural problems, such as scoring against a
// field that does not exist.
package score

import (
	"fmt"
	"math"
	"sort"

	"github.com/pckhoi/datamatch/record"
	"github.com/pckhoi/datamatch/similarity"
)

// Result is the outcome of scoring one pair: either a score in [0, 1]
// or a refusal carrying the reason.
type Result struct {
	score   float64
	refused bool
	reason  string
}

// Of returns a scored result.
func Of(score float64) Result {
	return Result{score: score}
}

// Refuse returns a refusal with the given reason.
func Refuse(reason string) Result {
	return Result{refused: true, reason: reason}
}

// Refused reports whether the scorer declined to judge the pair.
func (r Result) Refused() bool { return r.refused }

// Score returns the similarity value. It is only meaningful when the
// result is not a refusal.
func (r Result) Score() float64 { return r.score }

// Reason returns the refusal reason, or "" for scored results.
func (r Result) Reason() string { return r.reason }

func (r Result) String() string {
	if r.refused {
		return fmt.Sprintf("Refuse(%s)", r.reason)
	}
	return fmt.Sprintf("Score(%g)", r.score)
}

// Scorer produces a similarity result for a pair of rows. The returned
// error is structural (misconfiguration, missing field) and aborts the
// whole match run.
type Scorer interface {
	Score(a, b record.Row) (Result, error)
}

// ErrFieldMissing indicates a scored field that does not exist on one of
// the rows.
type ErrFieldMissing struct {
	Field string
}

func (e *ErrFieldMissing) Error() string {
	return fmt.Sprintf("field %q does not exist on scored row", e.Field)
}

// SimSum combines per-field similarities into one score: each field is
// scored by its similarity function (a null operand on either side
// scores 0), then the root mean square of the per-field scores is
// returned. RMS rewards pairs that are strong on most fields while still
// penalizing a single very dissimilar field, and stays inside [0, 1]
// for inputs in [0, 1].
type SimSum struct {
	fields []string
	sims   map[string]similarity.Similarity
}

// Fields builds a SimSum scorer from a field-to-similarity mapping.
// This is the shorthand form: most matchers need nothing else.
func Fields(sims map[string]similarity.Similarity) *SimSum {
	fields := make([]string, 0, len(sims))
	for f := range sims {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return &SimSum{fields: fields, sims: sims}
}

var _ Scorer = (*SimSum)(nil)

// Score implements Scorer.
func (s *SimSum) Score(a, b record.Row) (Result, error) {
	if len(s.fields) == 0 {
		return Result{}, fmt.Errorf("simsum scorer has no fields")
	}
	var sum float64
	for _, f := range s.fields {
		av, ok := a.Value(f)
		if !ok {
			return Result{}, &ErrFieldMissing{Field: f}
		}
		bv, ok := b.Value(f)
		if !ok {
			return Result{}, &ErrFieldMissing{Field: f}
		}
		if av == nil || bv == nil {
			continue // null scores 0, contributes nothing
		}
		v := s.sims[f].Sim(av, bv)
		sum += v * v
	}
	return Of(math.Sqrt(sum / float64(len(s.fields)))), nil
}

// Func delegates scoring to a caller-supplied function.
type Func func(a, b record.Row) float64

var _ Scorer = Func(nil)

// Score implements Scorer.
func (f Func) Score(a, b record.Row) (Result, error) {
	return Of(f(a, b)), nil
}
