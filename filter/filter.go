// Package filter provides boolean pair predicates. A pair rejected by
// any filter in the matcher's chain is dropped before scoring, which,
// like blocking, cuts the candidate set. A filter expresses "these two
// can never be the same entity" knowledge.
package filter

import (
	"github.com/pckhoi/datamatch/record"
)

// Filter decides whether a pair of rows may be compared.
type Filter interface {
	// Valid returns true to keep the pair.
	Valid(a, b record.Row) bool
}

// Func adapts a plain function to the Filter interface.
type Func func(a, b record.Row) bool

// Valid implements Filter.
func (f Func) Valid(a, b record.Row) bool { return f(a, b) }

// Dissimilar eliminates pairs that share the same non-null value for one
// field. Useful when equal values prove the records are distinct
// entities, e.g. two different personnel numbers in the same roster.
type Dissimilar struct {
	field         string
	ignoreMissing bool
}

// Option configures a filter.
type Option func(*Dissimilar)

// WithIgnoreMissing keeps pairs whose rows lack the filtered field
// instead of rejecting the whole run as misconfigured.
func WithIgnoreMissing() Option {
	return func(f *Dissimilar) {
		f.ignoreMissing = true
	}
}

// NewDissimilar builds a Dissimilar filter on the given field.
func NewDissimilar(field string, opts ...Option) *Dissimilar {
	f := &Dissimilar{field: field}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ Filter = (*Dissimilar)(nil)

// Valid implements Filter.
func (f *Dissimilar) Valid(a, b record.Row) bool {
	av, aok := a.Value(f.field)
	bv, bok := b.Value(f.field)
	if !aok || !bok {
		return f.ignoreMissing
	}
	if av == nil || bv == nil {
		return true
	}
	return !record.ValueEqual(av, bv)
}

// NonOverlapping eliminates pairs whose [start, end] ranges overlap.
// Typically applied to time ranges to enforce exclusivity: one person
// cannot hold two overlapping appointments.
type NonOverlapping struct {
	start string
	end   string
}

// NewNonOverlapping builds a NonOverlapping filter over the given range
// fields. Both fields must hold mutually comparable values.
func NewNonOverlapping(start, end string) *NonOverlapping {
	return &NonOverlapping{start: start, end: end}
}

var _ Filter = (*NonOverlapping)(nil)

// Valid implements Filter. Pairs with incomparable or missing range
// values are kept.
func (f *NonOverlapping) Valid(a, b record.Row) bool {
	aStart, ok := a.Value(f.start)
	if !ok {
		return true
	}
	aEnd, ok := a.Value(f.end)
	if !ok {
		return true
	}
	bStart, ok := b.Value(f.start)
	if !ok {
		return true
	}
	bEnd, ok := b.Value(f.end)
	if !ok {
		return true
	}

	// Valid when a ends before b starts or a starts after b ends.
	if c, ok := record.CompareValues(aEnd, bStart); ok && c < 0 {
		return true
	}
	if c, ok := record.CompareValues(aStart, bEnd); ok && c > 0 {
		return true
	}
	return false
}
