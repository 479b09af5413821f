// Package variator provides variation expansion: turning one record
// into alternate field-permuted versions of itself. The matcher scores
// every combination of left and right variants and keeps the maximum,
// which absorbs systematic entry errors (swapped first/last name, say)
// without penalizing pairs that were entered correctly.
package variator

import (
	"github.com/pckhoi/datamatch/record"
)

// Variator produces the variants of a record. The returned slice is
// finite, its order is stable, and the original row is always included.
type Variator interface {
	Variations(r record.Row) []record.Row
}

// Identity yields only the record itself. It is the matcher's default.
type Identity struct{}

// NewIdentity returns the no-op variator.
func NewIdentity() Identity { return Identity{} }

var _ Variator = Identity{}

// Variations implements Variator.
func (Identity) Variations(r record.Row) []record.Row {
	return []record.Row{r}
}

// Swap yields the record plus, when the two designated fields differ and
// are not both null, a copy with those fields transposed.
type Swap struct {
	fieldA string
	fieldB string
}

// NewSwap returns a variator that transposes two fields.
func NewSwap(fieldA, fieldB string) Swap {
	return Swap{fieldA: fieldA, fieldB: fieldB}
}

var _ Variator = Swap{}

// Variations implements Variator.
func (s Swap) Variations(r record.Row) []record.Row {
	out := []record.Row{r}

	av, aok := r.Value(s.fieldA)
	bv, bok := r.Value(s.fieldB)
	if !aok || !bok {
		return out
	}
	if av == nil && bv == nil {
		return out
	}
	if record.ValueEqual(av, bv) {
		return out
	}

	swapped := r.WithValue(s.fieldA, bv).WithValue(s.fieldB, av)
	return append(out, swapped)
}
