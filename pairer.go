package datamatch

import (
	"iter"

	"github.com/pckhoi/datamatch/index"
	"github.com/pckhoi/datamatch/record"
)

// Pair is a candidate pair of rows: A from the left table, B from the
// right table. In dedup mode both come from the same table, with A
// earlier than B in generation order.
type Pair struct {
	A record.Row
	B record.Row
}

// Pairer yields the candidate pairs to score. Most callers never touch
// a pairer directly, since Match and Dedupe pick the right one, but the
// interface is exported for customization.
type Pairer interface {
	// Left returns the left table.
	Left() *record.Table
	// Right returns the right table (the same table in dedup mode).
	Right() *record.Table
	// Pairs iterates over all candidate pairs, restricted to rows
	// sharing an index bucket.
	Pairs() iter.Seq[Pair]
}

// MatchPairer pairs rows across two tables: for each bucket key present
// in both tables, every left row is paired with every right row.
type MatchPairer struct {
	left    *record.Table
	right   *record.Table
	leftBk  *index.Buckets
	rightBk *index.Buckets
}

// NewMatchPairer validates both tables and indexes them eagerly.
// It fails with a structural error on duplicate row keys or mismatched
// field sets.
func NewMatchPairer(a, b *record.Table, ix index.Index) (*MatchPairer, error) {
	if dups := a.DuplicateKeys(); len(dups) > 0 {
		return nil, &ErrDuplicateKeys{Side: SideLeft, Keys: dups}
	}
	if dups := b.DuplicateKeys(); len(dups) > 0 {
		return nil, &ErrDuplicateKeys{Side: SideRight, Keys: dups}
	}
	if !a.SameFields(b) {
		return nil, &ErrFieldMismatch{Left: a.Fields(), Right: b.Fields()}
	}
	leftBk, err := ix.Build(a)
	if err != nil {
		return nil, err
	}
	rightBk, err := ix.Build(b)
	if err != nil {
		return nil, err
	}
	return &MatchPairer{left: a, right: b, leftBk: leftBk, rightBk: rightBk}, nil
}

var _ Pairer = (*MatchPairer)(nil)

// Left implements Pairer.
func (p *MatchPairer) Left() *record.Table { return p.left }

// Right implements Pairer.
func (p *MatchPairer) Right() *record.Table { return p.right }

// Pairs implements Pairer.
func (p *MatchPairer) Pairs() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for _, key := range p.leftBk.Keys() {
			if !p.rightBk.Has(key) {
				continue
			}
			leftPos, _ := p.leftBk.Positions(key)
			rightPos, _ := p.rightBk.Positions(key)
			for _, la := range leftPos {
				for _, rb := range rightPos {
					pair := Pair{A: p.left.Row(int(la)), B: p.right.Row(int(rb))}
					if !yield(pair) {
						return
					}
				}
			}
		}
	}
}

// DedupePairer pairs rows within a single table: every 2-combination of
// rows inside each bucket, with no self-pairs and no reversed
// duplicates.
type DedupePairer struct {
	table   *record.Table
	buckets *index.Buckets
}

// NewDedupePairer validates the table and indexes it eagerly.
func NewDedupePairer(t *record.Table, ix index.Index) (*DedupePairer, error) {
	if dups := t.DuplicateKeys(); len(dups) > 0 {
		return nil, &ErrDuplicateKeys{Side: SideLeft, Keys: dups}
	}
	buckets, err := ix.Build(t)
	if err != nil {
		return nil, err
	}
	return &DedupePairer{table: t, buckets: buckets}, nil
}

var _ Pairer = (*DedupePairer)(nil)

// Left implements Pairer.
func (p *DedupePairer) Left() *record.Table { return p.table }

// Right implements Pairer.
func (p *DedupePairer) Right() *record.Table { return p.table }

// Pairs implements Pairer.
func (p *DedupePairer) Pairs() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for _, key := range p.buckets.Keys() {
			pos, _ := p.buckets.Positions(key)
			for i := 0; i < len(pos); i++ {
				for j := i + 1; j < len(pos); j++ {
					pair := Pair{A: p.table.Row(int(pos[i])), B: p.table.Row(int(pos[j]))}
					if !yield(pair) {
						return
					}
				}
			}
		}
	}
}
