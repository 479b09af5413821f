package index

import (
	"reflect"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/pckhoi/datamatch/record"
)

// FieldsOption configures a FieldsIndex.
type FieldsOption func(*FieldsIndex)

// WithIndexElements makes slice-valued fields fan out: the row joins one
// bucket per element, and with several such fields the bucket keys are
// the cartesian product of their elements.
func WithIndexElements() FieldsOption {
	return func(ix *FieldsIndex) {
		ix.indexElements = true
	}
}

// WithIgnoreMissing tolerates indexed fields that do not exist on the
// table: affected rows produce zero buckets instead of the build failing
// with ErrFieldMissing.
func WithIgnoreMissing() FieldsOption {
	return func(ix *FieldsIndex) {
		ix.ignoreMissing = true
	}
}

// FieldsIndex groups rows by exact equality of the tuple of values of
// one or more designated fields.
type FieldsIndex struct {
	fields        []string
	indexElements bool
	ignoreMissing bool
}

// ByFields returns an index keyed on the given fields.
func ByFields(fields []string, opts ...FieldsOption) *FieldsIndex {
	ix := &FieldsIndex{fields: slices.Clone(fields)}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

var _ Index = (*FieldsIndex)(nil)

// Build implements Index.
func (ix *FieldsIndex) Build(t *record.Table) (*Buckets, error) {
	missing := false
	tableFields := t.Fields()
	for _, f := range ix.fields {
		if !slices.Contains(tableFields, f) {
			if !ix.ignoreMissing {
				return nil, &ErrFieldMissing{Field: f}
			}
			missing = true
		}
	}

	rows := make(map[BucketKey]*roaring.Bitmap)
	if missing {
		// A tolerated missing field empties every row's key tuple.
		return newBuckets(t, rows), nil
	}

	for pos := 0; pos < t.Len(); pos++ {
		row := t.Row(pos)
		for _, key := range ix.rowKeys(row) {
			bm, ok := rows[key]
			if !ok {
				bm = roaring.New()
				rows[key] = bm
			}
			bm.Add(uint32(pos))
		}
	}
	return newBuckets(t, rows), nil
}

// rowKeys returns every bucket key the row belongs to. Without element
// indexing that is exactly one key; with it, the cartesian product of
// the per-field element lists.
func (ix *FieldsIndex) rowKeys(row record.Row) []BucketKey {
	tuples := [][]record.Value{{}}
	for _, f := range ix.fields {
		v, _ := row.Value(f)
		elems := ix.elements(v)
		if len(elems) == 0 {
			return nil
		}
		next := make([][]record.Value, 0, len(tuples)*len(elems))
		for _, tup := range tuples {
			for _, e := range elems {
				grown := make([]record.Value, len(tup)+1)
				copy(grown, tup)
				grown[len(tup)] = e
				next = append(next, grown)
			}
		}
		tuples = next
	}

	keys := make([]BucketKey, len(tuples))
	for i, tup := range tuples {
		keys[i] = EncodeValues(tup...)
	}
	return keys
}

func (ix *FieldsIndex) elements(v record.Value) []record.Value {
	if !ix.indexElements || v == nil {
		return []record.Value{v}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []record.Value{v}
	}
	out := make([]record.Value, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
