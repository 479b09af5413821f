// Package index provides blocking indexes: structures that partition a
// table into buckets so that only rows sharing a bucket are ever compared.
//
// Building an index over a table returns an explicit *Buckets handle; all
// bucket lookups go through that handle, so there is no ambient registry
// of indexed tables. Bucket membership is tracked with Roaring Bitmaps
// over row positions, which makes composite union/intersection cheap and
// yields deduplicated, position-sorted buckets.
package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/pckhoi/datamatch/record"
)

// BucketKey identifies one bucket within an index. Keys are opaque: they
// encode the tuple of field values (plus the value types) that formed the
// partition, so distinct tuples never collide.
type BucketKey string

const (
	// partSep joins the components of one tuple.
	partSep = "\x1f"
	// tupleSep joins tuples from composed indexes.
	tupleSep = "\x1e"
)

// EncodeValues builds a BucketKey from a tuple of field values.
func EncodeValues(values ...record.Value) BucketKey {
	parts := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = fmt.Sprintf("%T=%v", v, v)
	}
	return BucketKey(strings.Join(parts, partSep))
}

func combineKeys(keys []BucketKey) BucketKey {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return BucketKey(strings.Join(parts, tupleSep))
}

// ErrUnknownBucket is returned when a bucket key was not produced by the
// index build the handle came from.
type ErrUnknownBucket struct {
	Key BucketKey
}

func (e *ErrUnknownBucket) Error() string {
	return fmt.Sprintf("unknown bucket key %q", string(e.Key))
}

// ErrFieldMissing indicates an indexed field that does not exist on the
// table being indexed.
type ErrFieldMissing struct {
	Field string
}

func (e *ErrFieldMissing) Error() string {
	return fmt.Sprintf("field %q does not exist on indexed table", e.Field)
}

// Index partitions tables into buckets.
type Index interface {
	// Build indexes the table and returns the bucket handle.
	Build(t *record.Table) (*Buckets, error)
}

// Buckets is the result of indexing one table: a mapping from bucket key
// to the set of row positions in that bucket. It is immutable.
type Buckets struct {
	table *record.Table
	keys  []BucketKey
	rows  map[BucketKey]*roaring.Bitmap
}

func newBuckets(t *record.Table, rows map[BucketKey]*roaring.Bitmap) *Buckets {
	keys := make([]BucketKey, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return &Buckets{table: t, keys: keys, rows: rows}
}

// Table returns the table this handle was built from.
func (b *Buckets) Table() *record.Table { return b.table }

// Keys returns all bucket keys in deterministic (sorted) order.
func (b *Buckets) Keys() []BucketKey {
	out := make([]BucketKey, len(b.keys))
	copy(out, b.keys)
	return out
}

// Has reports whether the index produced the given bucket key.
func (b *Buckets) Has(key BucketKey) bool {
	_, ok := b.rows[key]
	return ok
}

// Len returns the number of buckets.
func (b *Buckets) Len() int { return len(b.keys) }

// Bucket returns the subset of rows in the given bucket, in table order.
func (b *Buckets) Bucket(key BucketKey) (*record.Table, error) {
	bm, ok := b.rows[key]
	if !ok {
		return nil, &ErrUnknownBucket{Key: key}
	}
	return b.table.Subset(bm.ToArray()), nil
}

// Positions returns the row positions in the given bucket, ascending.
func (b *Buckets) Positions(key BucketKey) ([]uint32, error) {
	bm, ok := b.rows[key]
	if !ok {
		return nil, &ErrUnknownBucket{Key: key}
	}
	return bm.ToArray(), nil
}
