package index

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/pckhoi/datamatch/record"
)

// noopBucketKey is the single key produced by the no-op index.
const noopBucketKey = BucketKey("all")

// NoopIndex places the whole table in a single bucket. Using it is like
// using no index at all, which is fine when the table is small enough
// that the quadratic pair count does not matter.
type NoopIndex struct{}

// Noop returns an index that produces one bucket containing every row.
func Noop() *NoopIndex {
	return &NoopIndex{}
}

var _ Index = (*NoopIndex)(nil)

// Build implements Index.
func (ix *NoopIndex) Build(t *record.Table) (*Buckets, error) {
	bm := roaring.New()
	bm.AddRange(0, uint64(t.Len()))
	return newBuckets(t, map[BucketKey]*roaring.Bitmap{noopBucketKey: bm}), nil
}
