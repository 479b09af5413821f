package index

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/pckhoi/datamatch/record"
)

// UnionIndex combines sub-indexes with OR semantics: a row belongs to a
// bucket when any sub-index put it there. Buckets produced under the
// same key by different sub-indexes are merged into one, which loosens
// matching compared to any single sub-index.
type UnionIndex struct {
	indexes []Index
}

// Union combines the given indexes with OR semantics.
func Union(indexes ...Index) *UnionIndex {
	return &UnionIndex{indexes: indexes}
}

var _ Index = (*UnionIndex)(nil)

// Build implements Index.
func (ix *UnionIndex) Build(t *record.Table) (*Buckets, error) {
	rows := make(map[BucketKey]*roaring.Bitmap)
	for _, sub := range ix.indexes {
		b, err := sub.Build(t)
		if err != nil {
			return nil, err
		}
		for key, bm := range b.rows {
			merged, ok := rows[key]
			if !ok {
				rows[key] = bm.Clone()
				continue
			}
			merged.Or(bm)
		}
	}
	return newBuckets(t, rows), nil
}

// IntersectIndex combines sub-indexes with AND semantics: the bucket key
// space is the cartesian product of the sub-indexes' key spaces and each
// bucket's row set is the intersection of the sub-buckets. Empty
// intersections are dropped. This tightens matching.
type IntersectIndex struct {
	indexes []Index
}

// Intersect combines the given indexes with AND semantics.
func Intersect(indexes ...Index) *IntersectIndex {
	return &IntersectIndex{indexes: indexes}
}

var _ Index = (*IntersectIndex)(nil)

// Build implements Index.
func (ix *IntersectIndex) Build(t *record.Table) (*Buckets, error) {
	subs := make([]*Buckets, len(ix.indexes))
	for i, sub := range ix.indexes {
		b, err := sub.Build(t)
		if err != nil {
			return nil, err
		}
		subs[i] = b
	}

	rows := make(map[BucketKey]*roaring.Bitmap)
	ix.product(subs, nil, nil, rows)
	return newBuckets(t, rows), nil
}

// product walks the cartesian product of the sub-indexes' key spaces,
// pruning any branch whose running intersection is already empty.
func (ix *IntersectIndex) product(subs []*Buckets, keys []BucketKey, acc *roaring.Bitmap, rows map[BucketKey]*roaring.Bitmap) {
	if len(subs) == 0 {
		if acc != nil && !acc.IsEmpty() {
			rows[combineKeys(keys)] = acc
		}
		return
	}
	for _, key := range subs[0].keys {
		bm := subs[0].rows[key]
		var next *roaring.Bitmap
		if acc == nil {
			next = bm.Clone()
		} else {
			next = acc.Clone()
			next.And(bm)
		}
		if next.IsEmpty() {
			continue
		}
		ix.product(subs[1:], append(keys, key), next, rows)
	}
}
