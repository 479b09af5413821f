package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pckhoi/datamatch/record"
)

func rosterTable() *record.Table {
	t := record.NewTable("agency", "rank")
	t.Append("0", "slidell", "officer").
		Append("1", "slidell", "sergeant").
		Append("2", "gretna", "officer").
		Append("3", "gretna", "officer")
	return t
}

func TestNoopIndex(t *testing.T) {
	b, err := Noop().Build(rosterTable())
	require.NoError(t, err)

	require.Equal(t, 1, b.Len())
	key := b.Keys()[0]
	bucket, err := b.Bucket(key)
	require.NoError(t, err)
	assert.Equal(t, 4, bucket.Len())
}

func TestBucketUnknownKey(t *testing.T) {
	b, err := Noop().Build(rosterTable())
	require.NoError(t, err)

	_, err = b.Bucket(BucketKey("nope"))
	var unknown *ErrUnknownBucket
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, BucketKey("nope"), unknown.Key)
}

func TestFieldsIndex(t *testing.T) {
	b, err := ByFields([]string{"agency"}).Build(rosterTable())
	require.NoError(t, err)

	require.Equal(t, 2, b.Len())
	pos, err := b.Positions(EncodeValues("gretna"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 3}, pos)

	pos, err = b.Positions(EncodeValues("slidell"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, pos)
}

func TestFieldsIndexMultipleFields(t *testing.T) {
	b, err := ByFields([]string{"agency", "rank"}).Build(rosterTable())
	require.NoError(t, err)

	require.Equal(t, 3, b.Len())
	pos, err := b.Positions(EncodeValues("gretna", "officer"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 3}, pos)
}

func TestFieldsIndexDistinguishesValueTypes(t *testing.T) {
	tbl := record.NewTable("code")
	tbl.Append("0", 1).Append("1", "1")

	b, err := ByFields([]string{"code"}).Build(tbl)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
}

func TestFieldsIndexMissingField(t *testing.T) {
	_, err := ByFields([]string{"uid"}).Build(rosterTable())
	var missing *ErrFieldMissing
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "uid", missing.Field)

	b, err := ByFields([]string{"uid"}, WithIgnoreMissing()).Build(rosterTable())
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}

func TestFieldsIndexElements(t *testing.T) {
	tbl := record.NewTable("aliases")
	tbl.Append("0", []string{"fred", "freddie"}).
		Append("1", []string{"freddie"}).
		Append("2", []string{})

	b, err := ByFields([]string{"aliases"}, WithIndexElements()).Build(tbl)
	require.NoError(t, err)

	require.Equal(t, 2, b.Len())
	pos, err := b.Positions(EncodeValues("freddie"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, pos)

	pos, err = b.Positions(EncodeValues("fred"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, pos)
}

func TestFieldsIndexElementsCartesian(t *testing.T) {
	tbl := record.NewTable("first", "years")
	tbl.Append("0", []string{"fred", "freddie"}, []int{2019, 2020})

	b, err := ByFields([]string{"first", "years"}, WithIndexElements()).Build(tbl)
	require.NoError(t, err)
	// 2 first names x 2 years.
	assert.Equal(t, 4, b.Len())
	assert.True(t, b.Has(EncodeValues("freddie", 2020)))
}

func TestUnionIndex(t *testing.T) {
	tbl := record.NewTable("c", "d")
	tbl.Append("0", "q", "w").
		Append("1", "w", "q")

	b, err := Union(ByFields([]string{"c"}), ByFields([]string{"d"})).Build(tbl)
	require.NoError(t, err)

	// "q" appears as a c-value of row 0 and a d-value of row 1: both land
	// in one merged bucket, deduplicated and sorted.
	require.Equal(t, 2, b.Len())
	pos, err := b.Positions(EncodeValues("q"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, pos)

	pos, err = b.Positions(EncodeValues("w"))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, pos)
}

func TestIntersectIndex(t *testing.T) {
	tbl := record.NewTable("a", "b")
	tbl.Append("0", 1, "x").
		Append("1", 1, "y").
		Append("2", 2, "x")

	b, err := Intersect(ByFields([]string{"a"}), ByFields([]string{"b"})).Build(tbl)
	require.NoError(t, err)

	// (2, "y") has an empty intersection and is dropped.
	require.Equal(t, 3, b.Len())
	for _, key := range b.Keys() {
		pos, err := b.Positions(key)
		require.NoError(t, err)
		assert.NotEmpty(t, pos)
	}
}

func TestIntersectIndexPropagatesErrors(t *testing.T) {
	_, err := Intersect(ByFields([]string{"a"}), ByFields([]string{"zz"})).Build(rosterTable())
	var missing *ErrFieldMissing
	require.ErrorAs(t, err, &missing)
}
