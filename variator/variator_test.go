package variator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pckhoi/datamatch/record"
)

func nameRow(first, last record.Value) record.Row {
	t := record.NewTable("first", "last")
	t.Append("0", first, last)
	return t.Row(0)
}

func value(t *testing.T, r record.Row, field string) record.Value {
	t.Helper()
	v, ok := r.Value(field)
	require.True(t, ok)
	return v
}

func TestIdentity(t *testing.T) {
	r := nameRow("freddie", "beech")
	vs := NewIdentity().Variations(r)
	require.Len(t, vs, 1)
	assert.Equal(t, r, vs[0])
}

func TestSwap(t *testing.T) {
	v := NewSwap("first", "last")

	r := nameRow("freddie", "beech")
	vs := v.Variations(r)
	require.Len(t, vs, 2)
	assert.Equal(t, r, vs[0])
	assert.Equal(t, "beech", value(t, vs[1], "first"))
	assert.Equal(t, "freddie", value(t, vs[1], "last"))

	// The original row is untouched.
	assert.Equal(t, "freddie", value(t, r, "first"))
}

func TestSwapEqualValues(t *testing.T) {
	vs := NewSwap("first", "last").Variations(nameRow("kim", "kim"))
	assert.Len(t, vs, 1)
}

func TestSwapBothNull(t *testing.T) {
	vs := NewSwap("first", "last").Variations(nameRow(nil, nil))
	assert.Len(t, vs, 1)
}

func TestSwapOneNull(t *testing.T) {
	vs := NewSwap("first", "last").Variations(nameRow("freddie", nil))
	require.Len(t, vs, 2)
	assert.Nil(t, value(t, vs[1], "first"))
	assert.Equal(t, "freddie", value(t, vs[1], "last"))
}

func TestSwapMissingField(t *testing.T) {
	vs := NewSwap("first", "suffix").Variations(nameRow("freddie", "beech"))
	assert.Len(t, vs, 1)
}
