package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pckhoi/datamatch/record"
	"github.com/pckhoi/datamatch/similarity"
)

func pairRows(fields []string, a, b []record.Value) (record.Row, record.Row) {
	t := record.NewTable(fields...)
	t.Append("a", a...)
	t.Append("b", b...)
	return t.Row(0), t.Row(1)
}

func TestFieldsRMS(t *testing.T) {
	s := Fields(map[string]similarity.Similarity{
		"first": similarity.NewString(),
		"last":  similarity.NewString(),
	})

	// last identical (1.0), first "ab" vs "ae" (0.5):
	// sqrt((1 + 0.25) / 2)
	a, b := pairRows([]string{"first", "last"}, []record.Value{"ab", "beech"}, []record.Value{"ae", "beech"})
	res, err := s.Score(a, b)
	require.NoError(t, err)
	require.False(t, res.Refused())
	assert.InDelta(t, math.Sqrt(0.625), res.Score(), 1e-9)
}

func TestFieldsIdenticalScoresOne(t *testing.T) {
	s := Fields(map[string]similarity.Similarity{
		"first": similarity.NewString(),
		"last":  similarity.NewString(),
	})
	a, b := pairRows([]string{"first", "last"}, []record.Value{"ab", "cd"}, []record.Value{"ab", "cd"})
	res, err := s.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Score())
}

func TestFieldsNullScoresZero(t *testing.T) {
	s := Fields(map[string]similarity.Similarity{"first": similarity.NewString()})
	a, b := pairRows([]string{"first"}, []record.Value{nil}, []record.Value{"ab"})
	res, err := s.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score())
}

func TestFieldsMissingField(t *testing.T) {
	s := Fields(map[string]similarity.Similarity{"uid": similarity.NewString()})
	a, b := pairRows([]string{"first"}, []record.Value{"x"}, []record.Value{"y"})
	_, err := s.Score(a, b)
	var missing *ErrFieldMissing
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "uid", missing.Field)
}

func TestAbsolute(t *testing.T) {
	s := NewAbsolute("attract_id", 0.95)

	a, b := pairRows([]string{"attract_id"}, []record.Value{"x1"}, []record.Value{"x1"})
	res, err := s.Score(a, b)
	require.NoError(t, err)
	require.False(t, res.Refused())
	assert.Equal(t, 0.95, res.Score())

	a, b = pairRows([]string{"attract_id"}, []record.Value{"x1"}, []record.Value{"x2"})
	res, err = s.Score(a, b)
	require.NoError(t, err)
	assert.True(t, res.Refused())

	a, b = pairRows([]string{"attract_id"}, []record.Value{nil}, []record.Value{"x1"})
	res, err = s.Score(a, b)
	require.NoError(t, err)
	assert.True(t, res.Refused())
}

func TestAbsoluteMissingField(t *testing.T) {
	a, b := pairRows([]string{"first"}, []record.Value{"x"}, []record.Value{"y"})

	_, err := NewAbsolute("attract_id", 1).Score(a, b)
	var missing *ErrFieldMissing
	require.ErrorAs(t, err, &missing)

	res, err := NewAbsolute("attract_id", 1, WithIgnoreMissing()).Score(a, b)
	require.NoError(t, err)
	assert.True(t, res.Refused())
}

func TestMaxVetoOverridesWeakFieldScore(t *testing.T) {
	s := NewMax(
		NewAbsolute("attract_id", 1),
		Fields(map[string]similarity.Similarity{"first_name": similarity.NewJaroWinkler(false)}),
	)

	// attract_id matches exactly: 1.0 wins no matter how dissimilar the
	// names are.
	a, b := pairRows([]string{"attract_id", "first_name"},
		[]record.Value{"1010", "alice"}, []record.Value{"1010", "zorro"})
	res, err := s.Score(a, b)
	require.NoError(t, err)
	require.False(t, res.Refused())
	assert.Equal(t, 1.0, res.Score())

	// attract_id differs: the absolute scorer refuses and the name score
	// falls through.
	a, b = pairRows([]string{"attract_id", "first_name"},
		[]record.Value{"1010", "alice"}, []record.Value{"2020", "alice"})
	res, err = s.Score(a, b)
	require.NoError(t, err)
	require.False(t, res.Refused())
	assert.Equal(t, 1.0, res.Score())
}

func TestMaxAllRefuse(t *testing.T) {
	s := NewMax(NewAbsolute("a", 1), NewAbsolute("b", 1))
	a, b := pairRows([]string{"a", "b"}, []record.Value{"x", "y"}, []record.Value{"p", "q"})
	res, err := s.Score(a, b)
	require.NoError(t, err)
	assert.True(t, res.Refused())
}

func TestMinPicksLowest(t *testing.T) {
	s := NewMin(
		Func(func(a, b record.Row) float64 { return 0.9 }),
		Func(func(a, b record.Row) float64 { return 0.4 }),
		NewAbsolute("missing", 1, WithIgnoreMissing()),
	)
	a, b := pairRows([]string{"f"}, []record.Value{"x"}, []record.Value{"y"})
	res, err := s.Score(a, b)
	require.NoError(t, err)
	require.False(t, res.Refused())
	assert.Equal(t, 0.4, res.Score())
}

func TestAlter(t *testing.T) {
	inner := Func(func(a, b record.Row) float64 { return 0.5 })
	halve := func(v float64) float64 { return v / 2 }

	s := NewAlter(inner, map[record.Key]record.Value{"a": "grp1", "b": "grp1"}, halve)
	a, b := pairRows([]string{"f"}, []record.Value{"x"}, []record.Value{"y"})
	res, err := s.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.25, res.Score())

	// Different groups: passthrough.
	s = NewAlter(inner, map[record.Key]record.Value{"a": "grp1", "b": "grp2"}, halve)
	res, err = s.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.Score())

	// Unrecorded key: passthrough.
	s = NewAlter(inner, map[record.Key]record.Value{"a": "grp1"}, halve)
	res, err = s.Score(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.Score())
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "Score(0.5)", Of(0.5).String())
	assert.Equal(t, "Refuse(no idea)", Refuse("no idea").String())
}
