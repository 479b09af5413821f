// Package record defines the tabular data model consumed by the matcher:
// tables of rows with named, ordered fields and stable row keys.
//
// A Table is append-only during construction and treated as immutable once
// handed to an index or matcher. Values are untyped; nil marks a null.
package record

import (
	"fmt"
	"reflect"
	"slices"
	"time"
)

// Key is the stable, unique identifier of a row within its table.
type Key string

// Value is a single field value. A nil Value is a null.
type Value = any

// IsNull reports whether v is a null value.
func IsNull(v Value) bool {
	return v == nil
}

// ValueEqual reports whether two field values are equal.
//
// Scalars compare by value across integer widths; everything else falls
// back to reflect.DeepEqual so slice-typed values never panic.
func ValueEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}

	return reflect.DeepEqual(a, b)
}

// CompareValues orders two non-null values of the same kind.
// It returns -1, 0 or 1 and ok=false when the values are not comparable.
func CompareValues(a, b Value) (int, bool) {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		switch {
		case av.Before(bv):
			return -1, true
		case av.After(bv):
			return 1, true
		}
		return 0, true
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}

	return 0, false
}

func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Row is a single record: a key plus one value per table field.
type Row struct {
	key    Key
	fields []string
	values []Value
}

// NewRow builds a standalone row. Rows that belong to a Table share the
// table's field slice; standalone rows are mainly useful in tests and
// variator implementations.
func NewRow(key Key, fields []string, values []Value) Row {
	return Row{key: key, fields: fields, values: values}
}

// Key returns the row's key.
func (r Row) Key() Key { return r.key }

// Fields returns the ordered field names.
func (r Row) Fields() []string { return r.fields }

// Value returns the value of the named field.
// ok is false when the field does not exist on this row.
func (r Row) Value(field string) (Value, bool) {
	for i, f := range r.fields {
		if f == field {
			return r.values[i], true
		}
	}
	return nil, false
}

// IsNull reports whether the named field is null or absent.
func (r Row) IsNull(field string) bool {
	v, ok := r.Value(field)
	return !ok || v == nil
}

// Values returns the row values in field order.
func (r Row) Values() []Value {
	return slices.Clone(r.values)
}

// WithValue returns a copy of the row with one field replaced.
// The receiver is not modified. Unknown fields are ignored.
func (r Row) WithValue(field string, v Value) Row {
	out := Row{key: r.key, fields: r.fields, values: slices.Clone(r.values)}
	for i, f := range r.fields {
		if f == field {
			out.values[i] = v
			break
		}
	}
	return out
}

// String returns a compact representation for logs and test failures.
func (r Row) String() string {
	return fmt.Sprintf("Row(%s %v)", r.key, r.values)
}

// Table is an ordered collection of rows sharing one field set.
type Table struct {
	fields []string
	rows   []Row
	byKey  map[Key]int
	dups   []Key
}

// NewTable creates an empty table with the given ordered field names.
func NewTable(fields ...string) *Table {
	return &Table{
		fields: slices.Clone(fields),
		byKey:  make(map[Key]int),
	}
}

// Append adds a row. The number of values must match the field count.
// Duplicate keys are accepted here and rejected later by the matcher's
// structural validation, mirroring how loaders surface dirty data.
func (t *Table) Append(key Key, values ...Value) *Table {
	if len(values) != len(t.fields) {
		panic(fmt.Sprintf("record: row %q has %d values, table has %d fields", key, len(values), len(t.fields)))
	}
	if _, ok := t.byKey[key]; ok {
		t.dups = append(t.dups, key)
	} else {
		t.byKey[key] = len(t.rows)
	}
	t.rows = append(t.rows, Row{key: key, fields: t.fields, values: slices.Clone(values)})
	return t
}

// Fields returns the ordered field names.
func (t *Table) Fields() []string { return slices.Clone(t.fields) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the row at position i.
func (t *Table) Row(i int) Row { return t.rows[i] }

// RowByKey returns the first row with the given key.
func (t *Table) RowByKey(key Key) (Row, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return Row{}, false
	}
	return t.rows[i], true
}

// DuplicateKeys returns the keys that appear more than once, in
// insertion order. An empty result means every key is unique.
func (t *Table) DuplicateKeys() []Key {
	return slices.Clone(t.dups)
}

// SameFields reports whether both tables have the same field set,
// ignoring order.
func (t *Table) SameFields(other *Table) bool {
	if len(t.fields) != len(other.fields) {
		return false
	}
	a := slices.Clone(t.fields)
	b := slices.Clone(other.fields)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// Subset returns a new table holding the rows at the given positions,
// in the given order. Positions out of range are skipped.
func (t *Table) Subset(positions []uint32) *Table {
	out := NewTable(t.fields...)
	for _, p := range positions {
		if int(p) >= len(t.rows) {
			continue
		}
		r := t.rows[p]
		out.Append(r.key, r.values...)
	}
	return out
}
