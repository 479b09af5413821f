// Package testutil provides deterministic fixtures shared by tests.
package testutil

import (
	"fmt"

	"github.com/pckhoi/datamatch/record"
)

// Table builds a table from ordered field names and row value tuples,
// assigning sequential string keys "0", "1", ...
func Table(fields []string, rows ...[]record.Value) *record.Table {
	t := record.NewTable(fields...)
	for i, values := range rows {
		t.Append(record.Key(fmt.Sprint(i)), values...)
	}
	return t
}

// KeyedTable builds a table from ordered field names and keyed rows.
func KeyedTable(fields []string, rows map[record.Key][]record.Value, order []record.Key) *record.Table {
	t := record.NewTable(fields...)
	for _, k := range order {
		t.Append(k, rows[k]...)
	}
	return t
}

// Row builds a standalone row for scorer and filter tests.
func Row(key record.Key, fields []string, values ...record.Value) record.Row {
	return record.NewRow(key, fields, values)
}
