// Package projector narrows a table to a fixed, ordered set of columns.
package projector

import (
	"errors"
	"fmt"
	"strings"

	"metprep/internal/table"
)

// ErrMissingColumn is returned when a requested column is not in the source header.
var ErrMissingColumn = errors.New("column not found in source header")

// Missing returns the requested columns absent from t's header, in request order.
func Missing(t *table.Table, columns []string) []string {
	var missing []string

	for _, col := range columns {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}

	return missing
}

// Project returns a new table holding exactly columns, in that order, with
// every row of t kept in its original order. Cell values are copied as-is
// and t is left untouched.
func Project(t *table.Table, columns []string) (*table.Table, error) {
	if missing := Missing(t, columns); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, quoteAll(missing))
	}

	positions := make([]int, len(columns))
	for i, col := range columns {
		positions[i], _ = t.ColumnIndex(col)
	}

	rows := make([][]string, len(t.Rows))

	for r, src := range t.Rows {
		row := make([]string, len(positions))

		for i, pos := range positions {
			// Short rows yield empty cells.
			if pos < len(src) {
				row[i] = src[pos]
			}
		}

		rows[r] = row
	}

	header := append([]string(nil), columns...)

	return table.New(header, rows), nil
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}

	return strings.Join(quoted, ", ")
}
