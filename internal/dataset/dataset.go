// Package dataset holds the in-memory model for tabular text data. Every
// field is raw text; nothing is typed until a caller classifies it.
package dataset

import "strings"

// rowSep joins fields into map keys. Unit separator: tabular text does not
// contain it in practice.
const rowSep = "\x1f"

// Dataset is an ordered table of raw text fields. Columns defines the
// header and the field order of every row.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// New builds a Dataset, normalizing every row to exactly len(columns)
// fields: short rows are padded with empty strings, long rows truncated.
func New(columns []string, rows [][]string) *Dataset {
	ds := &Dataset{Columns: columns, Rows: make([][]string, 0, len(rows))}
	n := len(columns)
	for _, row := range rows {
		switch {
		case len(row) < n:
			padded := make([]string, n)
			copy(padded, row)
			row = padded
		case len(row) > n:
			row = row[:n]
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int { return len(d.Rows) }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return len(d.Columns) }

// ColumnIndex finds the position of a column by exact, case-sensitive name
// match. If a header name repeats, the first occurrence wins.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, c := range d.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Column collects the values of the i-th column in row order.
func (d *Dataset) Column(i int) []string {
	out := make([]string, len(d.Rows))
	for r, row := range d.Rows {
		out[r] = row[i]
	}
	return out
}

// Key joins field values into a single comparable key. Two keys are equal
// exactly when the underlying field tuples are equal.
func Key(fields []string) string {
	return strings.Join(fields, rowSep)
}

// DuplicateRows counts rows that repeat an earlier row field for field. A
// row appearing k times contributes k-1 to the total.
func (d *Dataset) DuplicateRows() int {
	seen := make(map[string]struct{}, len(d.Rows))
	dups := 0
	for _, row := range d.Rows {
		k := Key(row)
		if _, ok := seen[k]; ok {
			dups++
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}

// ApproxBytes estimates the in-memory footprint of the table: string bytes
// plus string and slice header overhead. The figure feeds reports and is
// not exact accounting.
func (d *Dataset) ApproxBytes() int {
	const strHeader = 16
	const sliceHeader = 24
	total := 0
	for _, c := range d.Columns {
		total += len(c) + strHeader
	}
	for _, row := range d.Rows {
		total += sliceHeader
		for _, v := range row {
			total += len(v) + strHeader
		}
	}
	return total
}
