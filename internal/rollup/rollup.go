// Package rollup reduces datasets by grouping columns and cross-checks
// numeric totals across reductions.
package rollup

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/KestrelData/tabsum-cli/internal/dataset"
)

// ErrUnknownColumn marks a grouping column that does not exist in the
// dataset. Callers that hit it still receive the input dataset, so they
// can degrade to the unreduced data instead of aborting.
var ErrUnknownColumn = errors.New("unknown grouping column")

// ByColumns reduces a dataset to one row per distinct combination of the
// grouping columns. Output rows follow the first-encounter order of their
// keys, and the output schema equals the input schema.
//
// Within a partition each non-grouping column is classified on its own: if
// any value is numeric the column reduces to the sum of the safe-parsed
// values; every value, parseable or not, goes through the parser, so
// stray text contributes the 0.0 sentinel. Otherwise the column carries
// the partition's first non-blank value, or "" when there is none.
func ByColumns(ds *dataset.Dataset, groupCols []string) (*dataset.Dataset, error) {
	idx := make([]int, len(groupCols))
	for i, name := range groupCols {
		j, ok := ds.ColumnIndex(name)
		if !ok {
			return ds, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		idx[i] = j
	}

	parts := make(map[string][]int, len(ds.Rows))
	var order []string
	key := make([]string, len(idx))
	for r, row := range ds.Rows {
		for i, j := range idx {
			key[i] = row[j]
		}
		k := dataset.Key(key)
		if _, ok := parts[k]; !ok {
			order = append(order, k)
		}
		parts[k] = append(parts[k], r)
	}

	grouping := make([]bool, ds.NumCols())
	for _, j := range idx {
		grouping[j] = true
	}

	out := make([][]string, 0, len(order))
	for _, k := range order {
		rows := parts[k]
		first := ds.Rows[rows[0]]
		rec := make([]string, ds.NumCols())
		for j := range ds.Columns {
			if grouping[j] {
				rec[j] = first[j]
				continue
			}
			rec[j] = reduceColumn(ds, rows, j)
		}
		out = append(out, rec)
	}
	return dataset.New(ds.Columns, out), nil
}

// reduceColumn folds one non-grouping column over a partition. The
// any-numeric rule applies per partition, not globally, so the same column
// can sum in one partition and carry text in another.
func reduceColumn(ds *dataset.Dataset, rows []int, col int) string {
	numeric := false
	for _, r := range rows {
		if dataset.IsNumeric(ds.Rows[r][col]) {
			numeric = true
			break
		}
	}
	if numeric {
		sum := 0.0
		for _, r := range rows {
			sum += dataset.ParseNumeric(ds.Rows[r][col])
		}
		return strconv.FormatFloat(sum, 'g', -1, 64)
	}
	for _, r := range rows {
		if v := ds.Rows[r][col]; !dataset.IsBlank(v) {
			return v
		}
	}
	return ""
}
