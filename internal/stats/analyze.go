package stats

import (
	"sync"

	"github.com/KestrelData/tabsum-cli/internal/dataset"
)

// inlineColumns is the widest table still profiled on the calling
// goroutine; wider tables fan out one goroutine per column.
const inlineColumns = 4

// Report is the profile of a whole dataset. Columns follow dataset column
// order. Reports are built once and read, never mutated.
type Report struct {
	Title      string
	Rows       int
	Cols       int
	Duplicates int
	Bytes      int
	Columns    []ColumnStats
}

// Analyze profiles every column of a dataset. Columns are independent, so
// wide tables are profiled concurrently; the report is identical either
// way.
func Analyze(ds *dataset.Dataset, title string) *Report {
	rep := &Report{
		Title:      title,
		Rows:       ds.NumRows(),
		Cols:       ds.NumCols(),
		Duplicates: ds.DuplicateRows(),
		Bytes:      ds.ApproxBytes(),
		Columns:    make([]ColumnStats, ds.NumCols()),
	}
	if ds.NumCols() <= inlineColumns {
		for i, name := range ds.Columns {
			rep.Columns[i] = ProfileColumn(name, ds.Column(i))
		}
		return rep
	}
	var wg sync.WaitGroup
	for i, name := range ds.Columns {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			rep.Columns[i] = ProfileColumn(name, ds.Column(i))
		}(i, name)
	}
	wg.Wait()
	return rep
}

// Column finds a column profile by name. First match wins when header
// names repeat.
func (r *Report) Column(name string) (ColumnStats, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnStats{}, false
}

// NumericColumns lists numeric column names in report order.
func (r *Report) NumericColumns() []string {
	var out []string
	for _, c := range r.Columns {
		if c.Numeric {
			out = append(out, c.Name)
		}
	}
	return out
}

// CategoricalColumns lists categorical column names in report order.
func (r *Report) CategoricalColumns() []string {
	var out []string
	for _, c := range r.Columns {
		if !c.Numeric {
			out = append(out, c.Name)
		}
	}
	return out
}
