// Package pipeline drives a full analysis run over one dataset: profile
// the original, roll it up by each group set, profile the aggregates and
// check that numeric totals survive every reduction.
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/KestrelData/tabsum-cli/internal/dataset"
	"github.com/KestrelData/tabsum-cli/internal/rollup"
	"github.com/KestrelData/tabsum-cli/internal/stats"
	"github.com/google/uuid"
)

// RollupResult is one aggregation level of a run. Dataset holds the
// reduced table so callers can write it back out.
type RollupResult struct {
	Label      string
	GroupCols  []string
	RowsBefore int
	RowsAfter  int
	Dataset    *dataset.Dataset
	Report     *stats.Report
}

// Result is everything one run produced. Each pass is an independent
// computation over the same input; nothing accumulates between levels.
type Result struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Original  *stats.Report
	Rollups   []RollupResult
	Totals    *rollup.TotalsCheck
	Warnings  []string
}

// Label names a group set by joining its columns with "+". The empty set
// labels the grand total.
func Label(groupCols []string) string {
	if len(groupCols) == 0 {
		return "total"
	}
	return strings.Join(groupCols, "+")
}

// Run profiles a dataset and reduces it by every group set in turn. A
// group set naming an unknown column degrades to a warning and that level
// carries the unreduced data, mirroring the aggregator's fail-soft
// contract; the run itself never aborts.
func Run(ds *dataset.Dataset, name string, groupSets [][]string) *Result {
	res := &Result{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Original:  stats.Analyze(ds, name),
	}
	var labeled []rollup.LabeledReport
	for _, cols := range groupSets {
		label := Label(cols)
		agg, err := rollup.ByColumns(ds, cols)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("rollup %s: %v (continuing with unreduced data)", label, err))
		}
		rep := stats.Analyze(agg, name+" by "+label)
		res.Rollups = append(res.Rollups, RollupResult{
			Label:      label,
			GroupCols:  cols,
			RowsBefore: ds.NumRows(),
			RowsAfter:  agg.NumRows(),
			Dataset:    agg,
			Report:     rep,
		})
		labeled = append(labeled, rollup.LabeledReport{Label: label, Report: rep})
	}
	res.Totals = rollup.VerifyTotals(res.Original, labeled)
	return res
}
