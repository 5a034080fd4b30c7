package rollup

import (
	"testing"

	"github.com/KestrelData/tabsum-cli/internal/dataset"
	"github.com/KestrelData/tabsum-cli/internal/stats"
)

func totalsFixture() *dataset.Dataset {
	return dataset.New(
		[]string{"page_id", "ad_id", "impressions", "spend", "status"},
		[][]string{
			{"p1", "a1", "100", "1.10", "active"},
			{"p1", "a2", "250", "2.20", "active"},
			{"p1", "a1", "75", "0.55", "paused"},
			{"p2", "a3", "50", "0.75", "paused"},
			{"p2", "a3", "", "1.05", "active"},
		},
	)
}

func TestVerifyTotalsConserved(t *testing.T) {
	ds := totalsFixture()
	orig := stats.Analyze(ds, "original")

	var aggs []LabeledReport
	for _, groupCols := range [][]string{{"page_id"}, {"page_id", "ad_id"}} {
		agg, err := ByColumns(ds, groupCols)
		if err != nil {
			t.Fatalf("ByColumns(%v): %v", groupCols, err)
		}
		label := groupCols[0]
		if len(groupCols) == 2 {
			label = groupCols[0] + "+" + groupCols[1]
		}
		aggs = append(aggs, LabeledReport{Label: label, Report: stats.Analyze(agg, label)})
	}

	tc := VerifyTotals(orig, aggs)
	if !tc.AllPass() {
		t.Fatalf("totals drifted: %+v", tc.Verdicts)
	}
	if len(tc.Rows) != 2 {
		t.Fatalf("compared %d columns, want 2 numeric", len(tc.Rows))
	}
	for _, row := range tc.Rows {
		for i, d := range row.Deltas {
			if d >= 0.01 {
				t.Errorf("column %s vs %s: delta %v", row.Column, tc.Labels[i], d)
			}
		}
	}
}

func TestVerifyTotalsMissingColumn(t *testing.T) {
	orig := &stats.Report{
		Columns: []stats.ColumnStats{
			{Name: "spend", Numeric: true, Sum: 41.5},
		},
	}
	empty := &stats.Report{}
	tc := VerifyTotals(orig, []LabeledReport{{Label: "bad", Report: empty}})
	if tc.AllPass() {
		t.Fatal("missing column must fail the verdict")
	}
	if tc.Rows[0].Totals[0] != 0 {
		t.Errorf("missing column total = %v, want 0", tc.Rows[0].Totals[0])
	}
	if tc.Verdicts[0].MaxDelta != 41.5 {
		t.Errorf("MaxDelta = %v, want 41.5", tc.Verdicts[0].MaxDelta)
	}
}

func TestVerifyTotalsCategoricalCountsAsZero(t *testing.T) {
	orig := &stats.Report{
		Columns: []stats.ColumnStats{
			{Name: "v", Numeric: true, Sum: 3},
		},
	}
	agg := &stats.Report{
		Columns: []stats.ColumnStats{
			{Name: "v", Numeric: false, UniqueCount: 2},
		},
	}
	tc := VerifyTotals(orig, []LabeledReport{{Label: "x", Report: agg}})
	if tc.Rows[0].Totals[0] != 0 {
		t.Errorf("categorical column total = %v, want 0", tc.Rows[0].Totals[0])
	}
	if tc.Verdicts[0].Pass {
		t.Error("verdict should fail when a numeric column degraded to categorical")
	}
}

func TestVerifyTotalsTolerance(t *testing.T) {
	orig := &stats.Report{
		Columns: []stats.ColumnStats{
			{Name: "v", Numeric: true, Sum: 100},
		},
	}
	within := &stats.Report{
		Columns: []stats.ColumnStats{{Name: "v", Numeric: true, Sum: 100.009}},
	}
	beyond := &stats.Report{
		Columns: []stats.ColumnStats{{Name: "v", Numeric: true, Sum: 100.011}},
	}
	tc := VerifyTotals(orig, []LabeledReport{
		{Label: "within", Report: within},
		{Label: "beyond", Report: beyond},
	})
	if !tc.Verdicts[0].Pass {
		t.Errorf("delta 0.009 should pass, got %+v", tc.Verdicts[0])
	}
	if tc.Verdicts[1].Pass {
		t.Errorf("delta 0.011 should fail, got %+v", tc.Verdicts[1])
	}
	if tc.AllPass() {
		t.Error("AllPass must reflect the failing verdict")
	}
}

func TestVerifyTotalsNoAggregates(t *testing.T) {
	orig := &stats.Report{
		Columns: []stats.ColumnStats{{Name: "v", Numeric: true, Sum: 1}},
	}
	tc := VerifyTotals(orig, nil)
	if !tc.AllPass() {
		t.Error("no aggregates means nothing can fail")
	}
	if len(tc.Rows) != 1 || len(tc.Rows[0].Totals) != 0 {
		t.Errorf("rows = %+v, want one numeric column with no totals", tc.Rows)
	}
}
