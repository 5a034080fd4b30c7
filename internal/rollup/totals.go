package rollup

import (
	"math"

	"github.com/KestrelData/tabsum-cli/internal/stats"
)

// totalsTolerance absorbs float summation error from plain summation, not
// semantic drift.
const totalsTolerance = 0.01

// LabeledReport pairs an aggregation label with the profile of its output.
type LabeledReport struct {
	Label  string
	Report *stats.Report
}

// TotalsRow compares one numeric column's total across every aggregate.
// Totals and Deltas run parallel to TotalsCheck.Labels.
type TotalsRow struct {
	Column   string
	Original float64
	Totals   []float64
	Deltas   []float64
}

// TotalsVerdict is the outcome for one aggregation level.
type TotalsVerdict struct {
	Label    string
	Pass     bool
	MaxDelta float64
}

// TotalsCheck reports whether numeric totals survived each reduction.
type TotalsCheck struct {
	Labels   []string
	Rows     []TotalsRow
	Verdicts []TotalsVerdict
}

// VerifyTotals sums every numeric column of the original profile against
// each aggregate's profile. A column that an aggregate lacks, or holds as
// categorical, counts as zero there. The check is a diagnostic: drift
// fails a verdict, it never raises an error.
func VerifyTotals(original *stats.Report, aggregates []LabeledReport) *TotalsCheck {
	tc := &TotalsCheck{
		Labels:   make([]string, len(aggregates)),
		Verdicts: make([]TotalsVerdict, len(aggregates)),
	}
	for i, a := range aggregates {
		tc.Labels[i] = a.Label
		tc.Verdicts[i] = TotalsVerdict{Label: a.Label, Pass: true}
	}
	for _, cs := range original.Columns {
		if !cs.Numeric {
			continue
		}
		row := TotalsRow{
			Column:   cs.Name,
			Original: cs.Sum,
			Totals:   make([]float64, len(aggregates)),
			Deltas:   make([]float64, len(aggregates)),
		}
		for i, a := range aggregates {
			sum := 0.0
			if agg, ok := a.Report.Column(cs.Name); ok && agg.Numeric {
				sum = agg.Sum
			}
			delta := math.Abs(cs.Sum - sum)
			row.Totals[i] = sum
			row.Deltas[i] = delta
			if delta >= totalsTolerance {
				tc.Verdicts[i].Pass = false
			}
			if delta > tc.Verdicts[i].MaxDelta {
				tc.Verdicts[i].MaxDelta = delta
			}
		}
		tc.Rows = append(tc.Rows, row)
	}
	return tc
}

// AllPass reports whether every aggregation level conserved totals.
func (tc *TotalsCheck) AllPass() bool {
	for _, v := range tc.Verdicts {
		if !v.Pass {
			return false
		}
	}
	return true
}
