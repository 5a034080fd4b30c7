// Package report renders profiles, rollups and totals checks as plain
// text for the console. Rendering never computes; it formats what the
// analytics packages produced.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KestrelData/tabsum-cli/internal/pipeline"
	"github.com/KestrelData/tabsum-cli/internal/rollup"
	"github.com/KestrelData/tabsum-cli/internal/stats"
)

// displayLimit truncates long categorical values in rendered output.
const displayLimit = 50

// Render formats a dataset profile.
func Render(rep *stats.Report) string {
	var b strings.Builder
	b.WriteString("[DATASET PROFILE]\n")
	if rep.Title != "" {
		fmt.Fprintf(&b, "Dataset: %s\n", rep.Title)
	}
	fmt.Fprintf(&b, "Rows: %d\n", rep.Rows)
	fmt.Fprintf(&b, "Columns: %d\n", rep.Cols)
	fmt.Fprintf(&b, "Duplicate rows: %d\n", rep.Duplicates)
	if rep.Bytes > 0 {
		fmt.Fprintf(&b, "Memory: ~%s\n", byteSize(rep.Bytes))
	}
	fmt.Fprintf(&b, "Types: %d numeric, %d categorical\n", len(rep.NumericColumns()), len(rep.CategoricalColumns()))
	b.WriteString("\n[COLUMNS]\n")
	writeColumns(&b, rep)
	return b.String()
}

func writeColumns(b *strings.Builder, rep *stats.Report) {
	for _, c := range rep.Columns {
		if c.Numeric {
			fmt.Fprintf(b, "- %s: numeric (count %d, non-empty %d, parsed %d)\n", c.Name, c.Count, c.NonEmpty, c.NumericCount)
			fmt.Fprintf(b, "  • sum %s, mean %.4g, std %.4g\n", exact(c.Sum), c.Mean, c.Std)
			fmt.Fprintf(b, "  • min %.4g, q25 %.4g, median %.4g, q75 %.4g, max %.4g\n", c.Min, c.Q25, c.Median, c.Q75, c.Max)
			if c.Zeros > 0 || c.Negatives > 0 {
				fmt.Fprintf(b, "  • zeros %d, negatives %d\n", c.Zeros, c.Negatives)
			}
			continue
		}
		fmt.Fprintf(b, "- %s: categorical (count %d, non-empty %d, unique %d)\n", c.Name, c.Count, c.NonEmpty, c.UniqueCount)
		if len(c.TopValues) > 0 {
			b.WriteString("  • top:")
			for i, vc := range c.TopValues {
				if i > 0 {
					b.WriteString(",")
				}
				pct := 0.0
				if c.NonEmpty > 0 {
					pct = float64(vc.Count) * 100 / float64(c.NonEmpty)
				}
				fmt.Fprintf(b, " %s (%d, %.1f%%)", displayValue(vc.Value), vc.Count, pct)
			}
			b.WriteString("\n")
		}
	}
}

// RenderRollup formats one aggregation level: the reduction line followed
// by the aggregate's column profiles.
func RenderRollup(label string, before, after int, rep *stats.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[ROLLUP %s]\n", label)
	fmt.Fprintf(&b, "Rows: %d -> %d (%.1f%% reduction)\n", before, after, reductionPct(before, after))
	b.WriteString("\n[COLUMNS]\n")
	writeColumns(&b, rep)
	return b.String()
}

// RenderTotals formats the conservation check: one line per numeric
// column, then a verdict per aggregation level.
func RenderTotals(tc *rollup.TotalsCheck) string {
	var b strings.Builder
	b.WriteString("[TOTALS CONSERVATION]\n")
	for _, row := range tc.Rows {
		fmt.Fprintf(&b, "- %s: original %s", row.Column, exact(row.Original))
		for i, total := range row.Totals {
			fmt.Fprintf(&b, "; %s %s (delta %.4g)", tc.Labels[i], exact(total), row.Deltas[i])
		}
		b.WriteString("\n")
	}
	for _, v := range tc.Verdicts {
		if v.Pass {
			fmt.Fprintf(&b, "✓ %s: totals conserved (max delta %.4g)\n", v.Label, v.MaxDelta)
		} else {
			fmt.Fprintf(&b, "✗ %s: totals drift (max delta %.4g)\n", v.Label, v.MaxDelta)
		}
	}
	return b.String()
}

// RenderResult formats a full pipeline run: original profile, every
// rollup, the totals check and a closing summary.
func RenderResult(res *pipeline.Result) string {
	var b strings.Builder
	b.WriteString(Render(res.Original))
	for _, r := range res.Rollups {
		b.WriteString("\n")
		b.WriteString(RenderRollup(r.Label, r.RowsBefore, r.RowsAfter, r.Report))
	}
	if res.Totals != nil && len(res.Totals.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderTotals(res.Totals))
	}
	b.WriteString("\n")
	b.WriteString(renderSummary(res))
	return b.String()
}

func renderSummary(res *pipeline.Result) string {
	var b strings.Builder
	b.WriteString("[RUN SUMMARY]\n")
	fmt.Fprintf(&b, "Run: %s\n", res.ID)
	fmt.Fprintf(&b, "Dataset: %s (%d rows, %d columns)\n", res.Original.Title, res.Original.Rows, res.Original.Cols)
	for _, r := range res.Rollups {
		fmt.Fprintf(&b, "- %s: %d -> %d rows (%.1f%% reduction)\n", r.Label, r.RowsBefore, r.RowsAfter, reductionPct(r.RowsBefore, r.RowsAfter))
	}
	if res.Totals != nil && len(res.Totals.Verdicts) > 0 {
		if res.Totals.AllPass() {
			b.WriteString("Totals: conserved across all rollups ✓\n")
		} else {
			b.WriteString("Totals: drift detected ✗\n")
		}
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(&b, "⚠ %s\n", w)
	}
	return b.String()
}

// exact renders a float with full round-trip precision, matching the
// text the aggregator writes into reduced datasets.
func exact(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func reductionPct(before, after int) float64 {
	if before == 0 {
		return 0
	}
	return float64(before-after) * 100 / float64(before)
}

// displayValue flattens newlines and truncates long values for listing.
func displayValue(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= displayLimit {
		return s
	}
	return string(r[:displayLimit]) + "..."
}

func byteSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
