// Package stats profiles tabular datasets: per-column type inference over
// raw text, descriptive statistics for numeric columns and frequency
// analysis for categorical ones.
package stats

import (
	"math"
	"sort"

	"github.com/KestrelData/tabsum-cli/internal/dataset"
)

// topValueLimit caps the most-frequent list per categorical column.
const topValueLimit = 5

// ValueCount is one categorical frequency entry.
type ValueCount struct {
	Value string
	Count int
}

// ColumnStats is the profile of a single column. Numeric selects which arm
// is populated.
type ColumnStats struct {
	Name     string
	Count    int
	NonEmpty int
	Empty    int
	Numeric  bool
	// Numeric arm. NumericCount is the size of the parsed subset and can
	// trail NonEmpty when numbers mix with stray text.
	NumericCount int
	Sum          float64
	Mean         float64
	Std          float64
	Min          float64
	Q25          float64
	Median       float64
	Q75          float64
	Max          float64
	Zeros        int
	Negatives    int
	// Categorical arm. TopValues holds at most topValueLimit entries by
	// descending frequency, first-seen order breaking ties.
	UniqueCount int
	TopValues   []ValueCount
}

// ProfileColumn computes the profile of one column, values in row order.
// A single parseable value anywhere routes the whole column into the
// numeric arm; only columns with zero numeric values are categorical.
func ProfileColumn(name string, values []string) ColumnStats {
	cs := ColumnStats{Name: name, Count: len(values)}
	for _, v := range values {
		if !dataset.IsBlank(v) {
			cs.NonEmpty++
		}
	}
	cs.Empty = cs.Count - cs.NonEmpty

	var nums []float64
	for _, v := range values {
		if dataset.IsNumeric(v) {
			nums = append(nums, dataset.ParseNumeric(v))
		}
	}
	if len(nums) > 0 {
		cs.Numeric = true
		fillNumeric(&cs, nums)
	} else {
		fillCategorical(&cs, values)
	}
	return cs
}

func fillNumeric(cs *ColumnStats, nums []float64) {
	n := len(nums)
	cs.NumericCount = n
	lo, hi := nums[0], nums[0]
	sum := 0.0
	for _, x := range nums {
		sum += x
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
		if x == 0 {
			cs.Zeros++
		}
		if x < 0 {
			cs.Negatives++
		}
	}
	cs.Sum = sum
	cs.Mean = sum / float64(n)
	cs.Min = lo
	cs.Max = hi
	if n > 1 {
		var sq float64
		for _, x := range nums {
			d := x - cs.Mean
			sq += d * d
		}
		cs.Std = math.Sqrt(sq / float64(n-1))
	}
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)
	cs.Q25 = quantile(sorted, 0.25)
	cs.Median = quantile(sorted, 0.5)
	cs.Q75 = quantile(sorted, 0.75)
}

func fillCategorical(cs *ColumnStats, values []string) {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if dataset.IsBlank(v) {
			continue
		}
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}
	cs.UniqueCount = len(counts)
	if len(order) == 0 {
		return
	}
	top := make([]ValueCount, 0, len(order))
	for _, v := range order {
		top = append(top, ValueCount{Value: v, Count: counts[v]})
	}
	// Stable over first-seen order, so equal counts keep their relative
	// position.
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > topValueLimit {
		top = top[:topValueLimit]
	}
	cs.TopValues = top
}

// quantile interpolates linearly over a sorted sample, q in [0,1].
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
