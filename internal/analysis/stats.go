// Package analysis computes the per-regimen statistics of a cleaned mouse study:
// summary statistics, counts, last observations, Tukey outliers and the
// weight/tumor-volume regression, and shapes them for reporting and plotting.
package analysis

import (
	"math"
	"sort"
)

// quantile returns the q-th quantile of sorted values by linear interpolation
// between order statistics at position (n-1)*q.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func sortedCopy(vals []float64) []float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return cp
}

// orderKeys lists the keys of groups: those named in order first (in that order),
// then the rest lexicographically.
func orderKeys[V any](groups map[string]V, order []string) []string {
	keys := make([]string, 0, len(groups))
	used := make(map[string]bool, len(groups))
	for _, k := range order {
		if _, ok := groups[k]; ok && !used[k] {
			keys = append(keys, k)
			used[k] = true
		}
	}
	var rest []string
	for k := range groups {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
