package analysis

import (
	"math"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// RegimenSummary describes the tumor volumes observed under one regimen.
// Variance, StdDev and SEM use the n-1 estimator and are zero when
// InsufficientSample is set (n < 2).
type RegimenSummary struct {
	Regimen            string  `json:"regimen"`
	N                  int     `json:"n"`
	Mean               float64 `json:"mean"`
	Median             float64 `json:"median"`
	Variance           float64 `json:"variance"`
	StdDev             float64 `json:"stddev"`
	SEM                float64 `json:"sem"`
	InsufficientSample bool    `json:"insufficient_sample,omitempty"`
}

// SummarizeRegimens groups rows by regimen. Results follow order for the regimens it
// names and are lexicographic otherwise; regimens without rows are omitted.
func SummarizeRegimens(rows []study.Row, order []string) []RegimenSummary {
	groups := map[string][]float64{}
	for _, r := range rows {
		groups[r.Regimen] = append(groups[r.Regimen], r.TumorVolume)
	}
	out := make([]RegimenSummary, 0, len(groups))
	for _, k := range orderKeys(groups, order) {
		out = append(out, summarize(k, groups[k]))
	}
	return out
}

func summarize(regimen string, vals []float64) RegimenSummary {
	s := RegimenSummary{Regimen: regimen, N: len(vals)}
	if s.N == 0 {
		s.InsufficientSample = true
		return s
	}
	s.Median, _ = stats.Median(stats.Float64Data(vals))
	if s.N < 2 {
		s.Mean = vals[0]
		s.InsufficientSample = true
		return s
	}
	s.Mean, s.Variance = stat.MeanVariance(vals, nil)
	s.StdDev = math.Sqrt(s.Variance)
	s.SEM = s.StdDev / math.Sqrt(float64(s.N))
	return s
}
