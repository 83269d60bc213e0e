package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultRegressionRegimen is the regimen whose weight/volume relation is fitted.
const DefaultRegressionRegimen = "Capomulin"

// RegressionReport is an ordinary-least-squares fit of mean tumor volume on mouse
// weight. When Degenerate is set (fewer than 3 points, constant x or constant y)
// the fit fields are zero and YHat is empty.
type RegressionReport struct {
	Regimen    string    `json:"regimen"`
	N          int       `json:"n"`
	XS         []float64 `json:"xs"`
	YS         []float64 `json:"ys"`
	YHat       []float64 `json:"y_hat"`
	Slope      float64   `json:"slope"`
	Intercept  float64   `json:"intercept"`
	R          float64   `json:"r"`
	RSquared   float64   `json:"r_squared"`
	PValue     float64   `json:"p_value"`
	StdErr     float64   `json:"stderr"`
	Degenerate bool      `json:"degenerate,omitempty"`
}

// WeightSeries averages tumor volume per distinct weight for one regimen,
// ordered by ascending weight.
func WeightSeries(rows []study.Row, regimen string) (xs, ys []float64) {
	sum := map[float64]float64{}
	cnt := map[float64]int{}
	for _, r := range rows {
		if r.Regimen != regimen {
			continue
		}
		sum[r.WeightG] += r.TumorVolume
		cnt[r.WeightG]++
	}
	xs = make([]float64, 0, len(cnt))
	for w := range cnt {
		xs = append(xs, w)
	}
	sort.Float64s(xs)
	ys = make([]float64, len(xs))
	for i, w := range xs {
		ys[i] = sum[w] / float64(cnt[w])
	}
	return xs, ys
}

// AnalyzeRegression fits the weight series of regimen.
func AnalyzeRegression(rows []study.Row, regimen string) RegressionReport {
	if regimen == "" {
		regimen = DefaultRegressionRegimen
	}
	xs, ys := WeightSeries(rows, regimen)
	return Regress(regimen, xs, ys)
}

// Regress fits y = slope*x + intercept and tests r against rho=0 with a two-sided
// Student t on n-2 degrees of freedom.
func Regress(regimen string, xs, ys []float64) RegressionReport {
	rep := RegressionReport{Regimen: regimen, N: len(xs), XS: xs, YS: ys, YHat: []float64{}}
	if rep.N < 3 || constant(xs) || constant(ys) {
		rep.Degenerate = true
		return rep
	}
	rep.Intercept, rep.Slope = stat.LinearRegression(xs, ys, nil, false)
	r := stat.Correlation(xs, ys, nil)
	r = math.Max(-1, math.Min(1, r))
	rep.R = r
	rep.RSquared = r * r

	df := float64(rep.N - 2)
	if math.Abs(r) < 1 {
		t := r * math.Sqrt(df/(1-r*r))
		rep.PValue = 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Survival(math.Abs(t))
		_, vx := stat.MeanVariance(xs, nil)
		_, vy := stat.MeanVariance(ys, nil)
		rep.StdErr = math.Sqrt((1 - r*r) * vy / vx / df)
	}
	rep.YHat = make([]float64, rep.N)
	for i, x := range xs {
		rep.YHat[i] = rep.Slope*x + rep.Intercept
	}
	return rep
}

func constant(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}
