package analysis

import (
	"testing"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
	"github.com/google/go-cmp/cmp"
)

func TestRegressKnownValues(t *testing.T) {
	rep := Regress("Capomulin", []float64{1, 2, 3, 4, 5}, []float64{2, 4, 5, 4, 5})
	if rep.Degenerate {
		t.Fatalf("unexpected degenerate report")
	}
	checkClose(t, "slope", rep.Slope, 0.6, 1e-9)
	checkClose(t, "intercept", rep.Intercept, 2.2, 1e-9)
	checkClose(t, "r", rep.R, 0.7745966692414834, 1e-9)
	checkClose(t, "r2", rep.RSquared, 0.6, 1e-9)
	checkClose(t, "p", rep.PValue, 0.12402706265755459, 1e-6)
	checkClose(t, "stderr", rep.StdErr, 0.28284271247461895, 1e-9)
	if diff := cmp.Diff([]float64{2.8, 3.4, 4.0, 4.6, 5.2}, rep.YHat, cmp.Comparer(func(a, b float64) bool {
		return almostEqual(a, b, 1e-9)
	})); diff != "" {
		t.Fatalf("y_hat (-want +got):\n%s", diff)
	}
}

func TestRegressPerfectFit(t *testing.T) {
	rep := Regress("x", []float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	checkClose(t, "slope", rep.Slope, 2, 1e-9)
	checkClose(t, "intercept", rep.Intercept, 1, 1e-9)
	checkClose(t, "r", rep.R, 1, 1e-12)
	if rep.PValue > 1e-12 || rep.StdErr > 1e-6 {
		t.Fatalf("perfect fit p=%v stderr=%v", rep.PValue, rep.StdErr)
	}
}

func TestRegressDegenerate(t *testing.T) {
	for name, c := range map[string][2][]float64{
		"two points": {{1, 2}, {3, 4}},
		"constant x": {{2, 2, 2}, {1, 2, 3}},
		"constant y": {{1, 2, 3}, {5, 5, 5}},
		"no points":  {nil, nil},
	} {
		rep := Regress("r", c[0], c[1])
		if !rep.Degenerate {
			t.Fatalf("%s: expected degenerate", name)
		}
		if rep.Slope != 0 || rep.Intercept != 0 || rep.R != 0 || rep.PValue != 0 || len(rep.YHat) != 0 {
			t.Fatalf("%s: fit fields should be zero, got %+v", name, rep)
		}
	}
}

func TestWeightSeriesGroupsAndSorts(t *testing.T) {
	rows := []study.Row{
		row(0, "a", "Capomulin", 0, 40, 22, study.Male),
		row(1, "b", "Capomulin", 0, 36, 17, study.Male),
		row(2, "a", "Capomulin", 5, 44, 22, study.Male),
		row(3, "c", "Capomulin", 0, 38, 17, study.Male),
		row(4, "d", "Ramicane", 0, 10, 30, study.Male),
	}
	xs, ys := WeightSeries(rows, "Capomulin")
	if diff := cmp.Diff([]float64{17, 22}, xs); diff != "" {
		t.Fatalf("xs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{37, 42}, ys); diff != "" {
		t.Fatalf("ys (-want +got):\n%s", diff)
	}
	rep := AnalyzeRegression(rows, "")
	if rep.Regimen != DefaultRegressionRegimen || !rep.Degenerate {
		t.Fatalf("two weight groups should be degenerate: %+v", rep)
	}
}
