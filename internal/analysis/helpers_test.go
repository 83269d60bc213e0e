package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
)

func almostEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func checkClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if !almostEqual(got, want, tol) {
		t.Fatalf("%s = %.10g, want %.10g", name, got, want)
	}
}

// row builds a cleaned study row; seq follows call order within a fixture.
func row(seq int, mouse, regimen string, tp int, vol, weight float64, sex study.Sex) study.Row {
	return study.Row{
		MouseID:     mouse,
		Regimen:     regimen,
		Timepoint:   tp,
		TumorVolume: vol,
		WeightG:     weight,
		Sex:         sex,
		AgeMonths:   10,
		Seq:         seq,
	}
}

func errorsAs(err error, target any) bool { return errors.As(err, target) }
