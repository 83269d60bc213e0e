package analysis

import (
	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
)

// DefaultTargets are the regimens compared in the final-volume box plot.
var DefaultTargets = []string{"Capomulin", "Ramicane", "Infubinol", "Ceftamin"}

// MinQuartileSample is the smallest sample whose quartiles are considered meaningful.
const MinQuartileSample = 4

// OutlierReport holds the Tukey analysis of one regimen's final tumor volumes.
type OutlierReport struct {
	Regimen       string    `json:"regimen"`
	N             int       `json:"n"`
	Q1            float64   `json:"q1"`
	Median        float64   `json:"median"`
	Q3            float64   `json:"q3"`
	IQR           float64   `json:"iqr"`
	LowerFence    float64   `json:"lower_fence"`
	UpperFence    float64   `json:"upper_fence"`
	WhiskerLow    float64   `json:"whisker_low"`
	WhiskerHigh   float64   `json:"whisker_high"`
	Values        []float64 `json:"values"`
	LowerOutliers []float64 `json:"lower_outliers"`
	UpperOutliers []float64 `json:"upper_outliers"`
	// InsufficientSample is set below MinQuartileSample mice; fences are still computed.
	InsufficientSample bool `json:"insufficient_sample,omitempty"`
}

// DetectOutliers builds one report per target regimen from last-observation rows.
// An empty targets list means DefaultTargets.
func DetectOutliers(last []study.Row, targets []string) []OutlierReport {
	if len(targets) == 0 {
		targets = DefaultTargets
	}
	byRegimen := map[string][]float64{}
	for _, r := range last {
		byRegimen[r.Regimen] = append(byRegimen[r.Regimen], r.TumorVolume)
	}
	out := make([]OutlierReport, 0, len(targets))
	for _, t := range targets {
		out = append(out, TukeyReport(t, byRegimen[t]))
	}
	return out
}

// TukeyReport classifies values against q1-1.5*iqr and q3+1.5*iqr. Outliers keep
// the order of values and strictly violate their fence.
func TukeyReport(regimen string, values []float64) OutlierReport {
	rep := OutlierReport{
		Regimen:            regimen,
		N:                  len(values),
		Values:             append([]float64{}, values...),
		LowerOutliers:      []float64{},
		UpperOutliers:      []float64{},
		InsufficientSample: len(values) < MinQuartileSample,
	}
	if len(values) == 0 {
		return rep
	}
	sorted := sortedCopy(values)
	rep.Q1 = quantile(sorted, 0.25)
	rep.Median = quantile(sorted, 0.5)
	rep.Q3 = quantile(sorted, 0.75)
	rep.IQR = rep.Q3 - rep.Q1
	rep.LowerFence = rep.Q1 - 1.5*rep.IQR
	rep.UpperFence = rep.Q3 + 1.5*rep.IQR

	rep.WhiskerLow, rep.WhiskerHigh = rep.Q1, rep.Q3
	for _, v := range sorted {
		if v >= rep.LowerFence {
			rep.WhiskerLow = v
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= rep.UpperFence {
			rep.WhiskerHigh = sorted[i]
			break
		}
	}
	for _, v := range values {
		switch {
		case v < rep.LowerFence:
			rep.LowerOutliers = append(rep.LowerOutliers, v)
		case v > rep.UpperFence:
			rep.UpperOutliers = append(rep.UpperOutliers, v)
		}
	}
	return rep
}
