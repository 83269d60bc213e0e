package analysis

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/parser"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
	"github.com/sirupsen/logrus"
)

// Options controls which regimens and mouse the pipeline focuses on.
type Options struct {
	// Targets are the regimens of the outlier analysis; empty means DefaultTargets.
	Targets []string
	// RegressionRegimen is fitted for weight vs mean tumor volume.
	RegressionRegimen string
	// TimelineRegimen and Mouse select the single-mouse line plot.
	TimelineRegimen string
	Mouse           string
	// SummaryOrder lists regimens to put first in the summary table.
	SummaryOrder []string
	Logger       logrus.FieldLogger
}

// DefaultOptions returns the reference study settings.
func DefaultOptions() Options {
	return Options{
		Targets:           append([]string{}, DefaultTargets...),
		RegressionRegimen: DefaultRegressionRegimen,
		TimelineRegimen:   DefaultRegressionRegimen,
		Mouse:             DefaultMouse,
	}
}

// Result gathers every derived table of one pipeline run.
type Result struct {
	Rows       int               `json:"rows"`
	Unmatched  int               `json:"unmatched"`
	Cleaning   study.CleanResult `json:"cleaning"`
	Summaries  []RegimenSummary  `json:"summaries"`
	Timepoints []Count           `json:"timepoints_per_regimen"`
	MiceBySex  []Count           `json:"mice_by_sex"`
	SexShares  []Share           `json:"sex_shares"`
	Last       []study.Row       `json:"last_observations"`
	Outliers   []OutlierReport   `json:"outliers"`
	Regression RegressionReport  `json:"regression"`
	Mouse      string            `json:"mouse"`
	Timeline   []study.Row       `json:"timeline"`
	Empty      bool              `json:"empty,omitempty"`
	Warnings   []string          `json:"warnings"`
}

// Load reads both tables. Input problems surface as *study.InputError.
func Load(metadata, results parser.Source) ([]study.MouseMeta, []study.Measurement, error) {
	meta, err := study.LoadMetadata(metadata)
	if err != nil {
		return nil, nil, err
	}
	ms, err := study.LoadMeasurements(results)
	if err != nil {
		return nil, nil, err
	}
	return meta, ms, nil
}

// RunSources loads both tables and runs the pipeline.
func RunSources(metadata, results parser.Source, opt Options) (*Result, error) {
	meta, ms, err := Load(metadata, results)
	if err != nil {
		return nil, err
	}
	return Run(meta, ms, opt), nil
}

// Run joins, cleans and analyzes the study. Every downstream table is computed from
// the cleaned rows only. Statistical edge cases are flagged, never returned as errors.
func Run(meta []study.MouseMeta, ms []study.Measurement, opt Options) *Result {
	log := opt.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if opt.Mouse == "" {
		opt.Mouse = DefaultMouse
	}

	joined, unmatched := study.Join(meta, ms)
	clean := study.Clean(joined)
	res := &Result{
		Rows:      len(joined),
		Unmatched: unmatched,
		Cleaning:  clean,
		Mouse:     opt.Mouse,
		Warnings:  []string{},
	}
	log.WithFields(logrus.Fields{
		"rows":        len(joined),
		"unmatched":   unmatched,
		"mice_before": clean.MiceBefore,
		"mice_after":  clean.MiceAfter,
		"duplicates":  len(clean.Duplicates),
	}).Debug("joined and cleaned study tables")

	if unmatched > 0 {
		res.warn("%d measurement rows have no mouse metadata and were dropped", unmatched)
	}
	if len(clean.Duplicates) > 0 {
		res.warn("removed %d mice with duplicated timepoints: %v", len(clean.Duplicates), clean.Duplicates)
	}

	rows := clean.Rows
	if len(rows) == 0 {
		res.Empty = true
		res.warn("cleaned dataset is empty")
		log.Warn("cleaned dataset is empty")
	}

	res.Summaries = SummarizeRegimens(rows, opt.SummaryOrder)
	res.Timepoints = TimepointsPerRegimen(rows)
	res.MiceBySex = MiceBySex(rows)
	res.SexShares = Shares(res.MiceBySex)
	res.Last = LastObservations(rows)
	res.Outliers = DetectOutliers(res.Last, opt.Targets)
	res.Regression = AnalyzeRegression(rows, opt.RegressionRegimen)
	res.Timeline = MouseTimeline(rows, opt.TimelineRegimen, opt.Mouse)

	for _, s := range res.Summaries {
		if s.InsufficientSample {
			res.warn("regimen %s: %d observation(s); variance and sem undefined", s.Regimen, s.N)
		}
	}
	for _, o := range res.Outliers {
		if o.InsufficientSample {
			res.warn("regimen %s: only %d mice; quartiles not meaningful", o.Regimen, o.N)
		}
	}
	if res.Regression.Degenerate {
		res.warn("regression for %s is degenerate (%d weight groups)", res.Regression.Regimen, res.Regression.N)
	}
	if len(res.Timeline) == 0 && !res.Empty {
		res.warn("mouse %s not found under %s", opt.Mouse, opt.TimelineRegimen)
	}
	log.WithFields(logrus.Fields{
		"regimens": len(res.Summaries),
		"last":     len(res.Last),
		"warnings": len(res.Warnings),
	}).Debug("analysis complete")
	return res
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
