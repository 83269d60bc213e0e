package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/pymaceuticals-cli/internal/config"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/parser"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
	"github.com/spf13/cobra"
)

// inputFlags locate the two study tables for a command.
type inputFlags struct {
	metadata   string
	results    string
	delimiter  string
	sheetName  string
	sheetIndex int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.metadata, "metadata", "", "mouse metadata table (.csv, .tsv, .xlsx); overrides metadata_path")
	cmd.Flags().StringVar(&f.results, "results", "", "study results table (.csv, .tsv, .xlsx); overrides results_path")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',', ';', 'tab' (default: auto)")
	cmd.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	cmd.Flags().IntVar(&f.sheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (default first sheet)")
}

func (f *inputFlags) paths() (string, string) {
	c := settings()
	meta, res := c.MetadataPath, c.ResultsPath
	if f.metadata != "" {
		meta = f.metadata
	}
	if f.results != "" {
		res = f.results
	}
	return meta, res
}

func (f *inputFlags) options() (parser.Options, error) {
	opt := parser.Options{SheetName: f.sheetName, SheetIndex: f.sheetIndex}
	switch f.delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", f.delimiter)
	}
	return opt, nil
}

// load opens and parses both tables.
func (f *inputFlags) load() ([]study.MouseMeta, []study.Measurement, error) {
	opt, err := f.options()
	if err != nil {
		return nil, nil, err
	}
	metaPath, resPath := f.paths()
	for _, p := range []string{metaPath, resPath} {
		if p == "" {
			return nil, nil, fmt.Errorf("both --metadata and --results are required")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, nil, fmt.Errorf("input table: %w", err)
		}
	}
	metaSrc, err := parser.Open(metaPath, opt)
	if err != nil {
		return nil, nil, err
	}
	defer metaSrc.Close()
	resSrc, err := parser.Open(resPath, opt)
	if err != nil {
		return nil, nil, err
	}
	defer resSrc.Close()

	logger.WithField("metadata", metaPath).WithField("results", resPath).Debug("loading study tables")
	meta, ms, err := analysis.Load(metaSrc, resSrc)
	if err != nil {
		return nil, nil, err
	}
	logger.WithField("mice", len(meta)).WithField("measurements", len(ms)).Debug("study tables loaded")
	return meta, ms, nil
}

// analysisFlags tune which regimens and mouse the pipeline focuses on.
type analysisFlags struct {
	targets  []string
	regimen  string
	timeline string
	mouse    string
	order    []string
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.targets, "targets", nil, "regimens for the final-volume outlier analysis")
	cmd.Flags().StringVar(&f.regimen, "regimen", "", "regimen for the weight vs tumor volume regression")
	cmd.Flags().StringVar(&f.timeline, "timeline-regimen", "", "regimen of the designated mouse")
	cmd.Flags().StringVar(&f.mouse, "mouse", "", "designated mouse for the timeline figure")
	cmd.Flags().StringSliceVar(&f.order, "order", nil, "regimens listed first in the summary table")
}

func (f *analysisFlags) options() analysis.Options {
	c := settings()
	opt := analysis.DefaultOptions()
	opt.Logger = logger
	if len(c.TargetRegimens) > 0 {
		opt.Targets = c.TargetRegimens
	}
	if c.RegressionRegimen != "" {
		opt.RegressionRegimen = c.RegressionRegimen
	}
	if c.TimelineRegimen != "" {
		opt.TimelineRegimen = c.TimelineRegimen
	}
	if c.DesignatedMouse != "" {
		opt.Mouse = c.DesignatedMouse
	}
	opt.SummaryOrder = c.SummaryOrder

	if t := cfgpkg.SplitList(f.targets...); len(t) > 0 {
		opt.Targets = t
	}
	if f.regimen != "" {
		opt.RegressionRegimen = f.regimen
	}
	if f.timeline != "" {
		opt.TimelineRegimen = f.timeline
	}
	if f.mouse != "" {
		opt.Mouse = f.mouse
	}
	if o := cfgpkg.SplitList(f.order...); len(o) > 0 {
		opt.SummaryOrder = o
	}
	return opt
}

func printWarnings(cmd *cobra.Command, res *analysis.Result) {
	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ %s\n", w)
	}
}
