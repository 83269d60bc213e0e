package analysis

import (
	"fmt"
	"math"
)

// Bounds is an axis window for a figure.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// BarFigure plots observation counts per regimen.
type BarFigure struct {
	Title  string
	XLabel string
	YLabel string
	Bars   []Count
}

// PieFigure plots the sex distribution of mice.
type PieFigure struct {
	Title  string
	Slices []Share
}

// BoxFigure plots final tumor volumes of the target regimens with diamond fliers.
type BoxFigure struct {
	Title  string
	YLabel string
	Boxes  []OutlierReport
	Flier  string
}

// LineFigure plots one mouse's tumor volume over time.
type LineFigure struct {
	Title  string
	XLabel string
	YLabel string
	X, Y   []float64
	Bounds Bounds
}

// ScatterFigure plots the regression series with the fitted line.
type ScatterFigure struct {
	Title  string
	XLabel string
	YLabel string
	X, Y   []float64
	Fit    []float64
	Bounds Bounds
}

// FigureSet is the fixed set of report figures.
type FigureSet struct {
	Bar     BarFigure
	Pie     PieFigure
	Box     BoxFigure
	Line    LineFigure
	Scatter ScatterFigure
}

// FlierDiamond is the box plot outlier marker.
const FlierDiamond = "diamond"

// Figures shapes the result for a PlotAdapter.
func (r *Result) Figures() FigureSet {
	fs := FigureSet{
		Bar: BarFigure{
			Title:  "Number of timepoints per drug regimen",
			XLabel: "Drug Regimen",
			YLabel: "Number of timepoints (all mice)",
			Bars:   r.Timepoints,
		},
		Pie: PieFigure{Title: "Total number of mice by sex", Slices: r.SexShares},
		Box: BoxFigure{
			Title:  "Final tumor volume by treatment",
			YLabel: "Tumor Volume (mm3)",
			Boxes:  r.Outliers,
			Flier:  FlierDiamond,
		},
		Line: LineFigure{
			Title:  "Tumor volume for mouse " + r.Mouse,
			XLabel: "Timepoint",
			YLabel: "Tumor Volume (mm3)",
		},
		Scatter: ScatterFigure{
			Title:  fmt.Sprintf("Average tumor volume by mouse weight for the %s regimen", r.Regression.Regimen),
			XLabel: "Weight (g)",
			YLabel: "Average tumor volume",
			X:      r.Regression.XS,
			Y:      r.Regression.YS,
			Fit:    r.Regression.YHat,
		},
	}
	for _, row := range r.Timeline {
		fs.Line.X = append(fs.Line.X, float64(row.Timepoint))
		fs.Line.Y = append(fs.Line.Y, row.TumorVolume)
	}
	if len(fs.Line.X) > 0 {
		b := span(fs.Line.X, fs.Line.Y)
		fs.Line.Bounds = Bounds{XMin: -0.5, XMax: b.XMax + 2, YMin: b.YMin - 0.2, YMax: b.YMax + 0.2}
	}
	if len(fs.Scatter.X) > 0 {
		b := span(fs.Scatter.X, fs.Scatter.Y)
		fs.Scatter.Bounds = Bounds{XMin: b.XMin - 2, XMax: b.XMax + 2, YMin: b.YMin - 0.5, YMax: b.YMax + 0.5}
	}
	return fs
}

func span(xs, ys []float64) Bounds {
	b := Bounds{XMin: math.Inf(1), XMax: math.Inf(-1), YMin: math.Inf(1), YMax: math.Inf(-1)}
	for _, x := range xs {
		b.XMin = math.Min(b.XMin, x)
		b.XMax = math.Max(b.XMax, x)
	}
	for _, y := range ys {
		b.YMin = math.Min(b.YMin, y)
		b.YMax = math.Max(b.YMax, y)
	}
	return b
}

// PlotAdapter renders figures and returns where each one was written.
type PlotAdapter interface {
	Bar(BarFigure) (string, error)
	Pie(PieFigure) (string, error)
	Box(BoxFigure) (string, error)
	Line(LineFigure) (string, error)
	Scatter(ScatterFigure) (string, error)
}

// RenderFigures hands every non-empty figure of fs to a. Figures without data are skipped.
func RenderFigures(a PlotAdapter, fs FigureSet) ([]string, error) {
	var out []string
	add := func(name string, p string, err error) error {
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		out = append(out, p)
		return nil
	}
	if len(fs.Bar.Bars) > 0 {
		p, err := a.Bar(fs.Bar)
		if err := add("bar chart", p, err); err != nil {
			return out, err
		}
	}
	if len(fs.Pie.Slices) > 0 {
		p, err := a.Pie(fs.Pie)
		if err := add("pie chart", p, err); err != nil {
			return out, err
		}
	}
	if hasBoxData(fs.Box) {
		p, err := a.Box(fs.Box)
		if err := add("box plot", p, err); err != nil {
			return out, err
		}
	}
	if len(fs.Line.X) > 0 {
		p, err := a.Line(fs.Line)
		if err := add("line plot", p, err); err != nil {
			return out, err
		}
	}
	if len(fs.Scatter.X) > 0 {
		p, err := a.Scatter(fs.Scatter)
		if err := add("scatter plot", p, err); err != nil {
			return out, err
		}
	}
	return out, nil
}

func hasBoxData(f BoxFigure) bool {
	for _, b := range f.Boxes {
		if b.N > 0 {
			return true
		}
	}
	return false
}
