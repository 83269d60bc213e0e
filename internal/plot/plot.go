// Package plot renders analysis figures to PNG or SVG files with go-chart.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/analysis"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// ErrUnsupportedFormat is returned for formats other than png and svg.
var ErrUnsupportedFormat = errors.New("unsupported figure format")

// File names, without extension, of the rendered figures.
const (
	NameBar     = "timepoints_per_regimen"
	NamePie     = "mice_by_sex"
	NameBox     = "final_tumor_volume"
	NameLine    = "mouse_timeline"
	NameScatter = "weight_vs_tumor_volume"
)

// Renderer writes figures into Dir. It implements analysis.PlotAdapter.
type Renderer struct {
	Dir    string
	Format string
	Width  int
	Height int
	Log    logrus.FieldLogger
}

var _ analysis.PlotAdapter = (*Renderer)(nil)

// New validates the format and prepares the output directory.
func New(dir, format string, width, height int) (*Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatPNG
	}
	if format != FormatPNG && format != FormatSVG {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if width <= 0 {
		width = chart.DefaultChartWidth
	}
	if height <= 0 {
		height = chart.DefaultChartHeight
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create figure dir: %w", err)
	}
	return &Renderer{Dir: dir, Format: format, Width: width, Height: height}, nil
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func (r *Renderer) provider() chart.RendererProvider {
	if r.Format == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

func (r *Renderer) write(name string, c renderable) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(r.provider(), &buf); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	p := filepath.Join(r.Dir, name+"."+r.Format)
	if err := utils.SafeWriteFile(p, buf.Bytes()); err != nil {
		return "", err
	}
	if r.Log != nil {
		r.Log.WithFields(logrus.Fields{"figure": name, "path": p, "bytes": buf.Len()}).Debug("figure written")
	}
	return p, nil
}

// Bar draws the number of observations per regimen.
func (r *Renderer) Bar(f analysis.BarFigure) (string, error) {
	bars := make([]chart.Value, len(f.Bars))
	top := 0.0
	for i, c := range f.Bars {
		bars[i] = chart.Value{Label: c.Key, Value: float64(c.Count)}
		if v := float64(c.Count); v > top {
			top = v
		}
	}
	if top == 0 {
		top = 1
	}
	bc := chart.BarChart{
		Title:  f.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Name:  f.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	return r.write(NameBar, bc)
}

// Pie draws the sex distribution with percentage labels.
func (r *Renderer) Pie(f analysis.PieFigure) (string, error) {
	values := make([]chart.Value, 0, len(f.Slices))
	for _, s := range f.Slices {
		values = append(values, chart.Value{Label: s.Label, Value: float64(s.Count)})
	}
	side := r.Height
	if r.Width < side {
		side = r.Width
	}
	pc := chart.PieChart{
		Title:  f.Title,
		Width:  side,
		Height: side,
		Values: values,
	}
	return r.write(NamePie, pc)
}

// Box draws one Tukey box per regimen; outliers are drawn as diamonds.
func (r *Renderer) Box(f analysis.BoxFigure) (string, error) {
	var boxes []analysis.OutlierReport
	for _, b := range f.Boxes {
		if b.N > 0 {
			boxes = append(boxes, b)
		}
	}
	if len(boxes) == 0 {
		return "", errors.New("box plot: no data")
	}
	ticks := make([]chart.Tick, len(boxes))
	lo, hi := boxes[0].Values[0], boxes[0].Values[0]
	for i, b := range boxes {
		ticks[i] = chart.Tick{Value: float64(i + 1), Label: b.Regimen}
		for _, v := range b.Values {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	c := chart.Chart{
		Title:      f.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(boxes)) + 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  f.YLabel,
			Range: &chart.ContinuousRange{Min: lo - pad, Max: hi + pad},
		},
		Series: []chart.Series{boxSeries{
			name:  "final tumor volume",
			boxes: boxes,
			flier: f.Flier,
			style: chart.Style{
				StrokeColor: chart.ColorBlack,
				StrokeWidth: 1.5,
				FillColor:   chart.ColorBlue.WithAlpha(96),
				DotColor:    chart.ColorRed,
			},
		}},
	}
	return r.write(NameBox, c)
}

// Line draws one mouse's tumor volume over time.
func (r *Renderer) Line(f analysis.LineFigure) (string, error) {
	c := chart.Chart{
		Title:      f.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		XAxis:      chart.XAxis{Name: f.XLabel, Range: boundsX(f.Bounds)},
		YAxis:      chart.YAxis{Name: f.YLabel, Range: boundsY(f.Bounds)},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    "tumor volume",
			XValues: f.X,
			YValues: f.Y,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 2,
				DotColor:    chart.ColorBlue,
				DotWidth:    4,
			},
		}},
	}
	return r.write(NameLine, c)
}

// Scatter draws the regression points and, when present, the fitted line.
func (r *Renderer) Scatter(f analysis.ScatterFigure) (string, error) {
	series := []chart.Series{chart.ContinuousSeries{
		Name:    "mice",
		XValues: f.X,
		YValues: f.Y,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    chart.ColorBlue,
			DotWidth:    5,
		},
	}}
	if len(f.Fit) == len(f.X) && len(f.X) >= 2 {
		series = append(series, chart.ContinuousSeries{
			Name:    "fit",
			XValues: f.X,
			YValues: f.Fit,
			Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
		})
	}
	c := chart.Chart{
		Title:      f.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 12}},
		XAxis:      chart.XAxis{Name: f.XLabel, Range: boundsX(f.Bounds)},
		YAxis:      chart.YAxis{Name: f.YLabel, Range: boundsY(f.Bounds)},
		Series:     series,
	}
	return r.write(NameScatter, c)
}

func boundsX(b analysis.Bounds) *chart.ContinuousRange {
	lo, hi := widen(b.XMin, b.XMax)
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func boundsY(b analysis.Bounds) *chart.ContinuousRange {
	lo, hi := widen(b.YMin, b.YMax)
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// widen keeps a zero-width window renderable.
func widen(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	return lo - 1, lo + 1
}
