package plot

import (
	"errors"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/analysis"
	"github.com/wcharczuk/go-chart/v2"
)

// boxSeries draws Tukey boxes at x = 1..n. go-chart has no box plot series.
type boxSeries struct {
	name  string
	style chart.Style
	boxes []analysis.OutlierReport
	flier string
}

var _ chart.Series = boxSeries{}

const (
	boxHalfWidth = 0.25 // x units
	flierRadius  = 5    // px
)

func (s boxSeries) GetName() string           { return s.name }
func (s boxSeries) GetStyle() chart.Style     { return s.style }
func (s boxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (s boxSeries) Validate() error {
	if len(s.boxes) == 0 {
		return errors.New("box series: no boxes")
	}
	return nil
}

func (s boxSeries) Render(r chart.Renderer, canvas chart.Box, xr, yr chart.Range, defaults chart.Style) {
	style := s.style.InheritFrom(defaults)
	half := xr.Translate(1+boxHalfWidth) - xr.Translate(1)
	if half < 2 {
		half = 2
	}
	y := func(v float64) int { return canvas.Bottom - yr.Translate(v) }

	for i, b := range s.boxes {
		xc := canvas.Left + xr.Translate(float64(i+1))

		style.GetFillAndStrokeOptions().WriteDrawingOptionsToRenderer(r)
		r.MoveTo(xc-half, y(b.Q3))
		r.LineTo(xc+half, y(b.Q3))
		r.LineTo(xc+half, y(b.Q1))
		r.LineTo(xc-half, y(b.Q1))
		r.Close()
		r.FillStroke()

		style.GetStrokeOptions().WriteDrawingOptionsToRenderer(r)
		r.MoveTo(xc-half, y(b.Median))
		r.LineTo(xc+half, y(b.Median))
		r.Stroke()

		// whiskers with caps at half the box width
		for _, w := range [][2]float64{{b.Q3, b.WhiskerHigh}, {b.Q1, b.WhiskerLow}} {
			r.MoveTo(xc, y(w[0]))
			r.LineTo(xc, y(w[1]))
			r.Stroke()
			r.MoveTo(xc-half/2, y(w[1]))
			r.LineTo(xc+half/2, y(w[1]))
			r.Stroke()
		}

		dot := style.GetDotOptions()
		dot.WriteDrawingOptionsToRenderer(r)
		for _, v := range b.LowerOutliers {
			s.drawFlier(r, xc, y(v))
		}
		for _, v := range b.UpperOutliers {
			s.drawFlier(r, xc, y(v))
		}
	}
}

func (s boxSeries) drawFlier(r chart.Renderer, x, y int) {
	if s.flier != analysis.FlierDiamond {
		r.Circle(flierRadius, x, y)
		r.FillStroke()
		return
	}
	r.MoveTo(x, y-flierRadius)
	r.LineTo(x+flierRadius, y)
	r.LineTo(x, y+flierRadius)
	r.LineTo(x-flierRadius, y)
	r.Close()
	r.FillStroke()
}
