package plot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/analysis"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func sampleResult() *analysis.Result {
	var meta []study.MouseMeta
	var ms []study.Measurement
	for ri, reg := range []string{"Capomulin", "Ramicane", "Infubinol", "Ceftamin"} {
		for i := 0; i < 5; i++ {
			id := string(rune('a'+ri)) + string(rune('0'+i))
			if ri == 0 && i == 0 {
				id = "l509"
			}
			sex := study.Male
			if i%2 == 0 {
				sex = study.Female
			}
			meta = append(meta, study.MouseMeta{MouseID: id, Regimen: reg, Sex: sex, AgeMonths: 9, WeightG: float64(16 + i)})
			for tp := 0; tp <= 20; tp += 5 {
				vol := 45 + float64(tp)*0.1*float64(ri-1) + float64(i)
				if ri == 2 && i == 4 && tp == 20 {
					vol = 10 // low outlier
				}
				ms = append(ms, study.Measurement{MouseID: id, Timepoint: tp, TumorVolume: vol})
			}
		}
	}
	return analysis.Run(meta, ms, analysis.DefaultOptions())
}

func TestRendererWritesAllFigures(t *testing.T) {
	for _, format := range []string{FormatPNG, FormatSVG} {
		t.Run(format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "figures")
			r, err := New(dir, format, 640, 480)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			paths, err := analysis.RenderFigures(r, sampleResult().Figures())
			if err != nil {
				t.Fatalf("RenderFigures: %v", err)
			}
			if len(paths) != 5 {
				t.Fatalf("rendered %d figures: %v", len(paths), paths)
			}
			for _, p := range paths {
				if filepath.Ext(p) != "."+format {
					t.Fatalf("%s has wrong extension", p)
				}
				b, err := os.ReadFile(p)
				if err != nil {
					t.Fatalf("read %s: %v", p, err)
				}
				switch format {
				case FormatPNG:
					if !bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")) {
						t.Fatalf("%s is not a PNG", p)
					}
				case FormatSVG:
					if !bytes.HasPrefix(b, []byte("<svg")) {
						t.Fatalf("%s is not an SVG", p)
					}
				}
			}
		})
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(t.TempDir(), "gif", 0, 0)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestNewDefaults(t *testing.T) {
	r, err := New(t.TempDir(), "", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Format != FormatPNG || r.Width != chart.DefaultChartWidth || r.Height != chart.DefaultChartHeight {
		t.Fatalf("defaults = %+v", r)
	}
}

func TestScatterSinglePoint(t *testing.T) {
	r, err := New(t.TempDir(), FormatPNG, 320, 240)
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Scatter(analysis.ScatterFigure{
		Title:  "one",
		X:      []float64{20},
		Y:      []float64{40},
		Bounds: analysis.Bounds{XMin: 18, XMax: 22, YMin: 39.5, YMax: 40.5},
	})
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
}

// pathRecorder counts closed paths; only the drawing calls used by boxSeries are implemented.
type pathRecorder struct {
	chart.Renderer
	points  int
	closed  []int
	circles int
}

func (p *pathRecorder) SetClassName(string)             {}
func (p *pathRecorder) SetStrokeColor(drawing.Color)    {}
func (p *pathRecorder) SetFillColor(drawing.Color)      {}
func (p *pathRecorder) SetStrokeWidth(float64)          {}
func (p *pathRecorder) SetStrokeDashArray([]float64)    {}
func (p *pathRecorder) MoveTo(x, y int)                 { p.points = 1 }
func (p *pathRecorder) LineTo(x, y int)                 { p.points++ }
func (p *pathRecorder) Close()                          { p.closed = append(p.closed, p.points) }
func (p *pathRecorder) Stroke()                         {}
func (p *pathRecorder) FillStroke()                     {}
func (p *pathRecorder) Circle(radius float64, x, y int) { p.circles++ }

func TestBoxSeriesDrawsDiamondFliers(t *testing.T) {
	rep := analysis.TukeyReport("Infubinol", []float64{36.3, 60.9, 62.8, 65.5, 66.1, 67.3, 67.7})
	if len(rep.LowerOutliers) != 1 {
		t.Fatalf("fixture should have one low outlier, got %+v", rep)
	}
	s := boxSeries{boxes: []analysis.OutlierReport{rep}, flier: analysis.FlierDiamond}
	rec := &pathRecorder{}
	xr := &chart.ContinuousRange{Min: 0.5, Max: 1.5, Domain: 200}
	yr := &chart.ContinuousRange{Min: 30, Max: 70, Domain: 400}
	s.Render(rec, chart.Box{Left: 10, Bottom: 410, Right: 210, Top: 10}, xr, yr, chart.Style{})

	// one closed box, one closed diamond
	if len(rec.closed) != 2 {
		t.Fatalf("closed paths = %v", rec.closed)
	}
	if rec.closed[1] != 4 || rec.circles != 0 {
		t.Fatalf("flier drawn with %d points and %d circles", rec.closed[1], rec.circles)
	}

	s.flier = "circle"
	rec = &pathRecorder{}
	s.Render(rec, chart.Box{Left: 10, Bottom: 410, Right: 210, Top: 10}, xr, yr, chart.Style{})
	if rec.circles != 1 {
		t.Fatalf("circles = %d", rec.circles)
	}
}
