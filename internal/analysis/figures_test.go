package analysis

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeAdapter struct {
	calls []string
	fail  string
	box   BoxFigure
	line  LineFigure
}

func (f *fakeAdapter) record(name string) (string, error) {
	if name == f.fail {
		return "", errors.New("boom")
	}
	f.calls = append(f.calls, name)
	return name + ".png", nil
}

func (f *fakeAdapter) Bar(BarFigure) (string, error) { return f.record("bar") }
func (f *fakeAdapter) Pie(PieFigure) (string, error) { return f.record("pie") }
func (f *fakeAdapter) Box(b BoxFigure) (string, error) {
	f.box = b
	return f.record("box")
}
func (f *fakeAdapter) Line(l LineFigure) (string, error) {
	f.line = l
	return f.record("line")
}
func (f *fakeAdapter) Scatter(ScatterFigure) (string, error) { return f.record("scatter") }

func TestFiguresFromResult(t *testing.T) {
	meta, ms := syntheticStudy()
	fs := Run(meta, ms, DefaultOptions()).Figures()

	if fs.Box.Flier != FlierDiamond || len(fs.Box.Boxes) != 4 {
		t.Fatalf("box figure = %+v", fs.Box)
	}
	if fs.Line.Title != "Tumor volume for mouse l509" || len(fs.Line.X) != 10 {
		t.Fatalf("line figure = %+v", fs.Line)
	}
	if fs.Line.Bounds.XMin != -0.5 || fs.Line.Bounds.XMax != 47 {
		t.Fatalf("line bounds = %+v", fs.Line.Bounds)
	}
	if !almostEqual(fs.Line.Bounds.YMax, 45.2, 1e-12) {
		t.Fatalf("line y max = %v", fs.Line.Bounds.YMax)
	}
	if fs.Scatter.Bounds.XMin != 13 || fs.Scatter.Bounds.XMax != 27 {
		t.Fatalf("scatter bounds = %+v", fs.Scatter.Bounds)
	}
	if len(fs.Scatter.Fit) != len(fs.Scatter.X) {
		t.Fatalf("fit has %d points for %d weights", len(fs.Scatter.Fit), len(fs.Scatter.X))
	}
}

func TestRenderFiguresOrder(t *testing.T) {
	meta, ms := syntheticStudy()
	fs := Run(meta, ms, DefaultOptions()).Figures()
	a := &fakeAdapter{}
	paths, err := RenderFigures(a, fs)
	if err != nil {
		t.Fatalf("RenderFigures: %v", err)
	}
	want := []string{"bar.png", "pie.png", "box.png", "line.png", "scatter.png"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}
}

func TestRenderFiguresSkipsEmpty(t *testing.T) {
	fs := Run(nil, nil, DefaultOptions()).Figures()
	a := &fakeAdapter{}
	paths, err := RenderFigures(a, fs)
	if err != nil {
		t.Fatalf("RenderFigures: %v", err)
	}
	if len(paths) != 0 || len(a.calls) != 0 {
		t.Fatalf("expected nothing rendered, got %v", a.calls)
	}
}

func TestRenderFiguresStopsOnError(t *testing.T) {
	meta, ms := syntheticStudy()
	fs := Run(meta, ms, DefaultOptions()).Figures()
	a := &fakeAdapter{fail: "box"}
	paths, err := RenderFigures(a, fs)
	if err == nil {
		t.Fatalf("expected error")
	}
	if diff := cmp.Diff([]string{"bar.png", "pie.png"}, paths); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}
}
