package analysis

import (
	"testing"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
)

func TestMouseTimeline(t *testing.T) {
	rows := []study.Row{
		row(0, "l509", "Capomulin", 10, 43.3, 17, study.Male),
		row(1, "s185", "Capomulin", 0, 45, 17, study.Female),
		row(2, "l509", "Capomulin", 0, 45, 17, study.Male),
		row(3, "l509", "Capomulin", 5, 45.6, 17, study.Male),
	}
	got := MouseTimeline(rows, "Capomulin", "l509")
	if len(got) != 3 {
		t.Fatalf("got %d rows", len(got))
	}
	for i, tp := range []int{0, 5, 10} {
		if got[i].Timepoint != tp {
			t.Fatalf("row %d timepoint = %d, want %d", i, got[i].Timepoint, tp)
		}
	}
	if len(MouseTimeline(rows, "Ramicane", "l509")) != 0 {
		t.Fatalf("regimen filter ignored")
	}
	if len(MouseTimeline(rows, "", "l509")) != 3 {
		t.Fatalf("empty regimen should match any")
	}
	if len(MouseTimeline(rows, "Capomulin", "x000")) != 0 {
		t.Fatalf("absent mouse should yield no rows")
	}
}
