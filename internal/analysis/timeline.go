package analysis

import (
	"sort"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
)

// DefaultMouse is the designated mouse of the single-mouse tumor volume line plot.
const DefaultMouse = "l509"

// MouseTimeline returns the rows of mouse under regimen sorted by timepoint.
func MouseTimeline(rows []study.Row, regimen, mouse string) []study.Row {
	var out []study.Row
	for _, r := range rows {
		if r.MouseID == mouse && (regimen == "" || r.Regimen == regimen) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timepoint < out[j].Timepoint })
	return out
}
