package analysis

import (
	"sort"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
)

// LastObservations returns, per mouse, the row at its maximum timepoint, ordered by
// mouse id. Ties at the maximum resolve to the earliest input row.
func LastObservations(rows []study.Row) []study.Row {
	best := map[string]study.Row{}
	for _, r := range rows {
		cur, ok := best[r.MouseID]
		if !ok || r.Timepoint > cur.Timepoint || (r.Timepoint == cur.Timepoint && r.Seq < cur.Seq) {
			best[r.MouseID] = r
		}
	}
	out := make([]study.Row, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MouseID < out[j].MouseID })
	return out
}
