package study

import "sort"

// Join inner-joins measurements to metadata on mouse id. Output follows measurement
// order; measurements without metadata are dropped and counted in unmatched.
func Join(meta []MouseMeta, ms []Measurement) (rows []Row, unmatched int) {
	byID := make(map[string]MouseMeta, len(meta))
	for _, m := range meta {
		byID[m.MouseID] = m
	}
	rows = make([]Row, 0, len(ms))
	for i, m := range ms {
		mm, ok := byID[m.MouseID]
		if !ok {
			unmatched++
			continue
		}
		rows = append(rows, Row{
			MouseID:         m.MouseID,
			Timepoint:       m.Timepoint,
			TumorVolume:     m.TumorVolume,
			MetastaticSites: m.MetastaticSites,
			Regimen:         mm.Regimen,
			Sex:             mm.Sex,
			AgeMonths:       mm.AgeMonths,
			WeightG:         mm.WeightG,
			Seq:             i,
		})
	}
	return rows, unmatched
}

// Collision is a (mouse, timepoint) pair observed more than once.
type Collision struct {
	MouseID   string `json:"mouse_id"`
	Timepoint int    `json:"timepoint"`
	Count     int    `json:"count"`
}

// CleanResult is the cleaned dataset plus what was removed.
type CleanResult struct {
	Rows       []Row       `json:"-"`
	MiceBefore int         `json:"mice_before"`
	MiceAfter  int         `json:"mice_after"`
	Duplicates []string    `json:"duplicates"`
	Colliding  []Collision `json:"colliding"`
	// DuplicateRows holds every row of every mouse in Duplicates, in input order.
	DuplicateRows []Row `json:"duplicate_rows"`
}

type obsKey struct {
	mouse string
	tp    int
}

// Clean removes every row of any mouse that has a repeated timepoint.
// A single collision marks the whole mouse record as corrupt.
func Clean(rows []Row) CleanResult {
	counts := make(map[obsKey]int, len(rows))
	for _, r := range rows {
		counts[obsKey{r.MouseID, r.Timepoint}]++
	}
	res := CleanResult{MiceBefore: Mice(rows), Duplicates: []string{}, Colliding: []Collision{}}
	dup := map[string]struct{}{}
	for k, n := range counts {
		if n > 1 {
			dup[k.mouse] = struct{}{}
			res.Colliding = append(res.Colliding, Collision{MouseID: k.mouse, Timepoint: k.tp, Count: n})
		}
	}
	sort.Slice(res.Colliding, func(i, j int) bool {
		if res.Colliding[i].MouseID == res.Colliding[j].MouseID {
			return res.Colliding[i].Timepoint < res.Colliding[j].Timepoint
		}
		return res.Colliding[i].MouseID < res.Colliding[j].MouseID
	})
	for id := range dup {
		res.Duplicates = append(res.Duplicates, id)
	}
	sort.Strings(res.Duplicates)

	res.Rows = make([]Row, 0, len(rows))
	for _, r := range rows {
		if _, bad := dup[r.MouseID]; bad {
			res.DuplicateRows = append(res.DuplicateRows, r)
			continue
		}
		res.Rows = append(res.Rows, r)
	}
	res.MiceAfter = Mice(res.Rows)
	return res
}
