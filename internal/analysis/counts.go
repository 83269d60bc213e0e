package analysis

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
)

// Count is a keyed tally.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TimepointsPerRegimen counts cleaned observations per regimen.
func TimepointsPerRegimen(rows []study.Row) []Count {
	m := map[string]int{}
	for _, r := range rows {
		m[r.Regimen]++
	}
	return sortCounts(m)
}

// MiceBySex counts distinct mice per sex.
func MiceBySex(rows []study.Row) []Count {
	seen := map[string]struct{}{}
	m := map[string]int{}
	for _, r := range rows {
		if _, ok := seen[r.MouseID]; ok {
			continue
		}
		seen[r.MouseID] = struct{}{}
		m[string(r.Sex)]++
	}
	return sortCounts(m)
}

// sortCounts orders by count descending, then key ascending.
func sortCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Key < out[j].Key
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// Share is a pie slice.
type Share struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
}

// Shares converts counts to percentages labelled to one decimal place.
func Shares(counts []Count) []Share {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	out := make([]Share, 0, len(counts))
	for _, c := range counts {
		s := Share{Key: c.Key, Count: c.Count}
		if total > 0 {
			s.Percent = float64(c.Count) * 100 / float64(total)
		}
		s.Label = fmt.Sprintf("%s %.1f%%", c.Key, s.Percent)
		out = append(out, s)
	}
	return out
}
