// Package study holds the two-table mouse study data model: typed loading of the
// metadata and results tables, the inner join, and duplicate-mouse cleaning.
package study

// Sex of a study animal.
type Sex string

const (
	Male   Sex = "Male"
	Female Sex = "Female"
)

// Column names of the mouse metadata table.
const (
	ColMouseID   = "Mouse ID"
	ColRegimen   = "Drug Regimen"
	ColSex       = "Sex"
	ColAge       = "Age_months"
	ColWeight    = "Weight (g)"
	ColTimepoint = "Timepoint"
	ColVolume    = "Tumor Volume (mm3)"
	ColMetSites  = "Metastatic Sites"
)

// MetadataColumns and ResultsColumns list the required header cells of each table.
var (
	MetadataColumns = []string{ColMouseID, ColRegimen, ColSex, ColAge, ColWeight}
	ResultsColumns  = []string{ColMouseID, ColTimepoint, ColVolume, ColMetSites}
)

// MouseMeta is one row of the metadata table.
type MouseMeta struct {
	MouseID   string  `json:"mouse_id"`
	Regimen   string  `json:"drug_regimen"`
	Sex       Sex     `json:"sex"`
	AgeMonths int     `json:"age_months"`
	WeightG   float64 `json:"weight_g"`
}

// Measurement is one row of the study results table.
type Measurement struct {
	MouseID         string  `json:"mouse_id"`
	Timepoint       int     `json:"timepoint"`
	TumorVolume     float64 `json:"tumor_volume_mm3"`
	MetastaticSites int     `json:"metastatic_sites"`
}

// Row is a measurement joined with its mouse metadata.
type Row struct {
	MouseID         string  `json:"mouse_id"`
	Timepoint       int     `json:"timepoint"`
	TumorVolume     float64 `json:"tumor_volume_mm3"`
	MetastaticSites int     `json:"metastatic_sites"`
	Regimen         string  `json:"drug_regimen"`
	Sex             Sex     `json:"sex"`
	AgeMonths       int     `json:"age_months"`
	WeightG         float64 `json:"weight_g"`
	// Seq is the 0-based position of the source measurement row.
	Seq int `json:"seq"`
}

// Mice returns the number of distinct mouse ids in rows.
func Mice(rows []Row) int {
	seen := make(map[string]struct{}, len(rows)/8+1)
	for _, r := range rows {
		seen[r.MouseID] = struct{}{}
	}
	return len(seen)
}
