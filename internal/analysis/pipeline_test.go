package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/parser"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
	"github.com/google/go-cmp/cmp"
)

// syntheticStudy builds a small study: four target regimens plus Placebo, mouse l509
// shrinking under Capomulin, and g989 with a repeated timepoint.
func syntheticStudy() ([]study.MouseMeta, []study.Measurement) {
	var meta []study.MouseMeta
	var ms []study.Measurement
	regimens := []string{"Capomulin", "Ramicane", "Infubinol", "Ceftamin", "Placebo"}
	for ri, reg := range regimens {
		for i := 0; i < 6; i++ {
			id := fmt.Sprintf("%c%d", 'a'+ri, i)
			if reg == "Capomulin" && i == 0 {
				id = "l509"
			}
			sex := study.Male
			if i%2 == 1 {
				sex = study.Female
			}
			weight := float64(15 + i*2)
			meta = append(meta, study.MouseMeta{MouseID: id, Regimen: reg, Sex: sex, AgeMonths: 5 + i, WeightG: weight})
			last := 45
			if i == 5 {
				last = 20 // early dropout
			}
			for tp := 0; tp <= last; tp += 5 {
				vol := 45.0
				if reg == "Capomulin" {
					vol = 45 - float64(tp)*0.1 + weight*0.3 - 4.5
					if tp == 0 {
						vol = 45
					}
				} else if tp > 0 {
					vol = 45 + float64(tp)*(0.2+float64(ri)*0.05) + float64(i)*0.3
				}
				ms = append(ms, study.Measurement{MouseID: id, Timepoint: tp, TumorVolume: vol, MetastaticSites: tp / 20})
			}
		}
	}
	meta = append(meta, study.MouseMeta{MouseID: "g989", Regimen: "Propriva", Sex: study.Female, AgeMonths: 21, WeightG: 26})
	ms = append(ms,
		study.Measurement{MouseID: "g989", Timepoint: 0, TumorVolume: 45},
		study.Measurement{MouseID: "g989", Timepoint: 0, TumorVolume: 45},
		study.Measurement{MouseID: "g989", Timepoint: 5, TumorVolume: 48.786801},
		study.Measurement{MouseID: "ghost", Timepoint: 0, TumorVolume: 45},
	)
	return meta, ms
}

func TestRunSyntheticStudy(t *testing.T) {
	meta, ms := syntheticStudy()
	res := Run(meta, ms, DefaultOptions())

	if diff := cmp.Diff([]string{"g989"}, res.Cleaning.Duplicates); diff != "" {
		t.Fatalf("duplicates (-want +got):\n%s", diff)
	}
	if res.Cleaning.MiceBefore != 31 || res.Cleaning.MiceAfter != 30 {
		t.Fatalf("mice before/after = %d/%d, want 31/30", res.Cleaning.MiceBefore, res.Cleaning.MiceAfter)
	}
	if res.Unmatched != 1 || res.Empty {
		t.Fatalf("unmatched=%d empty=%v", res.Unmatched, res.Empty)
	}

	// g989 must not leak into any downstream table.
	for _, s := range res.Summaries {
		if s.Regimen == "Propriva" {
			t.Fatalf("Propriva only had the removed mouse but has a summary")
		}
	}
	for _, r := range res.Last {
		if r.MouseID == "g989" {
			t.Fatalf("g989 present in last observations")
		}
	}
	for _, c := range res.Timepoints {
		if c.Key == "Propriva" {
			t.Fatalf("Propriva counted in timepoints")
		}
	}

	seen := map[[2]any]bool{}
	for _, r := range res.Cleaning.Rows {
		k := [2]any{r.MouseID, r.Timepoint}
		if seen[k] {
			t.Fatalf("(%s, %d) appears twice after cleaning", r.MouseID, r.Timepoint)
		}
		seen[k] = true
	}

	if len(res.Last) != 30 {
		t.Fatalf("last observations = %d, want 30", len(res.Last))
	}
	if len(res.Outliers) != 4 {
		t.Fatalf("outlier reports = %d", len(res.Outliers))
	}
	if res.Regression.Degenerate || res.Regression.N != 6 || res.Regression.R <= 0.9 {
		t.Fatalf("regression = %+v", res.Regression)
	}

	if len(res.Timeline) != 10 || res.Timeline[0].TumorVolume != 45 {
		t.Fatalf("timeline for l509 = %+v", res.Timeline)
	}
	for i := 1; i < len(res.Timeline); i++ {
		if res.Timeline[i].Timepoint != i*5 || res.Timeline[i].TumorVolume >= res.Timeline[i-1].TumorVolume {
			t.Fatalf("l509 not strictly shrinking at %d: %+v", i, res.Timeline[i])
		}
	}
	if len(res.Warnings) == 0 || !strings.Contains(strings.Join(res.Warnings, "\n"), "g989") {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	meta, ms := syntheticStudy()
	a, err := json.Marshal(Run(meta, ms, DefaultOptions()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 5; i++ {
		b, err := json.Marshal(Run(meta, ms, DefaultOptions()))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(a) != string(b) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestRunEmptyDataset(t *testing.T) {
	res := Run(nil, nil, DefaultOptions())
	if !res.Empty {
		t.Fatalf("expected empty flag")
	}
	if len(res.Summaries) != 0 || len(res.Timepoints) != 0 || len(res.Last) != 0 {
		t.Fatalf("expected empty outputs, got %+v", res)
	}
	if !res.Regression.Degenerate {
		t.Fatalf("regression on empty set should be degenerate")
	}
	for _, o := range res.Outliers {
		if !o.InsufficientSample {
			t.Fatalf("outlier report %s should be insufficient", o.Regimen)
		}
	}
	if _, err := json.Marshal(res); err != nil {
		t.Fatalf("empty result must encode: %v", err)
	}
	md := res.Markdown()
	if !strings.Contains(md, "cleaned dataset is empty") {
		t.Fatalf("markdown missing empty note:\n%s", md)
	}
}

func TestRunSourcesSurfacesInputError(t *testing.T) {
	metaSrc := parser.FromRecords([][]string{{"Mouse ID", "Drug Regimen", "Sex", "Age_months"}})
	resSrc := parser.FromRecords([][]string{{"Mouse ID", "Timepoint", "Tumor Volume (mm3)", "Metastatic Sites"}})
	_, err := RunSources(metaSrc, resSrc, DefaultOptions())
	var ie *study.InputError
	if err == nil || !errorsAs(err, &ie) || ie.Table != study.TableMetadata {
		t.Fatalf("err = %v, want metadata InputError", err)
	}
}

func TestMarkdownSections(t *testing.T) {
	meta, ms := syntheticStudy()
	md := Run(meta, ms, DefaultOptions()).Markdown()
	for _, want := range []string{
		"[DATASET]", "Unique mice: 31 before cleaning, 30 after",
		"[CLEANING]", "Removed mice: g989 (3 rows)", "g989 at timepoint 0 seen 2 times",
		"[SUMMARY STATISTICS]", "| Capomulin | 55 |",
		"[COUNTS]", "Mice by sex: Female 50.0% (15), Male 50.0% (15)",
		"[FINAL TUMOR VOLUME]", "[REGRESSION]", "Pearson r=",
		"[MOUSE l509]", "[NOTES]",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

// Reference data from the Pymaceuticals study. Drop Mouse_metadata.csv and Study_results.csv
// into testdata/ to enable.
func TestReferenceDataset(t *testing.T) {
	metaPath := filepath.Join("testdata", "Mouse_metadata.csv")
	resPath := filepath.Join("testdata", "Study_results.csv")
	if _, err := os.Stat(metaPath); err != nil {
		t.Skip("reference dataset not present")
	}
	if _, err := os.Stat(resPath); err != nil {
		t.Skip("reference dataset not present")
	}
	metaSrc, err := parser.Open(metaPath, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer metaSrc.Close()
	resSrc, err := parser.Open(resPath, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer resSrc.Close()
	res, err := RunSources(metaSrc, resSrc, DefaultOptions())
	if err != nil {
		t.Fatalf("RunSources: %v", err)
	}
	if diff := cmp.Diff([]string{"g989"}, res.Cleaning.Duplicates); diff != "" {
		t.Fatalf("duplicates (-want +got):\n%s", diff)
	}
	if res.Cleaning.MiceBefore != 249 || res.Cleaning.MiceAfter != 248 {
		t.Fatalf("mice before/after = %d/%d", res.Cleaning.MiceBefore, res.Cleaning.MiceAfter)
	}
	var capo *RegimenSummary
	for i := range res.Summaries {
		if res.Summaries[i].Regimen == "Capomulin" {
			capo = &res.Summaries[i]
		}
	}
	if capo == nil {
		t.Fatalf("no Capomulin summary")
	}
	for name, c := range map[string][2]float64{
		"mean": {capo.Mean, 40.6756}, "median": {capo.Median, 41.5577},
		"variance": {capo.Variance, 24.9475}, "stddev": {capo.StdDev, 4.9947}, "sem": {capo.SEM, 0.3293},
	} {
		if d := c[0] - c[1]; d > 1e-3 || d < -1e-3 {
			t.Fatalf("Capomulin %s = %.4f, want %.4f", name, c[0], c[1])
		}
	}
	want := map[string][2]int{"Capomulin": {0, 0}, "Ramicane": {0, 0}, "Infubinol": {1, 0}, "Ceftamin": {0, 0}}
	for _, o := range res.Outliers {
		if got := [2]int{len(o.LowerOutliers), len(o.UpperOutliers)}; got != want[o.Regimen] {
			t.Fatalf("%s outliers = %v, want %v", o.Regimen, got, want[o.Regimen])
		}
	}
	if len(res.Timeline) != 10 || res.Timeline[0].TumorVolume != 45 {
		t.Fatalf("l509 timeline = %+v", res.Timeline)
	}
	if r := res.Regression.R; r < 0.93 || r > 0.97 {
		t.Fatalf("regression r = %.4f, want about 0.95", r)
	}
	if res.Regression.PValue >= 1e-3 {
		t.Fatalf("regression p = %g", res.Regression.PValue)
	}
}
