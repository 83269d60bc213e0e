package analysis

import (
	"fmt"
	"strings"
)

// Markdown renders the result as bracketed sections suitable for a standalone doc.
func (r *Result) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	b.WriteString(fmt.Sprintf("Joined rows: %d\n", r.Rows))
	if r.Unmatched > 0 {
		b.WriteString(fmt.Sprintf("Unmatched measurements: %d\n", r.Unmatched))
	}
	b.WriteString(fmt.Sprintf("Unique mice: %d before cleaning, %d after\n", r.Cleaning.MiceBefore, r.Cleaning.MiceAfter))

	b.WriteString("\n[CLEANING]\n")
	if len(r.Cleaning.Duplicates) == 0 {
		b.WriteString("No duplicated (mouse, timepoint) observations.\n")
	} else {
		b.WriteString(fmt.Sprintf("Removed mice: %s (%d rows)\n", strings.Join(r.Cleaning.Duplicates, ", "), len(r.Cleaning.DuplicateRows)))
		for _, c := range r.Cleaning.Colliding {
			b.WriteString(fmt.Sprintf("- %s at timepoint %d seen %d times\n", c.MouseID, c.Timepoint, c.Count))
		}
	}

	if len(r.Summaries) > 0 {
		b.WriteString("\n[SUMMARY STATISTICS]\n")
		b.WriteString("| Regimen | N | Mean | Median | Variance | Std Dev | SEM |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
		for _, s := range r.Summaries {
			if s.InsufficientSample {
				b.WriteString(fmt.Sprintf("| %s | %d | %.4f | %.4f | n/a | n/a | n/a |\n", safeVal(s.Regimen), s.N, s.Mean, s.Median))
				continue
			}
			b.WriteString(fmt.Sprintf("| %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
				safeVal(s.Regimen), s.N, s.Mean, s.Median, s.Variance, s.StdDev, s.SEM))
		}
	}

	if len(r.Timepoints) > 0 || len(r.SexShares) > 0 {
		b.WriteString("\n[COUNTS]\n")
		for _, c := range r.Timepoints {
			b.WriteString(fmt.Sprintf("- %s: %d timepoints\n", c.Key, c.Count))
		}
		if len(r.SexShares) > 0 {
			parts := make([]string, len(r.SexShares))
			for i, s := range r.SexShares {
				parts[i] = fmt.Sprintf("%s (%d)", s.Label, s.Count)
			}
			b.WriteString("- Mice by sex: " + strings.Join(parts, ", ") + "\n")
		}
	}

	if len(r.Outliers) > 0 {
		b.WriteString("\n[FINAL TUMOR VOLUME]\n")
		for _, o := range r.Outliers {
			if o.N == 0 {
				b.WriteString(fmt.Sprintf("- %s: no mice\n", o.Regimen))
				continue
			}
			b.WriteString(fmt.Sprintf("- %s (n=%d): q1 %.4f, median %.4f, q3 %.4f, iqr %.4f, fences [%.4f, %.4f]; %d lower and %d upper outliers",
				o.Regimen, o.N, o.Q1, o.Median, o.Q3, o.IQR, o.LowerFence, o.UpperFence, len(o.LowerOutliers), len(o.UpperOutliers)))
			if o.InsufficientSample {
				b.WriteString(" (insufficient sample)")
			}
			b.WriteString("\n")
		}
	}

	g := r.Regression
	b.WriteString("\n[REGRESSION]\n")
	if g.Degenerate {
		b.WriteString(fmt.Sprintf("%s: weight vs mean tumor volume is degenerate (%d points)\n", g.Regimen, g.N))
	} else {
		b.WriteString(fmt.Sprintf("%s: y = %.4fx + %.4f (n=%d)\n", g.Regimen, g.Slope, g.Intercept, g.N))
		b.WriteString(fmt.Sprintf("Pearson r=%.3f, r²=%.3f, p=%.3g, slope stderr=%.4f\n", g.R, g.RSquared, g.PValue, g.StdErr))
	}

	if len(r.Timeline) > 0 {
		b.WriteString(fmt.Sprintf("\n[MOUSE %s]\n", r.Mouse))
		for _, row := range r.Timeline {
			b.WriteString(fmt.Sprintf("- t=%d: %.4f mm3\n", row.Timepoint, row.TumorVolume))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
