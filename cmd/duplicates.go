package cmd

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/study"
	"github.com/spf13/cobra"
)

var dupInputs inputFlags

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Show mice with duplicated timepoints and every row that cleaning drops",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, ms, err := dupInputs.load()
		if err != nil {
			return err
		}
		joined, unmatched := study.Join(meta, ms)
		res := study.Clean(joined)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Unique mice: %d before cleaning, %d after\n", res.MiceBefore, res.MiceAfter)
		if unmatched > 0 {
			fmt.Fprintf(w, "Unmatched measurements: %d\n", unmatched)
		}
		if len(res.Duplicates) == 0 {
			fmt.Fprintln(w, "No duplicated (mouse, timepoint) observations.")
			return nil
		}
		fmt.Fprintf(w, "Duplicate mice: %v\n", res.Duplicates)
		for _, c := range res.Colliding {
			fmt.Fprintf(w, "- %s at timepoint %d seen %d times\n", c.MouseID, c.Timepoint, c.Count)
		}
		writeRows(w, res.DuplicateRows)
		return nil
	},
}

func writeRows(w io.Writer, rows []study.Row) {
	fmt.Fprintf(w, "\n| %s | %s | %s | %s | %s | %s | %s | %s |\n",
		study.ColMouseID, study.ColTimepoint, study.ColVolume, study.ColMetSites,
		study.ColRegimen, study.ColSex, study.ColAge, study.ColWeight)
	fmt.Fprintln(w, "| --- | --- | --- | --- | --- | --- | --- | --- |")
	for _, r := range rows {
		fmt.Fprintf(w, "| %s | %d | %.6f | %d | %s | %s | %d | %g |\n",
			r.MouseID, r.Timepoint, r.TumorVolume, r.MetastaticSites, r.Regimen, r.Sex, r.AgeMonths, r.WeightG)
	}
}

func init() {
	rootCmd.AddCommand(duplicatesCmd)
	dupInputs.register(duplicatesCmd)
}
