package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/analysis"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/bundle"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/plot"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaInputs  inputFlags
	anaTuning  analysisFlags
	anaJSON    bool
	anaOutput  string
	anaStudy   string
	anaFigures bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Clean the study tables and report per-regimen statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if anaFigures && anaStudy == "" {
			return fmt.Errorf("--figures requires --study")
		}
		meta, ms, err := anaInputs.load()
		if err != nil {
			return err
		}
		res := analysis.Run(meta, ms, anaTuning.options())
		printWarnings(cmd, res)

		var out []byte
		if anaJSON {
			if out, err = utils.PrettyJSON(res); err != nil {
				return err
			}
		} else {
			out = []byte(res.Markdown())
		}

		// Decide where to write: --output path, or into a study bundle, or stdout
		written := false
		if anaOutput != "" {
			if err := utils.SafeWriteFile(anaOutput, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutput)
			written = true
		}
		if anaStudy != "" {
			if err := writeToBundle(cmd, anaStudy, res); err != nil {
				return err
			}
			written = true
		}
		if !written {
			_, err := cmd.OutOrStdout().Write(out)
			return err
		}
		return nil
	},
}

// writeToBundle stores the report, the JSON result and optionally the figures in a study.
func writeToBundle(cmd *cobra.Command, name string, res *analysis.Result) error {
	dir, err := resolveStudyDir(name)
	if err != nil {
		return err
	}
	b, err := bundle.Load(dir)
	if err != nil {
		return err
	}
	metaPath, resPath := anaInputs.paths()
	if err := b.SetInputs(metaPath, resPath); err != nil {
		return err
	}
	if _, err := b.WriteFile(bundle.KindReport, "summary.md", []byte(res.Markdown())); err != nil {
		return err
	}
	data, err := utils.PrettyJSON(res)
	if err != nil {
		return err
	}
	if _, err := b.WriteFile(bundle.KindData, "result.json", data); err != nil {
		return err
	}
	if anaFigures {
		c := settings()
		r, err := plot.New(filepath.Join(b.RootDir(), "figures"), c.FigureFormat, c.FigureWidth, c.FigureHeight)
		if err != nil {
			return err
		}
		r.Log = logger
		paths, err := analysis.RenderFigures(r, res.Figures())
		for _, p := range paths {
			if terr := b.Track(bundle.KindFigure, p); terr != nil {
				return terr
			}
		}
		if err != nil {
			return err
		}
	}
	b.MarkAnalyzed()
	if err := b.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to study %s (%d artifacts)\n", b.Name, len(b.Artifacts))
	return nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaInputs.register(analyzeCmd)
	anaTuning.register(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "emit the result as JSON instead of markdown")
	analyzeCmd.Flags().StringVarP(&anaOutput, "output", "o", "", "write the report to a file")
	analyzeCmd.Flags().StringVarP(&anaStudy, "study", "s", "", "study bundle to write summary.md and result.json into")
	analyzeCmd.Flags().BoolVar(&anaFigures, "figures", false, "also render figures into the study bundle")
}
