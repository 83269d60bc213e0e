package cmd

import (
	"fmt"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/analysis"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/plot"
	"github.com/spf13/cobra"
)

var (
	plotInputs inputFlags
	plotTuning analysisFlags
	plotOut    string
	plotFormat string
	plotWidth  int
	plotHeight int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the study figures (bar, pie, box, line, scatter)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		format, width, height := c.FigureFormat, c.FigureWidth, c.FigureHeight
		if plotFormat != "" {
			format = plotFormat
		}
		if plotWidth > 0 {
			width = plotWidth
		}
		if plotHeight > 0 {
			height = plotHeight
		}
		r, err := plot.New(plotOut, format, width, height)
		if err != nil {
			return err
		}
		r.Log = logger

		meta, ms, err := plotInputs.load()
		if err != nil {
			return err
		}
		res := analysis.Run(meta, ms, plotTuning.options())
		printWarnings(cmd, res)
		paths, err := analysis.RenderFigures(r, res.Figures())
		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", p)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotInputs.register(plotCmd)
	plotTuning.register(plotCmd)
	plotCmd.Flags().StringVar(&plotOut, "out", "figures", "output directory")
	plotCmd.Flags().StringVar(&plotFormat, "format", "", "png or svg (overrides figure_format)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 0, "figure width in px (overrides figure_width)")
	plotCmd.Flags().IntVar(&plotHeight, "height", 0, "figure height in px (overrides figure_height)")
}
