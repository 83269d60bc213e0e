package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/pymaceuticals-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set pyma configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(w, "No config loaded")
			return nil
		}
		fmt.Fprintf(w, "metadata_path: %s\n", cfg.MetadataPath)
		fmt.Fprintf(w, "results_path: %s\n", cfg.ResultsPath)
		fmt.Fprintf(w, "target_regimens: %s\n", strings.Join(cfg.TargetRegimens, ","))
		fmt.Fprintf(w, "regression_regimen: %s\n", cfg.RegressionRegimen)
		fmt.Fprintf(w, "timeline_regimen: %s\n", cfg.TimelineRegimen)
		fmt.Fprintf(w, "designated_mouse: %s\n", cfg.DesignatedMouse)
		if len(cfg.SummaryOrder) > 0 {
			fmt.Fprintf(w, "summary_order: %s\n", strings.Join(cfg.SummaryOrder, ","))
		}
		fmt.Fprintf(w, "figure_format: %s\n", cfg.FigureFormat)
		fmt.Fprintf(w, "figure_width: %d\n", cfg.FigureWidth)
		fmt.Fprintf(w, "figure_height: %d\n", cfg.FigureHeight)
		fmt.Fprintf(w, "studies_dir: %s\n", cfg.StudiesDir)
		fmt.Fprintf(w, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long:  "Set a config value and save to disk. Keys: " + strings.Join(cfgpkg.Keys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
