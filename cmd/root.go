package cmd

import (
	"fmt"
	"os"
	"strings"

	cfgpkg "github.com/KaramelBytes/pymaceuticals-cli/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	envFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = newLogger()
)

var rootCmd = &cobra.Command{
	Use:   "pyma",
	Short: "Pymaceuticals CLI: clean and analyze a murine tumor drug study",
	Long: `pyma joins mouse metadata with tumor measurements, removes mice with duplicated
timepoints, and reports per-regimen statistics, final-volume outliers, a weight vs tumor
volume regression and the figures that go with them.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pyma/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file with PYMA_* overrides (default .env if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

func loadConfig() {
	if envFile != "" {
		if err := cfgpkg.LoadEnvFile(envFile, true); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
		}
	} else if err := cfgpkg.LoadEnvFile(".env", false); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
	}

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
	} else {
		cfg = c
	}

	level := logrus.InfoLevel
	if cfg != nil && cfg.LogLevel != "" {
		if lv, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
			level = lv
		}
	}
	if debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	logger.WithField("config", cfgFile).Debug("configuration loaded")
}

// settings returns the loaded configuration, or defaults when loading failed.
func settings() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{
		MetadataPath:      "data/Mouse_metadata.csv",
		ResultsPath:       "data/Study_results.csv",
		RegressionRegimen: "Capomulin",
		TimelineRegimen:   "Capomulin",
		DesignatedMouse:   "l509",
		FigureFormat:      "png",
	}
}
