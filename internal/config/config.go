package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PYMA_DESIGNATED_MOUSE.
const EnvPrefix = "PYMA"

// Global configuration structure.
type Global struct {
	MetadataPath string `mapstructure:"metadata_path" yaml:"metadata_path"`
	ResultsPath  string `mapstructure:"results_path" yaml:"results_path"`

	TargetRegimens    []string `mapstructure:"target_regimens" yaml:"target_regimens"`
	RegressionRegimen string   `mapstructure:"regression_regimen" yaml:"regression_regimen"`
	TimelineRegimen   string   `mapstructure:"timeline_regimen" yaml:"timeline_regimen"`
	DesignatedMouse   string   `mapstructure:"designated_mouse" yaml:"designated_mouse"`
	SummaryOrder      []string `mapstructure:"summary_order" yaml:"summary_order"`

	// Figures
	FigureFormat string `mapstructure:"figure_format" yaml:"figure_format"`
	FigureWidth  int    `mapstructure:"figure_width" yaml:"figure_width"`
	FigureHeight int    `mapstructure:"figure_height" yaml:"figure_height"`

	StudiesDir string `mapstructure:"studies_dir" yaml:"studies_dir"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
}

var defaults = map[string]any{
	"metadata_path":      "data/Mouse_metadata.csv",
	"results_path":       "data/Study_results.csv",
	"target_regimens":    []string{"Capomulin", "Ramicane", "Infubinol", "Ceftamin"},
	"regression_regimen": "Capomulin",
	"timeline_regimen":   "Capomulin",
	"designated_mouse":   "l509",
	"summary_order":      []string{},
	"figure_format":      "png",
	"figure_width":       1024,
	"figure_height":      400,
	"log_level":          "info",
}

// Keys lists the settable configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults)+1)
	for k := range defaults {
		keys = append(keys, k)
	}
	keys = append(keys, "studies_dir")
	sort.Strings(keys)
	return keys
}

// Dir returns ~/.pyma.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".pyma"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.pyma/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process environment
// without overriding variables that are already set. A missing file is only an error
// when required is true.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults; command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	// AutomaticEnv only applies to keys viper already knows about.
	_ = v.BindEnv("studies_dir")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// env values arrive as one comma separated string
	c.TargetRegimens = SplitList(c.TargetRegimens...)
	c.SummaryOrder = SplitList(c.SummaryOrder...)

	if c.StudiesDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.StudiesDir = filepath.Join(dir, "studies")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks enumerated and numeric settings.
func (c *Global) Validate() error {
	switch strings.ToLower(c.FigureFormat) {
	case "png", "svg":
	default:
		return fmt.Errorf("invalid figure_format %q (use png or svg)", c.FigureFormat)
	}
	if c.FigureWidth < 0 || c.FigureHeight < 0 {
		return fmt.Errorf("figure size must be positive, got %dx%d", c.FigureWidth, c.FigureHeight)
	}
	return nil
}

// Set assigns a single key from its string form, as typed on the command line.
func (c *Global) Set(key, val string) error {
	switch key {
	case "metadata_path":
		c.MetadataPath = val
	case "results_path":
		c.ResultsPath = val
	case "target_regimens":
		c.TargetRegimens = SplitList(val)
	case "regression_regimen":
		c.RegressionRegimen = val
	case "timeline_regimen":
		c.TimelineRegimen = val
	case "designated_mouse":
		c.DesignatedMouse = val
	case "summary_order":
		c.SummaryOrder = SplitList(val)
	case "figure_format":
		v := strings.ToLower(val)
		if v != "png" && v != "svg" {
			return fmt.Errorf("invalid figure_format: %s (use png or svg)", val)
		}
		c.FigureFormat = v
	case "figure_width", "figure_height":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		if key == "figure_width" {
			c.FigureWidth = i
		} else {
			c.FigureHeight = i
		}
	case "studies_dir":
		c.StudiesDir = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "warning", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// SplitList flattens comma separated items, trimming blanks.
func SplitList(items ...string) []string {
	out := []string{}
	for _, it := range items {
		for _, p := range strings.Split(it, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// ExpandHome resolves a leading ~ against the user's home directory.
func ExpandHome(dir string) (string, error) {
	if !strings.HasPrefix(dir, "~") {
		return filepath.Clean(dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir = strings.TrimPrefix(dir, "~")
	dir = strings.TrimPrefix(dir, string(os.PathSeparator))
	dir = strings.TrimPrefix(dir, "/")
	return filepath.Join(home, dir), nil
}
