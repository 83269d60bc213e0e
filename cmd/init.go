package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/bundle"
	cfgpkg "github.com/KaramelBytes/pymaceuticals-cli/internal/config"
	"github.com/KaramelBytes/pymaceuticals-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	initDescription string
)

var initCmd = &cobra.Command{
	Use:   "init <study-name>",
	Short: "Initialize a new study bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if name != filepath.Base(name) || name == "." || name == ".." {
			return fmt.Errorf("invalid study name %q", name)
		}
		root, err := studiesDir()
		if err != nil {
			return err
		}
		dir := filepath.Join(root, name)
		// Refuse to overwrite an existing study.
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			if _, err := os.Stat(filepath.Join(dir, utils.BundleManifest)); err == nil {
				return fmt.Errorf("study already exists at %s", dir)
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("inspect study directory: %w", err)
			}
			if len(entries) > 0 {
				return fmt.Errorf("directory %s already exists and is not empty; refusing to initialize study", dir)
			}
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat study directory: %w", err)
		}
		b := bundle.New(name, initDescription, dir)
		if err := b.Save(); err != nil {
			return err
		}
		logger.WithField("id", b.ID).Debug("study bundle created")
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Study initialized: %s\n", dir)
		return nil
	},
}

func studiesDir() (string, error) {
	dir := settings().StudiesDir
	if dir == "" {
		base, err := cfgpkg.Dir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "studies")
	}
	dir, err := cfgpkg.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func resolveStudyDir(name string) (string, error) {
	if name == "" {
		return "", errors.New("study name is required")
	}
	root, err := studiesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initDescription, "desc", "d", "", "study description")
}
