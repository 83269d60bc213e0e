package cmd

import (
	"fmt"

	"github.com/KaramelBytes/pymaceuticals-cli/internal/bundle"
	"github.com/spf13/cobra"
)

var listStudy string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List study bundles, or the artifacts of one study",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if listStudy != "" {
			dir, err := resolveStudyDir(listStudy)
			if err != nil {
				return err
			}
			b, err := bundle.Load(dir)
			if err != nil {
				return err
			}
			arts := b.List()
			if len(arts) == 0 {
				fmt.Fprintln(w, "(no artifacts)")
				return nil
			}
			for _, a := range arts {
				fmt.Fprintf(w, "- %s [%s] %d bytes\n", a.Path, a.Kind, a.Size)
			}
			return nil
		}
		root, err := studiesDir()
		if err != nil {
			return err
		}
		bundles, err := bundle.Discover(root)
		if err != nil {
			return err
		}
		if len(bundles) == 0 {
			fmt.Fprintln(w, "(no studies)")
			return nil
		}
		for _, b := range bundles {
			line := fmt.Sprintf("- %s", b.Name)
			if b.Description != "" {
				line += fmt.Sprintf(" (%s)", b.Description)
			}
			if b.LastAnalyzed.IsZero() {
				line += ": not analyzed"
			} else {
				line += fmt.Sprintf(": %d artifacts, analyzed %s", len(b.Artifacts), b.LastAnalyzed.Format("2006-01-02 15:04"))
			}
			fmt.Fprintln(w, line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listStudy, "study", "s", "", "list the artifacts of this study")
}
