package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/preset/internal/log"
	"github.com/raphi011/preset/internal/output"
)

func newPathCmd() *cobra.Command {
	var (
		dir      string
		revision string
		copyPath bool
	)

	cmd := &cobra.Command{
		Use:     "path",
		Short:   "Print the merge artifact path for this project",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Print the path of the project's merge artifact in the cache.

Useful for inspecting what a sync produced or for wiring the artifact
into other tooling.`,
		Example: `  preset path
  preset path --copy     # Copy to clipboard
  cat "$(preset path)"   # Inspect the artifact`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			proj, err := resolveProject(ctx, *cfg, dir, revision, "")
			if err != nil {
				return err
			}

			if copyPath {
				if err := clipboard.WriteAll(proj.paths.MergedPath); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				log.FromContext(ctx).Println("copied to clipboard")
			}

			output.FromContext(ctx).Println(proj.paths.MergedPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Project directory (default: current directory)")
	cmd.Flags().StringVarP(&revision, "revision", "r", "", "Revision the artifact is pinned to")
	cmd.Flags().BoolVarP(&copyPath, "copy", "c", false, "Also copy the path to the clipboard")

	return cmd
}
