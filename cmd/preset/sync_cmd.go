package main

import (
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var (
		dir      string
		revision string
	)

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   "Fetch presets and update the instructions document",
		Aliases: []string{"s"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Fetch the selected presets, merge them into a revision-pinned artifact
in the cache, and rewrite the managed import line of the project's
instructions document.

Uses the project's saved selection when one exists, otherwise the
default presets from the config. Running sync twice with unchanged
inputs changes nothing.`,
		Example: `  preset sync                  # Sync the current project
  preset sync --dir ~/src/app  # Sync another project
  preset sync --revision v1.2  # Pin presets to a tag or commit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), *cfg, syncOptions{
				dir:      dir,
				revision: revision,
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Project directory (default: current directory)")
	cmd.Flags().StringVarP(&revision, "revision", "r", "", "Preset revision to fetch (overrides config)")

	return cmd
}
