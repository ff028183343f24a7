package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		dir        string
		revision   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List available presets",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the presets available in the configured repositories.

Presets that would be applied by "preset sync" for the current project
(saved selection, or the config defaults) are marked with *.`,
		Example: `  preset list             # List presets from all configured repos
  preset list --json      # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), *cfg, listOptions{
				jsonOutput: jsonOutput,
				dir:        dir,
				revision:   revision,
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Project directory (default: current directory)")
	cmd.Flags().StringVarP(&revision, "revision", "r", "", "Revision to list presets at")

	return cmd
}
