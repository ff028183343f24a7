package main

import (
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var (
		jsonOutput bool
		dir        string
	)

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show sync status for the current project",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Show how the current project is wired up: its identity, which presets
apply, whether a merge artifact exists, and whether the instructions
document imports it.`,
		Example: `  preset status
  preset status --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), *cfg, statusOptions{
				jsonOutput: jsonOutput,
				dir:        dir,
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Project directory (default: current directory)")

	return cmd
}
