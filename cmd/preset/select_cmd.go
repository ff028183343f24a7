package main

import (
	"github.com/spf13/cobra"
)

func newSelectCmd() *cobra.Command {
	var (
		dir   string
		repo  string
		clear bool
	)

	cmd := &cobra.Command{
		Use:     "select [preset...]",
		Short:   "Choose which presets apply to this project",
		Aliases: []string{"sel"},
		GroupID: GroupCore,
		Long: `Choose which presets apply to the current project.

Without arguments, opens an interactive picker listing every preset in
the configured repositories. With arguments, saves the named presets
directly.

A saved selection replaces the config defaults entirely for this
project. Run "preset sync" afterwards to apply it.`,
		Example: `  preset select                          # Interactive picker
  preset select golang.md react.md       # Select by name
  preset select golang.md --repo acme/presets
  preset select --clear                  # Back to config defaults`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd.Context(), *cfg, selectOptions{
				dir:     dir,
				repo:    repo,
				clear:   clear,
				presets: args,
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Project directory (default: current directory)")
	cmd.Flags().StringVar(&repo, "repo", "", "Repository the named presets come from (default: first configured)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the saved selection, reverting to config defaults")

	return cmd
}
