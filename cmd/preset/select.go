package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/preset/internal/config"
	"github.com/raphi011/preset/internal/fetch"
	"github.com/raphi011/preset/internal/log"
	"github.com/raphi011/preset/internal/output"
	"github.com/raphi011/preset/internal/pointer"
	"github.com/raphi011/preset/internal/ui"
)

type selectOptions struct {
	dir     string
	repo    string
	clear   bool
	presets []string
}

func runSelect(ctx context.Context, cfg config.Config, opts selectOptions) error {
	out := output.FromContext(ctx)

	proj, err := resolveProject(ctx, cfg, opts.dir, "", "")
	if err != nil {
		return err
	}

	if opts.clear {
		if err := os.Remove(proj.paths.SelectionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("clear selection: %w", err)
		}
		out.Println("Selection cleared, config defaults apply")
		return nil
	}

	var sel *pointer.Selection
	if len(opts.presets) > 0 {
		sel, err = selectionFromArgs(cfg, opts.repo, opts.presets)
	} else {
		sel, err = selectionFromPicker(ctx, cfg, proj)
	}
	if err != nil {
		return err
	}
	if sel == nil {
		out.Println("Selection unchanged")
		return nil
	}

	if err := pointer.SaveSelection(proj.paths.SelectionPath, sel); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}

	out.Printf("Selected %d presets, run 'preset sync' to apply\n", len(sel.SelectedPresets))
	return nil
}

// selectionFromArgs builds a selection from preset names on the command
// line, resolved against --repo or the first configured repository.
func selectionFromArgs(cfg config.Config, repo string, presets []string) (*pointer.Selection, error) {
	if repo == "" {
		if len(cfg.PresetRepos) == 0 {
			return nil, fmt.Errorf("no preset repositories configured (set preset_repos or pass --repo)")
		}
		repo = cfg.PresetRepos[0]
	}

	src, err := pointer.ParseSource(repo)
	if err != nil {
		return nil, err
	}
	if src.Kind == pointer.SourceLocal {
		return nil, fmt.Errorf("project selections must name a hosted repository, not %s", src)
	}

	sel := &pointer.Selection{}
	for _, name := range presets {
		sel.SelectedPresets = append(sel.SelectedPresets, pointer.SelectedPreset{
			Repo: src.String(),
			File: name,
		})
	}
	return sel, nil
}

// selectionFromPicker lists every preset in the configured repositories
// and lets the user pick interactively. Returns nil when cancelled.
func selectionFromPicker(ctx context.Context, cfg config.Config, proj projectContext) (*pointer.Selection, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("stdin is not a terminal: name presets as arguments instead")
	}
	if len(cfg.PresetRepos) == 0 {
		return nil, fmt.Errorf("no preset repositories configured (run 'preset config init' and set preset_repos)")
	}

	l := log.FromContext(ctx)

	snap, err := snapshotFromConfig(cfg, proj.revision)
	if err != nil {
		return nil, err
	}
	applied, err := appliedSet(snap, proj.paths.SelectionPath)
	if err != nil {
		return nil, err
	}

	fetcher := fetch.FromEnv()
	var options []ui.Option
	for _, src := range snap.Repos {
		if src.Kind == pointer.SourceLocal {
			// Local repos can't be persisted in a selection; skip them in
			// the picker rather than offering an unsaveable choice.
			l.Printf("skipping local repo %s in picker", src)
			continue
		}
		entries, err := fetcher.List(ctx, src, proj.revision)
		if err != nil {
			l.Printf("skipping %s: %v", src, err)
			continue
		}
		for _, entry := range entries {
			options = append(options, ui.Option{
				Name:     entry.Name,
				Repo:     src.String(),
				Selected: applied[src.String()+"/"+entry.Name],
			})
		}
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no presets found in configured repositories")
	}

	result, err := ui.RunPicker(options)
	if err != nil {
		return nil, err
	}
	if result.Cancelled {
		return nil, nil
	}

	sel := &pointer.Selection{}
	for _, opt := range result.Selected {
		sel.SelectedPresets = append(sel.SelectedPresets, pointer.SelectedPreset{
			Repo: opt.Repo,
			File: opt.Name,
		})
	}
	return sel, nil
}
