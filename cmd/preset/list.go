package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/raphi011/preset/internal/config"
	"github.com/raphi011/preset/internal/fetch"
	"github.com/raphi011/preset/internal/log"
	"github.com/raphi011/preset/internal/output"
	"github.com/raphi011/preset/internal/pointer"
)

type listOptions struct {
	jsonOutput bool
	dir        string
	revision   string
}

// PresetDisplay holds preset info for display
type PresetDisplay struct {
	Name     string `json:"name"`
	Repo     string `json:"repo"`
	Size     int64  `json:"size"`
	Applied  bool   `json:"applied"`
	Revision string `json:"revision"`
}

func runList(ctx context.Context, cfg config.Config, opts listOptions) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if len(cfg.PresetRepos) == 0 {
		return fmt.Errorf("no preset repositories configured (run 'preset config init' and set preset_repos)")
	}

	proj, err := resolveProject(ctx, cfg, opts.dir, opts.revision, "")
	if err != nil {
		return err
	}

	snap, err := snapshotFromConfig(cfg, proj.revision)
	if err != nil {
		return err
	}

	applied, err := appliedSet(snap, proj.paths.SelectionPath)
	if err != nil {
		return err
	}

	fetcher := fetch.FromEnv()
	var presets []PresetDisplay
	for _, src := range snap.Repos {
		entries, err := fetcher.List(ctx, src, proj.revision)
		if err != nil {
			l.Printf("skipping %s: %v", src, err)
			continue
		}
		for _, entry := range entries {
			presets = append(presets, PresetDisplay{
				Name:     entry.Name,
				Repo:     src.String(),
				Size:     entry.Size,
				Applied:  applied[src.String()+"/"+entry.Name],
				Revision: proj.revision,
			})
		}
	}

	if opts.jsonOutput {
		data, err := json.MarshalIndent(presets, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal presets: %w", err)
		}
		out.Println(string(data))
		return nil
	}

	if len(presets) == 0 {
		out.Println("No presets found")
		return nil
	}

	for _, p := range presets {
		marker := " "
		if p.Applied {
			marker = "*"
		}
		out.Printf("%s %-30s %s\n", marker, p.Name, p.Repo)
	}
	return nil
}

// appliedSet returns the "source/file" keys that a sync would currently
// apply, from the saved selection or the config defaults.
func appliedSet(snap pointer.Snapshot, selectionPath string) (map[string]bool, error) {
	sel, err := pointer.LoadSelection(selectionPath)
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}

	pointers, err := pointer.Resolve(snap, sel)
	if err != nil {
		// Defaults that don't resolve shouldn't break listing.
		return map[string]bool{}, nil
	}

	applied := make(map[string]bool, len(pointers))
	for _, ptr := range pointers {
		applied[ptr.Source.String()+"/"+ptr.File] = true
	}
	return applied, nil
}
