package main

import (
	"context"
	"fmt"

	"github.com/raphi011/preset/internal/config"
	"github.com/raphi011/preset/internal/fetch"
	"github.com/raphi011/preset/internal/log"
	"github.com/raphi011/preset/internal/managed"
	"github.com/raphi011/preset/internal/merge"
	"github.com/raphi011/preset/internal/output"
	"github.com/raphi011/preset/internal/pointer"
	"github.com/raphi011/preset/internal/project"
)

type syncOptions struct {
	dir      string
	revision string

	// origin pins the project identity without consulting git; tests only.
	origin string

	// fetcher overrides the default fetcher; tests only.
	fetcher *fetch.Fetcher
}

// runSync is the full pipeline: resolve identity, resolve pointers,
// fetch, merge, rewrite the target document.
func runSync(ctx context.Context, cfg config.Config, opts syncOptions) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	proj, err := resolveProject(ctx, cfg, opts.dir, opts.revision, opts.origin)
	if err != nil {
		return err
	}
	l.Printf("project %s (slug %s)", proj.root, proj.paths.Identity.Slug)

	snap, err := snapshotFromConfig(cfg, proj.revision)
	if err != nil {
		return err
	}

	sel, err := pointer.LoadSelection(proj.paths.SelectionPath)
	if err != nil {
		return fmt.Errorf("load selection: %w", err)
	}
	if sel != nil {
		l.Printf("using saved selection (%d presets)", len(sel.SelectedPresets))
	}

	pointers, err := pointer.Resolve(snap, sel)
	if err != nil {
		return err
	}

	results, err := fetchPresets(ctx, opts.fetcher, pointers, proj.paths)
	if err != nil {
		return err
	}

	artifact, err := merge.Generate(results, proj.paths.MergedPath, proj.revision)
	if err != nil {
		return err
	}

	if err := managed.UpdateFile(proj.paths.TargetDoc, artifact.Path); err != nil {
		return err
	}

	out.Printf("Synced %d presets into %s\n", len(results), managed.ContractHome(artifact.Path))
	out.Printf("Updated %s\n", proj.paths.TargetDoc)
	return nil
}

func fetchPresets(ctx context.Context, fetcher *fetch.Fetcher, pointers []pointer.Pointer, paths project.Paths) ([]fetch.Result, error) {
	if fetcher == nil {
		fetcher = fetch.FromEnv()
	}

	dests := make([]string, len(pointers))
	for i, ptr := range pointers {
		dests[i] = paths.PresetCachePath(ptr)
	}

	results, err := fetcher.FetchAll(ctx, pointers, dests)
	if err != nil {
		return nil, fmt.Errorf("fetch presets: %w", err)
	}
	return results, nil
}
