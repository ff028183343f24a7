package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/preset/internal/config"
	"github.com/raphi011/preset/internal/git"
	"github.com/raphi011/preset/internal/log"
	"github.com/raphi011/preset/internal/pointer"
	"github.com/raphi011/preset/internal/project"
)

// projectContext bundles everything a command needs to know about the
// project it operates on.
type projectContext struct {
	cfg      config.Config
	root     string
	origin   string // "" when the project has no usable origin remote
	revision string
	paths    project.Paths
}

// resolveProject locates the project at dir (default: cwd), determines
// its identity from the git origin remote, and derives the cache layout.
//
// originOverride bypasses git entirely; it exists so tests can pin an
// identity without a repository.
func resolveProject(ctx context.Context, cfg config.Config, dir, revision, originOverride string) (projectContext, error) {
	root := dir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return projectContext{}, fmt.Errorf("get working directory: %w", err)
		}
		root = cwd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return projectContext{}, fmt.Errorf("resolve project root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return projectContext{}, fmt.Errorf("project root %s is not a directory", root)
	}

	origin := originOverride
	if origin == "" && git.IsRepository(ctx, root) {
		origin, err = git.GetOriginURL(ctx, root)
		if err != nil {
			if !errors.Is(err, git.ErrNoOriginRemote) && !errors.Is(err, git.ErrOriginHasNoURL) {
				return projectContext{}, err
			}
			// No origin: fall back to the path-based identity.
			log.FromContext(ctx).Printf("no origin remote, keying project by path")
			origin = ""
		}
	}

	if revision == "" {
		revision = cfg.Version
	}
	if revision == "" {
		revision = pointer.RevisionHead
	}

	paths, err := project.Derive(cfg.CacheDir, root, cfg.TargetFile, origin, revision)
	if err != nil {
		return projectContext{}, err
	}

	return projectContext{
		cfg:      cfg,
		root:     root,
		origin:   origin,
		revision: revision,
		paths:    paths,
	}, nil
}

// snapshotFromConfig parses the configured repositories into a resolver
// snapshot.
func snapshotFromConfig(cfg config.Config, revision string) (pointer.Snapshot, error) {
	repos := make([]pointer.Source, 0, len(cfg.PresetRepos))
	for _, raw := range cfg.PresetRepos {
		src, err := pointer.ParseSource(raw)
		if err != nil {
			return pointer.Snapshot{}, fmt.Errorf("config preset_repos: %w", err)
		}
		repos = append(repos, src)
	}
	return pointer.Snapshot{
		Repos:    repos,
		Presets:  cfg.Presets,
		Revision: revision,
	}, nil
}
