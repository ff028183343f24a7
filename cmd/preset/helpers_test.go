package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/raphi011/preset/internal/config"
	"github.com/raphi011/preset/internal/pointer"
	"github.com/raphi011/preset/internal/project"
)

func TestResolveProject_OriginOverride(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root := t.TempDir()
	cfg := config.Config{CacheDir: filepath.Join(root, "cache"), TargetFile: "CLAUDE.md"}

	proj, err := resolveProject(ctx, cfg, root, "", "https://github.com/acme/app")
	if err != nil {
		t.Fatalf("resolveProject: %v", err)
	}
	if proj.revision != pointer.RevisionHead {
		t.Errorf("revision = %q, want HEAD", proj.revision)
	}
	if proj.paths.TargetDoc != filepath.Join(proj.root, "CLAUDE.md") {
		t.Errorf("TargetDoc = %q", proj.paths.TargetDoc)
	}
	if filepath.Base(proj.paths.MergedPath) != project.MergedArtifactName(pointer.RevisionHead) {
		t.Errorf("MergedPath = %q", proj.paths.MergedPath)
	}
}

func TestResolveProject_RevisionPrecedence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root := t.TempDir()
	cfg := config.Config{
		CacheDir:   filepath.Join(root, "cache"),
		TargetFile: "CLAUDE.md",
		Version:    "v1.0.0",
	}

	// Config version applies when no flag is given.
	proj, err := resolveProject(ctx, cfg, root, "", "https://github.com/acme/app")
	if err != nil {
		t.Fatalf("resolveProject: %v", err)
	}
	if proj.revision != "v1.0.0" {
		t.Errorf("revision = %q, want config version", proj.revision)
	}

	// An explicit revision wins over the config.
	proj, err = resolveProject(ctx, cfg, root, "v2.0.0", "https://github.com/acme/app")
	if err != nil {
		t.Fatalf("resolveProject: %v", err)
	}
	if proj.revision != "v2.0.0" {
		t.Errorf("revision = %q, want flag value", proj.revision)
	}
}

func TestResolveProject_MissingDir(t *testing.T) {
	t.Parallel()

	cfg := config.Config{CacheDir: "/tmp/cache", TargetFile: "CLAUDE.md"}
	_, err := resolveProject(context.Background(), cfg, "/no/such/dir", "", "x://y")
	if err == nil {
		t.Error("resolveProject on missing dir succeeded, want error")
	}
}

func TestSnapshotFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		PresetRepos: []string{"acme/presets", "file:///srv/presets"},
		Presets:     []string{"golang.md"},
	}
	snap, err := snapshotFromConfig(cfg, "HEAD")
	if err != nil {
		t.Fatalf("snapshotFromConfig: %v", err)
	}
	if len(snap.Repos) != 2 {
		t.Fatalf("parsed %d repos, want 2", len(snap.Repos))
	}
	if snap.Repos[0].Kind != pointer.SourceHosted || snap.Repos[1].Kind != pointer.SourceLocal {
		t.Errorf("repo kinds = %v, %v", snap.Repos[0].Kind, snap.Repos[1].Kind)
	}

	cfg.PresetRepos = []string{"not//a//repo"}
	if _, err := snapshotFromConfig(cfg, "HEAD"); err == nil {
		t.Error("invalid repo accepted")
	}
}

func TestSelectionFromArgs(t *testing.T) {
	t.Parallel()

	cfg := config.Config{PresetRepos: []string{"acme/presets"}}

	sel, err := selectionFromArgs(cfg, "", []string{"golang.md", "react.md"})
	if err != nil {
		t.Fatalf("selectionFromArgs: %v", err)
	}
	if len(sel.SelectedPresets) != 2 {
		t.Fatalf("selected %d presets, want 2", len(sel.SelectedPresets))
	}
	if sel.SelectedPresets[0].Repo != "github.com/acme/presets" {
		t.Errorf("repo = %q", sel.SelectedPresets[0].Repo)
	}

	// Explicit repo overrides the configured default.
	sel, err = selectionFromArgs(cfg, "corp.example.com/infra/presets", []string{"golang.md"})
	if err != nil {
		t.Fatalf("selectionFromArgs with --repo: %v", err)
	}
	if sel.SelectedPresets[0].Repo != "corp.example.com/infra/presets" {
		t.Errorf("repo = %q", sel.SelectedPresets[0].Repo)
	}

	// Local repos can't back a saved selection.
	if _, err := selectionFromArgs(cfg, "file:///srv/presets", []string{"golang.md"}); err == nil {
		t.Error("local repo accepted for selection")
	}

	// No repo anywhere.
	if _, err := selectionFromArgs(config.Config{}, "", []string{"golang.md"}); err == nil {
		t.Error("missing repo accepted")
	}
}

func TestAppliedSet(t *testing.T) {
	t.Parallel()

	snap := pointer.Snapshot{
		Repos: []pointer.Source{
			{Kind: pointer.SourceHosted, Host: "github.com", Owner: "acme", Repo: "presets"},
		},
		Presets: []string{"golang.md"},
	}

	applied, err := appliedSet(snap, filepath.Join(t.TempDir(), "no-selection.json"))
	if err != nil {
		t.Fatalf("appliedSet: %v", err)
	}
	if !applied["github.com/acme/presets/golang.md"] {
		t.Errorf("default preset not marked applied: %v", applied)
	}
}
