package project

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/preset/internal/pointer"
)

func TestDerive_Layout(t *testing.T) {
	t.Parallel()

	paths, err := Derive("/cache", "/home/user/proj", "CLAUDE.md", "git@github.com:test/my-project.git", "HEAD")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	slug := paths.Identity.Slug
	if paths.TargetDoc != "/home/user/proj/CLAUDE.md" {
		t.Errorf("TargetDoc = %s", paths.TargetDoc)
	}
	if paths.PresetsDir != filepath.Join("/cache", "presets") {
		t.Errorf("PresetsDir = %s", paths.PresetsDir)
	}
	if want := filepath.Join("/cache", "projects", slug); paths.ProjectDir != want {
		t.Errorf("ProjectDir = %s, want %s", paths.ProjectDir, want)
	}
	if !strings.HasSuffix(paths.MergedPath, "merged-preset-HEAD.md") {
		t.Errorf("MergedPath = %s", paths.MergedPath)
	}
	if filepath.Base(paths.SelectionPath) != SelectionFileName {
		t.Errorf("SelectionPath = %s", paths.SelectionPath)
	}
}

func TestDerive_RevisionKeysArtifact(t *testing.T) {
	t.Parallel()

	head, err := Derive("/cache", "/p", "CLAUDE.md", "https://github.com/a/b", "HEAD")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	pinned, err := Derive("/cache", "/p", "CLAUDE.md", "https://github.com/a/b", "abc123")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	if head.MergedPath == pinned.MergedPath {
		t.Errorf("artifacts for different revisions collide: %s", head.MergedPath)
	}
	if head.ProjectDir != pinned.ProjectDir {
		t.Errorf("project dir changed with revision: %s vs %s", head.ProjectDir, pinned.ProjectDir)
	}
}

func TestDerive_PathFallback(t *testing.T) {
	t.Parallel()

	a, err := Derive("/cache", "/home/user/proj", "CLAUDE.md", "", "HEAD")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	b, err := Derive("/cache", "/home/user/other", "CLAUDE.md", "", "HEAD")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if a.Identity.Slug == b.Identity.Slug {
		t.Errorf("distinct roots share slug %s", a.Identity.Slug)
	}
}

func TestPresetCachePath(t *testing.T) {
	t.Parallel()

	paths, err := Derive("/cache", "/p", "CLAUDE.md", "https://github.com/a/b", "HEAD")
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	ptr := pointer.Pointer{
		Source:   pointer.Source{Kind: pointer.SourceHosted, Host: "github.com", Owner: "acme", Repo: "presets"},
		File:     "react.md",
		Revision: "HEAD",
	}
	want := filepath.Join("/cache", "presets", "github.com", "acme", "presets", "react.md")
	if got := paths.PresetCachePath(ptr); got != want {
		t.Errorf("PresetCachePath = %s, want %s", got, want)
	}

	local := pointer.Pointer{
		Source:   pointer.Source{Kind: pointer.SourceLocal, Path: "/srv/presets"},
		File:     "react.md",
		Revision: "HEAD",
	}
	want = filepath.Join("/cache", "presets", "localhost", "local", "presets", "react.md")
	if got := paths.PresetCachePath(local); got != want {
		t.Errorf("PresetCachePath(local) = %s, want %s", got, want)
	}
}
