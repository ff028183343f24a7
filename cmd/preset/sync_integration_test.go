package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/raphi011/preset/internal/config"
	"github.com/raphi011/preset/internal/identity"
	"github.com/raphi011/preset/internal/pointer"
	"github.com/raphi011/preset/internal/project"
)

// setupSyncFixture creates a local preset repo, a project directory, and
// a config wired to both under temp dirs.
func setupSyncFixture(t *testing.T) (config.Config, string) {
	t.Helper()
	tmp := t.TempDir()

	presetsDir := filepath.Join(tmp, "presets-repo")
	if err := os.MkdirAll(presetsDir, 0o755); err != nil {
		t.Fatalf("mkdir presets repo: %v", err)
	}
	if err := os.WriteFile(filepath.Join(presetsDir, "react.md"), []byte("# React\n"), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	projectDir := filepath.Join(tmp, "my-project")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatalf("mkdir project: %v", err)
	}

	cfg := config.Config{
		PresetRepos: []string{"file://" + presetsDir},
		Presets:     []string{"react.md"},
		CacheDir:    filepath.Join(tmp, "cache"),
		TargetFile:  "CLAUDE.md",
	}
	return cfg, projectDir
}

func TestSync_EndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg, projectDir := setupSyncFixture(t)

	origin := "git@github.com:test/my-project.git"
	opts := syncOptions{dir: projectDir, origin: origin}

	if err := runSync(ctx, cfg, opts); err != nil {
		t.Fatalf("runSync: %v", err)
	}

	// Artifact lands in the project's slug-keyed cache directory.
	id, err := identity.Resolve(origin)
	if err != nil {
		t.Fatalf("resolve origin: %v", err)
	}
	artifactPath := filepath.Join(cfg.CacheDir, "projects", id.Slug, project.MergedArtifactName(pointer.RevisionHead))
	artifact, err := os.ReadFile(artifactPath)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !strings.Contains(string(artifact), "# React\n") {
		t.Errorf("artifact missing preset content:\n%s", artifact)
	}
	if !strings.Contains(string(artifact), "<!-- preset: localhost/local/presets/react.md@HEAD -->") {
		t.Errorf("artifact missing provenance header:\n%s", artifact)
	}

	// Target document's final line is the managed import.
	doc, err := os.ReadFile(filepath.Join(projectDir, "CLAUDE.md"))
	if err != nil {
		t.Fatalf("target doc not written: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(doc), "\n"), "\n")
	last := lines[len(lines)-1]
	if !regexp.MustCompile(`^@.*merged-preset-HEAD\.md$`).MatchString(last) {
		t.Errorf("managed line = %q", last)
	}
}

func TestSync_Idempotent(t *testing.T) {
	ctx := context.Background()
	cfg, projectDir := setupSyncFixture(t)
	opts := syncOptions{dir: projectDir, origin: "https://github.com/test/my-project"}

	if err := runSync(ctx, cfg, opts); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	doc1, err := os.ReadFile(filepath.Join(projectDir, "CLAUDE.md"))
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	if err := runSync(ctx, cfg, opts); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	doc2, err := os.ReadFile(filepath.Join(projectDir, "CLAUDE.md"))
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	if !bytes.Equal(doc1, doc2) {
		t.Errorf("second sync changed the document:\n%q\nvs\n%q", doc1, doc2)
	}
}

func TestSync_PreservesFreeContent(t *testing.T) {
	ctx := context.Background()
	cfg, projectDir := setupSyncFixture(t)

	notes := "# My project\n\nhand-written notes\n"
	docPath := filepath.Join(projectDir, "CLAUDE.md")
	if err := os.WriteFile(docPath, []byte(notes), 0o644); err != nil {
		t.Fatalf("seed doc: %v", err)
	}

	opts := syncOptions{dir: projectDir, origin: "https://github.com/test/my-project"}
	if err := runSync(ctx, cfg, opts); err != nil {
		t.Fatalf("runSync: %v", err)
	}

	doc, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	if !strings.HasPrefix(string(doc), notes) {
		t.Errorf("free content mutated:\n%q", doc)
	}
}

func TestSync_EquivalentOriginsShareArtifact(t *testing.T) {
	ctx := context.Background()
	cfg, projectDir := setupSyncFixture(t)

	if err := runSync(ctx, cfg, syncOptions{dir: projectDir, origin: "git@github.com:test/my-project.git"}); err != nil {
		t.Fatalf("scp-form sync: %v", err)
	}
	if err := runSync(ctx, cfg, syncOptions{dir: projectDir, origin: "https://github.com/test/my-project"}); err != nil {
		t.Fatalf("https-form sync: %v", err)
	}

	projectsDir := filepath.Join(cfg.CacheDir, "projects")
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		t.Fatalf("read projects dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("equivalent origins produced %d project dirs, want 1", len(entries))
	}
}

func TestSync_MissingPresetFails(t *testing.T) {
	ctx := context.Background()
	cfg, projectDir := setupSyncFixture(t)
	cfg.Presets = []string{"react.md", "missing.md"}

	err := runSync(ctx, cfg, syncOptions{dir: projectDir, origin: "https://github.com/test/my-project"})
	if err == nil {
		t.Fatal("sync with missing preset succeeded, want error")
	}

	// All-or-nothing: the target document was never touched.
	if _, statErr := os.Stat(filepath.Join(projectDir, "CLAUDE.md")); !os.IsNotExist(statErr) {
		t.Error("target document written despite failed fetch")
	}
}
