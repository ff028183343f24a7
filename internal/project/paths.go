// Package project derives the on-disk layout for a synced project.
//
// All paths are pure functions of the cache root, the project's identity
// and the target revision; nothing here touches the filesystem. The layout:
//
//	<cache-root>/presets/<host>/<owner>/<repo>/<file>     fetched preset bytes
//	<cache-root>/projects/<slug>/merged-preset-<rev>.md   merge artifacts
//	<cache-root>/projects/<slug>/preset-selection.json    persisted selection
//
// The merged artifact is keyed by slug and revision so syncs pinned to
// different revisions never overwrite each other's output.
package project

import (
	"fmt"
	"path/filepath"

	"github.com/raphi011/preset/internal/identity"
	"github.com/raphi011/preset/internal/pointer"
)

// SelectionFileName is the per-project selection file.
const SelectionFileName = "preset-selection.json"

// Paths is the full set of locations the sync engine reads and writes for
// one project. Derived on every invocation, never persisted.
type Paths struct {
	// Root is the project root directory.
	Root string

	// TargetDoc is the instructions document carrying the managed import.
	TargetDoc string

	// CacheRoot is the shared preset cache root.
	CacheRoot string

	// PresetsDir is the shared cache of fetched preset files.
	PresetsDir string

	// ProjectDir is the per-project metadata directory, keyed by slug.
	ProjectDir string

	// MergedPath is the merge artifact, keyed by slug and revision.
	MergedPath string

	// SelectionPath is the persisted per-project preset selection.
	SelectionPath string

	// Identity is the project identity the layout is keyed by.
	Identity identity.ID
}

// Derive computes the layout for a project. origin is the project's git
// origin URL; when empty (no repository, or a repository without an origin
// remote) the identity falls back to hashing the project root path.
// revision defaults to HEAD when empty.
func Derive(cacheRoot, root, targetFile, origin, revision string) (Paths, error) {
	var id identity.ID
	if origin != "" {
		var err error
		id, err = identity.Resolve(origin)
		if err != nil {
			return Paths{}, err
		}
	} else {
		id = identity.ResolveFromPath(root)
	}

	if revision == "" {
		revision = pointer.RevisionHead
	}

	projectDir := filepath.Join(cacheRoot, "projects", id.Slug)

	return Paths{
		Root:          root,
		TargetDoc:     filepath.Join(root, targetFile),
		CacheRoot:     cacheRoot,
		PresetsDir:    filepath.Join(cacheRoot, "presets"),
		ProjectDir:    projectDir,
		MergedPath:    filepath.Join(projectDir, MergedArtifactName(revision)),
		SelectionPath: filepath.Join(projectDir, SelectionFileName),
		Identity:      id,
	}, nil
}

// MergedArtifactName returns the artifact file name for a revision label.
// Revision labels are commit hashes or HEAD, both filesystem-safe.
func MergedArtifactName(revision string) string {
	return fmt.Sprintf("merged-preset-%s.md", revision)
}

// PresetCachePath returns the destination under the shared preset cache
// for one pointer.
func (p Paths) PresetCachePath(ptr pointer.Pointer) string {
	host, owner, repo := ptr.Source.Triple()
	return filepath.Join(p.PresetsDir, host, owner, repo, filepath.FromSlash(ptr.File))
}
