// Package pointer resolves configured preset selections into fully
// qualified preset references.
package pointer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultHost is assumed when a repository is given as plain "owner/repo".
const DefaultHost = "github.com"

// RevisionHead is the symbolic revision label for "latest".
const RevisionHead = "HEAD"

var (
	// ErrInvalidPresetFilename indicates a selected preset is not a
	// markdown document.
	ErrInvalidPresetFilename = errors.New("preset filename must end in .md")

	// ErrMissingRepository indicates preset filenames are configured
	// without any source repository to resolve them against.
	ErrMissingRepository = errors.New("presets configured but no preset repository set")

	// ErrInvalidSource indicates a repository string that is neither a
	// hosted repo spec nor a file:// URL.
	ErrInvalidSource = errors.New("invalid preset repository")
)

// SourceKind discriminates the Source variant.
type SourceKind int

const (
	// SourceHosted is a repository on a git hosting service.
	SourceHosted SourceKind = iota
	// SourceLocal is a plain directory on the local filesystem.
	SourceLocal
)

// Source is where preset files come from, decided once when configuration
// is resolved and threaded through typed from then on. Components must
// switch on Kind instead of re-sniffing URL prefixes.
type Source struct {
	Kind SourceKind

	// Path is set for SourceLocal only.
	Path string

	// Host, Owner and Repo are set for SourceHosted only.
	Host  string
	Owner string
	Repo  string
}

// Triple returns the host/owner/repo triple used in cache paths and
// provenance headers. Local sources map to a fixed triple regardless of
// their actual path; callers needing path fidelity go through the fetch
// layer's scan path instead.
func (s Source) Triple() (host, owner, repo string) {
	if s.Kind == SourceLocal {
		return "localhost", "local", "presets"
	}
	return s.Host, s.Owner, s.Repo
}

// String renders the source for display.
func (s Source) String() string {
	if s.Kind == SourceLocal {
		return "file://" + s.Path
	}
	return s.Host + "/" + s.Owner + "/" + s.Repo
}

// ParseSource parses a configured repository string. Accepted forms:
//
//	file:///path/to/presets
//	owner/repo              (host defaults to github.com)
//	host/owner/repo
//	https://host/owner/repo
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, fmt.Errorf("%w: empty string", ErrInvalidSource)
	}

	if after, ok := strings.CutPrefix(raw, "file://"); ok {
		if after == "" {
			return Source{}, fmt.Errorf("%w: %q has no path", ErrInvalidSource, raw)
		}
		return Source{Kind: SourceLocal, Path: filepath.Clean(after)}, nil
	}

	trimmed := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	trimmed = strings.TrimSuffix(strings.TrimSuffix(trimmed, "/"), ".git")

	parts := strings.Split(trimmed, "/")
	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Source{}, fmt.Errorf("%w: %q", ErrInvalidSource, raw)
		}
		return Source{Kind: SourceHosted, Host: DefaultHost, Owner: parts[0], Repo: parts[1]}, nil
	case 3:
		if parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return Source{}, fmt.Errorf("%w: %q", ErrInvalidSource, raw)
		}
		return Source{Kind: SourceHosted, Host: parts[0], Owner: parts[1], Repo: parts[2]}, nil
	default:
		return Source{}, fmt.Errorf("%w: %q (expected owner/repo, host/owner/repo or file:// URL)", ErrInvalidSource, raw)
	}
}

// Pointer is an immutable reference to one preset file at one revision.
// Two pointers differing only in Revision refer to different versions of
// the same logical file.
type Pointer struct {
	Source   Source
	File     string
	Revision string
}

// String renders the pointer as host/owner/repo/file@revision, the form
// used in provenance headers and error messages.
func (p Pointer) String() string {
	host, owner, repo := p.Source.Triple()
	return fmt.Sprintf("%s/%s/%s/%s@%s", host, owner, repo, p.File, p.Revision)
}

// Snapshot is the configuration subset the resolver consumes. It is passed
// by value at call time; the resolver reads no global state.
type Snapshot struct {
	// Repos are the configured default preset repositories, in order.
	Repos []Source

	// Presets are the configured default preset filenames.
	Presets []string

	// Revision is the revision label to pin pointers to.
	// Empty means RevisionHead.
	Revision string
}

// Resolve expands the configured defaults, or the project's persisted
// selection when one exists, into an ordered pointer list.
//
// A project selection replaces the global defaults entirely; the two are
// never merged. This keeps the preset set of a project explicit and
// auditable from its selection file alone.
func Resolve(snap Snapshot, sel *Selection) ([]Pointer, error) {
	revision := snap.Revision
	if revision == "" {
		revision = RevisionHead
	}

	if sel != nil {
		return resolveSelection(sel, revision)
	}

	if len(snap.Presets) > 0 && len(snap.Repos) == 0 {
		return nil, ErrMissingRepository
	}

	// Default preset filenames resolve against the first configured
	// repository; additional repositories are reachable through an
	// explicit per-project selection.
	pointers := make([]Pointer, 0, len(snap.Presets))
	for _, file := range snap.Presets {
		if err := validateFilename(file); err != nil {
			return nil, err
		}
		pointers = append(pointers, Pointer{
			Source:   snap.Repos[0],
			File:     file,
			Revision: revision,
		})
	}
	return pointers, nil
}

func resolveSelection(sel *Selection, revision string) ([]Pointer, error) {
	pointers := make([]Pointer, 0, len(sel.SelectedPresets))
	for _, sp := range sel.SelectedPresets {
		if err := validateFilename(sp.File); err != nil {
			return nil, err
		}
		src, err := ParseSource(sp.Repo)
		if err != nil {
			return nil, err
		}
		if src.Kind == SourceLocal {
			// Project-level selections name hosted repositories only;
			// the local scheme exists for the global default slot.
			return nil, fmt.Errorf("%w: %q (project selections must name a hosted repository)", ErrInvalidSource, sp.Repo)
		}
		pointers = append(pointers, Pointer{
			Source:   src,
			File:     sp.File,
			Revision: revision,
		})
	}
	return pointers, nil
}

func validateFilename(file string) error {
	if !strings.HasSuffix(file, ".md") || file == ".md" {
		return fmt.Errorf("%w: %q", ErrInvalidPresetFilename, file)
	}
	return nil
}
