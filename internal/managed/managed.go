// Package managed parses and rewrites the managed import line of a
// project's instructions document.
//
// A document is free-form user content plus, optionally, one mechanically
// owned line: the last non-empty line, starting with the import sigil and
// pointing at the current merge artifact. The rewriter only ever creates
// or replaces that one line; every other byte of the document passes
// through untouched, and rewriting twice with the same artifact path is a
// no-op.
package managed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sigil marks the managed import line.
const Sigil = "@"

// ErrInvalidDocumentPath indicates the target document path cannot be
// read or written as a regular file.
var ErrInvalidDocumentPath = errors.New("invalid target document path")

// Document is the parsed form of a target document.
type Document struct {
	// FreeContent is everything before the managed line, byte-preserved.
	// With no managed line it is the whole text.
	FreeContent string

	// ImportPath is the managed line's target, "" when absent.
	ImportPath string
}

// Parse splits text into free content and the managed import line.
// The managed line, if any, is the last non-empty line when it starts
// with the sigil.
func Parse(text string) Document {
	start, end, ok := managedSpan(text)
	if !ok {
		return Document{FreeContent: text}
	}
	return Document{
		FreeContent: text[:start],
		ImportPath:  strings.TrimSpace(text[start+len(Sigil) : end]),
	}
}

// Rewrite returns text with its managed line pointing at artifactPath,
// appending the line if the document has none. The artifact path is
// contracted to a home-relative form so the document stays portable
// across machines.
func Rewrite(text, artifactPath string) string {
	line := Sigil + ContractHome(artifactPath)

	start, end, ok := managedSpan(text)
	if !ok {
		if text == "" {
			return line + "\n"
		}
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return text + line + "\n"
	}

	return text[:start] + line + text[end:]
}

// UpdateFile rewrites the managed line of the document at path in place.
// A missing document is treated as empty and created. The write is
// atomic (temp file + rename) so a crashed sync never leaves a truncated
// document behind.
func UpdateFile(path, artifactPath string) error {
	var text string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		text = string(data)
	case errors.Is(err, os.ErrNotExist):
		text = ""
	default:
		return fmt.Errorf("%w: %s: %v", ErrInvalidDocumentPath, path, err)
	}

	rewritten := Rewrite(text, artifactPath)
	if rewritten == text {
		return nil
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, []byte(rewritten), 0o644); err != nil {
		return fmt.Errorf("write target document: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("write target document: %w", err)
	}
	return nil
}

// managedSpan locates the managed line: the byte range of the last
// non-empty line, excluding its trailing newline, when that line starts
// with the sigil.
func managedSpan(text string) (start, end int, ok bool) {
	off := 0
	lastStart, lastEnd := -1, -1
	for off < len(text) {
		lineEnd := len(text)
		if nl := strings.IndexByte(text[off:], '\n'); nl >= 0 {
			lineEnd = off + nl
		}
		if strings.TrimSpace(text[off:lineEnd]) != "" {
			lastStart, lastEnd = off, lineEnd
		}
		if lineEnd == len(text) {
			break
		}
		off = lineEnd + 1
	}

	if lastStart >= 0 && strings.HasPrefix(text[lastStart:], Sigil) {
		return lastStart, lastEnd, true
	}
	return 0, 0, false
}

// ContractHome replaces a home directory prefix with ~.
func ContractHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~/" + filepath.ToSlash(rest)
	}
	return path
}

// ExpandHome is the inverse of ContractHome for paths read back out of a
// document.
func ExpandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}
