// Package merge builds the revision-pinned merged preset artifact.
//
// The artifact is a plain markdown file: every fetched preset's content in
// pointer order, each preceded by a provenance comment naming the pointer
// it came from. Output is a pure function of the preset list and revision
// label, so re-running a sync with unchanged inputs rewrites the artifact
// byte for byte.
package merge

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/preset/internal/fetch"
)

// Artifact is one generated merge output.
type Artifact struct {
	// Path is where the artifact was written.
	Path string

	// Presets are the merged presets, in artifact order.
	Presets []fetch.Result

	// Revision is the revision label the artifact is pinned to.
	Revision string
}

// Generate concatenates presets in order into outputPath, creating parent
// directories as needed. An empty preset list is valid and produces a
// minimal well-formed artifact.
func Generate(presets []fetch.Result, outputPath, revision string) (Artifact, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "<!-- generated by preset @ %s; do not edit -->\n", revision)

	for _, p := range presets {
		buf.WriteByte('\n')
		fmt.Fprintf(&buf, "<!-- preset: %s -->\n", p.Pointer)
		buf.Write(p.Content)
		if len(p.Content) > 0 && !bytes.HasSuffix(p.Content, []byte("\n")) {
			buf.WriteByte('\n')
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return Artifact{}, fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return Artifact{}, fmt.Errorf("write artifact: %w", err)
	}

	return Artifact{Path: outputPath, Presets: presets, Revision: revision}, nil
}
