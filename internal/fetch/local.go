package fetch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raphi011/preset/internal/log"
	"github.com/raphi011/preset/internal/pointer"
)

// presetExtension marks a file as a preset document.
const presetExtension = ".md"

// Entry describes one preset document found in a source.
type Entry struct {
	// Name is the file name.
	Name string

	// Path is the repository-relative path.
	Path string

	// Size in bytes.
	Size int64

	// ID is a content identifier. For hosted sources this is a real
	// content hash; for local scans it is a time-based placeholder, since
	// a plain directory offers no content-addressing primitive without
	// invoking version control. Do not use it for change detection.
	ID string
}

// readLocal reads a pointer's file from its local source directory.
// The file is looked up directly first; if absent, the directory is
// scanned recursively and matched by file name, so presets organized into
// subdirectories still resolve.
func readLocal(ctx context.Context, ptr pointer.Pointer) ([]byte, error) {
	root := ptr.Source.Path

	direct := filepath.Join(root, filepath.FromSlash(ptr.File))
	if content, err := os.ReadFile(direct); err == nil {
		return content, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read local preset: %w", err)
	}

	entries, err := Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Name == ptr.File {
			content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(entry.Path)))
			if err != nil {
				return nil, fmt.Errorf("read local preset: %w", err)
			}
			return content, nil
		}
	}

	return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, ptr.File, root)
}

// Scan recursively enumerates the preset documents under root.
// Unreadable entries are skipped with a log message so a single bad
// subdirectory doesn't abort the whole scan.
func Scan(ctx context.Context, root string) ([]Entry, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("scan preset source: %w", err)
	}

	logger := log.FromContext(ctx)
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Printf("skipping %s: %v\n", path, err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), presetExtension) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Printf("skipping %s: %v\n", path, err)
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		entries = append(entries, Entry{
			Name: d.Name(),
			Path: filepath.ToSlash(rel),
			Size: info.Size(),
			ID:   localID(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan preset source: %w", err)
	}

	return entries, nil
}

// localID returns a placeholder identifier for locally scanned files.
// See Entry.ID for why this is time-based rather than a content hash.
func localID() string {
	return fmt.Sprintf("local-%x", time.Now().UnixNano())
}
