package pointer

import (
	"errors"
	"os"
	"time"

	"github.com/raphi011/preset/internal/storage"
)

// SelectedPreset is one repo/file pair in a project's persisted selection.
type SelectedPreset struct {
	Repo string `json:"repo"`
	File string `json:"file"`
}

// Selection is the per-project preset selection persisted in the project's
// metadata directory. When present it overrides the global defaults.
type Selection struct {
	SelectedPresets []SelectedPreset `json:"selected_presets"`
	LastUpdated     time.Time        `json:"last_updated"`
}

// LoadSelection reads a project's selection file.
// Returns (nil, nil) when no selection has been persisted.
func LoadSelection(path string) (*Selection, error) {
	var sel Selection
	if err := storage.LoadJSON(path, &sel); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &sel, nil
}

// SaveSelection persists a project's selection atomically, stamping
// LastUpdated.
func SaveSelection(path string, sel *Selection) error {
	sel.LastUpdated = time.Now().UTC()
	return storage.SaveJSON(path, sel)
}
