package pointer

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSelection_Missing(t *testing.T) {
	t.Parallel()

	sel, err := LoadSelection(filepath.Join(t.TempDir(), "preset-selection.json"))
	if err != nil {
		t.Fatalf("LoadSelection on missing file: %v", err)
	}
	if sel != nil {
		t.Errorf("LoadSelection on missing file = %+v, want nil", sel)
	}
}

func TestSaveLoadSelection_Roundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preset-selection.json")
	before := time.Now().UTC()

	saved := &Selection{
		SelectedPresets: []SelectedPreset{
			{Repo: "github.com/acme/presets", File: "golang.md"},
			{Repo: "github.com/acme/presets", File: "react.md"},
		},
	}
	if err := SaveSelection(path, saved); err != nil {
		t.Fatalf("SaveSelection: %v", err)
	}

	loaded, err := LoadSelection(path)
	if err != nil {
		t.Fatalf("LoadSelection: %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadSelection = nil after save")
	}
	if len(loaded.SelectedPresets) != 2 || loaded.SelectedPresets[1].File != "react.md" {
		t.Errorf("SelectedPresets = %+v", loaded.SelectedPresets)
	}
	if loaded.LastUpdated.Before(before) {
		t.Errorf("LastUpdated = %v, want stamped on save", loaded.LastUpdated)
	}
}
