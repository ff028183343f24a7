package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/raphi011/preset/internal/config"
	"github.com/raphi011/preset/internal/managed"
	"github.com/raphi011/preset/internal/output"
	"github.com/raphi011/preset/internal/pointer"
)

type statusOptions struct {
	jsonOutput bool
	dir        string
}

// StatusDisplay holds project sync status for display
type StatusDisplay struct {
	Root           string   `json:"root"`
	Origin         string   `json:"origin,omitempty"`
	Slug           string   `json:"slug"`
	Revision       string   `json:"revision"`
	Presets        []string `json:"presets"`
	SelectionSaved bool     `json:"selection_saved"`
	ArtifactPath   string   `json:"artifact_path"`
	ArtifactExists bool     `json:"artifact_exists"`
	TargetDoc      string   `json:"target_doc"`
	ImportPath     string   `json:"import_path,omitempty"`
	InSync         bool     `json:"in_sync"`
}

func runStatus(ctx context.Context, cfg config.Config, opts statusOptions) error {
	out := output.FromContext(ctx)

	proj, err := resolveProject(ctx, cfg, opts.dir, "", "")
	if err != nil {
		return err
	}

	snap, err := snapshotFromConfig(cfg, proj.revision)
	if err != nil {
		return err
	}

	sel, err := pointer.LoadSelection(proj.paths.SelectionPath)
	if err != nil {
		return fmt.Errorf("load selection: %w", err)
	}

	var presets []string
	if pointers, err := pointer.Resolve(snap, sel); err == nil {
		for _, ptr := range pointers {
			presets = append(presets, ptr.String())
		}
	}

	display := StatusDisplay{
		Root:           proj.root,
		Origin:         proj.origin,
		Slug:           proj.paths.Identity.Slug,
		Revision:       proj.revision,
		Presets:        presets,
		SelectionSaved: sel != nil,
		ArtifactPath:   proj.paths.MergedPath,
		TargetDoc:      proj.paths.TargetDoc,
	}

	if _, err := os.Stat(proj.paths.MergedPath); err == nil {
		display.ArtifactExists = true
	}

	if data, err := os.ReadFile(proj.paths.TargetDoc); err == nil {
		doc := managed.Parse(string(data))
		display.ImportPath = doc.ImportPath
		display.InSync = display.ArtifactExists &&
			managed.ExpandHome(doc.ImportPath) == proj.paths.MergedPath
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read target document: %w", err)
	}

	if opts.jsonOutput {
		data, err := json.MarshalIndent(display, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal status: %w", err)
		}
		out.Println(string(data))
		return nil
	}

	out.Printf("Project:   %s\n", display.Root)
	if display.Origin != "" {
		out.Printf("Origin:    %s\n", display.Origin)
	}
	out.Printf("Slug:      %s\n", display.Slug)
	out.Printf("Revision:  %s\n", display.Revision)

	source := "config defaults"
	if display.SelectionSaved {
		source = "saved selection"
	}
	out.Printf("Presets:   %d (%s)\n", len(display.Presets), source)
	for _, p := range display.Presets {
		out.Printf("  %s\n", p)
	}

	switch {
	case display.InSync:
		out.Printf("Status:    in sync (%s)\n", managed.ContractHome(display.ArtifactPath))
	case display.ArtifactExists:
		out.Println("Status:    artifact built, document not updated (run 'preset sync')")
	default:
		out.Println("Status:    not synced (run 'preset sync')")
	}
	return nil
}
