package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the preset configuration
type Config struct {
	// PresetRepos are the repositories presets are fetched from, in
	// priority order. Accepts "owner/repo", "host/owner/repo", full URLs,
	// or "file:///path" for a local directory.
	PresetRepos []string `toml:"preset_repos"`

	// Presets are the default preset filenames applied to projects
	// without an explicit selection.
	Presets []string `toml:"presets"`

	// CacheDir is where fetched presets and merge artifacts live.
	CacheDir string `toml:"cache_dir"`

	// TargetFile is the instructions document name in each project root.
	TargetFile string `toml:"target_file"`

	// Version pins the preset revision used for fetching (tag, branch,
	// or commit). Empty means HEAD.
	Version string `toml:"version"`
}

// DefaultCacheDir is where presets are cached unless configured otherwise
const DefaultCacheDir = "~/.preset"

// DefaultTargetFile is the instructions document rewritten on sync
const DefaultTargetFile = "CLAUDE.md"

// Default returns the default configuration
func Default() Config {
	return Config{
		CacheDir:   DefaultCacheDir,
		TargetFile: DefaultTargetFile,
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "preset", "config.toml"), nil
}

// Load reads config from ~/.config/preset/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidatePath(cfg.CacheDir, "cache_dir"); err != nil {
		return Default(), err
	}

	// Expand ~ in cache_dir (shell doesn't expand in config files)
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}
	expanded, err := expandPath(cfg.CacheDir)
	if err != nil {
		return Default(), fmt.Errorf("expand cache_dir: %w", err)
	}
	cfg.CacheDir = expanded

	if cfg.TargetFile == "" {
		cfg.TargetFile = DefaultTargetFile
	}
	if filepath.Base(cfg.TargetFile) != cfg.TargetFile {
		return Default(), fmt.Errorf("target_file must be a bare filename, got: %q", cfg.TargetFile)
	}

	return cfg, nil
}

const defaultConfig = `# preset configuration

# Repositories presets are fetched from, in priority order.
# Accepts "owner/repo" (github.com assumed), "host/owner/repo",
# full https URLs, or "file:///absolute/path" for a local directory.
# preset_repos = ["acme/presets"]

# Default presets applied to projects without an explicit selection
# ("preset select" overrides this per project).
# presets = ["golang.md", "react.md"]

# Where fetched presets and merged artifacts are cached.
# Must be an absolute path or start with ~.
# cache_dir = "~/.preset"

# Instructions document rewritten in each project root.
# target_file = "CLAUDE.md"

# Preset revision to fetch (tag, branch, or commit). Empty means HEAD.
# version = "v1.2.0"
`

// Init writes the default config template to ~/.config/preset/config.toml
// Returns the written path. Fails if the file exists unless force is set.
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	return path, nil
}
