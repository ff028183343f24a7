// Package config handles loading and validation of preset configuration.
//
// Configuration is read from ~/.config/preset/config.toml. A missing
// file is not an error; defaults apply.
//
// # Key Settings
//
//   - preset_repos: repositories presets are fetched from, in priority order
//   - presets: default preset filenames for projects without a selection
//   - cache_dir: cache root for fetched presets and artifacts (default ~/.preset)
//   - target_file: instructions document name in each project (default CLAUDE.md)
//   - version: revision to fetch presets at (default HEAD)
//
// Paths must be absolute or start with ~; the ~ prefix is expanded on
// load since shells don't expand it inside config files.
package config
