// Package ui provides the interactive terminal components for preset.
//
// This package uses the Charm libraries (bubbletea, bubbles, lipgloss)
// for the preset picker: a fuzzy-filterable multi-select list used by
// "preset select" when stdin is a TTY.
package ui
