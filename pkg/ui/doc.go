// Package ui holds terminal presentation helpers: output format detection
// and lipgloss styles loaded from an embedded YAML theme.
package ui
