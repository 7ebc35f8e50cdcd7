// Package fsstandards groups wrappers that understand common filesystem
// layouts and tools on top of materialized fixtures.
//
// Subpackages:
//   - git: drive a git repository inside a fixture (commits, branches, merges)
//   - xdg: lay out a fixture as XDG base directories for one application
package fsstandards
