package fixture

import (
	"slices"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

const (
	// MarkerToken starts a line that opens a new file section.
	MarkerToken = "//-"

	// DefaultPath is the path given to a fixture written without markers.
	DefaultPath = "/main.rs"

	// Separator splits a before/after fixture. It must sit on a line of its own.
	Separator = "=>"
)

// FixtureFile is a single file in a fixture.
type FixtureFile struct {
	// Path relative to the fixture root, always starting with "/"
	// (e.g. "/main.rs" or "/tests/test.rs").
	Path string `yaml:"path" toml:"path"`
	// Text is the file content with marker lines stripped.
	Text string `yaml:"text" toml:"text"`
}

// Fixture is an ordered set of files. Order is first-seen order in the
// source text and is what the renderer emits.
type Fixture struct {
	Files []FixtureFile `yaml:"files" toml:"files"`
}

// File returns the first file stored at path.
func (f Fixture) File(path string) (FixtureFile, bool) {
	for _, file := range f.Files {
		if file.Path == path {
			return file, true
		}
	}
	return FixtureFile{}, false
}

// Contains reports whether the fixture has a file at path.
func (f Fixture) Contains(path string) bool {
	_, ok := f.File(path)
	return ok
}

// Paths returns the file paths in fixture order.
func (f Fixture) Paths() []string {
	paths := make([]string, len(f.Files))
	for i, file := range f.Files {
		paths[i] = file.Path
	}
	return paths
}

// SingleFile returns the only file of a single-file fixture.
func (f Fixture) SingleFile() (FixtureFile, error) {
	if len(f.Files) != 1 {
		return FixtureFile{}, errors.Newf(errors.ErrNotSingleFile,
			"expected single file fixture, got %d", len(f.Files)).
			WithDetail("paths", f.Paths())
	}
	return f.Files[0], nil
}

// WithText returns a copy of the fixture where the first file at path has
// its text replaced. The receiver is left untouched. It reports false when
// no file lives at path.
func (f Fixture) WithText(path, text string) (Fixture, bool) {
	for i, file := range f.Files {
		if file.Path == path {
			files := slices.Clone(f.Files)
			files[i].Text = text
			return Fixture{Files: files}, true
		}
	}
	return f, false
}

// DuplicatePaths lists every path that occurs more than once, in order of
// its second occurrence.
func (f Fixture) DuplicatePaths() []string {
	seen := make(map[string]int, len(f.Files))
	var dups []string
	for _, file := range f.Files {
		seen[file.Path]++
		if seen[file.Path] == 2 {
			dups = append(dups, file.Path)
		}
	}
	return dups
}

// Render renders the fixture with default settings: a single file renders
// as its raw text, several files render with "//- /path" headers.
//
// Use Renderer for filtering, redaction and hash normalization.
func (f Fixture) Render() string {
	return NewRenderer(f).render()
}
