package fixture

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/filesystem"
)

// DefaultSkipGlobs are skipped by ReadFromDirectory unless overridden.
var DefaultSkipGlobs = []string{"**/.git"}

type readOptions struct {
	fs        filesystem.FS
	skipGlobs []string
}

// ReadOption configures ReadFromDirectory.
type ReadOption func(*readOptions)

// WithReadFS reads through fsys instead of the OS filesystem.
func WithReadFS(fsys filesystem.FS) ReadOption {
	return func(o *readOptions) { o.fs = fsys }
}

// WithSkipGlobs replaces DefaultSkipGlobs. Globs are doublestar patterns
// matched against slash-separated paths relative to the directory; a
// matching directory is skipped with everything below it.
func WithSkipGlobs(globs ...string) ReadOption {
	return func(o *readOptions) { o.skipGlobs = globs }
}

// ReadFromDirectory reads every regular file below dir into a fixture sorted
// by path, with paths relative to dir. Version control directories are
// skipped (see DefaultSkipGlobs). It reports false when dir does not exist.
func ReadFromDirectory(dir string, opts ...ReadOption) (Fixture, bool, error) {
	o := readOptions{fs: filesystem.NewOS(), skipGlobs: DefaultSkipGlobs}
	for _, opt := range opts {
		opt(&o)
	}

	for _, g := range o.skipGlobs {
		if !doublestar.ValidatePattern(g) {
			return Fixture{}, false, errors.Newf(errors.ErrPatternInvalid, "invalid skip glob %q", g).
				WithDetail("pattern", g)
		}
	}

	if !filesystem.Exists(o.fs, dir) {
		return Fixture{}, false, nil
	}

	f, err := readTree(o.fs, dir, o.skipGlobs)
	if err != nil {
		return Fixture{}, true, err
	}
	return f, true, nil
}

// readTree walks base and collects every regular file, paths relative to
// base with a leading "/", sorted lexicographically. A missing base yields
// an empty fixture.
func readTree(fsys filesystem.FS, base string, skipGlobs []string) (Fixture, error) {
	var files []FixtureFile

	err := fsys.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == base && stderrors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if path == base {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if skipped(skipGlobs, rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !isRegularFile(fsys, path, d) {
			return nil
		}

		data, err := fsys.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, FixtureFile{Path: "/" + rel, Text: string(data)})
		return nil
	})
	if err != nil {
		return Fixture{}, errors.Wrapf(err, errors.ErrFileRead, "failed to read directory %s", base).
			WithDetail("root", base)
	}

	slices.SortFunc(files, func(a, b FixtureFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	return Fixture{Files: files}, nil
}

func skipped(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// isRegularFile reports whether the entry is a regular file, following
// symlinks. Pipes, sockets and devices are never read.
func isRegularFile(fsys filesystem.FS, path string, d fs.DirEntry) bool {
	if d == nil {
		return false
	}
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := fsys.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	return d.Type().IsRegular()
}
