package fixture

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/filesystem"
	"github.com/arthur-debert/fixtree/pkg/logging"
)

// DefaultTempPrefix prefixes the directories created by WriteToTempDir.
const DefaultTempPrefix = "fixtree_"

type tempOptions struct {
	prefix string
	fs     filesystem.FS
}

// TempOption configures WriteToTempDir.
type TempOption func(*tempOptions)

// WithPrefix names the temporary directory "<prefix><random>".
func WithPrefix(prefix string) TempOption {
	return func(o *tempOptions) { o.prefix = prefix }
}

// WithFS materializes through fsys instead of the OS filesystem. A fixture
// written to an in-memory filesystem is invisible to other processes.
func WithFS(fsys filesystem.FS) TempOption {
	return func(o *tempOptions) { o.fs = fsys }
}

// WriteTo writes every file below root, creating parent directories. Files
// are written in fixture order, so a repeated path ends up with the text of
// its last occurrence.
func (f Fixture) WriteTo(fsys filesystem.FS, root string) error {
	for _, file := range f.Files {
		path := filepath.Join(root, confine(file.Path))
		if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent dirs for %s", file.Path).
				WithDetail("path", file.Path).
				WithDetail("root", root)
		}
		if err := fsys.WriteFile(path, []byte(file.Text), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write fixture file %s", file.Path).
				WithDetail("path", file.Path).
				WithDetail("root", root)
		}
	}
	return nil
}

// confine turns a fixture path into a clean path relative to a root.
// Leading slashes are dropped and ".." cannot climb above the root.
func confine(path string) string {
	sep := string(filepath.Separator)
	return strings.TrimLeft(filepath.Clean(sep+filepath.FromSlash(path)), sep)
}

// WriteToTempDir writes the fixture into a fresh temporary directory. The
// returned TempFixture owns the directory: Close removes it.
func (f Fixture) WriteToTempDir(opts ...TempOption) (*TempFixture, error) {
	o := tempOptions{prefix: DefaultTempPrefix, fs: filesystem.NewOS()}
	for _, opt := range opts {
		opt(&o)
	}

	root, err := o.fs.MkdirTemp("", o.prefix)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTempDir, "failed to create temp dir").
			WithDetail("prefix", o.prefix)
	}

	if err := f.WriteTo(o.fs, root); err != nil {
		_ = o.fs.RemoveAll(root)
		return nil, err
	}

	t := &TempFixture{
		ID:    uuid.NewString(),
		Root:  root,
		Files: f.Files,
		fs:    o.fs,
		owner: &tempOwner{fs: o.fs, root: root},
	}

	logger := logging.GetLogger("fixture")
	logger.Debug().
		Str("id", t.ID).
		Str("root", root).
		Int("files", len(f.Files)).
		Msg("Materialized fixture")

	return t, nil
}

// tempOwner removes the directory once; it is shared by every handle
// derived through Cwd.
type tempOwner struct {
	fs     filesystem.FS
	root   string
	closed bool
}

func (o *tempOwner) close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	return o.fs.RemoveAll(o.root)
}

// TempFixture is a fixture written to a temporary directory.
//
// Path accessors are pure functions of Root, the working directory and the
// argument; nothing about the disk state is cached.
type TempFixture struct {
	// ID identifies this materialization in logs.
	ID string
	// Root is the absolute path of the temporary directory.
	Root string
	// Files are the files originally written.
	Files []FixtureFile

	// cwd is relative to Root; empty means Root itself.
	cwd   string
	fs    filesystem.FS
	owner *tempOwner
}

// Close removes the temporary directory. Handles returned by Cwd share the
// directory, so closing any of them removes it for all. Close is idempotent.
func (t *TempFixture) Close() error {
	logger := logging.GetLogger("fixture")
	if err := t.owner.close(); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to remove temp dir").
			WithDetail("root", t.Root)
	}
	logger.Debug().Str("id", t.ID).Str("root", t.Root).Msg("Removed fixture")
	return nil
}

// FS returns the filesystem the fixture was written through.
func (t *TempFixture) FS() filesystem.FS {
	return t.fs
}

// Cwd returns a handle whose read-back is scoped to the given subdirectory
// of Root. Only files below it are read by ReadAllFromDisk and their paths
// are relative to it. "/src" and "src" are equivalent and ".." stops at
// Root. No file moves.
func (t *TempFixture) Cwd(path string) *TempFixture {
	scoped := *t
	scoped.cwd = confine(path)
	return &scoped
}

// EffectiveCwd returns the absolute scope directory: Root joined with the
// working directory, or Root when none is set.
func (t *TempFixture) EffectiveCwd() string {
	if t.cwd == "" {
		return t.Root
	}
	return filepath.Join(t.Root, t.cwd)
}

// Path returns the absolute path of a file relative to Root. The working
// directory does not apply, and the result never leaves Root.
func (t *TempFixture) Path(relative string) string {
	return filepath.Join(t.Root, confine(relative))
}

// Exists reports whether a file or directory exists relative to Root.
func (t *TempFixture) Exists(relative string) bool {
	return filesystem.Exists(t.fs, t.Path(relative))
}

// Read returns the current contents of a file relative to Root.
func (t *TempFixture) Read(relative string) (string, error) {
	path := t.Path(relative)
	data, err := t.fs.ReadFile(path)
	if err != nil {
		code := errors.ErrFileRead
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrFileNotFound
		}
		return "", errors.Wrapf(err, code, "failed to read %s", relative).
			WithDetail("path", relative).
			WithDetail("root", t.Root)
	}
	return string(data), nil
}

// TryRead is like Read but reports failure with false.
func (t *TempFixture) TryRead(relative string) (string, bool) {
	text, err := t.Read(relative)
	return text, err == nil
}

// Write writes content to a file relative to Root, creating parent
// directories as needed.
func (t *TempFixture) Write(relative, content string) error {
	file := Fixture{Files: []FixtureFile{{Path: "/" + strings.TrimLeft(relative, "/"), Text: content}}}
	return file.WriteTo(t.fs, t.Root)
}

// ReadAll re-reads the originally written files and returns their current
// contents. Files added since materialization are not included; a deleted
// file is an error.
func (t *TempFixture) ReadAll() (Fixture, error) {
	files := make([]FixtureFile, 0, len(t.Files))
	for _, f := range t.Files {
		text, err := t.Read(f.Path)
		if err != nil {
			return Fixture{}, err
		}
		files = append(files, FixtureFile{Path: f.Path, Text: text})
	}
	return Fixture{Files: files}, nil
}

// ReadAllFromDisk walks the working directory (Root when unset) and returns
// every file found, sorted by path, with paths relative to it. New files are
// picked up and deleted ones are absent.
func (t *TempFixture) ReadAllFromDisk() (Fixture, error) {
	logger := logging.GetLogger("fixture")
	done := logging.LogOperationStart(logger, "read_all_from_disk")
	defer done()

	return readTree(t.fs, t.EffectiveCwd(), nil)
}
