package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// aferoFS adapts an afero.Fs to FS. Both backends go through it; onDisk
// marks the one backed by the OS.
type aferoFS struct {
	fs     afero.Fs
	onDisk bool
}

// NewOS returns the real filesystem.
func NewOS() FS {
	return &aferoFS{fs: afero.NewOsFs(), onDisk: true}
}

// NewAferoFS wraps any afero filesystem.
func NewAferoFS(fsys afero.Fs) FS {
	_, onDisk := fsys.(*afero.OsFs)
	return &aferoFS{fs: fsys, onDisk: onDisk}
}

// NewMemory returns a fresh, empty in-memory filesystem.
func NewMemory() FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	// MemMapFs happily "reads" a directory as empty.
	if info, err := a.fs.Stat(name); err != nil {
		return nil, err
	} else if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (a *aferoFS) MkdirTemp(dir, prefix string) (string, error) {
	name, err := afero.TempDir(a.fs, dir, prefix)
	if err != nil || !a.onDisk {
		return name, err
	}
	// Resolve symlinked temp roots (macOS /var -> /private/var) so paths
	// reported by subprocesses match ours.
	if resolved, err := filepath.EvalSymlinks(name); err == nil {
		return resolved, nil
	}
	return name, nil
}

func (a *aferoFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	err := afero.Walk(a.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, nil, err)
		}
		return fn(path, fs.FileInfoToDirEntry(info), nil)
	})
	// afero only understands SkipDir; match filepath.WalkDir for the rest.
	if err == fs.SkipAll || err == fs.SkipDir {
		return nil
	}
	return err
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}
