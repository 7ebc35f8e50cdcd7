package filesystem

import (
	"io/fs"
)

// FS is the set of filesystem operations fixture materialization and
// read-back rely on.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	// MkdirTemp creates a new unique directory under dir (the default temp
	// directory when dir is empty) whose name begins with prefix.
	MkdirTemp(dir, prefix string) (string, error)
	// WalkDir walks the tree rooted at root in lexical order.
	WalkDir(root string, fn fs.WalkDirFunc) error

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}

// Exists reports whether name can be stat'ed on fsys.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// IsOS reports whether fsys is the real OS filesystem, which external
// processes and special files (pipes) require.
func IsOS(fsys FS) bool {
	a, ok := fsys.(*aferoFS)
	return ok && a.onDisk
}
