//go:build unix

package fixture

import (
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/filesystem"
)

// CreatePipe creates a named pipe (FIFO) relative to Root and returns its
// absolute path.
//
// Useful for mocking interactive processes: the process under test blocks
// reading the pipe until the test writes to it. Requires the OS filesystem.
func (t *TempFixture) CreatePipe(relative string) (string, error) {
	if !filesystem.IsOS(t.fs) {
		return "", errors.New(errors.ErrPipeCreate, "named pipes require the OS filesystem")
	}

	path := t.Path(relative)
	if err := t.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent dirs for %s", relative).
			WithDetail("path", relative)
	}
	if err := unix.Mkfifo(path, 0700); err != nil {
		return "", errors.Wrapf(err, errors.ErrPipeCreate, "failed to create named pipe %s", relative).
			WithDetail("path", relative)
	}
	return path, nil
}
