//go:build !unix

package fixture

import (
	"github.com/arthur-debert/fixtree/pkg/errors"
)

// CreatePipe is only supported on unix systems.
func (t *TempFixture) CreatePipe(relative string) (string, error) {
	return "", errors.New(errors.ErrPipeCreate, "named pipes are not supported on this platform").
		WithDetail("path", relative)
}
