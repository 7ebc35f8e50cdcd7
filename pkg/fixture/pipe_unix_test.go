//go:build unix

package fixture

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/filesystem"
)

func TestCreatePipe(t *testing.T) {
	t.Run("creates fifo", func(t *testing.T) {
		tmp := materialize(t, MustParse("//- /a.rs\na\n"))

		path, err := tmp.CreatePipe("/signals/ready")
		require.NoError(t, err)
		assert.Equal(t, tmp.Path("/signals/ready"), path)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeNamedPipe)

		got, err := tmp.ReadAllFromDisk()
		require.NoError(t, err)
		assert.Equal(t, []string{"/a.rs"}, got.Paths())
	})

	t.Run("requires os filesystem", func(t *testing.T) {
		tmp := materialize(t, MustParse("x"), WithFS(filesystem.NewMemory()))

		_, err := tmp.CreatePipe("/pipe")
		assert.True(t, errors.IsErrorCode(err, errors.ErrPipeCreate))
	})
}
