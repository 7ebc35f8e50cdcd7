package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

func TestCompare(t *testing.T) {
	base := MustParse("//- /a.rs\na\n//- /b.rs\nb\n")

	t.Run("equal in any order", func(t *testing.T) {
		reordered := MustParse("//- /b.rs\nb\n//- /a.rs\na\n")

		assert.NoError(t, Compare(base, reordered))
		assert.True(t, Equal(base, reordered))
	})

	t.Run("different file count", func(t *testing.T) {
		more := MustParse("//- /a.rs\na\n//- /b.rs\nb\n//- /c.rs\nc\n")

		err := Compare(base, more)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFixtureMismatch))
		assert.Contains(t, err.Error(), "/c.rs")
		details := errors.GetErrorDetails(err)
		assert.Equal(t, []string{"/a.rs", "/b.rs"}, details["expected_paths"])
		assert.Equal(t, []string{"/a.rs", "/b.rs", "/c.rs"}, details["actual_paths"])
	})

	t.Run("missing path", func(t *testing.T) {
		other := MustParse("//- /a.rs\na\n//- /z.rs\nb\n")

		err := Compare(base, other)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFixtureMismatch))
		assert.Equal(t, "/b.rs", errors.GetErrorDetails(err)["path"])
		assert.Contains(t, err.Error(), "/z.rs")
	})

	t.Run("text mismatch", func(t *testing.T) {
		changed := MustParse("//- /a.rs\na\n//- /b.rs\nnew\n")

		err := Compare(base, changed)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFixtureMismatch))
		assert.Contains(t, err.Error(), "expected:\nb\n")
		assert.Contains(t, err.Error(), "actual:\nnew\n")

		diff, ok := errors.GetErrorDetails(err)["diff"].(string)
		require.True(t, ok)
		assert.Contains(t, diff, "-b")
		assert.Contains(t, diff, "+new")
		assert.Contains(t, diff, "expected/b.rs")
	})

	t.Run("duplicate paths rejected", func(t *testing.T) {
		dup := MustParse("//- /a.rs\na\n//- /a.rs\na\n")

		err := Compare(dup, base)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicatePath))

		err = Compare(base, dup)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicatePath))
		assert.False(t, Equal(dup, dup))
	})

	t.Run("empty fixtures", func(t *testing.T) {
		assert.NoError(t, Compare(Fixture{}, Fixture{}))
	})
}

func TestFixtureHelpers(t *testing.T) {
	f := MustParse("//- /a.rs\na\n//- /b.rs\nb\n")

	t.Run("lookup", func(t *testing.T) {
		file, ok := f.File("/b.rs")
		assert.True(t, ok)
		assert.Equal(t, "b\n", file.Text)
		assert.False(t, f.Contains("/c.rs"))
	})

	t.Run("with text copies", func(t *testing.T) {
		updated, ok := f.WithText("/a.rs", "changed\n")
		assert.True(t, ok)
		assert.Equal(t, "changed\n", updated.Files[0].Text)
		assert.Equal(t, "a\n", f.Files[0].Text)

		_, ok = f.WithText("/nope", "x")
		assert.False(t, ok)
	})

	t.Run("single file", func(t *testing.T) {
		_, err := f.SingleFile()
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotSingleFile))

		file, err := MustParse("x").SingleFile()
		require.NoError(t, err)
		assert.Equal(t, DefaultPath, file.Path)
	})
}
