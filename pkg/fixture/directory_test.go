package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/filesystem"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestReadFromDirectory(t *testing.T) {
	t.Run("reads nested files sorted", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, map[string]string{
			"src/main.rs": "fn main() {}\n",
			"Cargo.toml":  "[package]\n",
			"src/a/b.rs":  "b\n",
		})

		f, exists, err := ReadFromDirectory(dir)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, []FixtureFile{
			{Path: "/Cargo.toml", Text: "[package]\n"},
			{Path: "/src/a/b.rs", Text: "b\n"},
			{Path: "/src/main.rs", Text: "fn main() {}\n"},
		}, f.Files)
	})

	t.Run("skips git directories", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, map[string]string{
			".git/HEAD":       "ref: refs/heads/main\n",
			"sub/.git/config": "[core]\n",
			"file.txt":        "x\n",
			".gitignore":      "target\n",
			"sub/tracked.txt": "y\n",
		})

		f, _, err := ReadFromDirectory(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"/.gitignore", "/file.txt", "/sub/tracked.txt"}, f.Paths())
	})

	t.Run("custom skip globs", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, map[string]string{
			".git/HEAD":     "ref\n",
			"build/out.log": "log\n",
			"keep.txt":      "k\n",
		})

		f, _, err := ReadFromDirectory(dir, WithSkipGlobs("**/*.log"))
		require.NoError(t, err)
		assert.Equal(t, []string{"/.git/HEAD", "/keep.txt"}, f.Paths())
	})

	t.Run("invalid skip glob", func(t *testing.T) {
		_, _, err := ReadFromDirectory(t.TempDir(), WithSkipGlobs("[abc"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
	})

	t.Run("missing directory", func(t *testing.T) {
		f, exists, err := ReadFromDirectory(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Empty(t, f.Files)
	})

	t.Run("memory filesystem", func(t *testing.T) {
		mem := filesystem.NewMemory()
		require.NoError(t, MustParse("//- /x/y.txt\ny\n").WriteTo(mem, "/proj"))

		f, exists, err := ReadFromDirectory("/proj", WithReadFS(mem))
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, []FixtureFile{{Path: "/x/y.txt", Text: "y\n"}}, f.Files)
	})

	t.Run("follows symlinked files", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, map[string]string{"target.txt": "t\n"})
		require.NoError(t, os.Symlink(filepath.Join(dir, "target.txt"), filepath.Join(dir, "link.txt")))

		f, _, err := ReadFromDirectory(dir)
		require.NoError(t, err)
		assert.Equal(t, []FixtureFile{
			{Path: "/link.txt", Text: "t\n"},
			{Path: "/target.txt", Text: "t\n"},
		}, f.Files)
	})
}
