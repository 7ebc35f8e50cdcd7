package git

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/fixture"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// repoFrom materializes text and initializes a repository in it.
func repoFrom(t *testing.T, text string) (*fixture.TempFixture, *Git) {
	t.Helper()
	requireGit(t)

	tmp, err := fixture.MustParse(text).WriteToTempDir()
	require.NoError(t, err)
	t.Cleanup(func() { _ = tmp.Close() })

	repo, err := Init(tmp.Root)
	require.NoError(t, err)
	return tmp, repo
}

func TestInit(t *testing.T) {
	tmp, repo := repoFrom(t, "//- /README.md\n# Test\n")

	assert.True(t, tmp.Exists("/.git"))
	assert.False(t, repo.HasConflicts())

	clean, err := repo.IsClean()
	require.NoError(t, err)
	assert.False(t, clean, "README is untracked")
}

func TestInitInSubdir(t *testing.T) {
	requireGit(t)

	tmp, err := fixture.Fixture{}.WriteToTempDir()
	require.NoError(t, err)
	t.Cleanup(func() { _ = tmp.Close() })

	repo, err := Init(filepath.Join(tmp.Root, "nested", "repo"))
	require.NoError(t, err)
	assert.True(t, tmp.Exists("/nested/repo/.git"))

	require.NoError(t, repo.Write("test.txt", "hello"))
	require.NoError(t, repo.AddAll())
	_, err = repo.Commit("Test commit")
	require.NoError(t, err)

	clean, err := repo.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestCommit(t *testing.T) {
	_, repo := repoFrom(t, "//- /file.txt\ncontent\n")

	require.NoError(t, repo.Add("file.txt"))
	hash, err := repo.Commit("Initial commit")
	require.NoError(t, err)
	assert.Len(t, hash, 40)

	head, err := repo.HeadHash()
	require.NoError(t, err)
	assert.Equal(t, hash, head)

	branch, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, DefaultBranch, branch)

	clean, err := repo.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)

	status, err := repo.Status()
	require.NoError(t, err)
	assert.Contains(t, status, DefaultBranch)
}

func TestCommitWithNothingStaged(t *testing.T) {
	_, repo := repoFrom(t, "//- /file.txt\ncontent\n")

	_, err := repo.Commit("empty")
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitCommand))
}

func TestBranchAndMerge(t *testing.T) {
	_, repo := repoFrom(t, "//- /file.txt\noriginal\n")

	require.NoError(t, repo.AddAll())
	_, err := repo.Commit("Initial")
	require.NoError(t, err)

	require.NoError(t, repo.CheckoutNewBranch("feature"))
	require.NoError(t, repo.Write("file.txt", "feature content"))
	require.NoError(t, repo.AddAll())
	_, err = repo.Commit("Feature change")
	require.NoError(t, err)

	require.NoError(t, repo.Checkout(DefaultBranch))
	require.NoError(t, repo.Merge("feature"))

	got, err := repo.Read("file.txt")
	require.NoError(t, err)
	assert.Equal(t, "feature content", got)

	repo.DeleteBranch("feature")
	assert.Error(t, repo.Checkout("feature"))
}

func TestMergeConflict(t *testing.T) {
	tmp, repo := repoFrom(t, "//- /file.txt\noriginal\n")

	require.NoError(t, repo.AddAll())
	_, err := repo.Commit("Initial")
	require.NoError(t, err)

	require.NoError(t, repo.CheckoutNewBranch("feature"))
	require.NoError(t, repo.Write("file.txt", "feature version\n"))
	require.NoError(t, repo.AddAll())
	_, err = repo.Commit("Feature")
	require.NoError(t, err)

	require.NoError(t, repo.Checkout(DefaultBranch))
	require.NoError(t, repo.Write("file.txt", "main version\n"))
	require.NoError(t, repo.AddAll())
	_, err = repo.Commit("Main")
	require.NoError(t, err)

	err = repo.Merge("feature")
	var conflict *MergeConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "feature", conflict.Branch)
	assert.Contains(t, conflict.Output, "CONFLICT")

	assert.True(t, repo.HasConflicts())
	files, err := repo.ConflictedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"file.txt"}, files)

	text, err := tmp.Read("/file.txt")
	require.NoError(t, err)
	assert.Contains(t, text, "<<<<<<< HEAD")

	repo.MergeAbort()
	assert.False(t, repo.HasConflicts())

	// Nothing to abort any more; best effort stays silent.
	repo.MergeAbort()
}

func TestOpen(t *testing.T) {
	tmp, _ := repoFrom(t, "//- /a.txt\na\n")

	repo := Open(tmp.Root)
	require.NoError(t, repo.AddAll())
	_, err := repo.Commit("via open")
	require.NoError(t, err)

	_, err = repo.Read("missing.txt")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestRunReportsExitStatus(t *testing.T) {
	_, repo := repoFrom(t, "x")

	result, err := repo.Run("rev-parse", "--verify", "does-not-exist")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Stderr)
}
