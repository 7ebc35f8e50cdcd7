// Package git drives a git repository living in a test directory.
//
// Git does not own its directory; it only wraps a path:
//
//	tmp, _ := fixture.MustParse("//- /README.md\n# Test\n").WriteToTempDir()
//	defer tmp.Close()
//
//	repo, err := git.Init(tmp.Root)
//	_ = repo.AddAll()
//	hash, err := repo.Commit("Initial commit")
package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/logging"
)

const (
	// DefaultBranch is the initial branch of repositories created by Init.
	DefaultBranch = "main"

	// UserName and UserEmail are configured for commits in Init.
	UserName  = "Test User"
	UserEmail = "test@test.local"

	commandTimeout = time.Minute
)

// Result is the outcome of a git invocation.
type Result struct {
	Success bool
	Stdout  string
	Stderr  string
}

// Git wraps a git repository rooted at Root.
type Git struct {
	Root string
}

// MergeConflictError is returned by Merge when git refuses or fails to
// merge. Output holds stdout and stderr of the merge.
type MergeConflictError struct {
	Branch string
	Output string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merge of %s failed:\n%s", e.Branch, e.Output)
}

// Init creates root if needed, runs git init with DefaultBranch as the
// initial branch and configures a test identity.
func Init(root string) (*Git, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create git directory %s", root).
			WithDetail("root", root)
	}

	g := &Git{Root: root}
	steps := [][]string{
		{"init"},
		{"symbolic-ref", "HEAD", "refs/heads/" + DefaultBranch},
		{"config", "user.email", UserEmail},
		{"config", "user.name", UserName},
		{"config", "commit.gpgsign", "false"},
	}
	for _, args := range steps {
		if _, err := g.mustRun(args...); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Open wraps an existing repository without running git init.
func Open(root string) *Git {
	return &Git{Root: root}
}

// Run runs git with args in Root. A non-zero exit is reported through
// Result.Success, not as an error; the error covers failures to start git.
func (g *Git) Run(args ...string) (Result, error) {
	logging.LogCommand("git", args)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Success: err == nil,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}

	var exitErr *exec.ExitError
	if err != nil && !stderrors.As(err, &exitErr) {
		return result, errors.Wrapf(err, errors.ErrGitCommand, "failed to run git %s", strings.Join(args, " ")).
			WithDetail("args", args).
			WithDetail("root", g.Root)
	}
	return result, nil
}

// mustRun runs git and turns a non-zero exit into an error carrying stderr.
func (g *Git) mustRun(args ...string) (Result, error) {
	result, err := g.Run(args...)
	if err != nil {
		return result, err
	}
	if !result.Success {
		return result, errors.Newf(errors.ErrGitCommand, "git %s failed: %s",
			strings.Join(args, " "), strings.TrimSpace(result.Stderr)).
			WithDetail("args", args).
			WithDetail("root", g.Root).
			WithDetail("stdout", result.Stdout)
	}
	return result, nil
}

// AddAll stages every change.
func (g *Git) AddAll() error {
	_, err := g.mustRun("add", "-A")
	return err
}

// Add stages the given paths.
func (g *Git) Add(paths ...string) error {
	_, err := g.mustRun(append([]string{"add", "--"}, paths...)...)
	return err
}

// Commit commits the staged changes and returns the new HEAD hash.
func (g *Git) Commit(message string) (string, error) {
	if _, err := g.mustRun("commit", "-m", message); err != nil {
		return "", err
	}
	return g.HeadHash()
}

// HeadHash returns the full hash of HEAD.
func (g *Git) HeadHash() (string, error) {
	result, err := g.mustRun("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}

// CurrentBranch returns the checked out branch name.
func (g *Git) CurrentBranch() (string, error) {
	result, err := g.mustRun("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}

// IsClean reports whether the working tree has no uncommitted changes.
func (g *Git) IsClean() (bool, error) {
	result, err := g.mustRun("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return result.Stdout == "", nil
}

// Status returns the human readable git status output.
func (g *Git) Status() (string, error) {
	result, err := g.mustRun("status")
	return result.Stdout, err
}

// CreateBranch creates a branch at HEAD without switching to it.
func (g *Git) CreateBranch(name string) error {
	_, err := g.mustRun("branch", name)
	return err
}

// Checkout switches to an existing branch.
func (g *Git) Checkout(name string) error {
	_, err := g.mustRun("checkout", name)
	return err
}

// CheckoutNewBranch creates a branch and switches to it.
func (g *Git) CheckoutNewBranch(name string) error {
	_, err := g.mustRun("checkout", "-b", name)
	return err
}

// Merge merges branch into the current branch. A failed merge (usually a
// conflict) is returned as *MergeConflictError; the repository is left in
// the merging state so the conflict can be inspected.
func (g *Git) Merge(branch string) error {
	result, err := g.Run("merge", branch, "-m", "Merge "+branch)
	if err != nil {
		return err
	}
	if !result.Success {
		return &MergeConflictError{Branch: branch, Output: result.Stdout + "\n" + result.Stderr}
	}
	return nil
}

// MergeAbort aborts an in-progress merge. It is best effort: failures are
// logged and otherwise ignored.
func (g *Git) MergeAbort() {
	g.bestEffort("merge", "--abort")
}

// DeleteBranch force-deletes a branch. It is best effort: failures are
// logged and otherwise ignored.
func (g *Git) DeleteBranch(name string) {
	g.bestEffort("branch", "-D", name)
}

func (g *Git) bestEffort(args ...string) {
	logger := logging.GetLogger("git")
	if _, err := g.mustRun(args...); err != nil {
		logger.Debug().Err(err).Strs("args", args).Msg("Ignoring failed git command")
	}
}

// HasConflicts reports whether a merge is in progress.
func (g *Git) HasConflicts() bool {
	_, err := os.Stat(filepath.Join(g.Root, ".git", "MERGE_HEAD"))
	return err == nil
}

// ConflictedFiles lists the paths with unresolved conflicts.
func (g *Git) ConflictedFiles() ([]string, error) {
	result, err := g.mustRun("diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(result.Stdout, "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// Read returns the contents of a file relative to Root.
func (g *Git) Read(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(g.Root, filepath.FromSlash(path)))
	if err != nil {
		code := errors.ErrFileRead
		if stderrors.Is(err, os.ErrNotExist) {
			code = errors.ErrFileNotFound
		}
		return "", errors.Wrapf(err, code, "failed to read %s", path).
			WithDetail("path", path).
			WithDetail("root", g.Root)
	}
	return string(data), nil
}

// Write writes a file relative to Root, creating parent directories.
func (g *Git) Write(path, content string) error {
	full := filepath.Join(g.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent dirs for %s", path).
			WithDetail("path", path)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}
	return nil
}
