package errors_test

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

func TestErrorString(t *testing.T) {
	err := errors.New(errors.ErrFixturePath, "fixture path must start with `/`")
	assert.Equal(t, "[FIXTURE_PATH] fixture path must start with `/`", err.Error())
	assert.NotNil(t, err.Details)

	err = errors.Newf(errors.ErrFixtureSeparator, "expected one separator, found %d", 2)
	assert.Equal(t, "[FIXTURE_SEPARATOR] expected one separator, found 2", err.Error())

	wrapped := errors.Wrapf(fs.ErrNotExist, errors.ErrFileNotFound, "failed to read %s", "a.rs")
	assert.Equal(t, "[FILE_NOT_FOUND] failed to read a.rs: file does not exist", wrapped.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "unused"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "unused %d", 1))
}

func TestUnwrapChain(t *testing.T) {
	err := errors.Wrap(fs.ErrPermission, errors.ErrFileRead, "failed to read")

	assert.True(t, stderrors.Is(err, fs.ErrPermission))
	assert.Equal(t, fs.ErrPermission, stderrors.Unwrap(err))

	// A plain wrapper around a FixtureError keeps its code reachable.
	outer := fmt.Errorf("loading: %w", err)
	assert.True(t, errors.IsErrorCode(outer, errors.ErrFileRead))
	assert.Equal(t, errors.ErrFileRead, errors.GetErrorCode(outer))
}

func TestIsMatchesByCode(t *testing.T) {
	err := errors.Newf(errors.ErrFileNotFound, "missing %s", "a.rs")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrFileNotFound, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrFileRead, "")))
	assert.False(t, stderrors.Is(err, fs.ErrNotExist))
}

func TestCodesOfForeignErrors(t *testing.T) {
	plain := stderrors.New("plain")

	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(plain))
	assert.False(t, errors.IsErrorCode(plain, errors.ErrUnknown))
	assert.False(t, errors.IsErrorCode(nil, errors.ErrUnknown))
	assert.Nil(t, errors.GetErrorDetails(plain))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrFixtureMismatch, "content mismatch").
		WithDetail("path", "/a.rs").
		WithDetail("line", 3)

	assert.Equal(t, map[string]any{"path": "/a.rs", "line": 3}, errors.GetErrorDetails(err))

	path, ok := errors.Detail[string](err, "path")
	require.True(t, ok)
	assert.Equal(t, "/a.rs", path)

	line, ok := errors.Detail[int](err, "line")
	require.True(t, ok)
	assert.Equal(t, 3, line)

	_, ok = errors.Detail[string](err, "line")
	assert.False(t, ok, "wrong type")
	_, ok = errors.Detail[string](err, "diff")
	assert.False(t, ok, "absent key")
	_, ok = errors.Detail[string](stderrors.New("plain"), "path")
	assert.False(t, ok, "foreign error")
}

func TestWithDetailOnZeroValue(t *testing.T) {
	err := (&errors.FixtureError{Code: errors.ErrInternal}).WithDetail("k", "v")
	assert.Equal(t, "v", err.Details["k"])
}
