// Package errors defines the structured error type returned across
// fixtree. Every failure carries a stable ErrorCode that tests and callers
// match on instead of message text, plus free-form details such as the
// offending path or line.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Fixture text errors
	ErrFixtureMeta      ErrorCode = "FIXTURE_META"
	ErrFixturePath      ErrorCode = "FIXTURE_PATH"
	ErrFixtureSeparator ErrorCode = "FIXTURE_SEPARATOR"
	ErrNotSingleFile    ErrorCode = "NOT_SINGLE_FILE"

	// Renderer errors
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Comparison errors
	ErrFixtureMismatch ErrorCode = "FIXTURE_MISMATCH"
	ErrDuplicatePath   ErrorCode = "DUPLICATE_PATH"

	// FileSystem errors
	ErrTempDir      ErrorCode = "TEMP_DIR"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileRead     ErrorCode = "FILE_READ"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrPipeCreate   ErrorCode = "PIPE_CREATE"

	// External collaborators
	ErrGitCommand ErrorCode = "GIT_COMMAND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// FixtureError is an error with a code, a message, optional details and an
// optional cause.
type FixtureError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Wrapped error
}

func (e *FixtureError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
}

func (e *FixtureError) Unwrap() error {
	return e.Wrapped
}

// Is matches any *FixtureError with the same code, so
// errors.Is(err, errors.New(ErrFileNotFound, "")) works.
func (e *FixtureError) Is(target error) bool {
	var other *FixtureError
	return errors.As(target, &other) && other.Code == e.Code
}

// New returns an error with code and message.
func New(code ErrorCode, message string) *FixtureError {
	return &FixtureError{Code: code, Message: message, Details: map[string]any{}}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *FixtureError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap returns an error with code and message caused by err, or nil when
// err is nil. Check err first rather than returning a nil *FixtureError as
// an error.
func Wrap(err error, code ErrorCode, message string) *FixtureError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *FixtureError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail sets a detail and returns e for chaining.
func (e *FixtureError) WithDetail(key string, value any) *FixtureError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// IsErrorCode reports whether the outermost FixtureError in err's chain has
// code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *FixtureError
	return errors.As(err, &e) && e.Code == code
}

// GetErrorCode returns the code of the outermost FixtureError in err's
// chain, or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	var e *FixtureError
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of the outermost FixtureError in
// err's chain, or nil.
func GetErrorDetails(err error) map[string]any {
	var e *FixtureError
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// Detail returns one detail of err as a T.
func Detail[T any](err error, key string) (T, bool) {
	v, ok := GetErrorDetails(err)[key].(T)
	return v, ok
}
