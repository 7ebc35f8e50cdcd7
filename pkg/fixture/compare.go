package fixture

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

// Compare checks that two fixtures hold the same files with the same text,
// in any order. It returns nil on equality, otherwise an ErrFixtureMismatch
// error naming the first difference; text differences carry a unified diff
// in the "diff" detail. Fixtures with duplicate paths are rejected with
// ErrDuplicatePath since a path-keyed comparison would be ambiguous.
func Compare(expected, actual Fixture) error {
	if dups := expected.DuplicatePaths(); len(dups) > 0 {
		return errors.Newf(errors.ErrDuplicatePath, "expected fixture has duplicate paths: %s", strings.Join(dups, ", ")).
			WithDetail("paths", dups)
	}
	if dups := actual.DuplicatePaths(); len(dups) > 0 {
		return errors.Newf(errors.ErrDuplicatePath, "actual fixture has duplicate paths: %s", strings.Join(dups, ", ")).
			WithDetail("paths", dups)
	}

	if len(expected.Files) != len(actual.Files) {
		return errors.Newf(errors.ErrFixtureMismatch,
			"fixtures have different number of files: expected %d %v, got %d %v",
			len(expected.Files), expected.Paths(), len(actual.Files), actual.Paths()).
			WithDetail("expected_paths", expected.Paths()).
			WithDetail("actual_paths", actual.Paths())
	}

	for _, want := range expected.Files {
		got, ok := actual.File(want.Path)
		if !ok {
			return errors.Newf(errors.ErrFixtureMismatch,
				"file %s not found in actual fixture, available: %v", want.Path, actual.Paths()).
				WithDetail("path", want.Path).
				WithDetail("actual_paths", actual.Paths())
		}
		if got.Text != want.Text {
			return errors.Newf(errors.ErrFixtureMismatch,
				"content mismatch for %s\nexpected:\n%s\nactual:\n%s", want.Path, want.Text, got.Text).
				WithDetail("path", want.Path).
				WithDetail("diff", unifiedDiff(want.Path, want.Text, got.Text))
		}
	}
	return nil
}

// Equal reports whether Compare finds no difference.
func Equal(expected, actual Fixture) bool {
	return Compare(expected, actual) == nil
}

func unifiedDiff(path, expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected" + path,
		ToFile:   "actual" + path,
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("diff unavailable: %v", err)
	}
	return diff
}
