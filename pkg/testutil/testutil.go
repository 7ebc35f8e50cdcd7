package testutil

import (
	"strings"
	"testing"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/filesystem"
	"github.com/arthur-debert/fixtree/pkg/fixture"
)

// Parse parses fixture text, failing the test on malformed input.
func Parse(t testing.TB, text string) fixture.Fixture {
	t.Helper()

	f, err := fixture.Parse(text)
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return f
}

// TempFixture parses text and materializes it in a fresh temp directory
// that is removed when the test completes.
func TempFixture(t testing.TB, text string, opts ...fixture.TempOption) *fixture.TempFixture {
	t.Helper()
	return Materialize(t, Parse(t, text), opts...)
}

// Materialize writes f to a fresh temp directory that is removed when the
// test completes.
func Materialize(t testing.TB, f fixture.Fixture, opts ...fixture.TempOption) *fixture.TempFixture {
	t.Helper()

	tmp, err := f.WriteToTempDir(opts...)
	if err != nil {
		t.Fatalf("Failed to materialize fixture: %v", err)
	}
	t.Cleanup(func() {
		if err := tmp.Close(); err != nil {
			t.Errorf("Failed to remove fixture %s: %v", tmp.Root, err)
		}
	})
	return tmp
}

// MemoryFixture materializes text on an in-memory filesystem.
func MemoryFixture(t testing.TB, text string) *fixture.TempFixture {
	t.Helper()
	return TempFixture(t, text, fixture.WithFS(filesystem.NewMemory()))
}

// AssertFixtureEqual compares the expected fixture text with everything
// currently under the temp fixture's working directory. On mismatch the
// test fails with the comparison report and, when available, a unified diff.
func AssertFixtureEqual(t testing.TB, expected string, actual *fixture.TempFixture) {
	t.Helper()

	got, err := actual.ReadAllFromDisk()
	if err != nil {
		t.Fatalf("Failed to read fixture back from %s: %v", actual.EffectiveCwd(), err)
	}
	AssertEqual(t, Parse(t, expected), got)
}

// AssertEqual compares two fixtures, failing the test on mismatch.
func AssertEqual(t testing.TB, expected, actual fixture.Fixture) {
	t.Helper()

	if msg := Mismatch(expected, actual); msg != "" {
		t.Fatal(msg)
	}
}

// Mismatch returns the failure report for two fixtures, or "" when they are
// equal.
func Mismatch(expected, actual fixture.Fixture) string {
	err := fixture.Compare(expected, actual)
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(err.Error())
	if diff, ok := errors.Detail[string](err, "diff"); ok && diff != "" {
		b.WriteString("\n\n")
		b.WriteString(diff)
	}
	return b.String()
}

// RequireRender runs r, failing the test if the renderer holds an error.
func RequireRender(t testing.TB, r fixture.Renderer) string {
	t.Helper()

	out, err := r.Render()
	if err != nil {
		t.Fatalf("Failed to render fixture: %v", err)
	}
	return out
}
