package fixture

import (
	"regexp"
	"slices"
	"strings"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

// DefaultRedactMessage replaces redacted lines unless RedactMessage is set.
const DefaultRedactMessage = "[REDACTED]"

// gitHashPlaceholder replaces the commit hash of a diff3 base marker.
const gitHashPlaceholder = "||||||| [hash]"

// diff3 base markers look like "||||||| a0f7d74".
var gitHashPattern = regexp.MustCompile(`\|\|\|\|\|\|\| [0-9a-f]{7,40}`)

// Renderer renders a fixture with filtering, redaction and normalization.
//
// A Renderer is an immutable value: every configuration method returns a
// modified copy, so a base renderer can be shared and specialised.
//
//	out, err := fixture.NewRenderer(f).
//		NormalizeGitHashes().
//		RedactLines(20, 25).
//		Render()
//
// Configuration errors (an invalid pattern, a line number below 1) are
// recorded when the method is called; later methods are no-ops and Render
// returns the error without rendering.
type Renderer struct {
	fixture            Fixture
	normalizeGitHashes bool
	linesToRedact      []int
	redactMessage      string
	patterns           []PathPattern
	alwaysShowFilepath bool
	err                error
}

// NewRenderer creates a renderer for f.
func NewRenderer(f Fixture) Renderer {
	return Renderer{
		fixture:       f,
		redactMessage: DefaultRedactMessage,
	}
}

// NormalizeGitHashes replaces commit hashes in diff3 conflict markers
// ("||||||| a0f7d74" becomes "||||||| [hash]").
func (r Renderer) NormalizeGitHashes() Renderer {
	r.normalizeGitHashes = true
	return r
}

// RedactLines replaces the given 1-indexed lines of the final output with
// the redact message. Line numbers count header lines too.
func (r Renderer) RedactLines(lines ...int) Renderer {
	if r.err != nil {
		return r
	}
	for _, n := range lines {
		if n < 1 {
			r.err = errors.Newf(errors.ErrInvalidInput, "redacted line numbers are 1-indexed, got %d", n).
				WithDetail("line", n)
			return r
		}
	}
	r.linesToRedact = slices.Clone(lines)
	return r
}

// RedactMessage sets the replacement for redacted lines.
func (r Renderer) RedactMessage(message string) Renderer {
	r.redactMessage = message
	return r
}

// AlwaysShowFilepath keeps the "//- /path" header even when a single file
// is rendered.
func (r Renderer) AlwaysShowFilepath() Renderer {
	r.alwaysShowFilepath = true
	return r
}

// Regex filters files with a regular expression matched as a substring of
// the path. Prefix with "!" to exclude matching files instead.
//
// Patterns accumulate: a file must match at least one inclusion pattern (if
// any) and no exclusion pattern.
func (r Renderer) Regex(pattern string) Renderer {
	if r.err != nil {
		return r
	}
	p, err := CompileRegex(pattern)
	if err != nil {
		r.err = err
		return r
	}
	return r.Patterns(p)
}

// Glob filters files with a doublestar glob matched against the whole path.
// Prefix with "!" to exclude matching files instead.
func (r Renderer) Glob(pattern string) Renderer {
	if r.err != nil {
		return r
	}
	p, err := CompileGlob(pattern)
	if err != nil {
		r.err = err
		return r
	}
	return r.Patterns(p)
}

// Patterns appends precompiled path patterns.
func (r Renderer) Patterns(patterns ...PathPattern) Renderer {
	r.patterns = append(slices.Clip(r.patterns), patterns...)
	return r
}

// Err returns the first configuration error, if any.
func (r Renderer) Err() error {
	return r.err
}

// Render renders the fixture.
func (r Renderer) Render() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.render(), nil
}

func (r Renderer) render() string {
	result := r.renderRaw()

	if r.normalizeGitHashes {
		result = gitHashPattern.ReplaceAllLiteralString(result, gitHashPlaceholder)
	}

	if len(r.linesToRedact) > 0 {
		result = r.redact(result)
	}

	return result
}

// renderRaw renders the filtered files without normalization or redaction.
func (r Renderer) renderRaw() string {
	var files []FixtureFile
	for _, f := range r.fixture.Files {
		if matchesPatterns(r.patterns, f.Path) {
			files = append(files, f)
		}
	}

	if len(files) == 1 && !r.alwaysShowFilepath {
		return files[0].Text
	}

	var b strings.Builder
	for _, f := range files {
		b.WriteString(MarkerToken)
		b.WriteString(" ")
		b.WriteString(f.Path)
		b.WriteString("\n")
		b.WriteString(f.Text)
		if !strings.HasSuffix(f.Text, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// redact replaces configured lines. Lines are those of the text; a final
// newline does not start an extra line and is not kept.
func (r Renderer) redact(text string) string {
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		if slices.Contains(r.linesToRedact, i+1) {
			lines[i] = r.redactMessage
		}
	}
	return strings.Join(lines, "\n")
}
