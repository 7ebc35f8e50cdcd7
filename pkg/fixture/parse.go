package fixture

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

// TrimIndent removes common leading indentation from all lines.
//
// A single leading newline is dropped, then the smallest indentation of any
// non-blank line is removed from every line. Lines shorter than that
// indentation (blank lines) only lose their leading spaces.
func TrimIndent(text string) string {
	text = strings.TrimPrefix(text, "\n")

	indent := -1
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, line := range splitInclusive(text) {
		if len(line) <= indent {
			b.WriteString(strings.TrimLeft(line, " "))
		} else {
			b.WriteString(line[indent:])
		}
	}
	return b.String()
}

// Parse parses fixture text, naming a marker-less fixture DefaultPath.
func Parse(text string) (Fixture, error) {
	return ParseWithDefaultPath(text, DefaultPath)
}

// MustParse is like Parse but panics on malformed fixture text. It is meant
// for fixture literals in tests.
func MustParse(text string) Fixture {
	f, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseWithDefaultPath parses fixture text. When no line starts with the
// marker the whole text becomes one file at defaultPath, even if "//-"
// appears inside a line.
func ParseWithDefaultPath(text, defaultPath string) (Fixture, error) {
	text = TrimIndent(text)

	if !hasMarkerLine(text) {
		return Fixture{Files: []FixtureFile{{Path: defaultPath, Text: text}}}, nil
	}

	var (
		files   []FixtureFile
		current *FixtureFile
		content strings.Builder
	)
	flush := func() {
		if current != nil {
			current.Text = content.String()
			files = append(files, *current)
			content.Reset()
		}
	}

	for lineNo, line := range splitInclusive(text) {
		rest, isMarker := strings.CutPrefix(line, MarkerToken)
		if !isMarker {
			if current != nil {
				content.WriteString(line)
			}
			continue
		}

		flush()

		meta := strings.Fields(rest)
		if len(meta) == 0 {
			return Fixture{}, errors.New(errors.ErrFixtureMeta, "fixture meta must have a path").
				WithDetail("line", lineNo+1)
		}
		path := meta[0]
		if !strings.HasPrefix(path, "/") {
			return Fixture{}, errors.Newf(errors.ErrFixturePath, "fixture path must start with `/`: %q", path).
				WithDetail("line", lineNo+1).
				WithDetail("path", path)
		}
		current = &FixtureFile{Path: path}
	}
	flush()

	return Fixture{Files: files}, nil
}

func hasMarkerLine(text string) bool {
	if strings.HasPrefix(text, MarkerToken) {
		return true
	}
	return strings.Contains(text, "\n"+MarkerToken)
}

// MustParseWithDefaultPath is like ParseWithDefaultPath but panics on error.
func MustParseWithDefaultPath(text, defaultPath string) Fixture {
	f, err := ParseWithDefaultPath(text, defaultPath)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseBeforeAfter parses a fixture split in two by a "=>" line, returning
// the fixture before and after the separator. Exactly one separator is
// required.
func ParseBeforeAfter(text string) (Fixture, Fixture, error) {
	text = TrimIndent(text)
	parts := strings.Split(text, "\n"+Separator+"\n")
	if len(parts) != 2 {
		return Fixture{}, Fixture{}, errors.Newf(errors.ErrFixtureSeparator,
			"expected exactly one `%s` separator in before/after fixture, found %d", Separator, len(parts)-1).
			WithDetail("separators", len(parts)-1)
	}

	before, err := Parse(parts[0])
	if err != nil {
		return Fixture{}, Fixture{}, err
	}
	after, err := Parse(parts[1])
	if err != nil {
		return Fixture{}, Fixture{}, err
	}
	return before, after, nil
}

// MustParseBeforeAfter is like ParseBeforeAfter but panics on error.
func MustParseBeforeAfter(text string) (Fixture, Fixture) {
	before, after, err := ParseBeforeAfter(text)
	if err != nil {
		panic(err)
	}
	return before, after
}

// splitInclusive splits text after each newline, keeping the newline. A
// trailing segment without newline is kept; an empty one is not.
func splitInclusive(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
