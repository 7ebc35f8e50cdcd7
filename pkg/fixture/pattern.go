package fixture

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

// PathPattern selects fixture files by path. An exclusion pattern removes
// the files it matches; inclusion patterns keep only what they match.
type PathPattern struct {
	source  string
	kind    string
	exclude bool
	match   func(path string) bool
}

// Match reports whether path matches the pattern, regardless of whether
// the pattern includes or excludes.
func (p PathPattern) Match(path string) bool {
	return p.match != nil && p.match(path)
}

// Exclude reports whether the pattern removes the files it matches.
func (p PathPattern) Exclude() bool {
	return p.exclude
}

// String returns the pattern as written, "!" prefix included.
func (p PathPattern) String() string {
	if p.exclude {
		return "!" + p.source
	}
	return p.source
}

// CompileRegex compiles a regular expression matched as a substring against
// file paths. A leading "!" turns it into an exclusion pattern.
func CompileRegex(pattern string) (PathPattern, error) {
	source, exclude := splitExclude(pattern)
	re, err := regexp.Compile(source)
	if err != nil {
		return PathPattern{}, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid regex pattern %q", pattern).
			WithDetail("pattern", pattern)
	}
	return PathPattern{source: source, kind: "regex", exclude: exclude, match: re.MatchString}, nil
}

// CompileGlob compiles a doublestar glob ("/src/**/*.rs") matched against
// the whole file path. The leading "/" is optional on both sides. A leading
// "!" turns it into an exclusion pattern.
func CompileGlob(pattern string) (PathPattern, error) {
	source, exclude := splitExclude(pattern)
	glob := strings.TrimLeft(source, "/")
	if !doublestar.ValidatePattern(glob) {
		return PathPattern{}, errors.Newf(errors.ErrPatternInvalid, "invalid glob pattern %q", pattern).
			WithDetail("pattern", pattern)
	}
	match := func(path string) bool {
		ok, err := doublestar.Match(glob, strings.TrimLeft(path, "/"))
		return err == nil && ok
	}
	return PathPattern{source: source, kind: "glob", exclude: exclude, match: match}, nil
}

// ParsePattern compiles a pattern written as "glob:<pattern>" or
// "regex:<pattern>"; without a prefix the pattern is a regex. The "!"
// exclusion marker goes after the prefix ("glob:!**/*.lock").
func ParsePattern(pattern string) (PathPattern, error) {
	if rest, ok := strings.CutPrefix(pattern, "glob:"); ok {
		return CompileGlob(rest)
	}
	return CompileRegex(strings.TrimPrefix(pattern, "regex:"))
}

func splitExclude(pattern string) (string, bool) {
	if rest, ok := strings.CutPrefix(pattern, "!"); ok {
		return rest, true
	}
	return pattern, false
}

// matchesPatterns applies the filter rules: with no patterns every path is
// kept; an exclusion match always drops the path; when inclusion patterns
// exist the path must match at least one of them.
func matchesPatterns(patterns []PathPattern, path string) bool {
	if len(patterns) == 0 {
		return true
	}

	hasInclusions := false
	for _, p := range patterns {
		if p.exclude {
			if p.Match(path) {
				return false
			}
			continue
		}
		hasInclusions = true
	}
	if !hasInclusions {
		return true
	}

	for _, p := range patterns {
		if !p.exclude && p.Match(path) {
			return true
		}
	}
	return false
}
