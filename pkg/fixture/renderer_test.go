package fixture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

func projectFixture() Fixture {
	return MustParse(`
        //- /src/a.rs
        fn a() {}
        //- /src/b.txt
        notes
        //- /tests/c.rs
        fn c() {}
    `)
}

func mustRender(t *testing.T, r Renderer) string {
	t.Helper()
	out, err := r.Render()
	require.NoError(t, err)
	return out
}

func TestRenderDefaults(t *testing.T) {
	t.Run("multi file gets headers", func(t *testing.T) {
		f := Fixture{Files: []FixtureFile{
			{Path: "/a.rs", Text: "a\n"},
			{Path: "/b.rs", Text: "b"},
		}}

		assert.Equal(t, "//- /a.rs\na\n//- /b.rs\nb\n", f.Render())
	})

	t.Run("single file is raw", func(t *testing.T) {
		f := Fixture{Files: []FixtureFile{{Path: "/main.rs", Text: "fn main() {}"}}}

		assert.Equal(t, "fn main() {}", f.Render())
	})

	t.Run("forced header on single file", func(t *testing.T) {
		f := Fixture{Files: []FixtureFile{{Path: "/main.rs", Text: "fn main() {}"}}}

		out := mustRender(t, NewRenderer(f).AlwaysShowFilepath())
		assert.Equal(t, "//- /main.rs\nfn main() {}\n", out)
	})

	t.Run("empty fixture", func(t *testing.T) {
		assert.Equal(t, "", Fixture{}.Render())
	})
}

func TestRenderFiltering(t *testing.T) {
	f := projectFixture()

	tests := []struct {
		name     string
		renderer Renderer
		want     string
	}{
		{
			name:     "regex inclusion",
			renderer: NewRenderer(f).Regex(`\.rs$`),
			want:     "//- /src/a.rs\nfn a() {}\n//- /tests/c.rs\nfn c() {}\n",
		},
		{
			name:     "single survivor renders raw",
			renderer: NewRenderer(f).Regex("tests/"),
			want:     "fn c() {}\n",
		},
		{
			name:     "single survivor with forced header",
			renderer: NewRenderer(f).Regex("tests/").AlwaysShowFilepath(),
			want:     "//- /tests/c.rs\nfn c() {}\n",
		},
		{
			name:     "only exclusions keep the rest",
			renderer: NewRenderer(f).Regex("!^/tests"),
			want:     "//- /src/a.rs\nfn a() {}\n//- /src/b.txt\nnotes\n",
		},
		{
			name:     "exclusion wins over inclusion",
			renderer: NewRenderer(f).Regex("src").Regex(`!a\.rs`),
			want:     "notes\n",
		},
		{
			name:     "inclusions are alternatives",
			renderer: NewRenderer(f).Regex(`a\.rs`).Regex(`c\.rs`),
			want:     "//- /src/a.rs\nfn a() {}\n//- /tests/c.rs\nfn c() {}\n",
		},
		{
			name:     "nothing matches",
			renderer: NewRenderer(f).Regex("nope"),
			want:     "",
		},
		{
			name:     "glob with recursive wildcard",
			renderer: NewRenderer(f).Glob("**/*.rs"),
			want:     "//- /src/a.rs\nfn a() {}\n//- /tests/c.rs\nfn c() {}\n",
		},
		{
			name:     "glob leading slash is optional",
			renderer: NewRenderer(f).Glob("/src/*"),
			want:     "//- /src/a.rs\nfn a() {}\n//- /src/b.txt\nnotes\n",
		},
		{
			name:     "glob matches whole path",
			renderer: NewRenderer(f).Glob("*.rs"),
			want:     "",
		},
		{
			name:     "glob exclusion wins",
			renderer: NewRenderer(f).Glob("src/**").Glob("!**/a.rs"),
			want:     "notes\n",
		},
		{
			name:     "glob and regex combine",
			renderer: NewRenderer(f).Glob("**/*.rs").Regex("!tests"),
			want:     "fn a() {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustRender(t, tt.renderer))
		})
	}
}

func TestRenderInvalidPatterns(t *testing.T) {
	f := projectFixture()

	tests := []struct {
		name     string
		renderer Renderer
	}{
		{name: "regex", renderer: NewRenderer(f).Regex("(")},
		{name: "excluded regex", renderer: NewRenderer(f).Regex("!a[")},
		{name: "glob", renderer: NewRenderer(f).Glob("src/[a-")},
		{name: "error is kept", renderer: NewRenderer(f).Regex("(").Glob("**").Regex("ok")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.renderer.Err())
			assert.True(t, errors.IsErrorCode(tt.renderer.Err(), errors.ErrPatternInvalid))

			out, err := tt.renderer.Render()
			assert.Empty(t, out)
			assert.Equal(t, tt.renderer.Err(), err)
		})
	}
}

func TestRenderGitHashes(t *testing.T) {
	conflict := "<<<<<<< HEAD\nours\n||||||| a0f7d74\nbase\n=======\ntheirs\n>>>>>>> feature\n"
	f := Fixture{Files: []FixtureFile{{Path: "/file.txt", Text: conflict}}}

	t.Run("short hash", func(t *testing.T) {
		out := mustRender(t, NewRenderer(f).NormalizeGitHashes())
		assert.Equal(t, strings.Replace(conflict, "||||||| a0f7d74", "||||||| [hash]", 1), out)
	})

	t.Run("full hash", func(t *testing.T) {
		full := Fixture{Files: []FixtureFile{{
			Path: "/file.txt",
			Text: "||||||| 0123456789abcdef0123456789abcdef01234567\n",
		}}}
		out := mustRender(t, NewRenderer(full).NormalizeGitHashes())
		assert.Equal(t, "||||||| [hash]\n", out)
	})

	t.Run("too short to be a hash", func(t *testing.T) {
		short := Fixture{Files: []FixtureFile{{Path: "/file.txt", Text: "||||||| abc123\n"}}}
		out := mustRender(t, NewRenderer(short).NormalizeGitHashes())
		assert.Equal(t, "||||||| abc123\n", out)
	})

	t.Run("off by default", func(t *testing.T) {
		assert.Equal(t, conflict, f.Render())
	})
}

func TestRenderRedaction(t *testing.T) {
	f := Fixture{Files: []FixtureFile{{
		Path: "/main.rs",
		Text: "line1\nline2\nline3\nline4\nline5\n",
	}}}

	t.Run("forced header block", func(t *testing.T) {
		out := mustRender(t, NewRenderer(f).AlwaysShowFilepath().RedactLines(4))
		assert.Equal(t, "//- /main.rs\nline1\nline2\n[REDACTED]\nline4\nline5", out)
	})

	t.Run("other lines and count are preserved", func(t *testing.T) {
		plain := strings.Split(strings.TrimSuffix(mustRender(t, NewRenderer(f).AlwaysShowFilepath()), "\n"), "\n")
		redacted := strings.Split(mustRender(t, NewRenderer(f).AlwaysShowFilepath().RedactLines(2, 6)), "\n")

		require.Len(t, redacted, len(plain))
		for i := range plain {
			if i+1 == 2 || i+1 == 6 {
				assert.Equal(t, DefaultRedactMessage, redacted[i])
				continue
			}
			assert.Equal(t, plain[i], redacted[i])
		}
	})

	t.Run("custom message", func(t *testing.T) {
		out := mustRender(t, NewRenderer(f).RedactLines(1).RedactMessage("<timestamp>"))
		assert.Equal(t, "<timestamp>\nline2\nline3\nline4\nline5", out)
	})

	t.Run("line past the end is ignored", func(t *testing.T) {
		out := mustRender(t, NewRenderer(f).RedactLines(99))
		assert.Equal(t, "line1\nline2\nline3\nline4\nline5", out)
	})

	t.Run("zero is rejected", func(t *testing.T) {
		r := NewRenderer(f).RedactLines(0)
		assert.True(t, errors.IsErrorCode(r.Err(), errors.ErrInvalidInput))
	})

	t.Run("after hash normalization", func(t *testing.T) {
		conflict := Fixture{Files: []FixtureFile{{Path: "/x", Text: "a\n||||||| a0f7d74\nb\n"}}}
		out := mustRender(t, NewRenderer(conflict).NormalizeGitHashes().RedactLines(3))
		assert.Equal(t, "a\n||||||| [hash]\n[REDACTED]", out)
	})
}

func TestRendererIsImmutable(t *testing.T) {
	f := projectFixture()
	base := NewRenderer(f).Regex("src")

	onlyA := base.Regex(`!b\.txt`)
	onlyB := base.Regex(`!a\.rs`)

	assert.Equal(t, "//- /src/a.rs\nfn a() {}\n//- /src/b.txt\nnotes\n", mustRender(t, base))
	assert.Equal(t, "fn a() {}\n", mustRender(t, onlyA))
	assert.Equal(t, "notes\n", mustRender(t, onlyB))

	_ = base.RedactLines(1)
	assert.Equal(t, "//- /src/a.rs\nfn a() {}\n//- /src/b.txt\nnotes\n", mustRender(t, base))
}

func TestPatterns(t *testing.T) {
	t.Run("parse prefixes", func(t *testing.T) {
		tests := []struct {
			pattern string
			path    string
			match   bool
			exclude bool
		}{
			{pattern: "glob:**/*.rs", path: "/src/a.rs", match: true},
			{pattern: "glob:!**/*.lock", path: "/Cargo.lock", match: true, exclude: true},
			{pattern: "regex:^/src", path: "/src/a.rs", match: true},
			{pattern: "^/src", path: "/tests/a.rs", match: false},
			{pattern: "!lock", path: "/Cargo.lock", match: true, exclude: true},
		}
		for _, tt := range tests {
			p, err := ParsePattern(tt.pattern)
			require.NoError(t, err, tt.pattern)
			assert.Equal(t, tt.match, p.Match(tt.path), tt.pattern)
			assert.Equal(t, tt.exclude, p.Exclude(), tt.pattern)
		}
	})

	t.Run("string keeps exclusion marker", func(t *testing.T) {
		p, err := CompileGlob("!**/*.lock")
		require.NoError(t, err)
		assert.Equal(t, "!**/*.lock", p.String())
	})

	t.Run("precompiled patterns", func(t *testing.T) {
		inc, err := CompileRegex("src")
		require.NoError(t, err)
		exc, err := CompileGlob("!**/b.txt")
		require.NoError(t, err)

		out := mustRender(t, NewRenderer(projectFixture()).Patterns(inc, exc))
		assert.Equal(t, "fn a() {}\n", out)
	})

	t.Run("zero value never matches", func(t *testing.T) {
		assert.False(t, PathPattern{}.Match("/a"))
	})
}
