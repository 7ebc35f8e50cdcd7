package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/fixture"
	"github.com/arthur-debert/fixtree/pkg/logging"
)

const (
	// AppName names the XDG config directory.
	AppName = "fixtree"
	// FileName is the user config file inside the XDG config directory.
	FileName = "config.toml"
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "FIXTREE_"
)

// Config holds the effective settings.
type Config struct {
	Fixture  FixtureConfig  `koanf:"fixture" toml:"fixture"`
	Render   RenderConfig   `koanf:"render" toml:"render"`
	Read     ReadConfig     `koanf:"read" toml:"read"`
	Greeting GreetingConfig `koanf:"greeting" toml:"greeting"`
}

// FixtureConfig controls parsing and materialization.
type FixtureConfig struct {
	DefaultPath string `koanf:"default_path" toml:"default_path"`
	TempPrefix  string `koanf:"temp_prefix" toml:"temp_prefix"`
}

// RenderConfig holds renderer defaults.
type RenderConfig struct {
	RedactMessage      string `koanf:"redact_message" toml:"redact_message"`
	NormalizeGitHashes bool   `koanf:"normalize_git_hashes" toml:"normalize_git_hashes"`
	AlwaysShowFilepath bool   `koanf:"always_show_filepath" toml:"always_show_filepath"`
}

// ReadConfig controls reading directories into fixtures.
type ReadConfig struct {
	SkipGlobs []string `koanf:"skip_globs" toml:"skip_globs"`
}

// GreetingConfig configures the greet command.
type GreetingConfig struct {
	Name string `koanf:"name" toml:"name"`
}

// Options selects where Load looks.
type Options struct {
	// Path is an explicit config file. It must exist. When empty the XDG
	// user file is used if present.
	Path string
}

// UserConfigPath returns $XDG_CONFIG_HOME/fixtree/config.toml.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, FileName)
}

// Load merges defaults, the config file and the environment.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	path := opts.Path
	if path == "" {
		path = UserConfigPath()
		if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path).
				WithDetail("path", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Env vars: the first underscore separates section and key
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults alone.
func Default() *Config {
	k := koanf.New(".")
	var cfg Config
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		panic(err)
	}
	return &cfg
}

// Validate checks values a fixture operation would reject later.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Fixture.DefaultPath, "/") {
		return errors.Newf(errors.ErrConfigParse, "fixture.default_path must start with `/`: %q", c.Fixture.DefaultPath).
			WithDetail("key", "fixture.default_path")
	}
	if strings.ContainsAny(c.Fixture.TempPrefix, `/\`) {
		return errors.Newf(errors.ErrConfigParse, "fixture.temp_prefix must not contain a path separator: %q", c.Fixture.TempPrefix).
			WithDetail("key", "fixture.temp_prefix")
	}
	for _, g := range c.Read.SkipGlobs {
		if !doublestar.ValidatePattern(g) {
			return errors.Newf(errors.ErrConfigParse, "invalid glob in read.skip_globs: %q", g).
				WithDetail("key", "read.skip_globs")
		}
	}
	return nil
}

// Parse parses fixture text, naming a marker-less fixture
// fixture.default_path.
func (c *Config) Parse(text string) (fixture.Fixture, error) {
	return fixture.ParseWithDefaultPath(text, c.Fixture.DefaultPath)
}

// NewRenderer returns a renderer preset with the render section.
func (c *Config) NewRenderer(f fixture.Fixture) fixture.Renderer {
	r := fixture.NewRenderer(f).RedactMessage(c.Render.RedactMessage)
	if c.Render.NormalizeGitHashes {
		r = r.NormalizeGitHashes()
	}
	if c.Render.AlwaysShowFilepath {
		r = r.AlwaysShowFilepath()
	}
	return r
}

// ReadOptions returns the options ReadFromDirectory should use.
func (c *Config) ReadOptions() []fixture.ReadOption {
	return []fixture.ReadOption{fixture.WithSkipGlobs(c.Read.SkipGlobs...)}
}

// TempOptions returns the options WriteToTempDir should use.
func (c *Config) TempOptions() []fixture.TempOption {
	return []fixture.TempOption{fixture.WithPrefix(c.Fixture.TempPrefix)}
}
