// Package xdg lays out a materialized fixture as XDG base directories for
// one application.
//
// Fixture files are written by category and moved under the application
// name, so "/data/notes.md" ends up at {root}/data/{app}/notes.md:
//
//	tmp, _ := fixture.MustParse(`
//	    //- /data/notes.md
//	    # Notes
//	    //- /cache/temp.txt
//	    cached
//	`).WriteToTempDir()
//	x, err := xdg.New(tmp, "myapp")
//	notes, err := x.ReadData("notes.md")
//
// EnvVars points XDG_DATA_HOME and friends at the category directories, so a
// program resolving $XDG_DATA_HOME/myapp finds the fixture files.
package xdg

import (
	"path"
	"path/filepath"
	"strings"
	"testing"

	adrgxdg "github.com/adrg/xdg"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/fixture"
	"github.com/arthur-debert/fixtree/pkg/logging"
)

// Category is one of the XDG base directories.
type Category string

const (
	Data    Category = "data"
	State   Category = "state"
	Cache   Category = "cache"
	Config  Category = "config"
	Runtime Category = "runtime"
)

// Categories lists every category in EnvVars order.
var Categories = []Category{Data, State, Cache, Config, Runtime}

var envNames = map[Category]string{
	Data:    "XDG_DATA_HOME",
	State:   "XDG_STATE_HOME",
	Cache:   "XDG_CACHE_HOME",
	Config:  "XDG_CONFIG_HOME",
	Runtime: "XDG_RUNTIME_DIR",
}

// EnvVar is an environment variable assignment.
type EnvVar struct {
	Key   string
	Value string
}

// String formats the variable as KEY=VALUE.
func (e EnvVar) String() string {
	return e.Key + "=" + e.Value
}

// Xdg wraps a TempFixture whose top-level directories are XDG categories.
type Xdg struct {
	Inner   *fixture.TempFixture
	AppName string
}

// New moves {root}/{category}/* to {root}/{category}/{app}/* for every
// category and creates the app directory of categories the fixture left
// out. Files outside the category directories are untouched.
func New(inner *fixture.TempFixture, appName string) (*Xdg, error) {
	if appName == "" || strings.ContainsAny(appName, `/\`) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid app name %q", appName).
			WithDetail("app", appName)
	}

	x := &Xdg{Inner: inner, AppName: appName}
	for _, c := range Categories {
		if err := x.relocate(c); err != nil {
			return nil, err
		}
	}

	logger := logging.GetLogger("xdg")
	logger.Debug().
		Str("root", inner.Root).
		Str("app", appName).
		Msg("Applied XDG layout")
	return x, nil
}

// relocate rewrites the category's files one level deeper, under the app
// directory.
func (x *Xdg) relocate(c Category) error {
	fsys := x.Inner.FS()
	categoryDir := x.Inner.Path(string(c))

	files, err := x.Inner.Cwd(string(c)).ReadAllFromDisk()
	if err != nil {
		return err
	}

	entries, err := fsys.ReadDir(categoryDir)
	if err == nil {
		for _, entry := range entries {
			if err := fsys.RemoveAll(filepath.Join(categoryDir, entry.Name())); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to move %s/%s", c, entry.Name()).
					WithDetail("category", string(c))
			}
		}
	}

	appDir := x.Dir(c)
	if err := fsys.MkdirAll(appDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create XDG app directory %s", appDir).
			WithDetail("category", string(c))
	}
	return files.WriteTo(fsys, appDir)
}

// Home returns the category directory ({root}/{category}), the value of its
// environment variable.
func (x *Xdg) Home(c Category) string {
	return x.Inner.Path(string(c))
}

// Dir returns the app directory of a category ({root}/{category}/{app}).
func (x *Xdg) Dir(c Category) string {
	return filepath.Join(x.Home(c), x.AppName)
}

// Per-category shortcuts for Dir.
func (x *Xdg) DataDir() string { return x.Dir(Data) }
func (x *Xdg) StateDir() string { return x.Dir(State) }
func (x *Xdg) CacheDir() string { return x.Dir(Cache) }
func (x *Xdg) ConfigDir() string { return x.Dir(Config) }
func (x *Xdg) RuntimeDir() string { return x.Dir(Runtime) }

// rel maps a path inside the app directory of c to a fixture path.
func (x *Xdg) rel(c Category, relative string) string {
	return path.Join("/", string(c), x.AppName, filepath.ToSlash(relative))
}

// Read reads a file relative to the app directory of c.
func (x *Xdg) Read(c Category, relative string) (string, error) {
	return x.Inner.Read(x.rel(c, relative))
}

// Write writes a file relative to the app directory of c, creating parents.
func (x *Xdg) Write(c Category, relative, content string) error {
	return x.Inner.Write(x.rel(c, relative), content)
}

// Exists reports whether a path exists relative to the app directory of c.
func (x *Xdg) Exists(c Category, relative string) bool {
	return x.Inner.Exists(x.rel(c, relative))
}

// Per-category shortcuts for Read, Write and Exists.
func (x *Xdg) ReadData(relative string) (string, error) { return x.Read(Data, relative) }
func (x *Xdg) ReadState(relative string) (string, error) { return x.Read(State, relative) }
func (x *Xdg) ReadCache(relative string) (string, error) { return x.Read(Cache, relative) }
func (x *Xdg) ReadConfig(relative string) (string, error) { return x.Read(Config, relative) }

func (x *Xdg) WriteData(relative, content string) error { return x.Write(Data, relative, content) }
func (x *Xdg) WriteState(relative, content string) error { return x.Write(State, relative, content) }
func (x *Xdg) WriteCache(relative, content string) error { return x.Write(Cache, relative, content) }
func (x *Xdg) WriteConfig(relative, content string) error { return x.Write(Config, relative, content) }

func (x *Xdg) DataExists(relative string) bool { return x.Exists(Data, relative) }
func (x *Xdg) StateExists(relative string) bool { return x.Exists(State, relative) }
func (x *Xdg) CacheExists(relative string) bool { return x.Exists(Cache, relative) }
func (x *Xdg) ConfigExists(relative string) bool { return x.Exists(Config, relative) }

// ReadAllFromDisk reads back the app directory of c with paths relative to
// it.
func (x *Xdg) ReadAllFromDisk(c Category) (fixture.Fixture, error) {
	return x.Inner.Cwd(path.Join(string(c), x.AppName)).ReadAllFromDisk()
}

// EnvVars returns the XDG variables pointing at the category directories.
func (x *Xdg) EnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(Categories))
	for _, c := range Categories {
		vars = append(vars, EnvVar{Key: envNames[c], Value: x.Home(c)})
	}
	return vars
}

// Environ returns EnvVars as KEY=VALUE strings, ready to append to
// exec.Cmd.Env.
func (x *Xdg) Environ() []string {
	vars := x.EnvVars()
	env := make([]string, len(vars))
	for i, v := range vars {
		env[i] = v.String()
	}
	return env
}

// Apply sets the XDG variables for the duration of the test and reloads
// github.com/adrg/xdg, so in-process code resolving XDG paths sees the
// fixture. The previous values are restored when the test ends.
func (x *Xdg) Apply(t testing.TB) {
	t.Helper()

	// Registered first so it runs after the environment is restored.
	t.Cleanup(adrgxdg.Reload)

	for _, v := range x.EnvVars() {
		t.Setenv(v.Key, v.Value)
	}
	adrgxdg.Reload()
}
