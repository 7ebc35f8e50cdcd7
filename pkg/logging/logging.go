// Package logging configures the global zerolog logger shared by the CLI
// and the library packages.
//
// Library code never configures logging; it asks GetLogger for a
// component logger and logs at Debug. Until the CLI calls SetupLogger with
// the -v count, library loggers discard everything.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	appDirName  = "fixtree"
	logFileName = "fixtree.log"
)

// base is the parent of every component logger.
var base = zerolog.Nop()

// LevelForVerbosity maps a -v count to a level: none is Warn, then Info,
// Debug and Trace.
func LevelForVerbosity(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger sets the global level from verbosity and sends log lines to
// stderr and to the append-only log file under the XDG state home. When the
// file cannot be opened only stderr is used.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(LevelForVerbosity(verbosity))

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}

	logPath := getLogFilePath()
	file, fileErr := openLogFile(logPath)

	var out io.Writer = console
	if fileErr == nil {
		out = zerolog.MultiLevelWriter(console, file)
	}

	ctx := zerolog.New(out).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	base = ctx.Logger()
	log.Logger = base

	if fileErr != nil {
		base.Warn().Err(fileErr).Str("path", logPath).Msg("Logging to stderr only")
	}
	base.Debug().Int("verbosity", verbosity).Str("log_file", logPath).Msg("Logger initialized")
}

// GetLogger returns the configured logger tagged with a component name
// such as "fixture" or "git". Before SetupLogger it is a no-op logger.
func GetLogger(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// getLogFilePath resolves $XDG_STATE_HOME/fixtree/fixtree.log. The
// environment is re-read since tests and wrappers change it after init.
func getLogFilePath() string {
	xdg.Reload()
	if xdg.StateHome == "" {
		return logFileName
	}
	return filepath.Join(xdg.StateHome, appDirName, logFileName)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// LogCommand records an external command before it runs.
func LogCommand(name string, args []string) {
	base.Debug().Str("command", name).Strs("args", args).Msg("Running command")
}

// LogOperationStart logs that operation began on logger and returns the
// function that logs its completion with the elapsed time:
//
//	defer logging.LogOperationStart(logger, "materialize")()
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
