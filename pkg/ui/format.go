package ui

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/fixtree/pkg/errors"
)

// Format selects between styled and plain output.
type Format int

const (
	// FormatAuto styles output only when it goes to a colour terminal.
	FormatAuto Format = iota
	// FormatTerminal always styles.
	FormatTerminal
	// FormatText never styles.
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "always"
	case FormatText:
		return "never"
	default:
		return "unknown"
	}
}

// ParseFormat parses a --color value: auto, always (term) or never (text).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "always", "term", "terminal":
		return FormatTerminal, nil
	case "never", "text", "plain":
		return FormatText, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode %q (want auto, always or never)", s).
		WithDetail("value", s)
}

// DetectFormat reports whether output can take styling. NO_COLOR, a pipe
// or redirect, and a terminal without colour support all give FormatText.
func DetectFormat(output *os.File) Format {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(output).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Resolve turns FormatAuto into a concrete format for w. Writers that are
// not files get plain text.
func Resolve(format Format, w io.Writer) Format {
	if format != FormatAuto {
		return format
	}
	if file, ok := w.(*os.File); ok {
		return DetectFormat(file)
	}
	return FormatText
}
