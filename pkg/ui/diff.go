package ui

import (
	"strings"
)

// RenderDiff colours a unified diff line by line. Plain text output gets
// the diff unchanged.
func RenderDiff(diff string, format Format) string {
	if format != FormatTerminal {
		return diff
	}

	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		body, nl := strings.CutSuffix(line, "\n")
		b.WriteString(Styled(diffStyle(body), body, format))
		if nl {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func diffStyle(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return "DiffHeader"
	case strings.HasPrefix(line, "@@"):
		return "DiffHunk"
	case strings.HasPrefix(line, "+"):
		return "DiffAdd"
	case strings.HasPrefix(line, "-"):
		return "DiffRemove"
	default:
		return "Muted"
	}
}
