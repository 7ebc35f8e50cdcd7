package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for the terminal. format is the topic
// file extension (".md", ".txt").
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics unchanged.
type PlainRenderer struct{}

// Render returns the content unchanged
func (PlainRenderer) Render(content string, format string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour.
type GlamourRenderer struct {
	Style string // "dark", "light", "notty", "auto", or path to a custom style
	Width int    // word wrap width, 0 for glamour's default
}

// NewGlamourRenderer creates a markdown renderer using glamour with auto-detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts markdown to terminal output. Other formats, and markdown
// glamour fails on, are returned unchanged.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
