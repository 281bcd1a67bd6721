package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md for the terminal, wrapped at width. It falls back
// to the raw markdown if glamour fails.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
