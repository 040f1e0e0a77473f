package output

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for the terminal with glamour.
// Plain ("notty") styling is used when color is off; on renderer failure the
// source is returned unchanged.
func RenderMarkdown(content string, color bool, width int) string {
	var options []glamour.TermRendererOption
	if color {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStylePath("notty"))
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
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
