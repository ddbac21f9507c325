package utils

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders lightweight markup to styled terminal text. Any
// renderer or parse failure falls back to the raw text — formatting is a
// nicety, never a user-visible error.
func RenderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
