package components

import (
	"github.com/avencia/chatframe/ui/styles"
)

// RenderStatus renders the status bar.
func RenderStatus(status string, muted bool, width int) string {
	if muted {
		status += "  [muted]"
	}
	return styles.StatusStyle(width).Render(status)
}

// RenderIndicator renders the typing/pending indicator row, or an empty
// string when the indicator is hidden. spinnerView is the current frame of
// the host's spinner.
func RenderIndicator(visible bool, spinnerView string, width int) string {
	if !visible {
		return ""
	}
	return styles.Row(width, false).Render(styles.IndicatorStyle().Render(spinnerView + " assistant is typing"))
}
