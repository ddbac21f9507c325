package components

import (
	"github.com/avencia/chatframe/ui/styles"
)

// RenderInput wraps the host's input field view in the input border. The
// caller passes whatever its text field renders (a bubbles textinput view or
// a plain string); recording flags the active voice session.
func RenderInput(fieldView string, recording bool, width int) string {
	if recording {
		fieldView = "● " + fieldView
	}
	return styles.InputStyle(width).Render(fieldView)
}
