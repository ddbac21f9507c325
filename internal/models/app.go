package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/avencia/chatframe/chat"
	"github.com/avencia/chatframe/input"
)

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Lines            []chat.Line     // Derived render list from core
	IndicatorVisible bool            // Typing indicator state from core
	Muted            bool            // Speech output muted flag from core
	Status           string          // Status bar text
	Loading          bool            // Loading state from core
	Width            int             // Terminal width
	Height           int             // Terminal height
	Expanded         map[string]bool // Expanded tool interactions, keyed by entity ID
	LastToolID       string          // Most recent tool-interaction entity, ctrl+o target

	Coordinator *input.Coordinator // Input buffer + voice session owner
	Input       textinput.Model    // Text field
	Viewport    viewport.Model     // Scrolling transcript
	Spinner     spinner.Model      // Typing indicator animation
	Ready       bool               // Viewport sized after first WindowSizeMsg

	// BottomPadding is the height consumed below the transcript (indicator,
	// input field, status bar). Constant while the input stays single-line.
	BottomPadding int
}
