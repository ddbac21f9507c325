package update

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avencia/chatframe/chat"
	"github.com/avencia/chatframe/internal/eventbus"
	"github.com/avencia/chatframe/internal/models"
)

// HandleKeyMsgWithEventBus handles the chrome keys. Plain typing falls
// through to the textinput component in the app model.
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "enter":
		// The coordinator owns submission: it trims, rejects empties, and
		// hands the composed entity to the sink wired at startup.
		appModel.Coordinator.SetText(appModel.Input.Value())
		appModel.Coordinator.Submit()
		appModel.Input.Reset()
		return nil
	case "ctrl+s":
		if err := eb.SendToCore(eventbus.ToggleMuteEvent{}); err != nil {
			appModel.Status = "Error toggling mute: " + err.Error()
		}
		return nil
	case "ctrl+o":
		if appModel.LastToolID != "" {
			appModel.Expanded[appModel.LastToolID] = !appModel.Expanded[appModel.LastToolID]
		}
		return nil
	case "ctrl+e":
		if err := eb.SendToCore(eventbus.ExportRequestEvent{Format: "json"}); err != nil {
			appModel.Status = "Error requesting export: " + err.Error()
		} else {
			appModel.Status = "Exporting transcript"
		}
		return nil
	case "ctrl+r":
		toggleVoice(appModel)
		return nil
	}
	return nil
}

func toggleVoice(appModel *models.AppModel) {
	if appModel.Coordinator.IsRecording() {
		appModel.Coordinator.StopVoice()
		appModel.Status = "Voice input stopped"
		return
	}
	if err := appModel.Coordinator.StartVoice(context.Background()); err != nil {
		appModel.Status = "Voice input unavailable: " + err.Error()
		return
	}
	appModel.Status = "Listening"
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		// Restart the spinner tick chain when the indicator turns on; the
		// chain stops itself while the indicator is hidden.
		var cmd tea.Cmd
		if event.IndicatorVisible && !appModel.IndicatorVisible {
			cmd = appModel.Spinner.Tick
		}
		appModel.Lines = event.Lines
		appModel.IndicatorVisible = event.IndicatorVisible
		appModel.Muted = event.Muted
		appModel.Loading = event.IsProcessing
		appModel.LastToolID = lastToolID(event.Lines)

		if event.Error != nil {
			appModel.Status = "Error: " + event.Error.Error()
		} else if event.IsProcessing {
			appModel.Status = "Processing"
		} else {
			appModel.Status = "Ready"
		}
		return cmd
	case eventbus.ExportResultEvent:
		if event.Error != nil {
			appModel.Status = "Export failed: " + event.Error.Error()
		} else {
			appModel.Status = "Exported to " + event.Path
		}
	}

	return nil
}

func lastToolID(lines []chat.Line) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].ToolInteraction {
			return lines[i].Entity.ID
		}
	}
	return ""
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
	appModel.Input.Width = max(sizeMsg.Width-6, 10)

	viewportHeight := max(sizeMsg.Height-appModel.BottomPadding, 3)
	if !appModel.Ready {
		appModel.Viewport.Width = sizeMsg.Width
		appModel.Viewport.Height = viewportHeight
		appModel.Ready = true
	} else {
		appModel.Viewport.Width = sizeMsg.Width
		appModel.Viewport.Height = viewportHeight
	}
}

// HandleSpinnerTick keeps the indicator animation running only while the
// indicator is visible.
func HandleSpinnerTick(appModel *models.AppModel, msg spinner.TickMsg) tea.Cmd {
	if !appModel.IndicatorVisible {
		return nil
	}
	var cmd tea.Cmd
	appModel.Spinner, cmd = appModel.Spinner.Update(msg)
	return cmd
}

// ConsumesInput reports whether a key should reach the textinput component.
func ConsumesInput(keyMsg tea.KeyMsg) bool {
	key := keyMsg.String()
	if key == "enter" || key == "ctrl+c" {
		return false
	}
	return !strings.HasPrefix(key, "ctrl+")
}
