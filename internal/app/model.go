package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avencia/chatframe/internal/update"
	"github.com/avencia/chatframe/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.appModel.Spinner.Tick,
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Core events refresh the transcript and re-arm the listener.
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		m.refreshViewport()
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	eventBus := m.dispatcher.GetEventBus()
	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, eventBus)

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+o" {
			m.refreshViewport()
		}
		if update.ConsumesInput(keyMsg) {
			var inputCmd tea.Cmd
			m.appModel.Input, inputCmd = m.appModel.Input.Update(msg)
			cmd = tea.Batch(cmd, inputCmd)
		}
	}
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		m.refreshViewport()
	}

	return m, cmd
}

func (m *AppModel) View() string {
	if !m.appModel.Ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.appModel.Viewport.View())
	b.WriteString("\n")
	b.WriteString(components.RenderIndicator(m.appModel.IndicatorVisible, m.appModel.Spinner.View(), m.appModel.Width))
	b.WriteString("\n")
	b.WriteString(components.RenderInput(m.appModel.Input.View(), m.appModel.Coordinator.IsRecording(), m.appModel.Width))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.Muted, m.appModel.Width))

	return b.String()
}

func (m *AppModel) refreshViewport() {
	wasAtBottom := m.appModel.Viewport.AtBottom()
	m.appModel.Viewport.SetContent(components.RenderMessages(m.appModel.Lines, components.MessageOptions{
		Width:    m.appModel.Width,
		Markdown: m.markdown,
		Expanded: m.appModel.Expanded,
	}))
	if wasAtBottom {
		m.appModel.Viewport.GotoBottom()
	}
}
