package components

import (
	"strings"

	"github.com/avencia/chatframe/chat"
	"github.com/avencia/chatframe/internal/utils"
	"github.com/avencia/chatframe/ui/styles"
)

// MessageOptions tunes transcript rendering.
type MessageOptions struct {
	// Width is the full terminal width; bubbles wrap inside it.
	Width int
	// Markdown renders assistant content through the markdown formatter.
	Markdown bool
	// Expanded holds the entity IDs whose tool-interaction view the user
	// expanded. Ephemeral UI state, never part of the transcript.
	Expanded map[string]bool
}

// RenderMessages renders the derived view: one bubble per line, user bubbles
// trailing on the right, everything else leading on the left, tool
// interactions collapsed until expanded.
func RenderMessages(lines []chat.Line, opts MessageOptions) string {
	width := opts.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(renderLine(line, width, opts))
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderLine(line chat.Line, width int, opts MessageOptions) string {
	ent := line.Entity

	if line.ToolInteraction {
		return renderToolInteraction(line, width, opts.Expanded[ent.ID])
	}

	content := ent.Content
	var bubble string
	switch ent.Role {
	case chat.User:
		bubble = styles.UserStyle().Render(content)
	case chat.Assistant:
		if opts.Markdown {
			content = utils.RenderMarkdown(content, width-8)
		}
		if !ent.Complete {
			content += " ▌"
		}
		bubble = styles.AssistantStyle().Render(content)
	case chat.System:
		bubble = styles.SystemStyle().Render(content)
	default: // hidden roles that survived the policy
		bubble = styles.HiddenStyle().Render("[" + string(ent.Role.Subtype()) + "] " + content)
	}

	trailing := line.Alignment == chat.AlignTrailing
	return styles.Row(width, trailing).Render(bubble)
}

// renderToolInteraction renders the collapsed/expandable call-and-response
// view. Collapsed content shows a one-line preview plus an expand hint.
func renderToolInteraction(line chat.Line, width int, expanded bool) string {
	ent := line.Entity

	label := "tool call"
	style := styles.ToolCallStyle()
	if ent.Role == chat.ToolResponse {
		label = "tool response"
		style = styles.ToolResponseStyle()
	}

	content := ent.Content
	if !expanded && utils.ShouldCollapse(content) {
		content = utils.CollapsePreview(content) + "  (ctrl+o to expand)"
	}

	bubble := style.Render(label + ": " + content)
	return styles.Row(width, false).Render(bubble)
}
