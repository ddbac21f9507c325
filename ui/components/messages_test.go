package components

import (
	"strings"
	"testing"

	"github.com/avencia/chatframe/chat"
)

func deriveLine(e chat.Entity) chat.Line {
	return chat.Line{
		Entity:          e,
		Alignment:       e.Role.Alignment(),
		ToolInteraction: chat.IsToolInteraction(e.Role),
	}
}

func TestRenderMessages_ContainsVisibleContent(t *testing.T) {
	lines := []chat.Line{
		deriveLine(chat.NewUserEntity("hello")),
		deriveLine(chat.NewAssistantEntity("hi there")),
	}
	out := RenderMessages(lines, MessageOptions{Width: 60})

	if !strings.Contains(out, "hello") || !strings.Contains(out, "hi there") {
		t.Errorf("rendered output missing message content:\n%s", out)
	}
}

func TestRenderMessages_ToolCollapseAndExpand(t *testing.T) {
	ent := chat.NewEntity(chat.ToolResponse, "first line\nsecond line\nthird line")
	line := deriveLine(ent)

	collapsed := RenderMessages([]chat.Line{line}, MessageOptions{Width: 100})
	if strings.Contains(collapsed, "second line") {
		t.Error("collapsed tool response should hide continuation lines")
	}
	if !strings.Contains(collapsed, "first line") {
		t.Error("collapsed tool response should show the first line preview")
	}

	expanded := RenderMessages([]chat.Line{line}, MessageOptions{
		Width:    100,
		Expanded: map[string]bool{ent.ID: true},
	})
	if !strings.Contains(expanded, "second line") || !strings.Contains(expanded, "third line") {
		t.Error("expanded tool response should show full content")
	}
}

func TestRenderMessages_ShortToolContentNotCollapsed(t *testing.T) {
	line := deriveLine(chat.NewEntity(chat.ToolCall, "ok"))
	out := RenderMessages([]chat.Line{line}, MessageOptions{Width: 80})
	if strings.Contains(out, "ctrl+o") {
		t.Error("short single-line tool content needs no expand hint")
	}
}

func TestRenderIndicator(t *testing.T) {
	if RenderIndicator(false, "|", 40) != "" {
		t.Error("hidden indicator should render nothing")
	}
	out := RenderIndicator(true, "|", 40)
	if !strings.Contains(out, "typing") {
		t.Errorf("visible indicator missing label: %q", out)
	}
}
