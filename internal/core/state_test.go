package core

import (
	"errors"
	"testing"

	"github.com/avencia/chatframe/chat"
)

func automaticState() *TranscriptState {
	return NewTranscriptState(chat.HideAllHidden(), chat.Indicator{Mode: chat.IndicatorAutomatic})
}

func TestStreamingTurnLifecycle(t *testing.T) {
	state := automaticState()

	state.StartProcessingWithUser(chat.NewUserEntity("hello"))
	if !state.IsProcessing() {
		t.Fatal("expected processing after user turn")
	}
	if !state.IndicatorVisible() {
		t.Fatal("expected indicator while waiting on a user turn")
	}

	streaming := state.BeginAssistantStream()
	streaming = state.UpdateStream(streaming, "par")
	final := state.FinishWithAssistant(streaming, "partial then done")

	if state.IsProcessing() {
		t.Fatal("expected processing cleared after finish")
	}
	if state.IndicatorVisible() {
		t.Fatal("expected indicator hidden after assistant reply")
	}

	snapshot := state.Snapshot()
	last, ok := snapshot.Last()
	if !ok {
		t.Fatal("expected entities in snapshot")
	}
	if last.ID != final.ID || !last.Complete || last.Content != "partial then done" {
		t.Fatalf("unexpected final entity: %+v", last)
	}
	if snapshot.Len() != 2 {
		t.Fatalf("expected user + assistant, got %d entities", snapshot.Len())
	}
}

func TestStreamingKeepsEntityIdentity(t *testing.T) {
	state := automaticState()
	state.StartProcessingWithUser(chat.NewUserEntity("hi"))

	streaming := state.BeginAssistantStream()
	final := state.FinishWithAssistant(streaming, "done")

	if final.ID != streaming.ID {
		t.Fatalf("replacement changed entity ID: %s != %s", final.ID, streaming.ID)
	}
}

func TestFinishWithErrorClearsProcessing(t *testing.T) {
	state := automaticState()
	state.StartProcessingWithUser(chat.NewUserEntity("hi"))

	failure := errors.New("backend unreachable")
	state.FinishWithError(failure)

	if state.IsProcessing() {
		t.Fatal("expected processing cleared on error")
	}
	if !errors.Is(state.LastError(), failure) {
		t.Fatalf("expected recorded error, got %v", state.LastError())
	}
}

func TestLinesApplyPolicy(t *testing.T) {
	state := automaticState()
	state.Append(chat.NewUserEntity("visible"))
	state.Append(chat.NewHiddenEntity("bookkeeping", "internal"))

	lines := state.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected hidden entity filtered, got %d lines", len(lines))
	}
	if lines[0].Entity.Content != "visible" {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
}

func TestCommandSetResolve(t *testing.T) {
	commands := BuiltinCommands()

	tests := []struct {
		input    string
		wantName string
		wantOK   bool
	}{
		{"/time human", "time", true},
		{"/stats", "stats", true},
		{"/help", "help", true},
		{"/unknown", "", false},
		{"time", "", false},
		{"/", "", false},
		{"plain message", "", false},
	}

	for _, tt := range tests {
		command, _, ok := commands.Resolve(tt.input)
		if ok != tt.wantOK {
			t.Errorf("Resolve(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			continue
		}
		if ok && command.Name() != tt.wantName {
			t.Errorf("Resolve(%q) = %s, want %s", tt.input, command.Name(), tt.wantName)
		}
	}
}

func TestStatsCommandCountsRoles(t *testing.T) {
	state := automaticState()
	state.Append(chat.NewUserEntity("one"))
	state.Append(chat.NewAssistantEntity("two"))
	state.Append(chat.NewHiddenEntity("bookkeeping", "three"))

	out, err := (&statsCommand{}).Execute(state, nil)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := "3 entities (User: 1, Assistant: 1, Hidden: 1)"
	if out != want {
		t.Fatalf("stats = %q, want %q", out, want)
	}
}
