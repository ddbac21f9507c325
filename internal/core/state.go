package core

import (
	"sync"

	"github.com/avencia/chatframe/chat"
)

// TranscriptState owns the canonical Chat for the host. It is the single
// writer; readers get snapshots or freshly derived view state. The mutex
// serializes the host's own event loop against UI reads, not concurrent
// writers — there are none.
type TranscriptState struct {
	mu           sync.RWMutex
	chat         *chat.Chat
	policy       chat.VisibilityPolicy
	indicator    chat.Indicator
	isProcessing bool
	lastError    error
}

func NewTranscriptState(policy chat.VisibilityPolicy, indicator chat.Indicator) *TranscriptState {
	return &TranscriptState{
		chat:      chat.New(),
		policy:    policy,
		indicator: indicator,
	}
}

// Snapshot returns an independent copy of the transcript for derivation,
// export and speech observation.
func (ts *TranscriptState) Snapshot() *chat.Chat {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.chat.Snapshot()
}

// Lines derives the current render list.
func (ts *TranscriptState) Lines() []chat.Line {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return chat.DeriveView(ts.chat, ts.policy)
}

// IndicatorVisible decides typing-indicator visibility for the current
// transcript and configured mode.
func (ts *TranscriptState) IndicatorVisible() bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return chat.ShouldShowIndicator(ts.chat, ts.indicator)
}

// SetIndicatorFlag drives manual indicator mode. No-op in other modes.
func (ts *TranscriptState) SetIndicatorFlag(flag bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.indicator.Flag = flag
}

func (ts *TranscriptState) SetProcessing(processing bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.isProcessing = processing
}

func (ts *TranscriptState) IsProcessing() bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.isProcessing
}

func (ts *TranscriptState) LastError() error {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.lastError
}

// Append adds any entity to the transcript.
func (ts *TranscriptState) Append(e chat.Entity) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.chat.Append(e)
}

// Atomic operations for event ordering

// StartProcessingWithUser atomically appends the user's entity and flips the
// processing flag, so derivation never sees the turn half-applied.
func (ts *TranscriptState) StartProcessingWithUser(e chat.Entity) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.isProcessing = true
	ts.lastError = nil
	ts.chat.Append(e)
}

// BeginAssistantStream appends an incomplete assistant entity and returns it
// for later replacement.
func (ts *TranscriptState) BeginAssistantStream() chat.Entity {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	e := chat.NewStreamingEntity(chat.Assistant)
	ts.chat.Append(e)
	return e
}

// UpdateStream replaces the streaming entity in place with new content.
func (ts *TranscriptState) UpdateStream(streaming chat.Entity, content string) chat.Entity {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	updated := streaming.WithContent(content)
	ts.chat.ReplaceLast(updated)
	return updated
}

// FinishWithAssistant atomically finalizes the streaming entity and clears
// the processing flag.
func (ts *TranscriptState) FinishWithAssistant(streaming chat.Entity, content string) chat.Entity {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	final := streaming.WithContent(content).Completed()
	ts.chat.ReplaceLast(final)
	ts.isProcessing = false
	ts.lastError = nil
	return final
}

// FinishWithError clears the processing flag and records the failure.
func (ts *TranscriptState) FinishWithError(err error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.isProcessing = false
	ts.lastError = err
}
