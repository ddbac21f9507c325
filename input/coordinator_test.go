package input

import (
	"context"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencia/chatframe/chat"
	"github.com/avencia/chatframe/speech"
)

// fakeRecognizer feeds scripted results and tracks sessions.
type fakeRecognizer struct {
	mu        sync.Mutex
	available bool
	recording bool
	stops     int
	starts    int
	ch        chan speech.Result
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{available: true}
}

func (f *fakeRecognizer) Start(ctx context.Context) (<-chan speech.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	f.recording = true
	f.ch = make(chan speech.Result, 16)
	return f.ch, nil
}

func (f *fakeRecognizer) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	if f.recording {
		f.recording = false
		close(f.ch)
	}
}

func (f *fakeRecognizer) IsRecording() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recording
}

func (f *fakeRecognizer) IsAvailable() bool { return f.available }

func (f *fakeRecognizer) emit(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ch <- speech.Result{Text: text}
}

// collector is a Sink capturing submitted entities.
type collector struct {
	mu       sync.Mutex
	entities []chat.Entity
}

func (col *collector) sink(e chat.Entity) {
	col.mu.Lock()
	defer col.mu.Unlock()
	col.entities = append(col.entities, e)
}

func (col *collector) snapshot() []chat.Entity {
	col.mu.Lock()
	defer col.mu.Unlock()
	out := make([]chat.Entity, len(col.entities))
	copy(out, col.entities)
	return out
}

func (col *collector) waitFor(t *testing.T, n int) []chat.Entity {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := col.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d submissions, have %d", n, len(col.snapshot()))
	return nil
}

func TestCoordinator_SubmitAppendsAndClears(t *testing.T) {
	col := &collector{}
	c := NewCoordinator(nil, "", col.sink)

	c.SetText("Hello")
	require.True(t, c.CanSubmit())
	require.True(t, c.Submit())

	got := col.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, chat.User, got[0].Role)
	assert.Equal(t, "Hello", got[0].Content)
	assert.True(t, got[0].Complete)
	assert.Equal(t, "", c.Text(), "submit clears the buffer")
}

func TestCoordinator_EmptySubmitIsNoOp(t *testing.T) {
	col := &collector{}
	c := NewCoordinator(nil, "", col.sink)

	assert.False(t, c.Submit())
	c.SetText("   \t ")
	assert.False(t, c.CanSubmit())
	assert.False(t, c.Submit())
	assert.Empty(t, col.snapshot())
}

func TestCoordinator_VoiceTranscriptionReplacesBuffer(t *testing.T) {
	rec := newFakeRecognizer()
	col := &collector{}
	c := NewCoordinator(rec, "send", col.sink)

	require.NoError(t, c.StartVoice(context.Background()))
	rec.emit("what is")
	rec.emit("what is the weather")
	c.StopVoice()

	assert.Equal(t, "what is the weather", c.Text(),
		"each result replaces the buffer, transcription is not additive")
	assert.Empty(t, col.snapshot())
}

func TestCoordinator_TriggerPhraseSubmitsBuffer(t *testing.T) {
	rec := newFakeRecognizer()
	col := &collector{}
	c := NewCoordinator(rec, "send", col.sink)

	require.NoError(t, c.StartVoice(context.Background()))
	rec.emit("what is the weather")
	rec.emit("what is the weather SEND")

	got := col.waitFor(t, 1)
	assert.Equal(t, "what is the weather", got[0].Content,
		"the trigger phrase submits the transcription up to the phrase, not the literal phrase text")
	c.StopVoice()
	assert.Equal(t, "", c.Text())
}

func TestCoordinator_TriggerPhraseAfterMultibyteRunes(t *testing.T) {
	rec := newFakeRecognizer()
	col := &collector{}
	c := NewCoordinator(rec, "send", col.sink)

	require.NoError(t, c.StartVoice(context.Background()))
	// ẞ lowers to the two-byte ß, so an index computed in a lowered copy
	// would slice the original transcription mid-rune.
	rec.emit("ẞẞ send")

	got := col.waitFor(t, 1)
	assert.Equal(t, "ẞẞ", got[0].Content)
	assert.True(t, utf8.ValidString(got[0].Content))
	c.StopVoice()
}

func TestIndexFold(t *testing.T) {
	tests := []struct {
		s, substr string
		want      int
	}{
		{"what is the weather SEND", "send", 20},
		{"Send now", "send", 0},
		{"no phrase here", "send", -1},
		{"ẞẞ send", "send", 7},
		{"abc", "", 0},
		{"short", "longer than s", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, indexFold(tt.s, tt.substr), "indexFold(%q, %q)", tt.s, tt.substr)
	}
}

func TestCoordinator_SingleActiveSession(t *testing.T) {
	rec := newFakeRecognizer()
	c := NewCoordinator(rec, "", nil)

	require.NoError(t, c.StartVoice(context.Background()))
	require.NoError(t, c.StartVoice(context.Background()),
		"starting a new session must stop the previous one first")

	rec.mu.Lock()
	starts, stops := rec.starts, rec.stops
	rec.mu.Unlock()
	assert.Equal(t, 2, starts)
	assert.GreaterOrEqual(t, stops, 1, "previous session stopped before the new one started")

	c.StopVoice()
}

func TestCoordinator_StopVoiceIdempotent(t *testing.T) {
	rec := newFakeRecognizer()
	c := NewCoordinator(rec, "", nil)

	c.StopVoice() // no session yet: no-op

	require.NoError(t, c.StartVoice(context.Background()))
	c.StopVoice()
	c.StopVoice() // already stopped: no-op

	assert.False(t, c.IsRecording())
}

func TestCoordinator_UnavailableRecognizer(t *testing.T) {
	rec := newFakeRecognizer()
	rec.available = false
	c := NewCoordinator(rec, "", nil)
	assert.Error(t, c.StartVoice(context.Background()))

	none := NewCoordinator(nil, "", nil)
	assert.Error(t, none.StartVoice(context.Background()))
}

func TestCoordinator_RecognizerErrorsLeaveBuffer(t *testing.T) {
	rec := newFakeRecognizer()
	c := NewCoordinator(rec, "", nil)

	require.NoError(t, c.StartVoice(context.Background()))
	rec.emit("so far so good")
	rec.mu.Lock()
	rec.ch <- speech.Result{Err: context.DeadlineExceeded}
	rec.mu.Unlock()
	c.StopVoice()

	assert.Equal(t, "so far so good", c.Text())
}
