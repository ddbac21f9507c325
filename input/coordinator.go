// Package input turns raw text and transcribed speech into user entities
// appended to the transcript.
package input

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/avencia/chatframe/chat"
	"github.com/avencia/chatframe/speech"
)

// Sink receives each submitted user entity. The host typically appends it to
// its canonical Chat and re-derives the view.
type Sink func(chat.Entity)

// Coordinator owns the pending input buffer and the voice-input session.
// Submitting appends a user entity through the sink and clears the buffer;
// empty input never submits. At most one recognition session is active at a
// time — starting a new one stops the previous session first.
type Coordinator struct {
	mu         sync.Mutex
	buffer     string
	trigger    string
	recognizer speech.Recognizer
	sink       Sink

	cancel context.CancelFunc
	done   chan struct{}
}

// NewCoordinator creates a coordinator. The recognizer may be nil when the
// host has no voice input; trigger is the phrase that, when it appears in a
// transcription, submits the buffer immediately.
func NewCoordinator(recognizer speech.Recognizer, trigger string, sink Sink) *Coordinator {
	return &Coordinator{
		recognizer: recognizer,
		trigger:    trigger,
		sink:       sink,
	}
}

// SetText replaces the pending input buffer.
func (c *Coordinator) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer = text
}

// Text returns the pending input buffer.
func (c *Coordinator) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer
}

// CanSubmit reports whether the buffer holds submittable content. Hosts use
// this to disable the send control rather than surfacing an error.
func (c *Coordinator) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.TrimSpace(c.buffer) != ""
}

// Submit appends a user entity with the buffer's content and clears the
// buffer. Whitespace-only input is a no-op and reports false.
func (c *Coordinator) Submit() bool {
	c.mu.Lock()
	content := strings.TrimSpace(c.buffer)
	if content == "" {
		c.mu.Unlock()
		return false
	}
	c.buffer = ""
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		sink(chat.NewUserEntity(content))
	}
	return true
}

// StartVoice begins a recognition session. Any previous session is stopped
// first. Each transcription result replaces the buffer; a result containing
// the trigger phrase submits whatever was transcribed before the phrase.
func (c *Coordinator) StartVoice(ctx context.Context) error {
	if c.recognizer == nil {
		return fmt.Errorf("no speech recognizer configured")
	}
	if !c.recognizer.IsAvailable() {
		return fmt.Errorf("speech recognition unavailable")
	}

	c.StopVoice()

	sessionCtx, cancel := context.WithCancel(ctx)
	results, err := c.recognizer.Start(sessionCtx)
	if err != nil {
		cancel()
		return fmt.Errorf("start recognition: %w", err)
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go c.consume(results, done)
	return nil
}

// StopVoice cancels the active recognition session and waits for its result
// stream to drain. Calling it with no active session is a no-op; calling it
// twice is safe.
func (c *Coordinator) StopVoice() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	c.recognizer.Stop()
	<-done
}

// IsRecording reports whether a recognition session is active.
func (c *Coordinator) IsRecording() bool {
	return c.recognizer != nil && c.recognizer.IsRecording()
}

func (c *Coordinator) consume(results <-chan speech.Result, done chan struct{}) {
	defer close(done)

	for res := range results {
		if res.Err != nil {
			// The recognizer owns its errors; a bad snapshot simply
			// leaves the buffer as it was.
			continue
		}
		text := res.Text
		if c.trigger != "" {
			if idx := indexFold(text, c.trigger); idx >= 0 {
				// Submit what was said before the trigger phrase, not
				// the phrase itself.
				c.SetText(strings.TrimSpace(text[:idx]))
				c.Submit()
				continue
			}
		}
		c.SetText(text)
	}
}

// indexFold is a case-insensitive strings.Index. Offsets are computed in s
// itself: case mappings can change byte length, so an index found in a
// lowered copy would slice s mid-rune.
func indexFold(s, substr string) int {
	if substr == "" {
		return 0
	}
	need := utf8.RuneCountInString(substr)

	starts := make([]int, 0, len(s)+1)
	for i := range s {
		starts = append(starts, i)
	}
	starts = append(starts, len(s))

	for i := 0; i+need < len(starts); i++ {
		if strings.EqualFold(s[starts[i]:starts[i+need]], substr) {
			return starts[i]
		}
	}
	return -1
}
