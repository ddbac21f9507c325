package speech

import (
	"sync"

	"github.com/avencia/chatframe/chat"
)

// Output decides synthesis actions from transcript changes. The host calls
// Observe after every chat mutation; Output speaks the newest complete
// assistant message exactly once, stops playback when a new user turn
// arrives, and stops on mute or lifecycle suspension.
type Output struct {
	mu           sync.Mutex
	synth        Synthesizer
	muted        bool
	lastSpokenID string
}

// NewOutput creates an output controller around a synthesizer.
func NewOutput(synth Synthesizer) *Output {
	return &Output{synth: synth}
}

// Observe inspects the transcript's last entity and issues speak/stop
// requests. Muted output never acts. Earlier assistant messages are never
// replayed; only an assistant entity that is complete and not yet spoken
// triggers synthesis.
func (o *Output) Observe(c *chat.Chat) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.muted || o.synth == nil {
		return
	}

	last, ok := c.Last()
	if !ok {
		return
	}

	switch {
	case last.Role == chat.User:
		// A new user turn interrupts playback.
		o.synth.Stop()
	case last.Role == chat.Assistant && last.Complete && last.ID != o.lastSpokenID:
		o.lastSpokenID = last.ID
		o.synth.Speak(last.Content)
	}
}

// SetMuted toggles the muted flag. Muting requests an immediate stop even if
// nothing is playing; stop is idempotent on the collaborator side.
func (o *Output) SetMuted(muted bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	wasMuted := o.muted
	o.muted = muted
	if muted && !wasMuted && o.synth != nil {
		o.synth.Stop()
	}
}

// Muted reports the current muted flag.
func (o *Output) Muted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.muted
}

// Suspend requests an immediate stop for host lifecycle suspension (process
// backgrounded or equivalent). The muted flag is left untouched.
func (o *Output) Suspend() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.synth != nil {
		o.synth.Stop()
	}
}
