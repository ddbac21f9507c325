// Package speech defines the interfaces to the external speech collaborators
// and the trigger logic that drives them from transcript changes. The
// collaborators own their capture/playback machinery and their own error
// handling; this package only decides when to start and stop them.
package speech

import "context"

// Result is one incremental transcription snapshot. Text replaces whatever
// the previous result carried — transcription is not additive. Err is set
// when the recognizer hit a non-fatal problem for this snapshot.
type Result struct {
	Text string
	Err  error
}

// Recognizer is the speech-to-text collaborator. Start yields a stream of
// Results that ends when the session stops or the context is canceled. Stop
// must be synchronous and idempotent.
type Recognizer interface {
	Start(ctx context.Context) (<-chan Result, error)
	Stop()
	IsRecording() bool
	IsAvailable() bool
}

// Synthesizer is the text-to-speech collaborator. Speak and Stop are fire
// and forget: the core never blocks on them and never retries. Stop preempts
// any in-flight utterance immediately; interrupted utterances are not queued.
type Synthesizer interface {
	Speak(text string)
	Stop()
	IsSpeaking() bool
}
