package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avencia/chatframe/speech"
)

// speechLog is the demo synthesizer: instead of driving an audio backend it
// appends utterances to ~/.chatframe/speech.log, so the speak/stop decisions
// are observable without a sound device.
type speechLog struct {
	mu       sync.Mutex
	path     string
	speaking bool
}

func newSpeechLog() speech.Synthesizer {
	dir := os.Getenv("CHATFRAME_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		dir = home
	}
	return &speechLog{path: filepath.Join(dir, ".chatframe", "speech.log")}
}

func (s *speechLog) Speak(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speaking = true
	s.append("SPEAK " + text)
}

func (s *speechLog) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.speaking {
		return
	}
	s.speaking = false
	s.append("STOP")
}

func (s *speechLog) IsSpeaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

func (s *speechLog) append(line string) {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s %s\n", time.Now().Format(time.RFC3339), line)
}
