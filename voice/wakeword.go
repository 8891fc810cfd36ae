// Package voice holds the text-level remains of the voice interface:
// a wake-phrase gate applied to transcript lines arriving over the live
// feed. No audio is captured or processed anywhere in this repository.
package voice

import (
	"strings"
	"sync"
)

const DefaultWakePhrase = "hey guru"

// Detector gates transcript text on a wake phrase. It only matches while
// listening, mirroring the start/stop lifecycle a hotword engine would
// have.
type Detector struct {
	phrase string

	mu        sync.Mutex
	listening bool
}

func NewDetector(phrase string) *Detector {
	if phrase == "" {
		phrase = DefaultWakePhrase
	}
	return &Detector{phrase: strings.ToLower(phrase)}
}

func (d *Detector) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listening = true
}

func (d *Detector) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listening = false
}

func (d *Detector) Listening() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listening
}

// Match reports whether text begins with the wake phrase and returns the
// remainder of the utterance. A bare wake phrase matches with an empty
// remainder. Nothing matches while the detector is stopped.
func (d *Detector) Match(text string) (string, bool) {
	if !d.Listening() {
		return "", false
	}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < len(d.phrase) {
		return "", false
	}
	if !strings.EqualFold(trimmed[:len(d.phrase)], d.phrase) {
		return "", false
	}
	return strings.TrimLeft(trimmed[len(d.phrase):], " ,.:!?"), true
}
