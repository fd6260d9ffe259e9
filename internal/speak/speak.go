// Package speak turns text into audible speech through the host's
// speech binary.
package speak

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyText is returned when there is nothing to speak.
var ErrEmptyText = errors.New("no text to speak")

// Synthesizer speaks text aloud. Blocking for the duration of playback.
type Synthesizer interface {
	Name() string
	Speak(ctx context.Context, text string) error
}

// WordCount returns the number of whitespace-separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
