//go:build whisper

package model

import (
	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// WhisperHandle wraps a loaded whisper.cpp model.
type WhisperHandle struct {
	whisper.Model
}

// NewWhisper returns a Loader backed by the whisper.cpp bindings.
func NewWhisper(path string) *Loader {
	return New(path, func(p string) (Handle, error) {
		m, err := whisper.New(p)
		if err != nil {
			return nil, err
		}
		return &WhisperHandle{Model: m}, nil
	})
}
