package audio

import (
	"fmt"
)

// WindowSamples returns the sample count of a fixed recording window.
func WindowSamples(durationSec, sampleRate int) int {
	return durationSec * sampleRate
}

// frameReader reads successive frames of int16 mono samples into an
// internal buffer. Implemented by the portaudio stream in whisper builds
// and by fakes in tests.
type frameReader interface {
	Read() error
	Buffer() []int16
}

// captureWindow drains frames from r until total samples are collected
// and returns exactly total samples.
func captureWindow(r frameReader, total int) ([]float32, error) {
	if total <= 0 {
		return nil, fmt.Errorf("invalid window size %d", total)
	}
	out := make([]float32, 0, total)
	for len(out) < total {
		if err := r.Read(); err != nil {
			return nil, fmt.Errorf("stream read: %w", err)
		}
		for _, s := range r.Buffer() {
			out = append(out, float32(s)/32768.0)
		}
	}
	return out[:total], nil
}
