//go:build whisper

package audio

import (
	"fmt"

	vad "github.com/maxhawkins/go-webrtcvad"
)

// TrimSilence drops leading and trailing non-speech frames from a recording.
// Returns the input unchanged when the rate/frame combination is outside
// what the webrtc VAD accepts.
func TrimSilence(samples []float32, sampleRate, frameMS, mode int) ([]float32, error) {
	if len(samples) == 0 {
		return samples, nil
	}
	if !validVADRate(sampleRate) || !validVADFrameMS(frameMS) {
		return samples, fmt.Errorf("vad needs 8/16/32/48 kHz and 10/20/30 ms frames (got %d Hz, %d ms)", sampleRate, frameMS)
	}

	frameSamples := sampleRate * frameMS / 1000
	if !vad.ValidRateAndFrameLength(sampleRate, frameSamples) {
		return samples, fmt.Errorf("invalid frame_ms %d for sample_rate %d", frameMS, sampleRate)
	}

	v, err := vad.New()
	if err != nil {
		return samples, fmt.Errorf("vad init: %w", err)
	}
	if err := v.SetMode(mode); err != nil {
		return samples, fmt.Errorf("vad mode: %w", err)
	}

	nFrames := len(samples) / frameSamples
	voiced := make([]bool, nFrames)
	for i := 0; i < nFrames; i++ {
		frame := pcm16Bytes(samples[i*frameSamples : (i+1)*frameSamples])
		active, err := v.Process(sampleRate, frame)
		if err != nil {
			return samples, fmt.Errorf("vad process: %w", err)
		}
		voiced[i] = active
	}

	lo, hi := trimBounds(voiced, frameSamples, len(samples))
	if lo == hi {
		return nil, nil
	}
	out := make([]float32, hi-lo)
	copy(out, samples[lo:hi])
	return out, nil
}
