//go:build !whisper

package audio

// TrimSilence is a no-op without the whisper build tag (webrtc VAD is cgo).
func TrimSilence(samples []float32, sampleRate, frameMS, mode int) ([]float32, error) {
	return samples, nil
}
