// Package audio produces normalized 16 kHz mono float32 buffers from
// uploaded files or a fixed-duration microphone capture.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoAudio is returned when an operation is given no audio at all.
var ErrNoAudio = errors.New("no audio provided")

// ErrUnsupportedFormat is returned for file extensions outside the allow-list.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// supportedExts is the upload allow-list.
var supportedExts = map[string]bool{
	".wav": true,
	".mp3": true,
	".ogg": true,
	".m4a": true,
}

// SupportedExtension reports whether name carries an allowed audio extension.
func SupportedExtension(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// SupportedExtensions lists the allowed extensions without the leading dot.
func SupportedExtensions() []string {
	return []string{"wav", "mp3", "ogg", "m4a"}
}

// DecodeUpload writes an uploaded byte buffer to a temp file, decodes it to
// mono float32 samples at sampleRate, and removes the temp file before
// returning. WAV files are decoded in-process; everything else goes through
// ffmpeg.
func DecodeUpload(name string, data []byte, sampleRate int) ([]float32, error) {
	if len(data) == 0 {
		return nil, ErrNoAudio
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !supportedExts[ext] {
		return nil, fmt.Errorf("%w: %q (expected %s)", ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions(), "/"))
	}

	tmp, err := os.CreateTemp("", "speechbox-upload-*"+ext)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	if ext == ".wav" {
		samples, err := ReadWAVMono(tmpPath, sampleRate)
		if err == nil {
			return samples, nil
		}
		// Some "wav" uploads are mislabeled; let ffmpeg have a go.
		if _, ferr := ffmpegPath(); ferr != nil {
			return nil, err
		}
	}
	return ffmpegDecode(tmpPath, sampleRate)
}
