//go:build !whisper

package audio

import (
	"errors"

	"speechbox/internal/config"

	"github.com/sirupsen/logrus"
)

// Record requires building with -tags whisper (PortAudio + cgo).
func Record(cfg *config.Config, logger *logrus.Logger) ([]float32, error) {
	return nil, errors.New("microphone capture unavailable: build with -tags whisper")
}

// ListDevices requires building with -tags whisper.
func ListDevices() ([]Device, error) {
	return nil, errors.New("microphone listing unavailable: build with -tags whisper")
}
