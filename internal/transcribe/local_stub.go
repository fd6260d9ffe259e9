//go:build !whisper

package transcribe

import (
	"context"
	"errors"

	"speechbox/internal/config"
	"speechbox/internal/model"

	"github.com/sirupsen/logrus"
)

type localStub struct{}

// NewLocal returns a recognizer that reports the missing build tag; the
// local engine needs whisper.cpp (cgo).
func NewLocal(cfg *config.Config, logger *logrus.Logger, loader *model.Loader) Recognizer {
	return localStub{}
}

func (localStub) Name() string { return "whisper-local" }

func (localStub) Transcribe(ctx context.Context, samples []float32) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}
	return "", errors.New("local engine unavailable: build with -tags whisper or set asr.engine = \"openai\"")
}
