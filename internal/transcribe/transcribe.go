// Package transcribe converts normalized audio buffers into text.
package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"speechbox/internal/config"
	"speechbox/internal/model"

	"github.com/sirupsen/logrus"
)

// Recognizer converts audio into a trimmed transcript. Implementations make
// a single attempt; an empty buffer yields an empty transcript and no error.
type Recognizer interface {
	Name() string
	Transcribe(ctx context.Context, samples []float32) (string, error)
}

// ForConfig returns the recognizer selected by asr.engine.
func ForConfig(cfg *config.Config, logger *logrus.Logger, loader *model.Loader) (Recognizer, error) {
	switch strings.ToLower(cfg.ASR.Engine) {
	case "", "local":
		return NewLocal(cfg, logger, loader), nil
	case "openai":
		return NewOpenAI(OpenAIConfig{
			APIKey:     os.Getenv("OPENAI_API_KEY"),
			Model:      cfg.ASR.APIModel,
			Language:   cfg.ASR.Language,
			SampleRate: cfg.Audio.SampleRate,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown asr.engine %q (expected local or openai)", cfg.ASR.Engine)
	}
}
