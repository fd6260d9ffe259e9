//go:build whisper

package transcribe

import (
	"context"
	"fmt"
	"strings"

	"speechbox/internal/config"
	"speechbox/internal/model"

	"github.com/sirupsen/logrus"
)

// Local transcribes with the memoized whisper.cpp model.
type Local struct {
	cfg    *config.Config
	logger *logrus.Logger
	loader *model.Loader
}

// NewLocal returns the local whisper recognizer.
func NewLocal(cfg *config.Config, logger *logrus.Logger, loader *model.Loader) Recognizer {
	return &Local{cfg: cfg, logger: logger, loader: loader}
}

func (l *Local) Name() string { return "whisper-local" }

func (l *Local) Transcribe(ctx context.Context, samples []float32) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	handle, err := l.loader.Get()
	if err != nil {
		return "", err
	}
	wh, ok := handle.(*model.WhisperHandle)
	if !ok {
		return "", fmt.Errorf("unexpected model handle %T", handle)
	}

	wctx, err := wh.NewContext()
	if err != nil {
		return "", err
	}
	if lang := strings.TrimSpace(l.cfg.ASR.Language); lang != "" {
		if err := wctx.SetLanguage(lang); err != nil {
			l.logger.Warnf("set language: %v", err)
		}
	}
	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		seg, err := wctx.NextSegment()
		if err != nil {
			break
		}
		b.WriteString(seg.Text)
		if !strings.HasSuffix(seg.Text, " ") {
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String()), nil
}
