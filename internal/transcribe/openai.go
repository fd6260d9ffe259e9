package transcribe

import (
	"bytes"
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAIConfig configures the Whisper API recognizer.
type OpenAIConfig struct {
	APIKey     string
	Model      string // defaults to whisper-1
	Language   string // empty or "auto" for auto-detect
	SampleRate int
}

// OpenAI transcribes through the hosted Whisper API.
type OpenAI struct {
	client     *openai.Client
	model      string
	language   string
	sampleRate int
	logger     *logrus.Logger
}

// NewOpenAI returns the API recognizer. The key comes from OPENAI_API_KEY.
func NewOpenAI(cfg OpenAIConfig, logger *logrus.Logger) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY not set; required for asr.engine = \"openai\"")
	}
	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}
	lang := strings.TrimSpace(cfg.Language)
	if strings.EqualFold(lang, "auto") {
		lang = ""
	}
	return &OpenAI{
		client:     openai.NewClient(cfg.APIKey),
		model:      model,
		language:   lang,
		sampleRate: cfg.SampleRate,
		logger:     logger,
	}, nil
}

func (o *OpenAI) Name() string { return "whisper-api" }

func (o *OpenAI) Transcribe(ctx context.Context, samples []float32) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}
	wavData := encodeWAV(samples, o.sampleRate)
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: "audio.wav",
		Reader:   bytes.NewReader(wavData),
		Language: o.language,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}
